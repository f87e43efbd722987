package milestone

import "context"

type Repository interface {
	Create(ctx context.Context, m *Milestone) error
	GetByID(ctx context.Context, kind Kind, id string) (*Milestone, error)
	// List returns the kind's milestones ordered by threshold.
	List(ctx context.Context, kind Kind, activeOnly bool) ([]*Milestone, error)
	Update(ctx context.Context, m *Milestone) error
	Delete(ctx context.Context, kind Kind, id string) error
	// ExistsTitle reports whether the kind already has a milestone titled title.
	ExistsTitle(ctx context.Context, kind Kind, title string) (bool, error)
}

package franchise

import "context"

type Repository interface {
	Create(ctx context.Context, f *Franchise) error
	GetByID(ctx context.Context, id string) (*Franchise, error)
	List(ctx context.Context, region string, skip, limit int) ([]*Franchise, error)
	Update(ctx context.Context, f *Franchise) error
}

package reward

import (
	"context"
	"time"
)

type Repository interface {
	// Create fails with a conflict when the beneficiary already holds the milestone.
	Create(ctx context.Context, d *RewardDistribution) error
	GetByID(ctx context.Context, id string) (*RewardDistribution, error)
	List(ctx context.Context, f ListFilter) ([]*RewardDistribution, error)
	// UpdateStatus moves a distribution from one status to another; a distribution
	// no longer in from yields a conflict.
	UpdateStatus(ctx context.Context, id string, from, to Status, paidAt *time.Time, at time.Time) error
	// Summarize groups distributions created in [from, to) by kind and status.
	// Nil bounds are open.
	Summarize(ctx context.Context, from, to *time.Time) ([]ReportRow, error)
}

package reseller

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, r *SnSReseller) error
	GetByID(ctx context.Context, id string) (*SnSReseller, error)
	List(ctx context.Context, skip, limit int) ([]*SnSReseller, error)
	Update(ctx context.Context, r *SnSReseller) error
	// RecordPurchase increments the counters of an active reseller atomically.
	RecordPurchase(ctx context.Context, id string, amount, commission float64, at time.Time) (*SnSReseller, error)
}

package coupon

import (
	"context"
	"time"
)

// Repository defines coupon data storage. Implementations enforce couponCode uniqueness.
type Repository interface {
	Create(ctx context.Context, c *Coupon) error
	GetByID(ctx context.Context, id string) (*Coupon, error)
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	List(ctx context.Context, f ListFilter) ([]*Coupon, error)
	Update(ctx context.Context, c *Coupon) error
	Delete(ctx context.Context, id string) error
	// Redeem increments usedCount unless the coupon is inactive or exhausted.
	Redeem(ctx context.Context, id string) error
	// DeactivateExpired clears isActive on coupons that expired before now.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

package booking

import (
	"context"
	"time"
)

// Repository stores bookings. Create must reject a second non-cancelled booking
// of the same vendor, date and slot with an apperr conflict.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*Booking, error)
	ListByVendor(ctx context.Context, vendorID string, status Status) ([]*Booking, error)
	// UpdateStatus moves the booking from one status to another and fails with a
	// conflict when it is no longer in from.
	UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) error
}

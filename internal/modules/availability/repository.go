package availability

import "context"

// Repository stores one schedule per vendor.
type Repository interface {
	// Upsert writes a by VendorID, keeping the ID and CreatedAt of an existing schedule.
	Upsert(ctx context.Context, a *VendorAvailability) error
	GetByVendor(ctx context.Context, vendorID string) (*VendorAvailability, error)
}

package inventory

import (
	"context"
	"time"
)

// Repository stores inventory lines and their movement logs.
type Repository interface {
	// Create fails with a conflict when the owner already has the SKU.
	Create(ctx context.Context, inv *Inventory) error
	// GetByID returns the line with its movements, oldest first.
	GetByID(ctx context.Context, id string) (*Inventory, error)
	// List returns lines without their movements.
	List(ctx context.Context, f ListFilter) ([]*Inventory, error)
	// ApplyMovement adds m.Quantity to currentQuantity and appends m in one atomic
	// step. It fails with a conflict, changing nothing, when the result would be
	// negative. The returned line carries no movements.
	ApplyMovement(ctx context.Context, id string, m *Movement) (*Inventory, error)
	// ResetQuantity sets currentQuantity provided the ledger still holds
	// movementCount entries, and fails with a conflict otherwise.
	ResetQuantity(ctx context.Context, id string, quantity, movementCount int, at time.Time) error
}

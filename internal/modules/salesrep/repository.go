package salesrep

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, s *SalesRep) error
	GetByID(ctx context.Context, id string) (*SalesRep, error)
	List(ctx context.Context, f ListFilter) ([]*SalesRep, error)
	// IncrementVendors bumps the onboarded counter of an active rep.
	IncrementVendors(ctx context.Context, id string, at time.Time) error
}

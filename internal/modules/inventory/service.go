package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/georgemunganga/vendora-backend/internal/platform/events"
	"github.com/georgemunganga/vendora-backend/internal/platform/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the stock ledger operations.
type Service interface {
	CreateInventory(ctx context.Context, req CreateInventoryRequest) (*Inventory, error)
	GetInventory(ctx context.Context, id string) (*Inventory, error)
	ListInventory(ctx context.Context, f ListFilter) ([]*Inventory, error)

	RecordMovement(ctx context.Context, id string, req MovementRequest) (*Inventory, error)
	Transfer(ctx context.Context, fromID string, req TransferRequest) (*TransferResult, error)

	// Reconcile compares currentQuantity with initialQuantity plus the ledger;
	// with fix set it rewrites currentQuantity to the ledger value.
	Reconcile(ctx context.Context, id string, fix bool) (*Reconciliation, error)

	// LowStockReport lists every line at or below its reorder level.
	LowStockReport(ctx context.Context) ([]*Inventory, error)
}

type service struct {
	repo   Repository
	events events.Publisher
	log    *zap.Logger
	now    func() time.Time
}

// NewService creates a new inventory service.
func NewService(repo Repository, pub events.Publisher, log *zap.Logger) Service {
	return &service{
		repo:   repo,
		events: pub,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SignedQuantity turns a movement request into the change it applies:
// purchase and return add, sale and transfer subtract, adjustment is taken as given.
func SignedQuantity(t MovementType, qty int) (int, error) {
	switch t {
	case MovementPurchase, MovementReturn:
		if qty <= 0 {
			return 0, apperr.Validation("%s quantity must be greater than 0", t)
		}
		return qty, nil
	case MovementSale, MovementTransfer:
		if qty <= 0 {
			return 0, apperr.Validation("%s quantity must be greater than 0", t)
		}
		return -qty, nil
	case MovementAdjustment:
		if qty == 0 {
			return 0, apperr.Validation("adjustment quantity cannot be 0")
		}
		return qty, nil
	}
	return 0, apperr.Validation("unknown movement type %q", t)
}

func (s *service) CreateInventory(ctx context.Context, req CreateInventoryRequest) (*Inventory, error) {
	owner := OwnerType(strings.ToLower(req.OwnerType))
	switch {
	case strings.TrimSpace(req.OwnerID) == "":
		return nil, apperr.Validation("ownerId is required")
	case owner != OwnerVendor && owner != OwnerFranchise:
		return nil, apperr.Validation("ownerType must be vendor or franchise")
	case strings.TrimSpace(req.ProductName) == "":
		return nil, apperr.Validation("productName is required")
	case strings.TrimSpace(req.SKU) == "":
		return nil, apperr.Validation("sku is required")
	case req.InitialQuantity < 0:
		return nil, apperr.Validation("initialQuantity cannot be negative")
	case req.ReorderLevel < 0:
		return nil, apperr.Validation("reorderLevel cannot be negative")
	}
	unit := req.Unit
	if unit == "" {
		unit = "pcs"
	}

	now := s.now()
	inv := &Inventory{
		ID:              uuid.NewString(),
		OwnerID:         req.OwnerID,
		OwnerType:       owner,
		ProductName:     req.ProductName,
		SKU:             strings.ToUpper(strings.TrimSpace(req.SKU)),
		Unit:            unit,
		InitialQuantity: req.InitialQuantity,
		CurrentQuantity: req.InitialQuantity,
		ReorderLevel:    req.ReorderLevel,
		StockMovements:  []Movement{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		if apperr.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict("owner %s already stocks sku %s", inv.OwnerID, inv.SKU)
		}
		return nil, err
	}
	return inv, nil
}

func (s *service) GetInventory(ctx context.Context, id string) (*Inventory, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListInventory(ctx context.Context, f ListFilter) ([]*Inventory, error) {
	return s.repo.List(ctx, f)
}

func (s *service) RecordMovement(ctx context.Context, id string, req MovementRequest) (*Inventory, error) {
	t := MovementType(strings.ToLower(req.Type))
	delta, err := SignedQuantity(t, req.Quantity)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, id, &Movement{
		ID:        uuid.NewString(),
		Type:      t,
		Quantity:  delta,
		Reference: req.Reference,
		Note:      req.Note,
		CreatedAt: s.now(),
	})
}

func (s *service) apply(ctx context.Context, id string, m *Movement) (*Inventory, error) {
	inv, err := s.repo.ApplyMovement(ctx, id, m)
	metrics.StockMovement(string(m.Type), err == nil)
	if err != nil {
		return nil, err
	}

	before := inv.CurrentQuantity - m.Quantity
	if before > inv.ReorderLevel && inv.LowStock() {
		alert := LowStockAlert{
			InventoryID:     inv.ID,
			OwnerID:         inv.OwnerID,
			SKU:             inv.SKU,
			CurrentQuantity: inv.CurrentQuantity,
			ReorderLevel:    inv.ReorderLevel,
		}
		if err := s.events.Publish(ctx, events.InventoryLowStock, alert); err != nil {
			s.log.Warn("publish low stock alert", zap.String("inventory_id", inv.ID), zap.Error(err))
		}
	}
	return inv, nil
}

func (s *service) Transfer(ctx context.Context, fromID string, req TransferRequest) (*TransferResult, error) {
	if req.Quantity <= 0 {
		return nil, apperr.Validation("transfer quantity must be greater than 0")
	}
	if req.ToInventoryID == "" {
		return nil, apperr.Validation("toInventoryId is required")
	}
	if req.ToInventoryID == fromID {
		return nil, apperr.Validation("cannot transfer stock to the same inventory")
	}

	src, err := s.repo.GetByID(ctx, fromID)
	if err != nil {
		return nil, err
	}
	dst, err := s.repo.GetByID(ctx, req.ToInventoryID)
	if err != nil {
		if apperr.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Validation("destination inventory %s not found", req.ToInventoryID)
		}
		return nil, err
	}
	if src.SKU != dst.SKU {
		return nil, apperr.Validation("sku mismatch: %s cannot receive %s", dst.SKU, src.SKU)
	}

	now := s.now()
	out, err := s.apply(ctx, src.ID, &Movement{
		ID:        uuid.NewString(),
		Type:      MovementTransfer,
		Quantity:  -req.Quantity,
		Reference: req.Reference,
		Note:      "transfer to " + dst.ID,
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	in, err := s.apply(ctx, dst.ID, &Movement{
		ID:        uuid.NewString(),
		Type:      MovementTransfer,
		Quantity:  req.Quantity,
		Reference: req.Reference,
		Note:      "transfer from " + src.ID,
		CreatedAt: now,
	})
	if err != nil {
		_, cerr := s.apply(ctx, src.ID, &Movement{
			ID:        uuid.NewString(),
			Type:      MovementAdjustment,
			Quantity:  req.Quantity,
			Reference: req.Reference,
			Note:      "reversal of failed transfer to " + dst.ID,
			CreatedAt: s.now(),
		})
		if cerr != nil {
			s.log.Error("transfer compensation failed",
				zap.String("from", src.ID), zap.String("to", dst.ID),
				zap.Int("quantity", req.Quantity), zap.Error(cerr))
			return nil, fmt.Errorf("transfer failed and could not be reversed: %w", err)
		}
		return nil, err
	}
	return &TransferResult{From: out, To: in}, nil
}

// ExpectedQuantity is the quantity implied by the ledger.
func ExpectedQuantity(inv *Inventory) int {
	q := inv.InitialQuantity
	for _, m := range inv.StockMovements {
		q += m.Quantity
	}
	return q
}

func (s *service) Reconcile(ctx context.Context, id string, fix bool) (*Reconciliation, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	expected := ExpectedQuantity(inv)
	rec := &Reconciliation{
		InventoryID: inv.ID,
		Expected:    expected,
		Actual:      inv.CurrentQuantity,
		Drift:       inv.CurrentQuantity - expected,
		Movements:   len(inv.StockMovements),
	}
	if !fix || rec.Drift == 0 {
		return rec, nil
	}
	if expected < 0 {
		return nil, apperr.Conflict("ledger for %s sums to %d; record an adjustment instead", inv.ID, expected)
	}
	if err := s.repo.ResetQuantity(ctx, inv.ID, expected, rec.Movements, s.now()); err != nil {
		return nil, err
	}
	s.log.Info("inventory reconciled", zap.String("inventory_id", inv.ID), zap.Int("drift", rec.Drift))
	rec.Actual, rec.Drift, rec.Corrected = expected, 0, true
	return rec, nil
}

func (s *service) LowStockReport(ctx context.Context) ([]*Inventory, error) {
	return s.repo.List(ctx, ListFilter{LowStock: true})
}

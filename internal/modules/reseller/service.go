package reseller

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service interface {
	CreateReseller(ctx context.Context, req CreateResellerRequest) (*SnSReseller, error)
	GetReseller(ctx context.Context, id string) (*SnSReseller, error)
	ListResellers(ctx context.Context, skip, limit int) ([]*SnSReseller, error)
	UpdateReseller(ctx context.Context, id string, req UpdateResellerRequest) (*SnSReseller, error)
	RecordPurchase(ctx context.Context, id string, req PurchaseRequest) (*PurchaseResult, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// Commission returns amount × rate / 100 rounded to cents.
func Commission(amount, ratePercent float64) float64 {
	return decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(ratePercent)).
		Div(decimal.NewFromInt(100)).
		Round(2).
		InexactFloat64()
}

func newReferralCode() string {
	return "SNS-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func validateRate(rate float64) error {
	if rate < 0 || rate > 100 {
		return apperr.Validation("commissionRate must be between 0 and 100")
	}
	return nil
}

func (s *service) CreateReseller(ctx context.Context, req CreateResellerRequest) (*SnSReseller, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, apperr.Validation("userId is required")
	}
	if err := validateRate(req.CommissionRate); err != nil {
		return nil, err
	}
	code := strings.ToUpper(strings.TrimSpace(req.ReferralCode))
	generated := code == ""
	if generated {
		code = newReferralCode()
	}

	now := s.now()
	r := &SnSReseller{
		ID:             uuid.NewString(),
		UserID:         req.UserID,
		ReferralCode:   code,
		CommissionRate: req.CommissionRate,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err := s.repo.Create(ctx, r)
	if generated && errors.Is(err, apperr.ErrConflict) {
		// one retry on the rare generated-code collision
		r.ReferralCode = newReferralCode()
		err = s.repo.Create(ctx, r)
	}
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict("referral code %s is taken", r.ReferralCode)
		}
		return nil, err
	}
	return r, nil
}

func (s *service) GetReseller(ctx context.Context, id string) (*SnSReseller, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListResellers(ctx context.Context, skip, limit int) ([]*SnSReseller, error) {
	return s.repo.List(ctx, skip, limit)
}

func (s *service) UpdateReseller(ctx context.Context, id string, req UpdateResellerRequest) (*SnSReseller, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.CommissionRate != nil {
		if err := validateRate(*req.CommissionRate); err != nil {
			return nil, err
		}
		r.CommissionRate = *req.CommissionRate
	}
	if req.IsActive != nil {
		r.IsActive = *req.IsActive
	}
	r.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) RecordPurchase(ctx context.Context, id string, req PurchaseRequest) (*PurchaseResult, error) {
	if req.Amount <= 0 {
		return nil, apperr.Validation("amount must be greater than 0")
	}
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.IsActive {
		return nil, apperr.Validation("reseller %s is inactive", id)
	}

	amount := decimal.NewFromFloat(req.Amount).Round(2).InexactFloat64()
	commission := Commission(amount, r.CommissionRate)
	updated, err := s.repo.RecordPurchase(ctx, id, amount, commission, s.now())
	if err != nil {
		return nil, err
	}
	return &PurchaseResult{Reseller: updated, Amount: amount, Commission: commission}, nil
}

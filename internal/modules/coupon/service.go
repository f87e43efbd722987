package coupon

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service defines coupon business logic.
type Service interface {
	CreateCoupon(ctx context.Context, req CreateCouponRequest) (*Coupon, error)
	GetCoupon(ctx context.Context, id string) (*Coupon, error)
	ListCoupons(ctx context.Context, f ListFilter) ([]*Coupon, error)
	UpdateCoupon(ctx context.Context, id string, req UpdateCouponRequest) (*Coupon, error)
	DeleteCoupon(ctx context.Context, id string) error

	// ApplyCoupon prices an order with the code and consumes one use of it.
	ApplyCoupon(ctx context.Context, req ApplyCouponRequest) (*ApplyCouponResult, error)

	// DeactivateExpired is run by the scheduler.
	DeactivateExpired(ctx context.Context) (int64, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new coupon service.
func NewService(repo Repository) Service {
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// NormalizeCode trims and upper-cases a coupon code so "save10 " and "SAVE10" collide.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func validatePercent(p float64) error {
	if p <= 0 || p > 100 {
		return apperr.Validation("discountPercent must be greater than 0 and at most 100")
	}
	return nil
}

func (s *service) CreateCoupon(ctx context.Context, req CreateCouponRequest) (*Coupon, error) {
	code := NormalizeCode(req.CouponCode)
	if code == "" {
		return nil, apperr.Validation("couponCode is required")
	}
	if err := validatePercent(req.DiscountPercent); err != nil {
		return nil, err
	}
	if req.ExpiryDate.IsZero() {
		return nil, apperr.Validation("expiryDate is required")
	}
	now := s.now()
	if !req.ExpiryDate.After(now) {
		return nil, apperr.Validation("expiryDate must be in the future")
	}
	if req.MaxDiscount < 0 || req.MinOrderValue < 0 || req.UsageLimit < 0 {
		return nil, apperr.Validation("maxDiscount, minOrderValue and usageLimit cannot be negative")
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	c := &Coupon{
		ID:              uuid.NewString(),
		CouponCode:      code,
		Description:     req.Description,
		DiscountPercent: req.DiscountPercent,
		MaxDiscount:     req.MaxDiscount,
		MinOrderValue:   req.MinOrderValue,
		ExpiryDate:      req.ExpiryDate.UTC(),
		IsActive:        active,
		UsageLimit:      req.UsageLimit,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict("coupon code %q already exists", code)
		}
		return nil, err
	}
	return c, nil
}

func (s *service) GetCoupon(ctx context.Context, id string) (*Coupon, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListCoupons(ctx context.Context, f ListFilter) ([]*Coupon, error) {
	return s.repo.List(ctx, f)
}

func (s *service) UpdateCoupon(ctx context.Context, id string, req UpdateCouponRequest) (*Coupon, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CouponCode != nil {
		code := NormalizeCode(*req.CouponCode)
		if code == "" {
			return nil, apperr.Validation("couponCode cannot be empty")
		}
		c.CouponCode = code
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.DiscountPercent != nil {
		if err := validatePercent(*req.DiscountPercent); err != nil {
			return nil, err
		}
		c.DiscountPercent = *req.DiscountPercent
	}
	if req.MaxDiscount != nil {
		c.MaxDiscount = *req.MaxDiscount
	}
	if req.MinOrderValue != nil {
		c.MinOrderValue = *req.MinOrderValue
	}
	if req.ExpiryDate != nil {
		c.ExpiryDate = req.ExpiryDate.UTC()
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if req.UsageLimit != nil {
		c.UsageLimit = *req.UsageLimit
	}
	if c.MaxDiscount < 0 || c.MinOrderValue < 0 || c.UsageLimit < 0 {
		return nil, apperr.Validation("maxDiscount, minOrderValue and usageLimit cannot be negative")
	}
	c.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict("coupon code %q already exists", c.CouponCode)
		}
		return nil, err
	}
	return c, nil
}

func (s *service) DeleteCoupon(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ApplyCoupon(ctx context.Context, req ApplyCouponRequest) (*ApplyCouponResult, error) {
	code := NormalizeCode(req.CouponCode)
	if code == "" {
		return nil, apperr.Validation("couponCode is required")
	}
	if req.OrderAmount <= 0 {
		return nil, apperr.Validation("orderAmount must be greater than 0")
	}

	c, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	switch {
	case !c.IsActive:
		return nil, apperr.Validation("coupon %s is not active", code)
	case !c.ExpiryDate.After(s.now()):
		return nil, apperr.Validation("coupon %s has expired", code)
	case c.Exhausted():
		return nil, apperr.Validation("coupon %s has reached its usage limit", code)
	case req.OrderAmount < c.MinOrderValue:
		return nil, apperr.Validation("order amount must be at least %.2f to use coupon %s", c.MinOrderValue, code)
	}

	discount := Discount(c, req.OrderAmount)
	if err := s.repo.Redeem(ctx, c.ID); err != nil {
		return nil, err
	}

	amount := decimal.NewFromFloat(req.OrderAmount)
	return &ApplyCouponResult{
		CouponCode:  code,
		OrderAmount: req.OrderAmount,
		Discount:    discount,
		FinalAmount: amount.Sub(decimal.NewFromFloat(discount)).Round(2).InexactFloat64(),
	}, nil
}

// Discount returns the amount c takes off orderAmount, rounded to cents and capped by MaxDiscount.
func Discount(c *Coupon, orderAmount float64) float64 {
	d := decimal.NewFromFloat(orderAmount).
		Mul(decimal.NewFromFloat(c.DiscountPercent)).
		Div(decimal.NewFromInt(100))
	if c.MaxDiscount > 0 {
		d = decimal.Min(d, decimal.NewFromFloat(c.MaxDiscount))
	}
	return d.Round(2).InexactFloat64()
}

func (s *service) DeactivateExpired(ctx context.Context) (int64, error) {
	return s.repo.DeactivateExpired(ctx, s.now())
}

package salesrep

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/google/uuid"
)

type Service interface {
	CreateSalesRep(ctx context.Context, req CreateSalesRepRequest) (*SalesRep, error)
	GetSalesRep(ctx context.Context, id string) (*SalesRep, error)
	ListSalesReps(ctx context.Context, f ListFilter) ([]*SalesRep, error)
	// RecordOnboarding is called when a vendor is onboarded through the rep.
	RecordOnboarding(ctx context.Context, id string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func newReferralCode() string {
	return "REP-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *service) CreateSalesRep(ctx context.Context, req CreateSalesRepRequest) (*SalesRep, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.Validation("a valid email is required")
	}
	code := strings.ToUpper(strings.TrimSpace(req.ReferralCode))
	if code == "" {
		code = newReferralCode()
	}

	now := s.now()
	rep := &SalesRep{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Phone:        req.Phone,
		Region:       req.Region,
		ReferralCode: code,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, rep); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict("sales rep with email %s or referral code %s already exists", email, code)
		}
		return nil, err
	}
	return rep, nil
}

func (s *service) GetSalesRep(ctx context.Context, id string) (*SalesRep, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListSalesReps(ctx context.Context, f ListFilter) ([]*SalesRep, error) {
	return s.repo.List(ctx, f)
}

func (s *service) RecordOnboarding(ctx context.Context, id string) error {
	return s.repo.IncrementVendors(ctx, id, s.now())
}

package franchise

import (
	"context"
	"strings"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/google/uuid"
)

type Service interface {
	CreateFranchise(ctx context.Context, req CreateFranchiseRequest) (*Franchise, error)
	GetFranchise(ctx context.Context, id string) (*Franchise, error)
	ListFranchises(ctx context.Context, region string, skip, limit int) ([]*Franchise, error)
	UpdateFranchise(ctx context.Context, id string, req UpdateFranchiseRequest) (*Franchise, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) CreateFranchise(ctx context.Context, req CreateFranchiseRequest) (*Franchise, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	now := s.now()
	f := &Franchise{
		ID:        uuid.NewString(),
		Name:      name,
		OwnerName: req.OwnerName,
		Region:    req.Region,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     req.Phone,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) GetFranchise(ctx context.Context, id string) (*Franchise, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListFranchises(ctx context.Context, region string, skip, limit int) ([]*Franchise, error) {
	return s.repo.List(ctx, region, skip, limit)
}

func (s *service) UpdateFranchise(ctx context.Context, id string, req UpdateFranchiseRequest) (*Franchise, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperr.Validation("name cannot be empty")
		}
		f.Name = name
	}
	if req.OwnerName != nil {
		f.OwnerName = *req.OwnerName
	}
	if req.Region != nil {
		f.Region = *req.Region
	}
	if req.Email != nil {
		f.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		f.Phone = *req.Phone
	}
	if req.IsActive != nil {
		f.IsActive = *req.IsActive
	}
	f.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

package milestone

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/modules/reward"
	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Distributor records reward payouts.
type Distributor interface {
	Distribute(ctx context.Context, g reward.Grant) (*reward.RewardDistribution, error)
}

type Service interface {
	CreateMilestone(ctx context.Context, kind Kind, req CreateMilestoneRequest) (*Milestone, error)
	GetMilestone(ctx context.Context, kind Kind, id string) (*Milestone, error)
	ListMilestones(ctx context.Context, kind Kind) ([]*Milestone, error)
	UpdateMilestone(ctx context.Context, kind Kind, id string, req UpdateMilestoneRequest) (*Milestone, error)
	DeleteMilestone(ctx context.Context, kind Kind, id string) error

	// Evaluate awards every active milestone of kind whose threshold the
	// progress has reached and which the beneficiary does not hold yet.
	Evaluate(ctx context.Context, kind Kind, req EvaluateRequest) (*EvaluateResult, error)

	// EnsureMilestone creates the milestone unless the kind already has one with
	// the same title. It reports whether a milestone was created.
	EnsureMilestone(ctx context.Context, kind Kind, req CreateMilestoneRequest) (bool, error)
}

type service struct {
	repo    Repository
	rewards Distributor
	now     func() time.Time
}

func NewService(repo Repository, rewards Distributor) Service {
	return &service{repo: repo, rewards: rewards, now: func() time.Time { return time.Now().UTC() }}
}

func parseRewardType(v string) (RewardType, error) {
	switch RewardType(strings.ToLower(v)) {
	case "", RewardFlat:
		return RewardFlat, nil
	case RewardPercent:
		return RewardPercent, nil
	}
	return "", apperr.Validation("rewardType must be flat or percent")
}

func validate(m *Milestone) error {
	switch {
	case strings.TrimSpace(m.Title) == "":
		return apperr.Validation("title is required")
	case m.Threshold <= 0:
		return apperr.Validation("threshold must be greater than 0")
	case m.RewardAmount <= 0:
		return apperr.Validation("rewardAmount must be greater than 0")
	case m.RewardType == RewardPercent && m.RewardAmount > 100:
		return apperr.Validation("percent rewardAmount cannot exceed 100")
	}
	return nil
}

func (s *service) CreateMilestone(ctx context.Context, kind Kind, req CreateMilestoneRequest) (*Milestone, error) {
	if !kind.Valid() {
		return nil, apperr.Validation("unknown milestone kind %q", kind)
	}
	rt, err := parseRewardType(req.RewardType)
	if err != nil {
		return nil, err
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	now := s.now()
	m := &Milestone{
		ID:           uuid.NewString(),
		Kind:         kind,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Threshold:    req.Threshold,
		RewardAmount: req.RewardAmount,
		RewardType:   rt,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := validate(m); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) GetMilestone(ctx context.Context, kind Kind, id string) (*Milestone, error) {
	return s.repo.GetByID(ctx, kind, id)
}

func (s *service) ListMilestones(ctx context.Context, kind Kind) ([]*Milestone, error) {
	return s.repo.List(ctx, kind, false)
}

func (s *service) UpdateMilestone(ctx context.Context, kind Kind, id string, req UpdateMilestoneRequest) (*Milestone, error) {
	m, err := s.repo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		m.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.Threshold != nil {
		m.Threshold = *req.Threshold
	}
	if req.RewardAmount != nil {
		m.RewardAmount = *req.RewardAmount
	}
	if req.RewardType != nil {
		if m.RewardType, err = parseRewardType(*req.RewardType); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	if err := validate(m); err != nil {
		return nil, err
	}
	m.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) DeleteMilestone(ctx context.Context, kind Kind, id string) error {
	return s.repo.Delete(ctx, kind, id)
}

// RewardFor is what a beneficiary earns for m at the given progress.
func RewardFor(m *Milestone, progress float64) float64 {
	if m.RewardType == RewardPercent {
		return decimal.NewFromFloat(progress).
			Mul(decimal.NewFromFloat(m.RewardAmount)).
			Div(decimal.NewFromInt(100)).
			Round(2).
			InexactFloat64()
	}
	return m.RewardAmount
}

func (s *service) Evaluate(ctx context.Context, kind Kind, req EvaluateRequest) (*EvaluateResult, error) {
	if strings.TrimSpace(req.BeneficiaryID) == "" {
		return nil, apperr.Validation("beneficiaryId is required")
	}
	if req.Progress < 0 {
		return nil, apperr.Validation("progress cannot be negative")
	}
	milestones, err := s.repo.List(ctx, kind, true)
	if err != nil {
		return nil, err
	}

	res := &EvaluateResult{Awarded: []*reward.RewardDistribution{}, Skipped: []string{}}
	for _, m := range milestones {
		if m.Threshold > req.Progress {
			break // ordered by threshold
		}
		d, err := s.rewards.Distribute(ctx, reward.Grant{
			BeneficiaryID:   req.BeneficiaryID,
			BeneficiaryType: req.BeneficiaryType,
			MilestoneID:     m.ID,
			MilestoneKind:   string(kind),
			Amount:          RewardFor(m, req.Progress),
		})
		if errors.Is(err, apperr.ErrConflict) {
			res.Skipped = append(res.Skipped, m.ID)
			continue
		}
		if err != nil {
			return nil, err
		}
		res.Awarded = append(res.Awarded, d)
	}
	return res, nil
}

func (s *service) EnsureMilestone(ctx context.Context, kind Kind, req CreateMilestoneRequest) (bool, error) {
	exists, err := s.repo.ExistsTitle(ctx, kind, strings.TrimSpace(req.Title))
	if err != nil || exists {
		return false, err
	}
	if _, err := s.CreateMilestone(ctx, kind, req); err != nil {
		return false, err
	}
	return true, nil
}

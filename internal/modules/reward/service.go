package reward

import (
	"context"
	"strings"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/georgemunganga/vendora-backend/internal/platform/events"
	"github.com/georgemunganga/vendora-backend/internal/platform/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Grant describes a reward earned by reaching a milestone.
type Grant struct {
	BeneficiaryID   string
	BeneficiaryType string
	MilestoneID     string
	MilestoneKind   string
	Amount          float64
}

type Service interface {
	// Distribute records a pending payout. A beneficiary already holding the
	// milestone yields an apperr conflict.
	Distribute(ctx context.Context, g Grant) (*RewardDistribution, error)
	GetDistribution(ctx context.Context, id string) (*RewardDistribution, error)
	ListDistributions(ctx context.Context, f ListFilter) ([]*RewardDistribution, error)
	MarkPaid(ctx context.Context, id string) (*RewardDistribution, error)
	MarkFailed(ctx context.Context, id string) (*RewardDistribution, error)
	Report(ctx context.Context, from, to *time.Time) (*Report, error)
}

var validTransitions = map[Status][]Status{
	StatusPending: {StatusPaid, StatusFailed},
	StatusFailed:  {StatusPaid},
	StatusPaid:    {},
}

type service struct {
	repo   Repository
	events events.Publisher
	log    *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, pub events.Publisher, log *zap.Logger) Service {
	return &service{repo: repo, events: pub, log: log, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) Distribute(ctx context.Context, g Grant) (*RewardDistribution, error) {
	if strings.TrimSpace(g.BeneficiaryID) == "" {
		return nil, apperr.Validation("beneficiaryId is required")
	}
	if g.Amount < 0 {
		return nil, apperr.Validation("reward amount cannot be negative")
	}
	now := s.now()
	d := &RewardDistribution{
		ID:              uuid.NewString(),
		BeneficiaryID:   g.BeneficiaryID,
		BeneficiaryType: g.BeneficiaryType,
		MilestoneID:     g.MilestoneID,
		MilestoneKind:   g.MilestoneKind,
		Amount:          decimal.NewFromFloat(g.Amount).Round(2).InexactFloat64(),
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	metrics.RewardDistributed(d.MilestoneKind)
	if err := s.events.Publish(ctx, events.RewardDistributed, d); err != nil {
		s.log.Warn("publish reward distribution", zap.String("distribution_id", d.ID), zap.Error(err))
	}
	return d, nil
}

func (s *service) GetDistribution(ctx context.Context, id string) (*RewardDistribution, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListDistributions(ctx context.Context, f ListFilter) ([]*RewardDistribution, error) {
	switch f.Status {
	case "", StatusPending, StatusPaid, StatusFailed:
	default:
		return nil, apperr.Validation("unknown reward status %q", f.Status)
	}
	return s.repo.List(ctx, f)
}

func (s *service) MarkPaid(ctx context.Context, id string) (*RewardDistribution, error) {
	return s.transition(ctx, id, StatusPaid)
}

func (s *service) MarkFailed(ctx context.Context, id string) (*RewardDistribution, error) {
	return s.transition(ctx, id, StatusFailed)
}

func (s *service) transition(ctx context.Context, id string, to Status) (*RewardDistribution, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	allowed := false
	for _, st := range validTransitions[d.Status] {
		if st == to {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, apperr.Validation("cannot move reward distribution from %s to %s", d.Status, to)
	}

	now := s.now()
	var paidAt *time.Time
	if to == StatusPaid {
		paidAt = &now
	}
	if err := s.repo.UpdateStatus(ctx, id, d.Status, to, paidAt, now); err != nil {
		return nil, err
	}
	d.Status, d.UpdatedAt = to, now
	if paidAt != nil {
		d.PaidAt = paidAt
	}
	return d, nil
}

func (s *service) Report(ctx context.Context, from, to *time.Time) (*Report, error) {
	if from != nil && to != nil && !from.Before(*to) {
		return nil, apperr.Validation("from must be before to")
	}
	rows, err := s.repo.Summarize(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return BuildReport(rows, from, to), nil
}

// BuildReport folds (kind, status) rows into per-kind, per-status and grand totals.
func BuildReport(rows []ReportRow, from, to *time.Time) *Report {
	type acc struct {
		count  int64
		amount decimal.Decimal
	}
	byKind, byStatus := map[string]*acc{}, map[string]*acc{}
	var total acc
	add := func(m map[string]*acc, key string, row ReportRow) {
		a, ok := m[key]
		if !ok {
			a = &acc{}
			m[key] = a
		}
		a.count += row.Count
		a.amount = a.amount.Add(decimal.NewFromFloat(row.Amount))
	}
	for _, row := range rows {
		add(byKind, row.Kind, row)
		add(byStatus, row.Status, row)
		total.count += row.Count
		total.amount = total.amount.Add(decimal.NewFromFloat(row.Amount))
	}

	flatten := func(m map[string]*acc) map[string]Totals {
		out := make(map[string]Totals, len(m))
		for k, a := range m {
			out[k] = Totals{Count: a.count, Amount: a.amount.Round(2).InexactFloat64()}
		}
		return out
	}
	if rows == nil {
		rows = []ReportRow{}
	}
	return &Report{
		From:     from,
		To:       to,
		Rows:     rows,
		ByKind:   flatten(byKind),
		ByStatus: flatten(byStatus),
		Total:    Totals{Count: total.count, Amount: total.amount.Round(2).InexactFloat64()},
	}
}

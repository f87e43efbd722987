package emi

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	CreatePlan(ctx context.Context, req CreatePlanRequest) (*Plan, error)
	GetPlan(ctx context.Context, id string) (*Plan, error)
	// PayInstallment settles installment number of the plan. Installments are
	// paid strictly in order; paying the final one closes the plan.
	PayInstallment(ctx context.Context, planID string, number int) (*Plan, error)
	History(ctx context.Context, userID string) ([]HistoryEntry, error)
	Details(ctx context.Context, userID string) ([]PlanDetail, error)
	// Sweep flags late installments and defaults plans with too many of them.
	Sweep(ctx context.Context) (*SweepResult, error)
}

type service struct {
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *zap.Logger) Service {
	return &service{repo: repo, log: log, now: func() time.Time { return time.Now().UTC() }}
}

var hundred = decimal.NewFromInt(100)

// MonthlyRate converts an annual percentage into a monthly fraction.
func MonthlyRate(annualRate float64) decimal.Decimal {
	return decimal.NewFromFloat(annualRate).Div(hundred).Div(decimal.NewFromInt(12))
}

// MonthlyInstallment is the equated amount for principal over tenure months.
func MonthlyInstallment(principal, annualRate float64, tenure int) decimal.Decimal {
	p := decimal.NewFromFloat(principal)
	n := decimal.NewFromInt(int64(tenure))
	r := MonthlyRate(annualRate)
	if r.IsZero() {
		return p.Div(n).Round(2)
	}
	growth := r.Add(decimal.NewFromInt(1)).Pow(n)
	return p.Mul(r).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1))).Round(2)
}

// Schedule builds the amortisation table. Interest accrues on the running
// balance and the last installment takes whatever principal is left, so the
// principal parts always sum to the loan amount.
func Schedule(principal, annualRate float64, tenure int, start time.Time) (float64, []Installment) {
	emi := MonthlyInstallment(principal, annualRate, tenure)
	r := MonthlyRate(annualRate)
	balance := decimal.NewFromFloat(principal)

	out := make([]Installment, 0, tenure)
	for i := 1; i <= tenure; i++ {
		interest := balance.Mul(r).Round(2)
		part := emi.Sub(interest)
		if i == tenure || part.GreaterThan(balance) {
			part = balance
		}
		balance = balance.Sub(part)
		out = append(out, Installment{
			Number:    i,
			DueDate:   start.AddDate(0, i, 0),
			Amount:    part.Add(interest).InexactFloat64(),
			Principal: part.InexactFloat64(),
			Interest:  interest.InexactFloat64(),
			Status:    InstallmentDue,
		})
	}
	return emi.InexactFloat64(), out
}

func (s *service) CreatePlan(ctx context.Context, req CreatePlanRequest) (*Plan, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, apperr.Validation("userId is required")
	}
	if req.Principal <= 0 {
		return nil, apperr.Validation("principal must be greater than 0")
	}
	if req.AnnualRate < 0 {
		return nil, apperr.Validation("annualRate cannot be negative")
	}
	if req.TenureMonths <= 0 || req.TenureMonths > 120 {
		return nil, apperr.Validation("tenureMonths must be between 1 and 120")
	}

	now := s.now()
	start := now
	if req.StartDate != nil {
		start = req.StartDate.UTC()
	}
	principal := decimal.NewFromFloat(req.Principal).Round(2).InexactFloat64()
	emi, installments := Schedule(principal, req.AnnualRate, req.TenureMonths, start)

	p := &Plan{
		ID:                 uuid.NewString(),
		UserID:             req.UserID,
		OrderRef:           req.OrderRef,
		Principal:          principal,
		AnnualRate:         req.AnnualRate,
		TenureMonths:       req.TenureMonths,
		MonthlyInstallment: emi,
		StartDate:          start,
		Status:             PlanActive,
		Installments:       installments,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetPlan(ctx context.Context, id string) (*Plan, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) PayInstallment(ctx context.Context, planID string, number int) (*Plan, error) {
	p, err := s.repo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if p.Status == PlanClosed {
		return nil, apperr.Conflict("emi plan %s is already closed", planID)
	}
	if number < 1 || number > len(p.Installments) {
		return nil, apperr.Validation("installment %d does not exist on this plan", number)
	}

	next := nextUnpaid(p)
	if next == nil || p.Installments[number-1].Status == InstallmentPaid {
		return nil, apperr.Conflict("installment %d is already paid", number)
	}
	if next.Number != number {
		return nil, apperr.Validation("installment %d must be paid before installment %d", next.Number, number)
	}

	closePlan := number == len(p.Installments)
	if err := s.repo.PayInstallment(ctx, planID, number, s.now(), closePlan); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, planID)
}

func nextUnpaid(p *Plan) *Installment {
	for i := range p.Installments {
		if p.Installments[i].Status != InstallmentPaid {
			return &p.Installments[i]
		}
	}
	return nil
}

func (s *service) History(ctx context.Context, userID string) ([]HistoryEntry, error) {
	plans, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []HistoryEntry{}
	for _, p := range plans {
		for _, in := range p.Installments {
			if in.Status != InstallmentPaid || in.PaidAt == nil {
				continue
			}
			out = append(out, HistoryEntry{
				PlanID:   p.ID,
				OrderRef: p.OrderRef,
				Number:   in.Number,
				Amount:   in.Amount,
				PaidAt:   *in.PaidAt,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaidAt.After(out[j].PaidAt) })
	return out, nil
}

func (s *service) Details(ctx context.Context, userID string) ([]PlanDetail, error) {
	plans, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]PlanDetail, 0, len(plans))
	for _, p := range plans {
		out = append(out, Detail(p))
	}
	return out, nil
}

// Detail summarises p. The outstanding balance is the sum of unpaid installment amounts.
func Detail(p *Plan) PlanDetail {
	d := PlanDetail{
		PlanID:             p.ID,
		OrderRef:           p.OrderRef,
		Status:             p.Status,
		Principal:          p.Principal,
		MonthlyInstallment: p.MonthlyInstallment,
		TenureMonths:       p.TenureMonths,
	}
	outstanding := decimal.Zero
	for _, in := range p.Installments {
		switch in.Status {
		case InstallmentPaid:
			d.PaidCount++
			continue
		case InstallmentOverdue:
			d.OverdueCount++
		}
		outstanding = outstanding.Add(decimal.NewFromFloat(in.Amount))
	}
	d.OutstandingBalance = outstanding.Round(2).InexactFloat64()
	if next := nextUnpaid(p); next != nil {
		cp := *next
		d.NextDue = &cp
	}
	return d
}

func (s *service) Sweep(ctx context.Context) (*SweepResult, error) {
	now := s.now()
	overdue, err := s.repo.MarkOverdue(ctx, now)
	if err != nil {
		return nil, err
	}
	defaulted, err := s.repo.MarkDefaulted(ctx, DefaultAfterOverdue, now)
	if err != nil {
		return nil, err
	}
	if overdue > 0 || defaulted > 0 {
		s.log.Info("emi sweep", zap.Int64("overdue", overdue), zap.Int64("defaulted", defaulted))
	}
	return &SweepResult{Overdue: overdue, Defaulted: defaulted}, nil
}

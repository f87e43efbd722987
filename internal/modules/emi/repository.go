package emi

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, p *Plan) error
	GetByID(ctx context.Context, id string) (*Plan, error)
	// ListByUser returns the user's plans, newest first, with installments.
	ListByUser(ctx context.Context, userID string) ([]*Plan, error)
	// PayInstallment marks an unpaid installment paid, closing the plan when
	// closePlan is set. An installment already paid yields a conflict.
	PayInstallment(ctx context.Context, planID string, number int, paidAt time.Time, closePlan bool) error
	// MarkOverdue flags due installments whose due date is before now.
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
	// MarkDefaulted moves active plans with at least minOverdue overdue installments to defaulted.
	MarkDefaulted(ctx context.Context, minOverdue int, at time.Time) (int64, error)
}

package emi

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/georgemunganga/vendora-backend/internal/platform/store"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const planColumns = `id, user_id, order_ref, principal, annual_rate, tenure_months,
	monthly_installment, start_date, status, created_at, updated_at`

// Create inserts the plan and its schedule inside a single transaction.
func (r *postgresRepo) Create(ctx context.Context, p *Plan) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO emi_plans (`+planColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		p.ID, p.UserID, p.OrderRef, p.Principal, p.AnnualRate, p.TenureMonths,
		p.MonthlyInstallment, p.StartDate, p.Status, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return store.Translate(err, "emi plan")
	}

	for _, in := range p.Installments {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO emi_installments (plan_id, number, due_date, amount, principal, interest, status, paid_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			p.ID, in.Number, in.DueDate, in.Amount, in.Principal, in.Interest, in.Status, in.PaidAt)
		if err != nil {
			return fmt.Errorf("insert emi installment %d: %w", in.Number, err)
		}
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPlan(row scanner) (*Plan, error) {
	p := &Plan{}
	err := row.Scan(&p.ID, &p.UserID, &p.OrderRef, &p.Principal, &p.AnnualRate, &p.TenureMonths,
		&p.MonthlyInstallment, &p.StartDate, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, store.Translate(err, "emi plan")
	}
	return p, nil
}

func (r *postgresRepo) installments(ctx context.Context, planID string) ([]Installment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT number, due_date, amount, principal, interest, status, paid_at
		FROM emi_installments WHERE plan_id=$1 ORDER BY number`, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Installment{}
	for rows.Next() {
		var in Installment
		var paidAt sql.NullTime
		if err := rows.Scan(&in.Number, &in.DueDate, &in.Amount, &in.Principal, &in.Interest, &in.Status, &paidAt); err != nil {
			return nil, err
		}
		if paidAt.Valid {
			in.PaidAt = &paidAt.Time
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Plan, error) {
	p, err := scanPlan(r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM emi_plans WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	p.Installments, err = r.installments(ctx, p.ID)
	return p, err
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]*Plan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+planColumns+` FROM emi_plans WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	plans := []*Plan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		plans = append(plans, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range plans {
		if p.Installments, err = r.installments(ctx, p.ID); err != nil {
			return nil, err
		}
	}
	return plans, nil
}

func (r *postgresRepo) PayInstallment(ctx context.Context, planID string, number int, paidAt time.Time, closePlan bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE emi_installments SET status='paid', paid_at=$1
		WHERE plan_id=$2 AND number=$3 AND status <> 'paid'`, paidAt, planID, number)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM emi_plans WHERE id=$1)`, planID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("emi plan not found")
		}
		return apperr.Conflict("installment %d is already paid", number)
	}

	status := ""
	if closePlan {
		status = string(PlanClosed)
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE emi_plans SET updated_at=$1, status=CASE WHEN $2 = '' THEN status ELSE $2 END
		WHERE id=$3`, paidAt, status, planID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresRepo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE emi_installments SET status='overdue' WHERE status='due' AND due_date < $1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *postgresRepo) MarkDefaulted(ctx context.Context, minOverdue int, at time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE emi_plans p SET status='defaulted', updated_at=$1
		WHERE p.status='active'
		  AND (SELECT COUNT(*) FROM emi_installments i WHERE i.plan_id=p.id AND i.status='overdue') >= $2`,
		at, minOverdue)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

package reseller

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/georgemunganga/vendora-backend/internal/platform/store"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const resellerColumns = `id, user_id, referral_code, commission_rate, total_purchases,
	total_purchase_amount, total_commission, is_active, created_at, updated_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReseller(row scanner) (*SnSReseller, error) {
	s := &SnSReseller{}
	err := row.Scan(&s.ID, &s.UserID, &s.ReferralCode, &s.CommissionRate, &s.TotalPurchases,
		&s.TotalPurchaseAmount, &s.TotalCommission, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, store.Translate(err, "reseller")
	}
	return s, nil
}

func (r *postgresRepo) Create(ctx context.Context, s *SnSReseller) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sns_resellers (`+resellerColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		s.ID, s.UserID, s.ReferralCode, s.CommissionRate, s.TotalPurchases,
		s.TotalPurchaseAmount, s.TotalCommission, s.IsActive, s.CreatedAt, s.UpdatedAt)
	return store.Translate(err, "reseller")
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*SnSReseller, error) {
	return scanReseller(r.db.QueryRowContext(ctx, `SELECT `+resellerColumns+` FROM sns_resellers WHERE id=$1`, id))
}

func (r *postgresRepo) List(ctx context.Context, skip, limit int) ([]*SnSReseller, error) {
	query := `SELECT ` + resellerColumns + ` FROM sns_resellers ORDER BY created_at DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, skip)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*SnSReseller{}
	for rows.Next() {
		s, err := scanReseller(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, s *SnSReseller) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sns_resellers SET commission_rate=$1, is_active=$2, updated_at=$3 WHERE id=$4`,
		s.CommissionRate, s.IsActive, s.UpdatedAt, s.ID)
	if err != nil {
		return store.Translate(err, "reseller")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("reseller not found")
	}
	return nil
}

func (r *postgresRepo) RecordPurchase(ctx context.Context, id string, amount, commission float64, at time.Time) (*SnSReseller, error) {
	s, err := scanReseller(r.db.QueryRowContext(ctx, `
		UPDATE sns_resellers
		SET total_purchases = total_purchases + 1,
		    total_purchase_amount = total_purchase_amount + $1,
		    total_commission = total_commission + $2,
		    updated_at = $3
		WHERE id=$4 AND is_active
		RETURNING `+resellerColumns, amount, commission, at, id))
	if errors.Is(err, apperr.ErrNotFound) {
		if _, gerr := r.GetByID(ctx, id); gerr != nil {
			return nil, gerr
		}
		return nil, apperr.Validation("reseller %s is inactive", id)
	}
	return s, err
}

package salesrep

import (
	"context"
	"database/sql"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/georgemunganga/vendora-backend/internal/platform/store"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const columns = `id, name, email, phone, region, referral_code, vendors_onboarded, is_active, created_at, updated_at`

func scan(row interface{ Scan(...interface{}) error }) (*SalesRep, error) {
	s := &SalesRep{}
	err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Region, &s.ReferralCode,
		&s.VendorsOnboarded, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, store.Translate(err, "sales rep")
	}
	return s, nil
}

func (r *postgresRepo) Create(ctx context.Context, s *SalesRep) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO sales_reps (`+columns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		s.ID, s.Name, s.Email, s.Phone, s.Region, s.ReferralCode,
		s.VendorsOnboarded, s.IsActive, s.CreatedAt, s.UpdatedAt)
	return store.Translate(err, "sales rep")
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*SalesRep, error) {
	return scan(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM sales_reps WHERE id=$1`, id))
}

func (r *postgresRepo) List(ctx context.Context, f ListFilter) ([]*SalesRep, error) {
	query := `SELECT ` + columns + ` FROM sales_reps WHERE ($1 = '' OR region=$1) ORDER BY name`
	args := []interface{}{f.Region}
	if f.Limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, f.Limit, f.Skip)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*SalesRep{}
	for rows.Next() {
		s, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *postgresRepo) IncrementVendors(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE sales_reps
		SET vendors_onboarded = vendors_onboarded + 1, updated_at=$1
		WHERE id=$2 AND is_active`, at, id)
	if err != nil {
		return store.Translate(err, "sales rep")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return apperr.Validation("sales rep %s is not active", id)
	}
	return nil
}

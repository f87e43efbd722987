package reward

import (
	"context"
	"database/sql"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/georgemunganga/vendora-backend/internal/platform/store"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const rewardColumns = `id, beneficiary_id, beneficiary_type, milestone_id, milestone_kind, amount,
	status, paid_at, created_at, updated_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDistribution(row scanner) (*RewardDistribution, error) {
	d := &RewardDistribution{}
	var paidAt sql.NullTime
	err := row.Scan(&d.ID, &d.BeneficiaryID, &d.BeneficiaryType, &d.MilestoneID, &d.MilestoneKind,
		&d.Amount, &d.Status, &paidAt, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, store.Translate(err, "reward distribution")
	}
	if paidAt.Valid {
		d.PaidAt = &paidAt.Time
	}
	return d, nil
}

func (r *postgresRepo) Create(ctx context.Context, d *RewardDistribution) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reward_distributions (`+rewardColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		d.ID, d.BeneficiaryID, d.BeneficiaryType, d.MilestoneID, d.MilestoneKind, d.Amount,
		d.Status, d.PaidAt, d.CreatedAt, d.UpdatedAt)
	return store.Translate(err, "reward distribution")
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*RewardDistribution, error) {
	return scanDistribution(r.db.QueryRowContext(ctx,
		`SELECT `+rewardColumns+` FROM reward_distributions WHERE id=$1`, id))
}

func (r *postgresRepo) List(ctx context.Context, f ListFilter) ([]*RewardDistribution, error) {
	query := `SELECT ` + rewardColumns + ` FROM reward_distributions
		WHERE ($1 = '' OR beneficiary_id=$1) AND ($2 = '' OR status=$2)
		ORDER BY created_at DESC`
	args := []interface{}{f.BeneficiaryID, string(f.Status)}
	if f.Limit > 0 {
		query += ` LIMIT $3 OFFSET $4`
		args = append(args, f.Limit, f.Skip)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*RewardDistribution{}
	for rows.Next() {
		d, err := scanDistribution(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, from, to Status, paidAt *time.Time, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reward_distributions SET status=$1, paid_at=COALESCE($2, paid_at), updated_at=$3
		WHERE id=$4 AND status=$5`, to, paidAt, at, id, from)
	if err != nil {
		return store.Translate(err, "reward distribution")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return apperr.Conflict("reward distribution is no longer %s", from)
	}
	return nil
}

func (r *postgresRepo) Summarize(ctx context.Context, from, to *time.Time) ([]ReportRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT milestone_kind, status, COUNT(*), COALESCE(SUM(amount), 0)
		FROM reward_distributions
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at < $2)
		GROUP BY milestone_kind, status
		ORDER BY milestone_kind, status`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ReportRow{}
	for rows.Next() {
		var row ReportRow
		if err := rows.Scan(&row.Kind, &row.Status, &row.Count, &row.Amount); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

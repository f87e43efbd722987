package milestone

import (
	"context"
	"database/sql"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/georgemunganga/vendora-backend/internal/platform/store"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const milestoneColumns = `id, kind, title, description, threshold, reward_amount, reward_type,
	is_active, created_at, updated_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanMilestone(row scanner) (*Milestone, error) {
	m := &Milestone{}
	err := row.Scan(&m.ID, &m.Kind, &m.Title, &m.Description, &m.Threshold, &m.RewardAmount,
		&m.RewardType, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, store.Translate(err, "milestone")
	}
	return m, nil
}

func (r *postgresRepo) Create(ctx context.Context, m *Milestone) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO milestones (`+milestoneColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		m.ID, m.Kind, m.Title, m.Description, m.Threshold, m.RewardAmount, m.RewardType,
		m.IsActive, m.CreatedAt, m.UpdatedAt)
	return store.Translate(err, "milestone")
}

func (r *postgresRepo) GetByID(ctx context.Context, kind Kind, id string) (*Milestone, error) {
	return scanMilestone(r.db.QueryRowContext(ctx,
		`SELECT `+milestoneColumns+` FROM milestones WHERE id=$1 AND kind=$2`, id, kind))
}

func (r *postgresRepo) List(ctx context.Context, kind Kind, activeOnly bool) ([]*Milestone, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+milestoneColumns+` FROM milestones
		WHERE kind=$1 AND (NOT $2 OR is_active) ORDER BY threshold`, kind, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*Milestone{}
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, m *Milestone) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE milestones SET title=$1, description=$2, threshold=$3, reward_amount=$4,
		  reward_type=$5, is_active=$6, updated_at=$7
		WHERE id=$8 AND kind=$9`,
		m.Title, m.Description, m.Threshold, m.RewardAmount, m.RewardType, m.IsActive, m.UpdatedAt,
		m.ID, m.Kind)
	if err != nil {
		return store.Translate(err, "milestone")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("milestone not found")
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, kind Kind, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM milestones WHERE id=$1 AND kind=$2`, id, kind)
	if err != nil {
		return store.Translate(err, "milestone")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("milestone not found")
	}
	return nil
}

func (r *postgresRepo) ExistsTitle(ctx context.Context, kind Kind, title string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM milestones WHERE kind=$1 AND title=$2)`, kind, title).Scan(&exists)
	return exists, err
}

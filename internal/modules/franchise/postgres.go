package franchise

import (
	"context"
	"database/sql"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/georgemunganga/vendora-backend/internal/platform/store"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const columns = `id, name, owner_name, region, email, phone, is_active, created_at, updated_at`

func scan(row interface{ Scan(...interface{}) error }) (*Franchise, error) {
	f := &Franchise{}
	err := row.Scan(&f.ID, &f.Name, &f.OwnerName, &f.Region, &f.Email, &f.Phone, &f.IsActive, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, store.Translate(err, "franchise")
	}
	return f, nil
}

func (r *postgresRepo) Create(ctx context.Context, f *Franchise) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO franchises (`+columns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		f.ID, f.Name, f.OwnerName, f.Region, f.Email, f.Phone, f.IsActive, f.CreatedAt, f.UpdatedAt)
	return store.Translate(err, "franchise")
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Franchise, error) {
	return scan(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM franchises WHERE id=$1`, id))
}

func (r *postgresRepo) List(ctx context.Context, region string, skip, limit int) ([]*Franchise, error) {
	query := `SELECT ` + columns + ` FROM franchises WHERE ($1 = '' OR region=$1) ORDER BY name`
	args := []interface{}{region}
	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, skip)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*Franchise{}
	for rows.Next() {
		f, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, f *Franchise) error {
	res, err := r.db.ExecContext(ctx, `UPDATE franchises
		SET name=$1, owner_name=$2, region=$3, email=$4, phone=$5, is_active=$6, updated_at=$7
		WHERE id=$8`, f.Name, f.OwnerName, f.Region, f.Email, f.Phone, f.IsActive, f.UpdatedAt, f.ID)
	if err != nil {
		return store.Translate(err, "franchise")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("franchise not found")
	}
	return nil
}

package user

import (
	"context"
	"database/sql"

	"github.com/georgemunganga/vendora-backend/internal/platform/store"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL user repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, email, password_hash, first_name, last_name, phone, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Email, user.PasswordHash, user.FirstName,
		user.LastName, user.Phone, user.Role, user.CreatedAt, user.UpdatedAt)
	return store.Translate(err, "user")
}

const selectUser = `
	SELECT id, email, password_hash, first_name, last_name, phone, role, created_at, updated_at
	FROM users
`

func (r *postgresRepository) scan(row *sql.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Phone,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, store.Translate(err, "user")
	}
	return user, nil
}

func (r *postgresRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return r.scan(r.db.QueryRowContext(ctx, selectUser+`WHERE email = $1`, email))
}

func (r *postgresRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	return r.scan(r.db.QueryRowContext(ctx, selectUser+`WHERE id = $1`, id))
}

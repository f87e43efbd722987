package booking

import (
	"context"
	"database/sql"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/georgemunganga/vendora-backend/internal/platform/store"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const bookingColumns = `id, user_id, vendor_id, service_id, date, time_slot, status, notes, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, b *Booking) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		b.ID, b.UserID, b.VendorID, b.ServiceID, b.Date, b.TimeSlot, b.Status, b.Notes,
		b.CreatedAt, b.UpdatedAt)
	return store.Translate(err, "booking")
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row scanner) (*Booking, error) {
	b := &Booking{}
	err := row.Scan(&b.ID, &b.UserID, &b.VendorID, &b.ServiceID, &b.Date, &b.TimeSlot,
		&b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, store.Translate(err, "booking")
	}
	return b, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Booking, error) {
	return scanBooking(r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
}

func (r *postgresRepo) query(ctx context.Context, query string, args ...interface{}) ([]*Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []*Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]*Booking, error) {
	return r.query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1
		ORDER BY date DESC, time_slot`, userID)
}

func (r *postgresRepo) ListByVendor(ctx context.Context, vendorID string, status Status) ([]*Booking, error) {
	return r.query(ctx, `SELECT `+bookingColumns+` FROM bookings
		WHERE vendor_id=$1 AND ($2 = '' OR status=$2)
		ORDER BY date DESC, time_slot`, vendorID, string(status))
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status=$1, updated_at=$2 WHERE id=$3 AND status=$4`, to, at, id, from)
	if err != nil {
		return store.Translate(err, "booking")
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM bookings WHERE id=$1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("booking not found")
	}
	return apperr.Conflict("booking is no longer %s", from)
}

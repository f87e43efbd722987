package availability

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/georgemunganga/vendora-backend/internal/platform/store"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Upsert(ctx context.Context, a *VendorAvailability) error {
	days, err := json.Marshal(a.Days)
	if err != nil {
		return err
	}
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO vendor_availability (id, vendor_id, days, slot_duration, buffer_time, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (vendor_id) DO UPDATE
		  SET days=EXCLUDED.days, slot_duration=EXCLUDED.slot_duration,
		      buffer_time=EXCLUDED.buffer_time, updated_at=EXCLUDED.updated_at
		RETURNING id, created_at`,
		a.ID, a.VendorID, days, a.SlotDuration, a.BufferTime, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID, &a.CreatedAt)
	return store.Translate(err, "vendor availability")
}

func (r *postgresRepo) GetByVendor(ctx context.Context, vendorID string) (*VendorAvailability, error) {
	a := &VendorAvailability{}
	var days []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT id, vendor_id, days, slot_duration, buffer_time, created_at, updated_at
		FROM vendor_availability WHERE vendor_id=$1`, vendorID,
	).Scan(&a.ID, &a.VendorID, &days, &a.SlotDuration, &a.BufferTime, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, store.Translate(err, "vendor availability")
	}
	if err := json.Unmarshal(days, &a.Days); err != nil {
		return nil, err
	}
	return a, nil
}

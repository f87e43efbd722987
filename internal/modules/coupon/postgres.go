package coupon

import (
	"context"
	"database/sql"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/georgemunganga/vendora-backend/internal/platform/store"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const couponColumns = `id, coupon_code, description, discount_percent, max_discount, min_order_value,
	expiry_date, is_active, usage_limit, used_count, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, c *Coupon) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO coupons (id, coupon_code, description, discount_percent, max_discount,
		  min_order_value, expiry_date, is_active, usage_limit, used_count, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		c.ID, c.CouponCode, c.Description, c.DiscountPercent, c.MaxDiscount,
		c.MinOrderValue, c.ExpiryDate, c.IsActive, c.UsageLimit, c.UsedCount, c.CreatedAt, c.UpdatedAt)
	return store.Translate(err, "coupon")
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Coupon, error) {
	return r.scan(r.db.QueryRowContext(ctx, `SELECT `+couponColumns+` FROM coupons WHERE id=$1`, id))
}

func (r *postgresRepo) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	return r.scan(r.db.QueryRowContext(ctx, `SELECT `+couponColumns+` FROM coupons WHERE coupon_code=$1`, code))
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func (r *postgresRepo) scan(row scanner) (*Coupon, error) {
	c := &Coupon{}
	err := row.Scan(&c.ID, &c.CouponCode, &c.Description, &c.DiscountPercent, &c.MaxDiscount,
		&c.MinOrderValue, &c.ExpiryDate, &c.IsActive, &c.UsageLimit, &c.UsedCount,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, store.Translate(err, "coupon")
	}
	return c, nil
}

func (r *postgresRepo) List(ctx context.Context, f ListFilter) ([]*Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE ($1::boolean IS NULL OR is_active=$1)
		ORDER BY created_at DESC`
	args := []interface{}{f.Active}
	if f.Limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, f.Limit, f.Skip)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	coupons := []*Coupon{}
	for rows.Next() {
		c, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}
	return coupons, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, c *Coupon) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE coupons SET coupon_code=$1, description=$2, discount_percent=$3, max_discount=$4,
		  min_order_value=$5, expiry_date=$6, is_active=$7, usage_limit=$8, updated_at=$9
		WHERE id=$10`,
		c.CouponCode, c.Description, c.DiscountPercent, c.MaxDiscount, c.MinOrderValue,
		c.ExpiryDate, c.IsActive, c.UsageLimit, c.UpdatedAt, c.ID)
	if err != nil {
		return store.Translate(err, "coupon")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("coupon not found")
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM coupons WHERE id=$1`, id)
	if err != nil {
		return store.Translate(err, "coupon")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("coupon not found")
	}
	return nil
}

func (r *postgresRepo) Redeem(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE coupons SET used_count = used_count + 1, updated_at = NOW()
		WHERE id=$1 AND is_active AND (usage_limit = 0 OR used_count < usage_limit)`, id)
	if err != nil {
		return store.Translate(err, "coupon")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.Conflict("coupon is no longer redeemable")
	}
	return nil
}

func (r *postgresRepo) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE coupons SET is_active=FALSE, updated_at=$1 WHERE is_active AND expiry_date < $1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

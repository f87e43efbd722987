package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied in order; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		first_name    TEXT NOT NULL DEFAULT '',
		last_name     TEXT NOT NULL DEFAULT '',
		phone         TEXT NOT NULL DEFAULT '',
		role          TEXT NOT NULL DEFAULT 'user',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS sales_reps (
		id                UUID PRIMARY KEY,
		name              TEXT NOT NULL,
		email             TEXT NOT NULL UNIQUE,
		phone             TEXT NOT NULL DEFAULT '',
		region            TEXT NOT NULL DEFAULT '',
		referral_code     TEXT NOT NULL UNIQUE,
		vendors_onboarded INTEGER NOT NULL DEFAULT 0,
		is_active         BOOLEAN NOT NULL DEFAULT TRUE,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS franchises (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL,
		owner_name TEXT NOT NULL DEFAULT '',
		region     TEXT NOT NULL DEFAULT '',
		email      TEXT NOT NULL DEFAULT '',
		phone      TEXT NOT NULL DEFAULT '',
		is_active  BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS vendors (
		id            UUID PRIMARY KEY,
		business_name TEXT NOT NULL,
		owner_name    TEXT NOT NULL DEFAULT '',
		email         TEXT NOT NULL DEFAULT '',
		phone         TEXT NOT NULL DEFAULT '',
		category      TEXT NOT NULL DEFAULT '',
		sales_rep_id  TEXT NOT NULL DEFAULT '',
		franchise_id  TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL DEFAULT 'pending',
		address       TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS coupons (
		id               UUID PRIMARY KEY,
		coupon_code      TEXT NOT NULL UNIQUE,
		description      TEXT NOT NULL DEFAULT '',
		discount_percent NUMERIC(5,2) NOT NULL,
		max_discount     NUMERIC(12,2) NOT NULL DEFAULT 0,
		min_order_value  NUMERIC(12,2) NOT NULL DEFAULT 0,
		expiry_date      TIMESTAMPTZ NOT NULL,
		is_active        BOOLEAN NOT NULL DEFAULT TRUE,
		usage_limit      INTEGER NOT NULL DEFAULT 0,
		used_count       INTEGER NOT NULL DEFAULT 0,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS vendor_availability (
		id            UUID PRIMARY KEY,
		vendor_id     TEXT NOT NULL UNIQUE,
		days          JSONB NOT NULL,
		slot_duration INTEGER NOT NULL DEFAULT 30,
		buffer_time   INTEGER NOT NULL DEFAULT 0,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id         UUID PRIMARY KEY,
		user_id    TEXT NOT NULL,
		vendor_id  TEXT NOT NULL,
		service_id TEXT NOT NULL,
		date       TEXT NOT NULL,
		time_slot  TEXT NOT NULL,
		status     TEXT NOT NULL CHECK (status IN ('pending','confirmed','completed','cancelled')),
		notes      TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS bookings_open_slot_idx
		ON bookings (vendor_id, date, time_slot) WHERE status <> 'cancelled'`,
	`CREATE TABLE IF NOT EXISTS inventories (
		id               UUID PRIMARY KEY,
		owner_id         TEXT NOT NULL,
		owner_type       TEXT NOT NULL,
		product_name     TEXT NOT NULL,
		sku              TEXT NOT NULL,
		unit             TEXT NOT NULL DEFAULT 'pcs',
		initial_quantity INTEGER NOT NULL CHECK (initial_quantity >= 0),
		current_quantity INTEGER NOT NULL CHECK (current_quantity >= 0),
		reorder_level    INTEGER NOT NULL DEFAULT 0,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (owner_id, sku)
	)`,
	`CREATE TABLE IF NOT EXISTS stock_movements (
		id           UUID PRIMARY KEY,
		inventory_id UUID NOT NULL REFERENCES inventories(id) ON DELETE CASCADE,
		type         TEXT NOT NULL CHECK (type IN ('purchase','sale','transfer','return','adjustment')),
		quantity     INTEGER NOT NULL,
		reference    TEXT NOT NULL DEFAULT '',
		note         TEXT NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS stock_movements_inventory_idx ON stock_movements (inventory_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS sns_resellers (
		id                    UUID PRIMARY KEY,
		user_id               TEXT NOT NULL,
		referral_code         TEXT NOT NULL UNIQUE,
		commission_rate       NUMERIC(5,2) NOT NULL,
		total_purchases       INTEGER NOT NULL DEFAULT 0,
		total_purchase_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
		total_commission      NUMERIC(14,2) NOT NULL DEFAULT 0,
		is_active             BOOLEAN NOT NULL DEFAULT TRUE,
		created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS milestones (
		id            UUID PRIMARY KEY,
		kind          TEXT NOT NULL CHECK (kind IN ('cashback','franchise','membership')),
		title         TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		threshold     NUMERIC(14,2) NOT NULL,
		reward_amount NUMERIC(14,2) NOT NULL,
		reward_type   TEXT NOT NULL DEFAULT 'flat',
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS reward_distributions (
		id               UUID PRIMARY KEY,
		beneficiary_id   TEXT NOT NULL,
		beneficiary_type TEXT NOT NULL,
		milestone_id     TEXT NOT NULL,
		milestone_kind   TEXT NOT NULL,
		amount           NUMERIC(14,2) NOT NULL,
		status           TEXT NOT NULL DEFAULT 'pending',
		paid_at          TIMESTAMPTZ,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (beneficiary_id, milestone_id)
	)`,
	`CREATE TABLE IF NOT EXISTS emi_plans (
		id                  UUID PRIMARY KEY,
		user_id             TEXT NOT NULL,
		order_ref           TEXT NOT NULL DEFAULT '',
		principal           NUMERIC(14,2) NOT NULL,
		annual_rate         NUMERIC(6,3) NOT NULL,
		tenure_months       INTEGER NOT NULL,
		monthly_installment NUMERIC(14,2) NOT NULL,
		start_date          TIMESTAMPTZ NOT NULL,
		status              TEXT NOT NULL DEFAULT 'active',
		created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS emi_installments (
		plan_id   UUID NOT NULL REFERENCES emi_plans(id) ON DELETE CASCADE,
		number    INTEGER NOT NULL,
		due_date  TIMESTAMPTZ NOT NULL,
		amount    NUMERIC(14,2) NOT NULL,
		principal NUMERIC(14,2) NOT NULL,
		interest  NUMERIC(14,2) NOT NULL,
		status    TEXT NOT NULL DEFAULT 'due',
		paid_at   TIMESTAMPTZ,
		PRIMARY KEY (plan_id, number)
	)`,
}

// Count is the number of statements Apply executes.
func Count() int { return len(schema) }

// Apply creates the relational schema used when DB_DRIVER=postgres.
func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}

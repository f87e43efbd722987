package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/georgemunganga/vendora-backend/internal/platform/store"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const inventoryColumns = `id, owner_id, owner_type, product_name, sku, unit, initial_quantity,
	current_quantity, reorder_level, created_at, updated_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanInventory(row scanner) (*Inventory, error) {
	inv := &Inventory{}
	err := row.Scan(&inv.ID, &inv.OwnerID, &inv.OwnerType, &inv.ProductName, &inv.SKU, &inv.Unit,
		&inv.InitialQuantity, &inv.CurrentQuantity, &inv.ReorderLevel, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, store.Translate(err, "inventory")
	}
	return inv, nil
}

func (r *postgresRepo) Create(ctx context.Context, inv *Inventory) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inventories (`+inventoryColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		inv.ID, inv.OwnerID, inv.OwnerType, inv.ProductName, inv.SKU, inv.Unit,
		inv.InitialQuantity, inv.CurrentQuantity, inv.ReorderLevel, inv.CreatedAt, inv.UpdatedAt)
	return store.Translate(err, "inventory")
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Inventory, error) {
	inv, err := scanInventory(r.db.QueryRowContext(ctx,
		`SELECT `+inventoryColumns+` FROM inventories WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type, quantity, reference, note, created_at
		FROM stock_movements WHERE inventory_id=$1 ORDER BY created_at, id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inv.StockMovements = []Movement{}
	for rows.Next() {
		var m Movement
		if err := rows.Scan(&m.ID, &m.Type, &m.Quantity, &m.Reference, &m.Note, &m.CreatedAt); err != nil {
			return nil, err
		}
		inv.StockMovements = append(inv.StockMovements, m)
	}
	return inv, rows.Err()
}

func (r *postgresRepo) List(ctx context.Context, f ListFilter) ([]*Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories
		WHERE ($1 = '' OR owner_id=$1) AND (NOT $2 OR current_quantity <= reorder_level)
		ORDER BY product_name`
	args := []interface{}{f.OwnerID, f.LowStock}
	if f.Limit > 0 {
		query += ` LIMIT $3 OFFSET $4`
		args = append(args, f.Limit, f.Skip)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Inventory{}
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, inv)
	}
	return items, rows.Err()
}

// ApplyMovement updates the quantity and writes the ledger row in one transaction.
func (r *postgresRepo) ApplyMovement(ctx context.Context, id string, m *Movement) (*Inventory, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	inv, err := scanInventory(tx.QueryRowContext(ctx, `
		UPDATE inventories SET current_quantity = current_quantity + $1, updated_at = $2
		WHERE id=$3 AND current_quantity + $1 >= 0
		RETURNING `+inventoryColumns, m.Quantity, m.CreatedAt, id))
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, r.missOrConflict(ctx, tx, id, apperr.Conflict("insufficient stock for %s of %d", m.Type, -m.Quantity))
	}
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO stock_movements (id, inventory_id, type, quantity, reference, note, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		m.ID, id, m.Type, m.Quantity, m.Reference, m.Note, m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert stock movement: %w", err)
	}
	return inv, tx.Commit()
}

func (r *postgresRepo) ResetQuantity(ctx context.Context, id string, quantity, movementCount int, at time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE inventories SET current_quantity=$1, updated_at=$2
		WHERE id=$3 AND (SELECT COUNT(*) FROM stock_movements WHERE inventory_id=$3) = $4`,
		quantity, at, id, movementCount)
	if err != nil {
		return store.Translate(err, "inventory")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.missOrConflict(ctx, tx, id, apperr.Conflict("inventory changed during reconciliation"))
	}
	return tx.Commit()
}

func (r *postgresRepo) missOrConflict(ctx context.Context, tx *sql.Tx, id string, conflict error) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM inventories WHERE id=$1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("inventory not found")
	}
	return conflict
}

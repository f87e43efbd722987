package coupon

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgresCreateDuplicateIsConflict(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec("INSERT INTO coupons").WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &Coupon{ID: "c1", CouponCode: "X"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetByCodeNotFound(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery("FROM coupons WHERE coupon_code=\\$1").
		WithArgs("NOPE").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByCode(context.Background(), "NOPE")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetByID(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "coupon_code", "description", "discount_percent",
		"max_discount", "min_order_value", "expiry_date", "is_active", "usage_limit", "used_count",
		"created_at", "updated_at"}).
		AddRow("c1", "SAVE10", "", 10.0, 0.0, 0.0, now, true, 5, 2, now, now)
	mock.ExpectQuery("FROM coupons WHERE id=\\$1").WithArgs("c1").WillReturnRows(rows)

	c, err := repo.GetByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", c.CouponCode)
	assert.Equal(t, 2, c.UsedCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRedeemExhaustedIsConflict(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec("UPDATE coupons SET used_count").
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Redeem(context.Background(), "c1")
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeactivateExpired(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectExec("UPDATE coupons SET is_active=FALSE").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeactivateExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeleteMissing(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec("DELETE FROM coupons").WithArgs("gone").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "gone"), apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMalformedIDIsNotFound(t *testing.T) {
	repo, mock := newMock(t)
	badID := &pq.Error{Code: "22P02", Message: `invalid input syntax for type uuid: "not-a-uuid"`}
	mock.ExpectQuery("FROM coupons WHERE id=\\$1").WithArgs("not-a-uuid").WillReturnError(badID)
	mock.ExpectExec("DELETE FROM coupons").WithArgs("not-a-uuid").WillReturnError(badID)

	_, err := repo.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), "not-a-uuid"), apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

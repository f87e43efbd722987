package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresCreateOpenSlotTakenIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO bookings").WillReturnError(&pq.Error{Code: "23505"})
	err = NewPostgresRepository(db).Create(context.Background(), &Booking{ID: "b1", Status: StatusPending})
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateStatusLostRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Now().UTC()
	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(StatusConfirmed, at, "b1", StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("b1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err = NewPostgresRepository(db).UpdateStatus(context.Background(), "b1", StatusPending, StatusConfirmed, at)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateStatusMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE bookings SET status").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err = NewPostgresRepository(db).UpdateStatus(context.Background(), "b1", StatusPending, StatusConfirmed, time.Now())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

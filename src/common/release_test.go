package common

import (
	"context"
	"testing"

	"vrm/src/db"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestReleaseDuePayouts(t *testing.T) {
	_, mock := db.GetMockDB()

	// One eligible booking: the released flag flips and the payout moves
	// between buckets inside the same transaction.
	mock.ExpectQuery(`SELECT "id","payout" FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "payout"}).AddRow(1, 95.0))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET "released"=`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "businesses" SET "available_balance"=available_balance`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := ReleaseDuePayouts(context.Background(), 1)
	assert.Nil(t, err)
	assert.Equal(t, 1, result.Released)
	assert.Equal(t, 95.0, result.Amount)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestReleaseDuePayoutsIdempotent(t *testing.T) {
	_, mock := db.GetMockDB()

	// Nothing eligible on a repeat run: no balance statements at all.
	mock.ExpectQuery(`SELECT "id","payout" FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "payout"}))

	result, err := ReleaseDuePayouts(context.Background(), 1)
	assert.Nil(t, err)
	assert.Equal(t, 0, result.Released)
	assert.Equal(t, 0.0, result.Amount)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestReleaseDuePayoutsSkipsAlreadyReleased(t *testing.T) {
	_, mock := db.GetMockDB()

	// A concurrent run flipped the flag first: zero rows matched, so no
	// balance move happens for that booking.
	mock.ExpectQuery(`SELECT "id","payout" FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "payout"}).AddRow(1, 95.0))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET "released"=`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	result, err := ReleaseDuePayouts(context.Background(), 1)
	assert.Nil(t, err)
	assert.Equal(t, 0, result.Released)
	assert.Equal(t, 0.0, result.Amount)
	assert.Nil(t, mock.ExpectationsWereMet())
}

package common

import (
	"context"
	"errors"
	"testing"

	"vrm/src/db"
	"vrm/src/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func bookingRows(status types.BookingStatus, refundable bool) *sqlmock.Rows {
	return sqlmock.
		NewRows([]string{"id", "customer_id", "business_id", "status", "refundable", "total_amount", "payout", "released"}).
		AddRow(1, 10, 20, string(status), refundable, 105.0, 95.0, false)
}

func expectBookingLookup(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectQuery(`SELECT .+ FROM "bookings"`).WillReturnRows(rows)
	mock.ExpectQuery(`SELECT .+ FROM "customers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow(10, "renter@example.com"))
}

func TestRequestCancellationNonRefundable(t *testing.T) {
	_, mock := db.GetMockDB()
	expectBookingLookup(mock, bookingRows(types.BOOKING_ACTIVE, false))

	_, err := RequestCancellation(context.Background(), 10, 1)
	assert.NotNil(t, err)
	assert.True(t, IsValidationError(err))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestRequestCancellationWrongCustomer(t *testing.T) {
	_, mock := db.GetMockDB()
	expectBookingLookup(mock, bookingRows(types.BOOKING_ACTIVE, true))

	_, err := RequestCancellation(context.Background(), 99, 1)
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestRequestCancellationTerminalBooking(t *testing.T) {
	_, mock := db.GetMockDB()
	expectBookingLookup(mock, bookingRows(types.BOOKING_CANCELED, true))

	_, err := RequestCancellation(context.Background(), 10, 1)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestRequestCancellationSecondPendingRequestRejected(t *testing.T) {
	_, mock := db.GetMockDB()
	expectBookingLookup(mock, bookingRows(types.BOOKING_ACTIVE, true))

	// The uniqueness check runs inside the creation transaction and finds
	// an existing pending request.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "refund_requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := RequestCancellation(context.Background(), 10, 1)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestDecideBookingAlreadyCancelled(t *testing.T) {
	_, mock := db.GetMockDB()
	expectBookingLookup(mock, bookingRows(types.BOOKING_CANCELED, true))

	_, err := DecideBooking(context.Background(), 20, 1, types.DECISION_APPROVE)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestDecideBookingWrongBusiness(t *testing.T) {
	_, mock := db.GetMockDB()
	expectBookingLookup(mock, bookingRows(types.BOOKING_PENDING, true))

	_, err := DecideBooking(context.Background(), 99, 1, types.DECISION_APPROVE)
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.Nil(t, mock.ExpectationsWereMet())
}

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

func businessRows(available float64, stripeAccount *string, payoutEmail *string) *sqlmock.Rows {
	return sqlmock.
		NewRows([]string{"id", "name", "contact_email", "available_balance", "pending_balance", "stripe_account_id", "payout_email"}).
		AddRow(1, "Kerbside Rentals", "ops@kerbside.example", available, 0.0, stripeAccount, payoutEmail)
}

func TestWithdrawalBreakdown(t *testing.T) {
	// 5% retained: a 200 withdrawal keeps 10 and sends 190.
	fee, net := WithdrawalBreakdown(200)
	assert.Equal(t, 10.0, fee)
	assert.Equal(t, 190.0, net)

	fee, net = WithdrawalBreakdown(150)
	assert.Equal(t, 7.5, fee)
	assert.Equal(t, 142.5, net)

	fee, net = WithdrawalBreakdown(33.33)
	assert.Equal(t, 1.67, fee)
	assert.Equal(t, 31.66, net)
}

func TestWithdrawRejectsNonPositiveAmount(t *testing.T) {
	_, mock := db.GetMockDB()
	mock.ExpectQuery(`SELECT .+ FROM "businesses"`).
		WillReturnRows(businessRows(300, nil, nil))

	_, err := Withdraw(context.Background(), 1, &types.CreateWithdrawalRequestBody{Amount: 0, Method: types.WITHDRAW_BANK})
	assert.True(t, IsValidationError(err))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	_, mock := db.GetMockDB()

	// The balance check fails before any payout is attempted, so the only
	// statement is the account load.
	mock.ExpectQuery(`SELECT .+ FROM "businesses"`).
		WillReturnRows(businessRows(100, nil, nil))

	_, err := Withdraw(context.Background(), 1, &types.CreateWithdrawalRequestBody{Amount: 500, Method: types.WITHDRAW_BANK})
	assert.True(t, errors.Is(err, ErrInsufficientFunds))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestWithdrawBankWithoutLinkedAccount(t *testing.T) {
	_, mock := db.GetMockDB()
	mock.ExpectQuery(`SELECT .+ FROM "businesses"`).
		WillReturnRows(businessRows(300, nil, nil))

	_, err := Withdraw(context.Background(), 1, &types.CreateWithdrawalRequestBody{Amount: 200, Method: types.WITHDRAW_BANK})
	assert.True(t, IsValidationError(err))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestWithdrawPaypalWithoutEmail(t *testing.T) {
	_, mock := db.GetMockDB()
	mock.ExpectQuery(`SELECT .+ FROM "businesses"`).
		WillReturnRows(businessRows(300, nil, nil))

	_, err := Withdraw(context.Background(), 1, &types.CreateWithdrawalRequestBody{Amount: 200, Method: types.WITHDRAW_PAYPAL})
	assert.True(t, IsValidationError(err))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestWithdrawUnknownBusiness(t *testing.T) {
	_, mock := db.GetMockDB()
	mock.ExpectQuery(`SELECT .+ FROM "businesses"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := Withdraw(context.Background(), 404, &types.CreateWithdrawalRequestBody{Amount: 200, Method: types.WITHDRAW_BANK})
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Nil(t, mock.ExpectationsWereMet())
}

package common

import (
	"errors"
	"testing"

	"vrm/src/db"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCommissionFor(t *testing.T) {
	cases := []struct {
		basePrice float64
		want      float64
	}{
		{800, 10},
		{700, 10},
		{699.99, 5},
		{250, 5},
		{249.99, 0},
		{100, 0},
		{0, 0},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, CommissionFor(c.basePrice), "basePrice=%v", c.basePrice)
	}
}

func TestAccrueCommission(t *testing.T) {
	gormDB, mock := db.NewMockDB()

	// All four money counters and the referral count move in one statement.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "affiliates" SET "earnings"=earnings \+ \$1,"pending_balance"=pending_balance \+ \$2,"referrals"=referrals \+ 1,"total_earnings"=total_earnings \+ \$3,"unpaid_earnings"=unpaid_earnings \+ \$4`).
		WithArgs(5.0, 5.0, 5.0, 5.0, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx := gormDB.Begin()
	err := AccrueCommission(tx, 7, 5)
	assert.Nil(t, err)
	assert.Nil(t, tx.Commit().Error)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestAccrueCommissionZeroStillCountsReferral(t *testing.T) {
	gormDB, mock := db.NewMockDB()

	// A referred booking below the lowest tier earns nothing, but the
	// referral itself is still recorded.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "affiliates" SET "earnings"=earnings \+ \$1,"pending_balance"=pending_balance \+ \$2,"referrals"=referrals \+ 1`).
		WithArgs(0.0, 0.0, 0.0, 0.0, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx := gormDB.Begin()
	err := AccrueCommission(tx, 7, 0)
	assert.Nil(t, err)
	assert.Nil(t, tx.Commit().Error)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestAccrueCommissionUnknownAffiliate(t *testing.T) {
	gormDB, mock := db.NewMockDB()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "affiliates" SET "earnings"=earnings`).
		WithArgs(5.0, 5.0, 5.0, 5.0, 999).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx := gormDB.Begin()
	err := AccrueCommission(tx, 999, 5)
	assert.True(t, errors.Is(err, ErrNotFound))
	tx.Rollback()
	assert.Nil(t, mock.ExpectationsWereMet())
}

package common

import (
	"vrm/src/models"

	"gorm.io/gorm"
)

// Escrow ledger operations. Balances are never assigned directly: every
// mutation is a single relative UPDATE executed inside the caller's
// transaction, so concurrent requests against the same business cannot lose
// updates. Funds move pending -> available (release) or available -> 0
// (withdrawal); the only pending decrease is the reversal of a creation
// credit when an unreleased booking is cancelled.

// CreditPendingBalance records a booking's payout as earned but not yet
// withdrawable.
func CreditPendingBalance(tx *gorm.DB, businessId uint, amount float64) error {
	res := tx.
		Model(&models.Business{}).
		Where("id = ?", businessId).
		UpdateColumn("pending_balance", gorm.Expr("pending_balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReversePendingCredit undoes a creation credit when a booking is cancelled
// before its payout was released.
func ReversePendingCredit(tx *gorm.DB, businessId uint, amount float64) error {
	res := tx.
		Model(&models.Business{}).
		Where("id = ?", businessId).
		UpdateColumn("pending_balance", gorm.Expr("pending_balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MovePendingToAvailable shifts a released payout sum between buckets,
// holding the account total constant.
func MovePendingToAvailable(tx *gorm.DB, businessId uint, amount float64) error {
	res := tx.
		Model(&models.Business{}).
		Where("id = ?", businessId).
		UpdateColumns(map[string]any{
			"pending_balance":   gorm.Expr("pending_balance - ?", amount),
			"available_balance": gorm.Expr("available_balance + ?", amount),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DebitAvailableBalance removes a withdrawal's full requested amount. The
// balance condition is part of the UPDATE so a concurrent withdrawal cannot
// overdraw the account.
func DebitAvailableBalance(tx *gorm.DB, businessId uint, amount float64) error {
	res := tx.
		Model(&models.Business{}).
		Where("id = ? AND available_balance >= ?", businessId, amount).
		UpdateColumn("available_balance", gorm.Expr("available_balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientFunds
	}
	return nil
}

// AddPlatformRevenue accumulates fees into the single aggregate revenue row,
// creating it on first use.
func AddPlatformRevenue(tx *gorm.DB, bookingFees, withdrawalFees float64) error {
	res := tx.
		Model(&models.PlatformRevenue{}).
		Where("id = ?", 1).
		UpdateColumns(map[string]any{
			"booking_fees":    gorm.Expr("booking_fees + ?", bookingFees),
			"withdrawal_fees": gorm.Expr("withdrawal_fees + ?", withdrawalFees),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		row := models.PlatformRevenue{ID: 1, BookingFees: bookingFees, WithdrawalFees: withdrawalFees}
		return tx.Create(&row).Error
	}
	return nil
}

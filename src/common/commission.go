package common

import (
	"vrm/src/config"
	"vrm/src/models"

	"gorm.io/gorm"
)

// CommissionFor returns the flat commission an affiliate earns for a referred
// booking, tiered on the booking's base price.
func CommissionFor(basePrice float64) float64 {
	switch {
	case basePrice >= config.COMMISSION_TIER_HIGH:
		return config.COMMISSION_AMOUNT_HIGH
	case basePrice >= config.COMMISSION_TIER_MID:
		return config.COMMISSION_AMOUNT_MID
	default:
		return 0
	}
}

// AccrueCommission credits all of an affiliate's running counters in one
// atomic update. Called inside the booking-creation transaction.
func AccrueCommission(tx *gorm.DB, affiliateId uint, commission float64) error {
	res := tx.
		Model(&models.Affiliate{}).
		Where("id = ?", affiliateId).
		UpdateColumns(map[string]any{
			"earnings":        gorm.Expr("earnings + ?", commission),
			"pending_balance": gorm.Expr("pending_balance + ?", commission),
			"unpaid_earnings": gorm.Expr("unpaid_earnings + ?", commission),
			"total_earnings":  gorm.Expr("total_earnings + ?", commission),
			"referrals":       gorm.Expr("referrals + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

package models

import (
	"vrm/src/types"
)

// PlatformRevenue is a single aggregate row. Booking and service fees land in
// BookingFees at creation; the 5% retained from each withdrawal lands in
// WithdrawalFees.
type PlatformRevenue struct {
	ID             uint    `gorm:"primarykey" json:"id"`
	BookingFees    float64 `gorm:"default:0" json:"booking_fees"`
	WithdrawalFees float64 `gorm:"default:0" json:"withdrawal_fees"`

	types.Timestamps
}

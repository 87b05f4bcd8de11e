package models

import (
	"vrm/src/types"
)

type Affiliate struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `gorm:"uniqueIndex" json:"email,omitempty"`
	Code  string `gorm:"uniqueIndex" json:"code"`

	// Commission counters, all credited together when a referred booking is
	// created.
	Earnings         float64 `gorm:"default:0" json:"earnings"`
	Referrals        uint    `gorm:"default:0" json:"referrals"`
	PendingBalance   float64 `gorm:"default:0" json:"pending_balance"`
	AvailableBalance float64 `gorm:"default:0" json:"available_balance"`
	UnpaidEarnings   float64 `gorm:"default:0" json:"unpaid_earnings"`
	TotalEarnings    float64 `gorm:"default:0" json:"total_earnings"`

	Bookings []Booking `gorm:"foreignKey:affiliate_id" json:"-"`

	types.Timestamps
}

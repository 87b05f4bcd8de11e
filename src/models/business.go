package models

import (
	"vrm/src/types"
)

type Business struct {
	ID           uint   `gorm:"primarykey;uniqueIndex:bizslug" json:"id"`
	Name         string `json:"name,omitempty"`
	About        string `json:"about,omitempty"`
	Country      string `json:"country,omitempty"`
	ContactEmail string `gorm:"uniqueIndex" json:"email,omitempty"`
	Slug         string `gorm:"uniqueIndex:bizslug" json:"slug"`
	Status       string `gorm:"default:'pending'" json:"status,omitempty"`
	Verified     bool   `gorm:"default:false" json:"verified,omitempty"`

	// Escrow buckets. Mutated only through the ledger operations in common:
	// credit on booking creation, release once the rental starts, debit on
	// withdrawal.
	PendingBalance   float64 `gorm:"default:0" json:"pending_balance"`
	AvailableBalance float64 `gorm:"default:0" json:"available_balance"`

	StripeAccountID *string `json:"stripe_account_id,omitempty"`
	PayoutEmail     *string `json:"payout_email,omitempty"`

	Vehicles []Vehicle `gorm:"foreignKey:business_id" json:"-"`
	Bookings []Booking `gorm:"foreignKey:business_id" json:"-"`

	types.Timestamps
}

package models

import (
	"vrm/src/types"
)

type Customer struct {
	ID                uint    `gorm:"primarykey" json:"id"`
	Name              string  `json:"name,omitempty"`
	Email             string  `gorm:"uniqueIndex" json:"email,omitempty"`
	Phone             string  `json:"phone,omitempty"`
	IdentityVerified  bool    `gorm:"default:false" json:"identity_verified"`
	VerificationError *string `json:"verification_error,omitempty"`
	StripeCustomerId  *string `json:"stripe_customer_id,omitempty"`

	Bookings []Booking `gorm:"foreignKey:customer_id" json:"-"`

	types.Timestamps
}

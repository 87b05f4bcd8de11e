package models

import (
	"time"

	"vrm/src/types"
)

type Booking struct {
	ID          uint  `gorm:"primarykey" json:"id"`
	VehicleID   uint  `json:"vehicle_id,omitempty"`
	CustomerID  uint  `json:"customer_id,omitempty"`
	BusinessID  uint  `json:"business_id,omitempty"`
	AffiliateID *uint `json:"affiliate_id,omitempty"`

	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	// Money fields derived once at creation. Only RefundAmount is written
	// later, when a cancellation is approved.
	BasePrice    float64  `json:"base_price,omitempty"`
	BookingFee   float64  `json:"booking_fee,omitempty"`
	ServiceFee   float64  `json:"service_fee,omitempty"`
	TotalAmount  float64  `json:"total_amount,omitempty"`
	Payout       float64  `json:"payout,omitempty"`
	RefundAmount *float64 `json:"refund_amount,omitempty"`
	Currency     string   `gorm:"default:'gbp'" json:"currency,omitempty"`
	FeeRate      float64  `gorm:"default:0.05" json:"fee_rate,omitempty"`

	// Snapshot of the vehicle's policy at booking time. Refunds are computed
	// against this value even if the listing changes later.
	CancellationPolicy types.CancellationPolicy `gorm:"default:'none'" json:"cancellation_policy,omitempty"`

	Status       types.BookingStatus `gorm:"default:'pending'" json:"status,omitempty"`
	Refundable   bool                `gorm:"default:false" json:"refundable"`
	Released     bool                `gorm:"default:false" json:"released"`
	HasReview    bool                `gorm:"default:false" json:"has_review"`
	LicenseImage string              `json:"license_image,omitempty"`
	ChargeID     *string             `json:"charge_id,omitempty"`

	Vehicle   *Vehicle   `gorm:"foreignKey:vehicle_id" json:"vehicle,omitempty"`
	Customer  *Customer  `gorm:"foreignKey:customer_id" json:"customer,omitempty"`
	Business  *Business  `gorm:"foreignKey:business_id" json:"business,omitempty"`
	Affiliate *Affiliate `gorm:"foreignKey:affiliate_id" json:"affiliate,omitempty"`

	types.Timestamps
}

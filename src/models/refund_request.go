package models

import (
	"time"

	"vrm/src/types"
)

type RefundRequest struct {
	ID         uint `gorm:"primarykey" json:"id"`
	BookingID  uint `json:"booking_id,omitempty"`
	CustomerID uint `json:"customer_id,omitempty"`

	Status       types.RefundRequestStatus `gorm:"default:'pending'" json:"status,omitempty"`
	RefundAmount *float64                  `json:"refund_amount,omitempty"`
	RequestedAt  time.Time                 `json:"requested_at,omitempty"`
	ProcessedAt  *time.Time                `json:"processed_at,omitempty"`

	Booking  *Booking  `gorm:"foreignKey:booking_id" json:"booking,omitempty"`
	Customer *Customer `gorm:"foreignKey:customer_id" json:"customer,omitempty"`

	types.Timestamps
}

package models

import (
	"vrm/src/types"
)

// Message rows form a booking's conversation thread. Chat transport itself
// lives outside this service; the core only appends system messages.
type Message struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	BookingID uint   `json:"booking_id,omitempty"`
	SenderID  *uint  `json:"sender_id,omitempty"`
	System    bool   `gorm:"default:false" json:"system"`
	Body      string `json:"body,omitempty"`

	Booking *Booking `gorm:"foreignKey:booking_id" json:"-"`

	types.Timestamps
}

package models

import (
	"vrm/src/types"

	"github.com/google/uuid"
)

type Transaction struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	BookingID   *uint                   `json:"booking_id,omitempty"`
	Kind        types.TransactionKind   `json:"kind,omitempty"`
	Currency    string                  `json:"currency,omitempty"`
	Amount      float64                 `json:"amount,omitempty"`
	ReferenceID string                  `json:"reference_id,omitempty"`
	Status      types.TransactionStatus `gorm:"default:'pending'" json:"status,omitempty"`
	Metadata    *types.JSONB            `gorm:"type:jsonb" json:"metadata,omitempty"`

	Booking *Booking `gorm:"foreignKey:booking_id" json:"-"`

	types.Timestamps
}

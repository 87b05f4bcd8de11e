package models

import (
	"vrm/src/types"
)

type Withdrawal struct {
	ID         uint `gorm:"primarykey" json:"id"`
	BusinessID uint `json:"business_id,omitempty"`

	Amount     float64                `json:"amount,omitempty"`
	ServiceFee float64                `json:"service_fee,omitempty"`
	NetAmount  float64                `json:"net_amount,omitempty"`
	Currency   string                 `gorm:"default:'gbp'" json:"currency,omitempty"`
	Method     types.WithdrawalMethod `json:"method,omitempty"`
	Reference  *string                `json:"reference,omitempty"`
	Status     types.WithdrawalStatus `json:"status,omitempty"`

	Business *Business `gorm:"foreignKey:business_id" json:"-"`

	types.Timestamps
}

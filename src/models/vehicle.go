package models

import (
	"vrm/src/types"
)

type Vehicle struct {
	ID                 uint                     `gorm:"primarykey;uniqueIndex:vehslug" json:"id"`
	BusinessID         uint                     `json:"business_id,omitempty"`
	Make               string                   `json:"make,omitempty"`
	Model              string                   `json:"model,omitempty"`
	Year               uint                     `json:"year,omitempty"`
	DailyRate          float64                  `json:"daily_rate,omitempty"`
	Currency           string                   `gorm:"default:'gbp'" json:"currency,omitempty"`
	CancellationPolicy types.CancellationPolicy `gorm:"default:'none'" json:"cancellation_policy,omitempty"`
	Location           string                   `json:"location,omitempty"`
	Slug               string                   `gorm:"uniqueIndex:vehslug" json:"slug"`
	Status             types.VehicleStatus      `gorm:"default:'listed'" json:"status,omitempty"`

	Business *Business `gorm:"foreignKey:business_id" json:"business,omitempty"`

	types.Timestamps
}

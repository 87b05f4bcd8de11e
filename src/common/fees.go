package common

import (
	"vrm/src/config"
)

// FeeBreakdown holds the figures derived from a booking's base price. The
// identities total = base + bookingFee and payout = base - serviceFee hold at
// full precision; rounding happens only at charge/display time.
type FeeBreakdown struct {
	BasePrice   float64
	BookingFee  float64
	ServiceFee  float64
	TotalAmount float64
	Payout      float64
}

func CalculateFees(basePrice float64, feeRate float64) (*FeeBreakdown, error) {
	if basePrice <= 0 {
		return nil, NewValidationError("base price must be greater than zero")
	}
	if feeRate < 0 || feeRate >= 1 {
		return nil, NewValidationError("invalid fee rate")
	}
	bookingFee := basePrice * feeRate
	serviceFee := basePrice * feeRate
	return &FeeBreakdown{
		BasePrice:   basePrice,
		BookingFee:  bookingFee,
		ServiceFee:  serviceFee,
		TotalAmount: basePrice + bookingFee,
		Payout:      basePrice - serviceFee,
	}, nil
}

func DefaultFees(basePrice float64) (*FeeBreakdown, error) {
	return CalculateFees(basePrice, config.BOOKING_FEE_RATE)
}

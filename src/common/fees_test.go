package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateFees(t *testing.T) {
	fees, err := DefaultFees(100)
	assert.Nil(t, err)
	assert.Equal(t, 5.0, fees.BookingFee)
	assert.Equal(t, 5.0, fees.ServiceFee)
	assert.Equal(t, 105.0, fees.TotalAmount)
	assert.Equal(t, 95.0, fees.Payout)
}

func TestCalculateFeesIdentity(t *testing.T) {
	for _, basePrice := range []float64{1, 49.99, 250, 537.25, 800, 10000} {
		fees, err := DefaultFees(basePrice)
		assert.Nil(t, err)
		assert.Equal(t, basePrice+fees.BookingFee, fees.TotalAmount)
		assert.Equal(t, basePrice-fees.ServiceFee, fees.Payout)
		assert.Equal(t, fees.BookingFee, fees.ServiceFee)
		assert.InDelta(t, basePrice*0.05, fees.BookingFee, 1e-9)
	}
}

func TestCalculateFeesRejectsBadInput(t *testing.T) {
	_, err := DefaultFees(0)
	assert.NotNil(t, err)
	assert.True(t, IsValidationError(err))

	_, err = DefaultFees(-10)
	assert.NotNil(t, err)
	assert.True(t, IsValidationError(err))

	_, err = CalculateFees(100, 1.5)
	assert.NotNil(t, err)
	assert.True(t, IsValidationError(err))
}

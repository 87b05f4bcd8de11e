package common

import (
	"math"
	"time"

	"vrm/src/types"
	"vrm/src/utils"
)

// DaysBeforeStart counts whole days remaining until the rental starts, with a
// partial day counting as a full day. Negative once the start has passed.
func DaysBeforeStart(startDate, now time.Time) int {
	diff := startDate.Sub(now)
	return int(math.Ceil(diff.Hours() / 24))
}

// RefundPercentage maps a cancellation policy and the days remaining to a
// refund percentage. Unrecognized policies refund nothing.
func RefundPercentage(policy types.CancellationPolicy, daysBeforeStart int) int {
	switch policy {
	case types.POLICY_STRICT:
		if daysBeforeStart >= 14 {
			return 100
		}
		if daysBeforeStart >= 7 {
			return 50
		}
		return 0
	case types.POLICY_MODERATE:
		if daysBeforeStart >= 7 {
			return 100
		}
		return 0
	default:
		return 0
	}
}

// RefundAmount computes the refundable portion of a booking's total at the
// moment the cancellation decision is processed.
func RefundAmount(totalAmount float64, policy types.CancellationPolicy, startDate, now time.Time) float64 {
	pct := RefundPercentage(policy, DaysBeforeStart(startDate, now))
	return utils.Round2(totalAmount * float64(pct) / 100)
}

package common

import (
	"testing"
	"time"

	"vrm/src/types"

	"github.com/stretchr/testify/assert"
)

func TestRefundPercentage(t *testing.T) {
	cases := []struct {
		policy types.CancellationPolicy
		days   int
		want   int
	}{
		{types.POLICY_STRICT, 20, 100},
		{types.POLICY_STRICT, 14, 100},
		{types.POLICY_STRICT, 13, 50},
		{types.POLICY_STRICT, 10, 50},
		{types.POLICY_STRICT, 7, 50},
		{types.POLICY_STRICT, 6, 0},
		{types.POLICY_STRICT, 3, 0},
		{types.POLICY_STRICT, 0, 0},
		{types.POLICY_STRICT, -2, 0},
		{types.POLICY_MODERATE, 30, 100},
		{types.POLICY_MODERATE, 7, 100},
		{types.POLICY_MODERATE, 6, 0},
		{types.POLICY_MODERATE, 0, 0},
		{types.POLICY_NONE, 30, 0},
		{types.CancellationPolicy("flexible"), 30, 0},
	}
	for _, c := range cases {
		got := RefundPercentage(c.policy, c.days)
		assert.Equalf(t, c.want, got, "policy=%s days=%d", c.policy, c.days)
	}
}

func TestRefundPercentageMonotonic(t *testing.T) {
	for _, policy := range []types.CancellationPolicy{types.POLICY_STRICT, types.POLICY_MODERATE, types.POLICY_NONE} {
		prev := 100
		for days := 30; days >= -5; days-- {
			pct := RefundPercentage(policy, days)
			assert.LessOrEqualf(t, pct, prev, "policy=%s days=%d", policy, days)
			prev = pct
		}
	}
}

func TestDaysBeforeStart(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 10, DaysBeforeStart(now.Add(10*24*time.Hour), now))
	// A partial day counts as a full day remaining.
	assert.Equal(t, 10, DaysBeforeStart(now.Add(9*24*time.Hour+time.Hour), now))
	assert.Equal(t, 1, DaysBeforeStart(now.Add(time.Hour), now))
	assert.Equal(t, 0, DaysBeforeStart(now, now))
	assert.Equal(t, -1, DaysBeforeStart(now.Add(-25*time.Hour), now))
}

func TestRefundAmount(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	start := now.Add(10 * 24 * time.Hour)

	// basePrice 100 -> total 105; strict at 10 days -> 50%.
	amount := RefundAmount(105, types.POLICY_STRICT, start, now)
	assert.Equal(t, 52.5, amount)

	assert.Equal(t, 105.0, RefundAmount(105, types.POLICY_STRICT, now.Add(15*24*time.Hour), now))
	assert.Equal(t, 0.0, RefundAmount(105, types.POLICY_STRICT, now.Add(2*24*time.Hour), now))
	assert.Equal(t, 0.0, RefundAmount(105, types.POLICY_NONE, start, now))
}

package reservation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/padelyzer/booking-backend/internal/club"
)

func TestCancellationFee(t *testing.T) {
	total := decimal.NewFromInt(400)

	tests := []struct {
		name       string
		tier       club.PolicyTier
		untilStart time.Duration
		want       string
	}{
		{"moderate well before start", club.PolicyModerate, 48 * time.Hour, "0"},
		{"moderate at exactly the boundary", club.PolicyModerate, 6 * time.Hour, "0"},
		{"moderate one minute outside", club.PolicyModerate, 6*time.Hour + time.Minute, "0"},
		{"moderate one minute inside", club.PolicyModerate, 5*time.Hour + 59*time.Minute, "200"},
		{"flexible outside window", club.PolicyFlexible, 3 * time.Hour, "0"},
		{"flexible inside window", club.PolicyFlexible, time.Hour, "100"},
		{"strict last minute", club.PolicyStrict, 2 * time.Hour, "400"},
		{"strict middle tier", club.PolicyStrict, 12 * time.Hour, "200"},
		{"strict outside both tiers", club.PolicyStrict, 48 * time.Hour, "0"},
		{"custom with no rules charges nothing", club.PolicyCustom, time.Minute, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CancellationFee(tt.tier, nil, tt.untilStart, total)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"want %s, got %s", tt.want, got)
		})
	}
}

func TestCancellationFeeCustomRules(t *testing.T) {
	total := decimal.NewFromInt(300)
	rules := []club.FeeRule{
		{Before: 3 * time.Hour, Percent: 80},
		{Before: 12 * time.Hour, Percent: 20},
	}

	inside := CancellationFee(club.PolicyCustom, rules, 2*time.Hour, total)
	assert.True(t, inside.Equal(decimal.NewFromInt(240)), "got %s", inside)

	middle := CancellationFee(club.PolicyCustom, rules, 8*time.Hour, total)
	assert.True(t, middle.Equal(decimal.NewFromInt(60)), "got %s", middle)

	outside := CancellationFee(club.PolicyCustom, rules, 24*time.Hour, total)
	assert.True(t, outside.IsZero(), "got %s", outside)
}

func TestCancellationFeeRoundsToCents(t *testing.T) {
	// 50% of 33.33 is 16.665, which must round to 16.67, not drift.
	got := CancellationFee(club.PolicyModerate, nil, time.Hour, decimal.RequireFromString("33.33"))
	assert.Equal(t, "16.67", got.StringFixed(2))
}

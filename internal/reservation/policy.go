package reservation

import (
	"time"

	"github.com/padelyzer/booking-backend/internal/club"
	"github.com/shopspring/decimal"
)

// Built-in cancellation tiers. Rules are ordered tightest window first;
// the first matching rule wins. Cancelling at exactly the boundary falls
// through to the cheaper rule.
var (
	flexibleRules = []club.FeeRule{
		{Before: 2 * time.Hour, Percent: 25},
	}
	moderateRules = []club.FeeRule{
		{Before: 6 * time.Hour, Percent: 50},
	}
	strictRules = []club.FeeRule{
		{Before: 6 * time.Hour, Percent: 100},
		{Before: 24 * time.Hour, Percent: 50},
	}
)

// CancellationFee computes the fee for cancelling untilStart ahead of the
// reservation start under the given policy tier. Clubs on the custom tier
// supply their own rule table; customRules is ignored for built-in tiers.
func CancellationFee(tier club.PolicyTier, customRules []club.FeeRule, untilStart time.Duration, totalPrice decimal.Decimal) decimal.Decimal {
	var rules []club.FeeRule
	switch tier {
	case club.PolicyFlexible:
		rules = flexibleRules
	case club.PolicyModerate:
		rules = moderateRules
	case club.PolicyStrict:
		rules = strictRules
	case club.PolicyCustom:
		rules = customRules
	}

	for _, rule := range rules {
		if untilStart < rule.Before {
			return percentOf(totalPrice, rule.Percent)
		}
	}
	return decimal.Zero
}

func percentOf(total decimal.Decimal, percent int64) decimal.Decimal {
	return total.
		Mul(decimal.NewFromInt(percent)).
		Div(decimal.NewFromInt(100)).
		Round(2)
}

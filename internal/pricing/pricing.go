package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeakWindow is the weekday evening window with peak pricing, expressed as
// offsets from midnight. Weekends are always peak regardless of the window.
type PeakWindow struct {
	Start time.Duration
	End   time.Duration
}

// DefaultPeakWindow is the 18:00-22:00 weekday evening window.
var DefaultPeakWindow = PeakWindow{Start: 18 * time.Hour, End: 22 * time.Hour}

// Calculator computes reservation prices using decimal arithmetic.
// Prices are rate * hours * multiplier, rounded to 2 decimal places.
type Calculator struct {
	peakWindow     PeakWindow
	peakMultiplier decimal.Decimal
}

// NewCalculator returns a Calculator with the given weekday peak window and
// peak multiplier. A multiplier of 1 disables the peak surcharge.
func NewCalculator(window PeakWindow, peakMultiplier decimal.Decimal) Calculator {
	return Calculator{
		peakWindow:     window,
		peakMultiplier: peakMultiplier,
	}
}

// NewDefaultCalculator returns a Calculator with the 18:00-22:00 weekday
// window and no peak surcharge.
func NewDefaultCalculator() Calculator {
	return NewCalculator(DefaultPeakWindow, decimal.NewFromInt(1))
}

// IsPeak reports whether a slot starting at start falls under peak pricing:
// all day Saturday and Sunday, and weekdays within the peak window.
func (c Calculator) IsPeak(start time.Time) bool {
	switch start.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	sinceMidnight := time.Duration(start.Hour())*time.Hour +
		time.Duration(start.Minute())*time.Minute
	return sinceMidnight >= c.peakWindow.Start && sinceMidnight < c.peakWindow.End
}

// Price computes the price of a [start, end) slot at the given hourly rate,
// applying the peak multiplier when the slot start is peak.
func (c Calculator) Price(hourlyRate decimal.Decimal, start, end time.Time) decimal.Decimal {
	multiplier := decimal.NewFromInt(1)
	if c.IsPeak(start) {
		multiplier = c.peakMultiplier
	}
	return PriceFor(hourlyRate, end.Sub(start), multiplier)
}

// PriceFor computes rate * duration * multiplier rounded to 2 decimal
// places. Duration is converted to fractional hours exactly via minutes,
// never through floating point.
func PriceFor(hourlyRate decimal.Decimal, duration time.Duration, multiplier decimal.Decimal) decimal.Decimal {
	hours := decimal.NewFromInt(int64(duration / time.Minute)).
		Div(decimal.NewFromInt(60))
	return hourlyRate.Mul(hours).Mul(multiplier).Round(2)
}

package club

import (
	"time"

	"github.com/padelyzer/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound   = apperror.New(apperror.KindNotFound, "club not found")
	ErrNoSchedule = apperror.New(apperror.KindConfiguration, "club has no opening hours configured")
)

// PolicyTier identifies a cancellation-fee policy.
type PolicyTier string

const (
	PolicyFlexible PolicyTier = "flexible"
	PolicyModerate PolicyTier = "moderate"
	PolicyStrict   PolicyTier = "strict"
	PolicyCustom   PolicyTier = "custom"
)

// Club owns courts and defines the booking rules that bound slot generation
// and reservation creation.
type Club struct {
	ID                        string
	Name                      string
	AdvanceBookingDays        int
	MinBookingMinutes         int
	MaxBookingMinutes         int
	CancellationDeadlineHours int
	CancellationPolicy        PolicyTier
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// DaySchedule holds the opening hours for one weekday, as offsets from
// midnight. Closed days either carry the flag or are absent entirely.
type DaySchedule struct {
	Weekday time.Weekday
	Open    time.Duration
	Close   time.Duration
	Closed  bool
}

// FeeRule charges Percent of the reservation total when cancelling strictly
// less than Before ahead of the start time. Clubs on the custom policy tier
// store their own rule table; the built-in tiers have fixed rules.
type FeeRule struct {
	Before  time.Duration
	Percent int64
}

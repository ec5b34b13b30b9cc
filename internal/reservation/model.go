package reservation

import (
	"time"

	"github.com/padelyzer/booking-backend/internal/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound         = apperror.New(apperror.KindNotFound, "reservation not found")
	ErrInvalidTimeRange = apperror.New(apperror.KindValidation, "start time must be before end time")
	ErrStartTimePast    = apperror.New(apperror.KindValidation, "cannot create a reservation in the past")
	ErrAdvanceWindow    = apperror.New(apperror.KindValidation, "date exceeds the club's advance booking window")
	ErrCourtUnavailable = apperror.New(apperror.KindValidation, "court is inactive or under maintenance")
	ErrCancelDeadline   = apperror.New(apperror.KindValidation, "cancellation deadline has passed")
	ErrInvalidPattern   = apperror.New(apperror.KindValidation, "invalid recurrence pattern")

	// ErrSlotTaken is raised when the database exclusion constraint rejects
	// an insert that passed the application pre-check. Callers should
	// re-query availability instead of retrying the same slot.
	ErrSlotTaken = apperror.New(apperror.KindConflict, "time slot no longer available")
)

// Status is the lifecycle state of a reservation.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// ActiveStatuses are the statuses that occupy a court for conflict checking.
// The database exclusion constraint is scoped to the same set.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed}

// Active reports whether the status holds the time slot.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// PaymentStatus tracks payment progress, updated by the payment collaborator.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPartial  PaymentStatus = "partial"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

// Pattern is a recurrence cadence for recurring reservation series.
type Pattern string

const (
	PatternDaily    Pattern = "daily"
	PatternWeekly   Pattern = "weekly"
	PatternBiweekly Pattern = "biweekly"
	PatternMonthly  Pattern = "monthly"
)

// Reservation is a booking of one court for a [StartTime, EndTime) window.
// Invariant: no two reservations with active status may overlap on the same
// court and date.
type Reservation struct {
	ID          string
	CourtID     string
	ClubID      string
	ClientID    *string
	PlayerName  string
	PlayerEmail string
	PlayerPhone string

	Date      time.Time // midnight of the booked day
	StartTime time.Time
	EndTime   time.Time

	Status        Status
	PaymentStatus PaymentStatus
	PlayerCount   int
	TotalPrice    decimal.Decimal

	IsRecurring       bool
	RecurrencePattern Pattern
	ParentID          *string

	CancellationReason string
	CancellationFee    decimal.Decimal
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

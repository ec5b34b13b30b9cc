package block

import (
	"time"

	"github.com/padelyzer/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(apperror.KindNotFound, "blocked slot not found")
	ErrInvalidTimeRange = apperror.New(apperror.KindValidation, "block start time must be before end time")
	ErrInvalidReason    = apperror.New(apperror.KindValidation, "invalid block reason")
)

// Reason describes why a time range is administratively blocked.
type Reason string

const (
	ReasonMaintenance  Reason = "maintenance"
	ReasonTournament   Reason = "tournament"
	ReasonPrivateEvent Reason = "private_event"
)

// BlockedSlot is an administrator-created exclusion window. It behaves like
// a reservation for conflict checking but has no player or payment data.
// A nil CourtID blocks every court of the club.
type BlockedSlot struct {
	ID        string
	ClubID    string
	CourtID   *string
	StartTime time.Time
	EndTime   time.Time
	Reason    Reason
	Notes     string
	IsActive  bool
	CreatedAt time.Time
}

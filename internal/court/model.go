package court

import (
	"time"

	"github.com/padelyzer/booking-backend/internal/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = apperror.New(apperror.KindNotFound, "court not found")
	ErrEmptyName    = apperror.New(apperror.KindValidation, "court name cannot be empty")
	ErrInvalidClub  = apperror.New(apperror.KindValidation, "invalid club_id")
	ErrNegativeRate = apperror.New(apperror.KindValidation, "hourly rate must not be negative")
)

// Court represents a bookable padel court.
// Courts are never hard-deleted while reservations reference them;
// Delete soft-disables instead.
type Court struct {
	ID            string
	ClubID        string
	Name          string
	HourlyRate    decimal.Decimal
	MaxPlayers    int
	IsActive      bool
	InMaintenance bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Bookable reports whether the court currently accepts reservations.
func (c *Court) Bookable() bool {
	return c.IsActive && !c.InMaintenance
}

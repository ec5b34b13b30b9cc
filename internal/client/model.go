package client

import (
	"time"

	"github.com/padelyzer/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound   = apperror.New(apperror.KindNotFound, "client profile not found")
	ErrEmptyName  = apperror.New(apperror.KindValidation, "client name cannot be empty")
	ErrEmailTaken = apperror.New(apperror.KindValidation, "email already registered for this club")
)

// ClientProfile is a player known to a club. Reservations may reference one,
// but walk-in bookings carry plain contact fields instead.
type ClientProfile struct {
	ID        string
	ClubID    string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

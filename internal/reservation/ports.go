package reservation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Notifier receives fire-and-forget lifecycle signals. Delivery is owned by
// an external collaborator; errors are logged by the Manager, never
// propagated to the booking caller.
type Notifier interface {
	ReservationConfirmation(ctx context.Context, r *Reservation) error
	PaymentLink(ctx context.Context, r *Reservation) error
	CancellationNotice(ctx context.Context, r *Reservation) error
}

// PaymentProcessor records payment intents. Gateway communication is owned
// by an external collaborator.
type PaymentProcessor interface {
	// CreateSplitPayments creates shares equal-share payment placeholders
	// for the reservation total.
	CreateSplitPayments(ctx context.Context, reservationID string, total decimal.Decimal, shares int) error

	// ProcessRefund schedules a refund of amount for the reservation.
	ProcessRefund(ctx context.Context, reservationID string, amount decimal.Decimal) error
}

// LogNotifier logs lifecycle signals instead of delivering them. Used by
// the sweeper binary and anywhere no delivery channel is wired.
type LogNotifier struct {
	Log zerolog.Logger
}

func (n LogNotifier) ReservationConfirmation(ctx context.Context, r *Reservation) error {
	n.Log.Info().Str("reservation_id", r.ID).Str("player", r.PlayerName).Msg("confirmation signal")
	return nil
}

func (n LogNotifier) PaymentLink(ctx context.Context, r *Reservation) error {
	n.Log.Info().Str("reservation_id", r.ID).Msg("payment link signal")
	return nil
}

func (n LogNotifier) CancellationNotice(ctx context.Context, r *Reservation) error {
	n.Log.Info().Str("reservation_id", r.ID).Msg("cancellation signal")
	return nil
}

// LogPayments logs payment intents instead of recording them.
type LogPayments struct {
	Log zerolog.Logger
}

func (p LogPayments) CreateSplitPayments(ctx context.Context, reservationID string, total decimal.Decimal, shares int) error {
	p.Log.Info().
		Str("reservation_id", reservationID).
		Stringer("total", total).
		Int("shares", shares).
		Msg("split payment signal")
	return nil
}

func (p LogPayments) ProcessRefund(ctx context.Context, reservationID string, amount decimal.Decimal) error {
	p.Log.Info().
		Str("reservation_id", reservationID).
		Stringer("amount", amount).
		Msg("refund signal")
	return nil
}

package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/padelyzer/booking-backend/internal/club"
	"github.com/padelyzer/booking-backend/internal/court"
	"github.com/padelyzer/booking-backend/internal/pkg/apperror"
	"github.com/padelyzer/booking-backend/internal/pricing"
)

const defaultNoShowGrace = 30 * time.Minute

// RecurrenceSpec requests a recurring series: one child reservation per
// occurrence of the pattern up to and including Until.
type RecurrenceSpec struct {
	Pattern Pattern
	Until   time.Time
}

type CreateRequest struct {
	CourtID     string
	ClientID    *string
	PlayerName  string
	PlayerEmail string
	PlayerPhone string
	StartTime   time.Time
	EndTime     time.Time
	PlayerCount int

	// PriceOverride skips the pricing calculator when set.
	PriceOverride *decimal.Decimal

	// SplitShares > 1 creates that many equal-share payment placeholders.
	SplitShares int

	Recurrence *RecurrenceSpec
}

// SkippedOccurrence reports a recurring occurrence that could not be booked.
type SkippedOccurrence struct {
	Start  time.Time
	End    time.Time
	Reason string
}

// CreateResult carries the created reservation, any recurring children and
// the occurrences that were skipped because their slot was taken. When a
// recurring series fails partway, Create returns the partial result together
// with the error; everything listed in it is committed.
type CreateResult struct {
	Reservation *Reservation
	Children    []*Reservation
	Skipped     []SkippedOccurrence
}

// ManagerParams holds the collaborators of the Manager. Persistence,
// notification and payment are injected, never reached through globals.
type ManagerParams struct {
	Repo        Repository
	Checker     *Checker
	Courts      court.Service
	Clubs       club.Service
	Pricer      pricing.Calculator
	Notifier    Notifier
	Payments    PaymentProcessor
	NoShowGrace time.Duration
	Logger      zerolog.Logger
	Now         func() time.Time
}

// Manager orchestrates the reservation lifecycle: creation (with conflict
// checking and pricing), cancellation (with fee calculation and refunds),
// confirmation, completion and the no-show sweep.
type Manager struct {
	repo        Repository
	checker     *Checker
	courts      court.Service
	clubs       club.Service
	pricer      pricing.Calculator
	notifier    Notifier
	payments    PaymentProcessor
	noShowGrace time.Duration
	log         zerolog.Logger
	now         func() time.Time
}

func NewManager(p ManagerParams) *Manager {
	if p.NoShowGrace <= 0 {
		p.NoShowGrace = defaultNoShowGrace
	}
	if p.Now == nil {
		p.Now = func() time.Time { return time.Now().UTC() }
	}
	return &Manager{
		repo:        p.Repo,
		checker:     p.Checker,
		courts:      p.Courts,
		clubs:       p.Clubs,
		pricer:      p.Pricer,
		notifier:    p.Notifier,
		payments:    p.Payments,
		noShowGrace: p.NoShowGrace,
		log:         p.Logger,
		now:         p.Now,
	}
}

func (m *Manager) GetByID(ctx context.Context, id string) (*Reservation, error) {
	return m.repo.GetByID(ctx, id)
}

// Create validates the proposed window, pre-checks conflicts, prices the
// slot and persists the reservation. The database exclusion constraint
// backs the pre-check; a lost race surfaces as ErrSlotTaken.
func (m *Manager) Create(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	now := m.now()

	if !req.StartTime.Before(req.EndTime) {
		return nil, ErrInvalidTimeRange
	}
	if req.StartTime.Before(now) {
		return nil, ErrStartTimePast
	}

	c, err := m.courts.GetByID(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}
	if !c.Bookable() {
		return nil, ErrCourtUnavailable
	}

	clubCfg, err := m.clubs.GetByID(ctx, c.ClubID)
	if err != nil {
		return nil, err
	}

	if clubCfg.AdvanceBookingDays > 0 {
		horizon := now.AddDate(0, 0, clubCfg.AdvanceBookingDays)
		if req.StartTime.After(horizon) {
			return nil, ErrAdvanceWindow
		}
	}

	minutes := int(req.EndTime.Sub(req.StartTime) / time.Minute)
	if clubCfg.MinBookingMinutes > 0 && minutes < clubCfg.MinBookingMinutes {
		return nil, apperror.Newf(apperror.KindValidation,
			"booking duration %d min is below the club minimum of %d min", minutes, clubCfg.MinBookingMinutes)
	}
	if clubCfg.MaxBookingMinutes > 0 && minutes > clubCfg.MaxBookingMinutes {
		return nil, apperror.Newf(apperror.KindValidation,
			"booking duration %d min exceeds the club maximum of %d min", minutes, clubCfg.MaxBookingMinutes)
	}

	if req.PlayerCount < 1 || req.PlayerCount > c.MaxPlayers {
		return nil, apperror.Newf(apperror.KindValidation,
			"player count must be between 1 and %d", c.MaxPlayers)
	}

	// Cheap rejection before touching the write path. The exclusion
	// constraint remains the authoritative guard.
	conflict, err := m.checker.Check(ctx, c.ClubID, c.ID, dayOf(req.StartTime), req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, apperror.Newf(apperror.KindValidation, "time slot already booked: %s", conflict)
	}

	res := m.buildReservation(c, req, req.StartTime, req.EndTime)
	if req.Recurrence != nil {
		if _, err := advance(req.Recurrence.Pattern); err != nil {
			return nil, err
		}
		res.IsRecurring = true
		res.RecurrencePattern = req.Recurrence.Pattern
	}

	if err := m.repo.Create(ctx, res); err != nil {
		return nil, err
	}

	result := &CreateResult{Reservation: res}

	if req.Recurrence != nil {
		children, skipped, err := m.createRecurringChildren(ctx, c, req, res)
		result.Children = children
		result.Skipped = skipped
		if err != nil {
			// The parent and the children created so far are committed.
			// Hand them back with the error so the caller can reconcile
			// instead of discovering the orphaned series on retry.
			return result, err
		}
	}

	m.signalPayments(ctx, res, req.SplitShares)
	m.signalCreated(ctx, res)

	return result, nil
}

func (m *Manager) buildReservation(c *court.Court, req CreateRequest, start, end time.Time) *Reservation {
	price := m.pricer.Price(c.HourlyRate, start, end)
	if req.PriceOverride != nil {
		price = req.PriceOverride.Round(2)
	}
	return &Reservation{
		ID:              uuid.New().String(),
		CourtID:         c.ID,
		ClubID:          c.ClubID,
		ClientID:        req.ClientID,
		PlayerName:      req.PlayerName,
		PlayerEmail:     req.PlayerEmail,
		PlayerPhone:     req.PlayerPhone,
		Date:            dayOf(start),
		StartTime:       start,
		EndTime:         end,
		Status:          StatusPending,
		PaymentStatus:   PaymentPending,
		PlayerCount:     req.PlayerCount,
		TotalPrice:      price,
		CancellationFee: decimal.Zero,
	}
}

// createRecurringChildren books one child per occurrence after the parent.
// Occurrences whose slot is taken are reported as skipped, never silently
// dropped. On a mid-series failure it returns the children created so far
// together with the error; those rows are already committed.
func (m *Manager) createRecurringChildren(ctx context.Context, c *court.Court, req CreateRequest, parent *Reservation) ([]*Reservation, []SkippedOccurrence, error) {
	occurrences, err := Occurrences(parent.StartTime, parent.EndTime, req.Recurrence.Pattern, req.Recurrence.Until)
	if err != nil {
		return nil, nil, err
	}

	var children []*Reservation
	var skipped []SkippedOccurrence

	for _, occ := range occurrences {
		conflict, err := m.checker.Check(ctx, c.ClubID, c.ID, dayOf(occ.Start), occ.Start, occ.End)
		if err != nil {
			return children, skipped, err
		}
		if conflict != nil {
			skipped = append(skipped, SkippedOccurrence{
				Start:  occ.Start,
				End:    occ.End,
				Reason: conflict.String(),
			})
			continue
		}

		child := m.buildReservation(c, req, occ.Start, occ.End)
		child.ParentID = &parent.ID

		if err := m.repo.Create(ctx, child); err != nil {
			// A lost race on one occurrence skips it, same as a
			// failed pre-check.
			if apperror.IsKind(err, apperror.KindConflict) {
				skipped = append(skipped, SkippedOccurrence{
					Start:  occ.Start,
					End:    occ.End,
					Reason: ErrSlotTaken.Message,
				})
				continue
			}
			return children, skipped, err
		}
		children = append(children, child)
	}

	return children, skipped, nil
}

// Cancel transitions an active reservation to cancelled, computing the fee
// from the club's policy tier and scheduling a refund of total minus fee
// when a payment was captured.
func (m *Manager) Cancel(ctx context.Context, id, reason string, overrideDeadline bool) (*Reservation, error) {
	res, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !res.Status.Active() {
		return nil, apperror.Newf(apperror.KindValidation, "cannot cancel a %s reservation", res.Status)
	}

	clubCfg, err := m.clubs.GetByID(ctx, res.ClubID)
	if err != nil {
		return nil, err
	}

	now := m.now()
	untilStart := res.StartTime.Sub(now)

	deadline := time.Duration(clubCfg.CancellationDeadlineHours) * time.Hour
	if deadline > 0 && untilStart < deadline && !overrideDeadline {
		return nil, ErrCancelDeadline
	}

	var customRules []club.FeeRule
	if clubCfg.CancellationPolicy == club.PolicyCustom {
		customRules, err = m.clubs.CustomFeeRules(ctx, res.ClubID)
		if err != nil {
			return nil, err
		}
	}
	fee := CancellationFee(clubCfg.CancellationPolicy, customRules, untilStart, res.TotalPrice)

	fromStatus := res.Status
	captured := res.PaymentStatus == PaymentPaid || res.PaymentStatus == PaymentPartial

	refund := decimal.Zero
	if captured {
		refund = res.TotalPrice.Sub(fee)
	}

	res.Status = StatusCancelled
	res.CancellationReason = reason
	res.CancellationFee = fee
	res.CancelledAt = &now
	// A 100%-fee cancellation refunds nothing; the payment stays captured.
	if refund.IsPositive() {
		res.PaymentStatus = PaymentRefunded
	}

	if err := m.repo.Update(ctx, res, fromStatus); err != nil {
		return nil, err
	}

	if refund.IsPositive() {
		if err := m.payments.ProcessRefund(ctx, res.ID, refund); err != nil {
			m.log.Error().Err(err).Str("reservation_id", res.ID).Msg("refund signal failed")
		}
	}
	if err := m.notifier.CancellationNotice(ctx, res); err != nil {
		m.log.Warn().Err(err).Str("reservation_id", res.ID).Msg("cancellation notice failed")
	}

	return res, nil
}

// Confirm moves a pending reservation to confirmed, e.g. once payment
// clears.
func (m *Manager) Confirm(ctx context.Context, id string) (*Reservation, error) {
	res, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Status != StatusPending {
		return nil, apperror.Newf(apperror.KindValidation, "cannot confirm a %s reservation", res.Status)
	}

	res.Status = StatusConfirmed
	if err := m.repo.Update(ctx, res, StatusPending); err != nil {
		return nil, err
	}
	return res, nil
}

// Complete moves a confirmed reservation whose end time has passed to
// completed.
func (m *Manager) Complete(ctx context.Context, id string) (*Reservation, error) {
	res, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Status != StatusConfirmed {
		return nil, apperror.Newf(apperror.KindValidation, "cannot complete a %s reservation", res.Status)
	}
	if res.EndTime.After(m.now()) {
		return nil, apperror.New(apperror.KindValidation, "reservation has not ended yet")
	}

	res.Status = StatusCompleted
	if err := m.repo.Update(ctx, res, StatusConfirmed); err != nil {
		return nil, err
	}
	return res, nil
}

// MarkNoShows flips confirmed reservations whose end time passed the grace
// period to no_show. Invoked by the sweeper on a schedule.
func (m *Manager) MarkNoShows(ctx context.Context) ([]string, error) {
	cutoff := m.now().Add(-m.noShowGrace)
	ids, err := m.repo.MarkNoShows(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		m.log.Info().Int("count", len(ids)).Msg("marked no-show reservations")
	}
	return ids, nil
}

func (m *Manager) signalPayments(ctx context.Context, res *Reservation, shares int) {
	if shares > 1 {
		if err := m.payments.CreateSplitPayments(ctx, res.ID, res.TotalPrice, shares); err != nil {
			m.log.Error().Err(err).Str("reservation_id", res.ID).Msg("split payment signal failed")
		}
	}
}

func (m *Manager) signalCreated(ctx context.Context, res *Reservation) {
	if err := m.notifier.ReservationConfirmation(ctx, res); err != nil {
		m.log.Warn().Err(err).Str("reservation_id", res.ID).Msg("confirmation notice failed")
	}
	if res.PaymentStatus == PaymentPending {
		if err := m.notifier.PaymentLink(ctx, res); err != nil {
			m.log.Warn().Err(err).Str("reservation_id", res.ID).Msg("payment link notice failed")
		}
	}
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

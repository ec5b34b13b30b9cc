package availability

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/padelyzer/booking-backend/internal/club"
	"github.com/padelyzer/booking-backend/internal/court"
	"github.com/padelyzer/booking-backend/internal/pricing"
	"github.com/padelyzer/booking-backend/internal/reservation"
	"github.com/padelyzer/booking-backend/internal/slot"
)

// Slot is one candidate window annotated with availability and price.
type Slot struct {
	Start     time.Time
	End       time.Time
	Available bool
	// Reason names the conflicting reservation or block when unavailable.
	Reason string
	IsPeak bool
	Price  decimal.Decimal
}

// CourtAvailability is the slot list of one court.
type CourtAvailability struct {
	Court *court.Court
	Slots []Slot
}

// Request asks for candidate slots of the given duration for one club day.
// CourtID narrows the query to a single court. When SlotDuration is unset
// both it and an unset Step fall back to the configured defaults; when the
// request names its own duration, an unset Step tiles by that duration.
type Request struct {
	ClubID       string
	CourtID      string
	Date         time.Time
	SlotDuration time.Duration
	Step         time.Duration
}

// Service answers "what slots are free on date D" queries. Read-only; no
// persistence side effects.
type Service interface {
	Query(ctx context.Context, req Request) ([]CourtAvailability, error)
}

// Defaults supply the slot duration and step applied when a Request leaves
// them unset.
type Defaults struct {
	SlotDuration time.Duration
	Step         time.Duration
}

type service struct {
	courts   court.Service
	clubs    club.Service
	checker  *reservation.Checker
	pricer   pricing.Calculator
	defaults Defaults
	log      zerolog.Logger
}

func NewService(courts court.Service, clubs club.Service, checker *reservation.Checker, pricer pricing.Calculator, defaults Defaults, log zerolog.Logger) Service {
	return &service{
		courts:   courts,
		clubs:    clubs,
		checker:  checker,
		pricer:   pricer,
		defaults: defaults,
		log:      log,
	}
}

func (s *service) Query(ctx context.Context, req Request) ([]CourtAvailability, error) {
	duration := req.SlotDuration
	step := req.Step
	if duration <= 0 {
		// Only a fully defaulted request picks up the configured step; a
		// request naming its own duration tiles by that duration below.
		duration = s.defaults.SlotDuration
		if step <= 0 {
			step = s.defaults.Step
		}
	}
	if duration <= 0 {
		return nil, errors.New("slot duration must be positive")
	}
	if step <= 0 {
		step = duration
	}

	open, close, err := s.clubs.OpeningHours(ctx, req.ClubID, req.Date)
	if err != nil {
		if errors.Is(err, club.ErrNoSchedule) {
			// Fail closed: unconfigured clubs offer no slots.
			s.log.Warn().Str("club_id", req.ClubID).Msg("availability query on unconfigured club")
			return nil, nil
		}
		return nil, err
	}

	courts, err := s.resolveCourts(ctx, req)
	if err != nil {
		return nil, err
	}

	windows := slot.Generate(open, close, duration, step)

	result := make([]CourtAvailability, 0, len(courts))
	for _, c := range courts {
		sheet, err := s.checker.DaySheet(ctx, req.ClubID, c.ID, req.Date)
		if err != nil {
			return nil, err
		}

		slots := make([]Slot, 0, len(windows))
		for _, w := range windows {
			annotated := Slot{
				Start:  w.Start,
				End:    w.End,
				IsPeak: s.pricer.IsPeak(w.Start),
				Price:  s.pricer.Price(c.HourlyRate, w.Start, w.End),
			}
			if conflict := sheet.Conflict(w.Start, w.End); conflict != nil {
				annotated.Reason = conflict.String()
			} else {
				annotated.Available = true
			}
			slots = append(slots, annotated)
		}

		result = append(result, CourtAvailability{Court: c, Slots: slots})
	}

	return result, nil
}

func (s *service) resolveCourts(ctx context.Context, req Request) ([]*court.Court, error) {
	if req.CourtID != "" {
		c, err := s.courts.GetByID(ctx, req.CourtID)
		if err != nil {
			return nil, err
		}
		if !c.Bookable() {
			return nil, nil
		}
		return []*court.Court{c}, nil
	}

	all, err := s.courts.ListByClub(ctx, req.ClubID)
	if err != nil {
		return nil, err
	}
	bookable := make([]*court.Court, 0, len(all))
	for _, c := range all {
		if c.Bookable() {
			bookable = append(bookable, c)
		}
	}
	return bookable, nil
}

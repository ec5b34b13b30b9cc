package club

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type Service interface {
	GetByID(ctx context.Context, id string) (*Club, error)

	// OpeningHours resolves the opening and closing timestamps of the club
	// for the given date. It fails closed with ErrNoSchedule when the club
	// has no schedule or no entry for the date's weekday.
	OpeningHours(ctx context.Context, clubID string, date time.Time) (open, close time.Time, err error)

	// CustomFeeRules returns the cancellation-fee rule table for clubs on
	// the custom policy tier.
	CustomFeeRules(ctx context.Context, clubID string) ([]FeeRule, error)
}

type service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) Service {
	return &service{
		repo: repo,
		log:  log,
	}
}

func (s *service) GetByID(ctx context.Context, id string) (*Club, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) CustomFeeRules(ctx context.Context, clubID string) ([]FeeRule, error) {
	return s.repo.GetCustomFeeRules(ctx, clubID)
}

func (s *service) OpeningHours(ctx context.Context, clubID string, date time.Time) (time.Time, time.Time, error) {
	schedule, err := s.repo.GetSchedule(ctx, clubID)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if len(schedule) == 0 {
		// Missing configuration must never turn into guessed defaults.
		s.log.Warn().
			Str("club_id", clubID).
			Msg("club has no schedule configured, failing closed")
		return time.Time{}, time.Time{}, ErrNoSchedule
	}

	for _, day := range schedule {
		if day.Weekday != date.Weekday() {
			continue
		}
		midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		if day.Closed {
			// Closed day: open == close yields an empty slot sequence downstream.
			return midnight, midnight, nil
		}
		return midnight.Add(day.Open), midnight.Add(day.Close), nil
	}

	s.log.Warn().
		Str("club_id", clubID).
		Stringer("weekday", date.Weekday()).
		Msg("club schedule has no entry for weekday, failing closed")
	return time.Time{}, time.Time{}, ErrNoSchedule
}

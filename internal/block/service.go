package block

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type CreateRequest struct {
	ClubID    string
	CourtID   *string // nil blocks all courts of the club
	StartTime time.Time
	EndTime   time.Time
	Reason    Reason
	Notes     string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*BlockedSlot, error)
	ListForCourtDate(ctx context.Context, clubID, courtID string, date time.Time) ([]*BlockedSlot, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*BlockedSlot, error) {
	if !req.StartTime.Before(req.EndTime) {
		return nil, ErrInvalidTimeRange
	}
	switch req.Reason {
	case ReasonMaintenance, ReasonTournament, ReasonPrivateEvent:
	default:
		return nil, ErrInvalidReason
	}

	b := &BlockedSlot{
		ID:        uuid.New().String(),
		ClubID:    req.ClubID,
		CourtID:   req.CourtID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
		Notes:     req.Notes,
		IsActive:  true,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) ListForCourtDate(ctx context.Context, clubID, courtID string, date time.Time) ([]*BlockedSlot, error) {
	return s.repo.ListForCourtDate(ctx, clubID, courtID, date)
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}

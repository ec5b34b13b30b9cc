package court

import (
	"context"
	"strings"

	"github.com/padelyzer/booking-backend/internal/club"
	"github.com/shopspring/decimal"
)

const defaultMaxPlayers = 4

type CreateRequest struct {
	ClubID     string
	Name       string
	HourlyRate decimal.Decimal
	MaxPlayers int
}

type UpdateRequest struct {
	Name          *string
	HourlyRate    *decimal.Decimal
	MaxPlayers    *int
	InMaintenance *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Court, error)
	GetByID(ctx context.Context, id string) (*Court, error)
	ListByClub(ctx context.Context, clubID string) ([]*Court, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Court, error)

	// Deactivate soft-disables the court. Courts referenced by
	// reservations are never hard-deleted.
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	repo        Repository
	clubService club.Service
}

func NewService(repo Repository, clubService club.Service) Service {
	return &service{
		repo:        repo,
		clubService: clubService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Court, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.ClubID == "" {
		return nil, ErrInvalidClub
	}
	if req.HourlyRate.IsNegative() {
		return nil, ErrNegativeRate
	}

	// Validation: Check if Club exists
	if _, err := s.clubService.GetByID(ctx, req.ClubID); err != nil {
		return nil, ErrInvalidClub
	}

	maxPlayers := req.MaxPlayers
	if maxPlayers <= 0 {
		maxPlayers = defaultMaxPlayers
	}

	c := &Court{
		ClubID:     req.ClubID,
		Name:       req.Name,
		HourlyRate: req.HourlyRate,
		MaxPlayers: maxPlayers,
		IsActive:   true,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Court, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByClub(ctx context.Context, clubID string) ([]*Court, error) {
	return s.repo.ListByClub(ctx, clubID)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Court, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		c.Name = *req.Name
	}
	if req.HourlyRate != nil {
		if req.HourlyRate.IsNegative() {
			return nil, ErrNegativeRate
		}
		c.HourlyRate = *req.HourlyRate
	}
	if req.MaxPlayers != nil && *req.MaxPlayers > 0 {
		c.MaxPlayers = *req.MaxPlayers
	}
	if req.InMaintenance != nil {
		c.InMaintenance = *req.InMaintenance
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.IsActive = false
	return s.repo.Update(ctx, c)
}

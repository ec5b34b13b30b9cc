package client

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type CreateRequest struct {
	ClubID string
	Name   string
	Email  string
	Phone  string
}

type UpdateRequest struct {
	Name  *string
	Email *string
	Phone *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*ClientProfile, error)
	GetByID(ctx context.Context, id string) (*ClientProfile, error)
	ListByClub(ctx context.Context, clubID string) ([]*ClientProfile, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*ClientProfile, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*ClientProfile, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	p := &ClientProfile{
		ID:     uuid.New().String(),
		ClubID: req.ClubID,
		Name:   strings.TrimSpace(req.Name),
		Email:  strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:  strings.TrimSpace(req.Phone),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*ClientProfile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByClub(ctx context.Context, clubID string) ([]*ClientProfile, error) {
	return s.repo.ListByClub(ctx, clubID)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*ClientProfile, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		p.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		p.Phone = strings.TrimSpace(*req.Phone)
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

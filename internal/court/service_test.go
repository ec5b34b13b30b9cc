package court

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padelyzer/booking-backend/internal/club"
)

type fakeRepo struct {
	items map[string]*Court
}

func (f *fakeRepo) Create(ctx context.Context, c *Court) error {
	c.ID = "court-1"
	f.items[c.ID] = c
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Court, error) {
	c, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeRepo) ListByClub(ctx context.Context, clubID string) ([]*Court, error) {
	var out []*Court
	for _, c := range f.items {
		if c.ClubID == clubID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, c *Court) error {
	if _, ok := f.items[c.ID]; !ok {
		return ErrNotFound
	}
	cp := *c
	f.items[c.ID] = &cp
	return nil
}

type fakeClubs struct {
	exists bool
}

func (f fakeClubs) GetByID(ctx context.Context, id string) (*club.Club, error) {
	if !f.exists {
		return nil, club.ErrNotFound
	}
	return &club.Club{ID: id}, nil
}

func (f fakeClubs) OpeningHours(ctx context.Context, clubID string, date time.Time) (time.Time, time.Time, error) {
	panic("not used")
}

func (f fakeClubs) CustomFeeRules(ctx context.Context, clubID string) ([]club.FeeRule, error) {
	panic("not used")
}

func newTestService(clubExists bool) (Service, *fakeRepo) {
	repo := &fakeRepo{items: map[string]*Court{}}
	return NewService(repo, fakeClubs{exists: clubExists}), repo
}

func TestCreateCourt(t *testing.T) {
	svc, _ := newTestService(true)

	c, err := svc.Create(context.Background(), CreateRequest{
		ClubID:     "club-1",
		Name:       "Court 1",
		HourlyRate: decimal.NewFromInt(300),
	})
	require.NoError(t, err)
	assert.True(t, c.IsActive)
	assert.Equal(t, 4, c.MaxPlayers, "defaults to a full padel court")
	assert.True(t, c.Bookable())
}

func TestCreateCourtValidation(t *testing.T) {
	svc, _ := newTestService(true)

	_, err := svc.Create(context.Background(), CreateRequest{ClubID: "club-1", Name: "  "})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = svc.Create(context.Background(), CreateRequest{
		ClubID: "club-1", Name: "Court 1", HourlyRate: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, ErrNegativeRate)

	missing, _ := newTestService(false)
	_, err = missing.Create(context.Background(), CreateRequest{
		ClubID: "club-x", Name: "Court 1", HourlyRate: decimal.NewFromInt(300),
	})
	assert.ErrorIs(t, err, ErrInvalidClub)
}

func TestMaintenanceAndDeactivation(t *testing.T) {
	svc, _ := newTestService(true)

	c, err := svc.Create(context.Background(), CreateRequest{
		ClubID: "club-1", Name: "Court 1", HourlyRate: decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	inMaintenance := true
	updated, err := svc.Update(context.Background(), c.ID, UpdateRequest{InMaintenance: &inMaintenance})
	require.NoError(t, err)
	assert.False(t, updated.Bookable())

	require.NoError(t, svc.Deactivate(context.Background(), c.ID))
	got, err := svc.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

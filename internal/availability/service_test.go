package availability

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padelyzer/booking-backend/internal/block"
	"github.com/padelyzer/booking-backend/internal/club"
	"github.com/padelyzer/booking-backend/internal/court"
	"github.com/padelyzer/booking-backend/internal/pricing"
	"github.com/padelyzer/booking-backend/internal/reservation"
)

// Tuesday 2026-02-10.
func at(hour, min int) time.Time {
	return time.Date(2026, 2, 10, hour, min, 0, 0, time.UTC)
}

type fakeCourts struct {
	courts []*court.Court
}

func (f fakeCourts) Create(ctx context.Context, req court.CreateRequest) (*court.Court, error) {
	panic("not used")
}

func (f fakeCourts) GetByID(ctx context.Context, id string) (*court.Court, error) {
	for _, c := range f.courts {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, court.ErrNotFound
}

func (f fakeCourts) ListByClub(ctx context.Context, clubID string) ([]*court.Court, error) {
	var out []*court.Court
	for _, c := range f.courts {
		if c.ClubID == clubID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f fakeCourts) Update(ctx context.Context, id string, req court.UpdateRequest) (*court.Court, error) {
	panic("not used")
}

func (f fakeCourts) Deactivate(ctx context.Context, id string) error {
	panic("not used")
}

type fakeClubs struct {
	noSchedule bool
}

func (f fakeClubs) GetByID(ctx context.Context, id string) (*club.Club, error) {
	return &club.Club{ID: id}, nil
}

func (f fakeClubs) OpeningHours(ctx context.Context, clubID string, date time.Time) (time.Time, time.Time, error) {
	if f.noSchedule {
		return time.Time{}, time.Time{}, club.ErrNoSchedule
	}
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return midnight.Add(8 * time.Hour), midnight.Add(22 * time.Hour), nil
}

func (f fakeClubs) CustomFeeRules(ctx context.Context, clubID string) ([]club.FeeRule, error) {
	return nil, nil
}

type fakeReservations struct {
	items []*reservation.Reservation
}

func (f fakeReservations) ListForCourtDate(ctx context.Context, courtID string, date time.Time, statuses []reservation.Status) ([]*reservation.Reservation, error) {
	var out []*reservation.Reservation
	for _, r := range f.items {
		if r.CourtID != courtID {
			continue
		}
		for _, st := range statuses {
			if r.Status == st {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}

type fakeBlocks struct {
	items []*block.BlockedSlot
}

func (f fakeBlocks) ListForCourtDate(ctx context.Context, clubID, courtID string, date time.Time) ([]*block.BlockedSlot, error) {
	return f.items, nil
}

func newService(clubs fakeClubs, courts []*court.Court, reservations []*reservation.Reservation, blocks []*block.BlockedSlot) Service {
	checker := reservation.NewChecker(
		fakeReservations{items: reservations},
		fakeBlocks{items: blocks},
	)
	return NewService(
		fakeCourts{courts: courts},
		clubs,
		checker,
		pricing.NewDefaultCalculator(),
		Defaults{SlotDuration: 90 * time.Minute, Step: 30 * time.Minute},
		zerolog.Nop(),
	)
}

func testCourt() *court.Court {
	return &court.Court{
		ID:         "court-1",
		ClubID:     "club-1",
		Name:       "Court 1",
		HourlyRate: decimal.NewFromInt(300),
		MaxPlayers: 4,
		IsActive:   true,
	}
}

func TestQueryAnnotatesSlotsAroundExistingReservation(t *testing.T) {
	existing := &reservation.Reservation{
		ID:        "res-1",
		CourtID:   "court-1",
		Status:    reservation.StatusConfirmed,
		Date:      at(0, 0),
		StartTime: at(14, 0),
		EndTime:   at(15, 30),
	}

	svc := newService(fakeClubs{}, []*court.Court{testCourt()},
		[]*reservation.Reservation{existing}, nil)

	result, err := svc.Query(context.Background(), Request{
		ClubID:       "club-1",
		Date:         at(0, 0),
		SlotDuration: time.Hour,
		Step:         30 * time.Minute,
	})
	require.NoError(t, err)
	require.Len(t, result, 1)

	// Open 08:00-22:00, 60-minute slots every 30 minutes: 27 candidates.
	slots := result[0].Slots
	require.Len(t, slots, 27)

	byStart := make(map[time.Time]Slot, len(slots))
	for _, s := range slots {
		byStart[s.Start] = s
	}

	for _, start := range []time.Time{at(13, 30), at(14, 0), at(14, 30), at(15, 0)} {
		s, ok := byStart[start]
		require.True(t, ok, "missing slot at %v", start)
		assert.False(t, s.Available, "slot at %v must be unavailable", start)
		assert.NotEmpty(t, s.Reason)
	}
	for _, start := range []time.Time{at(13, 0), at(15, 30)} {
		s, ok := byStart[start]
		require.True(t, ok, "missing slot at %v", start)
		assert.True(t, s.Available, "slot at %v must be available", start)
		assert.Empty(t, s.Reason)
	}

	// 60 minutes at 300/hr is exactly 300 on and off peak (multiplier 1).
	assert.True(t, byStart[at(13, 0)].Price.Equal(decimal.NewFromInt(300)))

	// Weekday evening slots carry the peak flag.
	assert.False(t, byStart[at(17, 30)].IsPeak)
	assert.True(t, byStart[at(18, 0)].IsPeak)
	assert.True(t, byStart[at(21, 0)].IsPeak)
}

func TestQueryFailsClosedWithoutSchedule(t *testing.T) {
	svc := newService(fakeClubs{noSchedule: true}, []*court.Court{testCourt()}, nil, nil)

	result, err := svc.Query(context.Background(), Request{
		ClubID:       "club-1",
		Date:         at(0, 0),
		SlotDuration: time.Hour,
	})
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestQuerySkipsUnbookableCourts(t *testing.T) {
	open := testCourt()
	closed := testCourt()
	closed.ID = "court-2"
	closed.InMaintenance = true

	svc := newService(fakeClubs{}, []*court.Court{open, closed}, nil, nil)

	result, err := svc.Query(context.Background(), Request{
		ClubID:       "club-1",
		Date:         at(0, 0),
		SlotDuration: time.Hour,
	})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "court-1", result[0].Court.ID)
}

func TestQuerySingleCourtStepDefaultsToDuration(t *testing.T) {
	svc := newService(fakeClubs{}, []*court.Court{testCourt()}, nil, nil)

	result, err := svc.Query(context.Background(), Request{
		ClubID:       "club-1",
		CourtID:      "court-1",
		Date:         at(0, 0),
		SlotDuration: 2 * time.Hour,
	})
	require.NoError(t, err)
	require.Len(t, result, 1)

	// 08:00-22:00 tiled by 2-hour slots: 7 of them, all free.
	slots := result[0].Slots
	require.Len(t, slots, 7)
	for _, s := range slots {
		assert.True(t, s.Available)
	}
	assert.Equal(t, at(8, 0), slots[0].Start)
	assert.Equal(t, at(22, 0), slots[6].End)
}

func TestQueryUsesConfiguredDefaults(t *testing.T) {
	svc := newService(fakeClubs{}, []*court.Court{testCourt()}, nil, nil)

	result, err := svc.Query(context.Background(), Request{
		ClubID: "club-1",
		Date:   at(0, 0),
	})
	require.NoError(t, err)
	require.Len(t, result, 1)

	// 08:00-22:00, 90-minute slots every 30 minutes: 26 candidates.
	slots := result[0].Slots
	require.Len(t, slots, 26)
	assert.Equal(t, at(9, 30), slots[0].End)
	assert.Equal(t, at(22, 0), slots[25].End)
}

func TestQueryBlockedByClubWideBlock(t *testing.T) {
	blk := &block.BlockedSlot{
		ID:        "blk-1",
		ClubID:    "club-1",
		StartTime: at(8, 0),
		EndTime:   at(22, 0),
		Reason:    block.ReasonTournament,
		IsActive:  true,
	}
	svc := newService(fakeClubs{}, []*court.Court{testCourt()}, nil, []*block.BlockedSlot{blk})

	result, err := svc.Query(context.Background(), Request{
		ClubID:       "club-1",
		Date:         at(0, 0),
		SlotDuration: time.Hour,
	})
	require.NoError(t, err)
	require.Len(t, result, 1)
	for _, s := range result[0].Slots {
		assert.False(t, s.Available)
		assert.Contains(t, s.Reason, "tournament")
	}
}

package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padelyzer/booking-backend/internal/block"
)

type staticReservations struct {
	items []*Reservation
}

func (s staticReservations) ListForCourtDate(ctx context.Context, courtID string, date time.Time, statuses []Status) ([]*Reservation, error) {
	var out []*Reservation
	for _, r := range s.items {
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

type staticBlocks struct {
	items []*block.BlockedSlot
}

func (s staticBlocks) ListForCourtDate(ctx context.Context, clubID, courtID string, date time.Time) ([]*block.BlockedSlot, error) {
	var out []*block.BlockedSlot
	for _, b := range s.items {
		if !b.IsActive || b.ClubID != clubID {
			continue
		}
		if b.CourtID != nil && *b.CourtID != courtID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func ts(hour, min int) time.Time {
	return time.Date(2026, 2, 10, hour, min, 0, 0, time.UTC)
}

func TestDaySheetConflict(t *testing.T) {
	existing := &Reservation{
		ID:        "res-1",
		CourtID:   "court-1",
		Status:    StatusConfirmed,
		StartTime: ts(11, 0),
		EndTime:   ts(12, 0),
	}
	sheet := &DaySheet{reservations: []*Reservation{existing}}

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		conflict bool
	}{
		{"ends exactly at existing start is allowed", ts(10, 0), ts(11, 0), false},
		{"starts exactly at existing end is allowed", ts(12, 0), ts(13, 0), false},
		{"overlaps the tail", ts(10, 30), ts(11, 30), true},
		{"overlaps the head", ts(11, 30), ts(12, 30), true},
		{"fully contains existing", ts(10, 0), ts(13, 0), true},
		{"contained by existing", ts(11, 15), ts(11, 45), true},
		{"identical window", ts(11, 0), ts(12, 0), true},
		{"disjoint before", ts(8, 0), ts(9, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sheet.Conflict(tt.start, tt.end)
			if tt.conflict {
				require.NotNil(t, got)
				assert.Equal(t, ConflictReservation, got.Kind)
				assert.Equal(t, "res-1", got.ID)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestCheckerIncludesBlocks(t *testing.T) {
	courtID := "court-1"
	checker := NewChecker(
		staticReservations{},
		staticBlocks{items: []*block.BlockedSlot{
			{
				ID:        "blk-court",
				ClubID:    "club-1",
				CourtID:   &courtID,
				StartTime: ts(9, 0),
				EndTime:   ts(10, 0),
				Reason:    block.ReasonMaintenance,
				IsActive:  true,
			},
			{
				ID:        "blk-club",
				ClubID:    "club-1",
				CourtID:   nil, // club-wide
				StartTime: ts(15, 0),
				EndTime:   ts(17, 0),
				Reason:    block.ReasonTournament,
				IsActive:  true,
			},
		}},
	)

	date := ts(0, 0)

	conflict, err := checker.Check(context.Background(), "club-1", courtID, date, ts(9, 30), ts(10, 30))
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, ConflictBlock, conflict.Kind)
	assert.Equal(t, "maintenance", conflict.Detail)

	// Club-wide blocks apply to every court.
	conflict, err = checker.Check(context.Background(), "club-1", "court-2", date, ts(16, 0), ts(17, 0))
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, "blk-club", conflict.ID)

	// Adjacent to the block is fine.
	conflict, err = checker.Check(context.Background(), "club-1", courtID, date, ts(10, 0), ts(11, 0))
	require.NoError(t, err)
	assert.Nil(t, conflict)
}

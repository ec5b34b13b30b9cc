package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/padelyzer/booking-backend/internal/block"
)

// ConflictKind tells what occupies a conflicting interval.
type ConflictKind string

const (
	ConflictReservation ConflictKind = "reservation"
	ConflictBlock       ConflictKind = "block"
)

// Conflict describes the first existing interval that overlaps a candidate
// window, for diagnostics.
type Conflict struct {
	Kind  ConflictKind
	ID    string
	Start time.Time
	End   time.Time
	// Detail carries the block reason for block conflicts.
	Detail string
}

func (c *Conflict) String() string {
	if c.Kind == ConflictBlock {
		return fmt.Sprintf("blocked (%s) %s-%s", c.Detail,
			c.Start.Format("15:04"), c.End.Format("15:04"))
	}
	return fmt.Sprintf("reserved %s-%s",
		c.Start.Format("15:04"), c.End.Format("15:04"))
}

// ActiveLister fetches reservations that occupy a court on a date.
type ActiveLister interface {
	ListForCourtDate(ctx context.Context, courtID string, date time.Time, statuses []Status) ([]*Reservation, error)
}

// BlockSource fetches active administrative blocks covering a court on a date.
type BlockSource interface {
	ListForCourtDate(ctx context.Context, clubID, courtID string, date time.Time) ([]*block.BlockedSlot, error)
}

// Checker answers whether a candidate window is free of active reservations
// and administrative blocks. It is a pre-check only: the database exclusion
// constraint remains the final arbiter on insert.
type Checker struct {
	reservations ActiveLister
	blocks       BlockSource
}

func NewChecker(reservations ActiveLister, blocks BlockSource) *Checker {
	return &Checker{
		reservations: reservations,
		blocks:       blocks,
	}
}

// Check fetches the day's occupied intervals and tests one candidate window.
// It returns nil when the window is free.
func (c *Checker) Check(ctx context.Context, clubID, courtID string, date time.Time, start, end time.Time) (*Conflict, error) {
	sheet, err := c.DaySheet(ctx, clubID, courtID, date)
	if err != nil {
		return nil, err
	}
	return sheet.Conflict(start, end), nil
}

// DaySheet loads the occupied intervals of one court for one day so that
// many candidate windows can be tested without further queries.
func (c *Checker) DaySheet(ctx context.Context, clubID, courtID string, date time.Time) (*DaySheet, error) {
	reservations, err := c.reservations.ListForCourtDate(ctx, courtID, date, ActiveStatuses)
	if err != nil {
		return nil, fmt.Errorf("list active reservations failed: %w", err)
	}
	blocks, err := c.blocks.ListForCourtDate(ctx, clubID, courtID, date)
	if err != nil {
		return nil, fmt.Errorf("list blocked slots failed: %w", err)
	}
	return &DaySheet{reservations: reservations, blocks: blocks}, nil
}

// DaySheet holds one court-day's occupied intervals.
type DaySheet struct {
	reservations []*Reservation
	blocks       []*block.BlockedSlot
}

// Conflict returns the first occupied interval overlapping the candidate
// [start, end) window, or nil when the window is free. The test is half-open:
// a window ending exactly when another starts is not a conflict.
func (s *DaySheet) Conflict(start, end time.Time) *Conflict {
	for _, r := range s.reservations {
		if overlaps(start, end, r.StartTime, r.EndTime) {
			return &Conflict{
				Kind:  ConflictReservation,
				ID:    r.ID,
				Start: r.StartTime,
				End:   r.EndTime,
			}
		}
	}
	for _, b := range s.blocks {
		if overlaps(start, end, b.StartTime, b.EndTime) {
			return &Conflict{
				Kind:   ConflictBlock,
				ID:     b.ID,
				Start:  b.StartTime,
				End:    b.EndTime,
				Detail: string(b.Reason),
			}
		}
	}
	return nil
}

// overlaps is the standard half-open interval test:
// [aStart, aEnd) overlaps [bStart, bEnd) iff aStart < bEnd && aEnd > bStart.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

package reservation

import "time"

// Occurrence is one concrete window of a recurring series.
type Occurrence struct {
	Start time.Time
	End   time.Time
}

// maxOccurrences caps runaway series (e.g. a daily pattern with a far-out
// end date supplied by mistake).
const maxOccurrences = 366

// Occurrences expands a recurrence pattern into the follow-up windows after
// the first occurrence, up to and including any occurrence starting on the
// until date. The first occurrence itself is not included. Every step is
// taken from the series start, so monthly series keep their day-of-month
// instead of drifting after a short month.
func Occurrences(start, end time.Time, pattern Pattern, until time.Time) ([]Occurrence, error) {
	step, err := advance(pattern)
	if err != nil {
		return nil, err
	}

	duration := end.Sub(start)
	var out []Occurrence
	for n := 1; ; n++ {
		next := step(start, n)
		if next.After(until) {
			break
		}
		out = append(out, Occurrence{Start: next, End: next.Add(duration)})
		if len(out) >= maxOccurrences {
			break
		}
	}
	return out, nil
}

func advance(pattern Pattern) (func(start time.Time, n int) time.Time, error) {
	switch pattern {
	case PatternDaily:
		return func(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) }, nil
	case PatternWeekly:
		return func(t time.Time, n int) time.Time { return t.AddDate(0, 0, 7*n) }, nil
	case PatternBiweekly:
		return func(t time.Time, n int) time.Time { return t.AddDate(0, 0, 14*n) }, nil
	case PatternMonthly:
		return addMonthsClamped, nil
	default:
		return nil, ErrInvalidPattern
	}
}

// addMonthsClamped adds n months keeping the day-of-month, clamped to the
// last day of shorter target months (Jan 31 -> Feb 28 -> Mar 31). Plain
// AddDate would normalize Jan 31 + 1 month into Mar 3.
func addMonthsClamped(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(n), 1,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

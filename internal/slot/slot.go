package slot

import "time"

// Window is a half-open [Start, End) candidate booking interval.
type Window struct {
	Start time.Time
	End   time.Time
}

// Generate produces the ordered candidate windows of the given duration for
// one day, stepping forward by step from the opening time. The step may be
// smaller than the duration to surface more granular start options (e.g.
// 90-minute slots offered every 30 minutes). Generation stops as soon as a
// window would end after the closing time.
//
// open and close are absolute timestamps on the day being queried. If the
// club is closed (open >= close) the result is empty; that is not an error.
func Generate(open, close time.Time, duration, step time.Duration) []Window {
	if duration <= 0 || step <= 0 {
		return nil
	}
	if !open.Before(close) {
		return nil
	}

	var windows []Window
	for start := open; !start.Add(duration).After(close); start = start.Add(step) {
		windows = append(windows, Window{
			Start: start,
			End:   start.Add(duration),
		})
	}
	return windows
}

package slot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 2, 10, hour, min, 0, 0, time.UTC)
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		open     time.Time
		close    time.Time
		duration time.Duration
		step     time.Duration
		want     []Window
	}{
		{
			name:     "90 minute slots every 30 minutes",
			open:     at(9, 0),
			close:    at(11, 0),
			duration: 90 * time.Minute,
			step:     30 * time.Minute,
			want: []Window{
				{Start: at(9, 0), End: at(10, 30)},
				{Start: at(9, 30), End: at(11, 0)},
			},
		},
		{
			name:     "step equal to duration tiles the day",
			open:     at(8, 0),
			close:    at(10, 0),
			duration: time.Hour,
			step:     time.Hour,
			want: []Window{
				{Start: at(8, 0), End: at(9, 0)},
				{Start: at(9, 0), End: at(10, 0)},
			},
		},
		{
			name:     "closed day yields nothing",
			open:     at(9, 0),
			close:    at(9, 0),
			duration: time.Hour,
			step:     30 * time.Minute,
			want:     nil,
		},
		{
			name:     "open after close yields nothing",
			open:     at(18, 0),
			close:    at(9, 0),
			duration: time.Hour,
			step:     30 * time.Minute,
			want:     nil,
		},
		{
			name:     "duration longer than the day yields nothing",
			open:     at(9, 0),
			close:    at(10, 0),
			duration: 2 * time.Hour,
			step:     30 * time.Minute,
			want:     nil,
		},
		{
			name:     "non-positive step yields nothing",
			open:     at(9, 0),
			close:    at(12, 0),
			duration: time.Hour,
			step:     0,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.open, tt.close, tt.duration, tt.step)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateNoWindowPastClose(t *testing.T) {
	windows := Generate(at(8, 0), at(22, 0), 90*time.Minute, 30*time.Minute)
	for _, w := range windows {
		assert.False(t, w.End.After(at(22, 0)), "window %v ends after closing", w)
	}
}

package study

import (
	"testing"
	"time"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    string
	}{
		{name: "zero", seconds: 0, want: "0:00"},
		{name: "under a minute", seconds: 7, want: "0:07"},
		{name: "over a minute", seconds: 65, want: "1:05"},
		{name: "exact minutes", seconds: 600, want: "10:00"},
		{name: "over an hour keeps minutes", seconds: 3725, want: "62:05"},
		{name: "negative clamps to zero", seconds: -3, want: "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatElapsed(tt.seconds); got != tt.want {
				t.Errorf("FormatElapsed(%d) = %v, want %v", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestSessionTimerElapsed(t *testing.T) {
	timer := NewSessionTimer(time.Now().Add(-65 * time.Second))
	defer timer.Stop()

	got := timer.Elapsed()
	if got < 65 || got > 66 {
		t.Errorf("Elapsed() = %d, want ~65", got)
	}
	if formatted := timer.Formatted(); formatted != "1:05" && formatted != "1:06" {
		t.Errorf("Formatted() = %v, want 1:05", formatted)
	}
}

func TestSessionTimerStopIsIdempotent(t *testing.T) {
	timer := NewSessionTimer(time.Now())
	timer.Stop()
	timer.Stop() // must not panic
}

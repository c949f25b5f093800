package study

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// SessionTimer tracks whole seconds elapsed since a session started,
// recomputing once per second while running.
//
// The delta is taken against the wall clock rather than the monotonic
// clock, so a system clock change shifts the reported elapsed time.
// That mirrors the behavior the browser client always had; callers
// should treat the value as display-only.
type SessionTimer struct {
	start   time.Time
	elapsed atomic.Int64

	done     chan struct{}
	stopOnce sync.Once
}

// NewSessionTimer starts a timer ticking from the given start instant
func NewSessionTimer(start time.Time) *SessionTimer {
	t := &SessionTimer{
		// Round(0) strips the monotonic reading so Sub uses wall time
		start: start.Round(0),
		done:  make(chan struct{}),
	}
	t.refresh()

	go t.run()
	return t
}

func (t *SessionTimer) run() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.refresh()
		case <-t.done:
			return
		}
	}
}

func (t *SessionTimer) refresh() {
	seconds := int64(time.Now().Round(0).Sub(t.start).Seconds())
	t.elapsed.Store(seconds)
}

// Elapsed returns the whole seconds elapsed as of the latest tick
func (t *SessionTimer) Elapsed() int {
	return int(t.elapsed.Load())
}

// Formatted returns the elapsed time as MM:SS
func (t *SessionTimer) Formatted() string {
	return FormatElapsed(t.Elapsed())
}

// Stop cancels the ticking goroutine. Safe to call more than once and
// required on every path that abandons the timer.
func (t *SessionTimer) Stop() {
	t.stopOnce.Do(func() {
		close(t.done)
	})
}

// FormatElapsed renders whole seconds as MM:SS with unbounded minutes
// and zero-padded seconds
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

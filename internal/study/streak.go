package study

import (
	"log"
	"sync"
	"time"
)

// LastStudyDateKey is the fixed key the last study date persists under
const LastStudyDateKey = "last-study-date"

const dateLayout = "2006-01-02"

// StreakTracker maintains the consecutive-day study counter. Only the
// last study date is persisted; the counter itself lives in memory.
type StreakTracker struct {
	mu     sync.Mutex
	state  StateStore
	streak int
}

// NewStreakTracker creates a streak tracker over the given state store
func NewStreakTracker(state StateStore) *StreakTracker {
	return &StreakTracker{state: state}
}

// Evaluate updates the streak for a study action happening at now and
// returns the current streak. A one-day gap since the last recorded
// study date increments the streak, a larger gap resets it to zero and
// studying again the same day leaves it unchanged. The first-ever
// evaluation just records today as the baseline.
func (t *StreakTracker) Evaluate(now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	today := toDate(now)

	if last, err := t.state.Get(LastStudyDateKey); err == nil && last != "" {
		lastDate, perr := time.Parse(dateLayout, last)
		if perr != nil {
			log.Printf("Ignoring unparseable last study date %q: %v", last, perr)
		} else {
			switch diff := daysBetween(lastDate, today); {
			case diff == 1:
				t.streak++
			case diff > 1:
				t.streak = 0
			}
		}
	}

	if err := t.state.Set(LastStudyDateKey, today.Format(dateLayout)); err != nil {
		log.Printf("Failed to persist last study date: %v", err)
	}

	return t.streak
}

// Current returns the streak without evaluating
func (t *StreakTracker) Current() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.streak
}

// LastStudyDate returns the persisted last study date, or "" when none
// has been recorded yet
func (t *StreakTracker) LastStudyDate() string {
	last, err := t.state.Get(LastStudyDateKey)
	if err != nil {
		return ""
	}
	return last
}

// toDate truncates an instant to its UTC calendar date
func toDate(instant time.Time) time.Time {
	year, month, day := instant.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole calendar days from a to b
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

package models

import "time"

// SessionType identifies the practice activity a session belongs to
type SessionType string

const (
	SessionWord      SessionType = "word"
	SessionListening SessionType = "listening"
	SessionSentence  SessionType = "sentence"
	SessionGrammar   SessionType = "grammar"
)

// Valid reports whether t is one of the known session types
func (t SessionType) Valid() bool {
	switch t {
	case SessionWord, SessionListening, SessionSentence, SessionGrammar:
		return true
	}
	return false
}

// StudySession represents one bounded period of practice.
// EndTime is nil while the session is active.
type StudySession struct {
	ID        int64       `json:"id"`
	Type      SessionType `json:"type"`
	StartTime time.Time   `json:"start_time"`
	EndTime   *time.Time  `json:"end_time,omitempty"`
	Score     *float64    `json:"score,omitempty"`
	Completed bool        `json:"completed"`
}

// StudyRecord is a single correctness observation for a studied word.
// Records are append-only; they are never updated after creation.
type StudyRecord struct {
	ID          int64     `json:"id"`
	WordID      int64     `json:"word_id"`
	Timestamp   time.Time `json:"timestamp"`
	IsCorrect   bool      `json:"is_correct"`
	TimeSpentMs int       `json:"time_spent_ms,omitempty"`
}

// TypeDistribution counts completed sessions per activity type
type TypeDistribution struct {
	Word      int `json:"word"`
	Listening int `json:"listening"`
	Sentence  int `json:"sentence"`
	Grammar   int `json:"grammar"`
}

// StudyStats is derived on demand from the record and session collections,
// never stored.
type StudyStats struct {
	TotalSessions    int              `json:"total_sessions"`
	AverageScore     float64          `json:"average_score"`
	TotalTimeSpent   int              `json:"total_time_spent"` // whole seconds
	SuccessRate      float64          `json:"success_rate"`     // percentage
	TypeDistribution TypeDistribution `json:"type_distribution"`
}

// SessionSummary is produced when a session ends
type SessionSummary struct {
	SessionID      int64       `json:"session_id"`
	Type           SessionType `json:"type"`
	StartTime      time.Time   `json:"start_time"`
	EndTime        time.Time   `json:"end_time"`
	TotalTimeSpent int         `json:"total_time_spent"` // whole seconds
	CorrectCount   int         `json:"correct_count"`
	IncorrectCount int         `json:"incorrect_count"`
	TotalAttempts  int         `json:"total_attempts"`
	Accuracy       float64     `json:"accuracy"` // percentage
	Score          *float64    `json:"score,omitempty"`
}

package study

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"hagxwon/internal/models"
)

// StateKey is the fixed key the store persists its state under
const StateKey = "study-storage"

// StateStore is the durable key-value mirror of the in-memory state.
// Implemented by repository.StateRepository.
type StateStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// persistedState is the serialized shape of the store
type persistedState struct {
	ActiveSession *models.StudySession  `json:"active_session,omitempty"`
	StudyRecords  []models.StudyRecord  `json:"study_records"`
	StudySessions []models.StudySession `json:"study_sessions"`
}

// Store owns the active session, the attempt records and the session
// history. It is the only writer of all three; every mutation is
// mirrored to the state store as a best-effort side effect.
type Store struct {
	mu    sync.Mutex
	state StateStore
	now   func() time.Time

	active   *models.StudySession
	records  []models.StudyRecord
	sessions []models.StudySession

	timer  *SessionTimer
	lastID int64
}

// NewStore creates a store, loading any previously persisted state.
// A missing or unreadable blob starts the store empty rather than failing.
func NewStore(state StateStore) *Store {
	s := &Store{
		state: state,
		now:   time.Now,
	}
	s.load()
	return s
}

func (s *Store) load() {
	raw, err := s.state.Get(StateKey)
	if err != nil || raw == "" {
		return
	}

	var ps persistedState
	if err := json.Unmarshal([]byte(raw), &ps); err != nil {
		log.Printf("Ignoring corrupt study state: %v", err)
		return
	}

	s.active = ps.ActiveSession
	s.records = ps.StudyRecords
	s.sessions = ps.StudySessions
	if s.active != nil {
		s.timer = NewSessionTimer(s.active.StartTime)
	}
}

// persist mirrors the current state to the state store. Failures are
// logged and never roll back the in-memory mutation that triggered them.
func (s *Store) persist() {
	raw, err := json.Marshal(persistedState{
		ActiveSession: s.active,
		StudyRecords:  s.records,
		StudySessions: s.sessions,
	})
	if err != nil {
		log.Printf("Failed to serialize study state: %v", err)
		return
	}

	if err := s.state.Set(StateKey, string(raw)); err != nil {
		log.Printf("Failed to persist study state: %v", err)
	}
}

// nextID returns a time-based unique identifier. Two mutations in the
// same millisecond still get distinct IDs.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// StartSession begins a new session of the given type. An already
// active session is ended first, with the same contract as EndSession,
// so no session is ever silently discarded.
func (s *Store) StartSession(sessionType models.SessionType) models.StudySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startSessionLocked(sessionType)
}

func (s *Store) startSessionLocked(sessionType models.SessionType) models.StudySession {
	if s.active != nil {
		s.endSessionLocked(nil)
	}

	session := models.StudySession{
		ID:        s.nextID(),
		Type:      sessionType,
		StartTime: s.now(),
	}
	s.active = &session
	s.timer = NewSessionTimer(session.StartTime)

	s.persist()
	return session
}

// EndSession seals the active session and appends it to history,
// returning its summary. A nil score leaves the session unscored.
// With no active session this is a no-op returning nil.
func (s *Store) EndSession(score *float64) *models.SessionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endSessionLocked(score)
}

func (s *Store) endSessionLocked(score *float64) *models.SessionSummary {
	if s.active == nil {
		return nil
	}

	endTime := s.now()
	sealed := *s.active
	sealed.EndTime = &endTime
	sealed.Score = score
	sealed.Completed = true

	summary := s.summarize(sealed)

	s.sessions = append(s.sessions, sealed)
	s.active = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	s.persist()
	return summary
}

// summarize derives the session summary from the record list rather
// than cached counters, so it always agrees with the records.
func (s *Store) summarize(session models.StudySession) *models.SessionSummary {
	correct, incorrect := 0, 0
	for _, r := range recordsDuring(s.records, session) {
		if r.IsCorrect {
			correct++
		} else {
			incorrect++
		}
	}

	total := correct + incorrect
	accuracy := 0.0
	if total > 0 {
		accuracy = float64(correct) / float64(total) * 100
	}

	return &models.SessionSummary{
		SessionID:      session.ID,
		Type:           session.Type,
		StartTime:      session.StartTime,
		EndTime:        *session.EndTime,
		TotalTimeSpent: int(session.EndTime.Sub(session.StartTime).Seconds()),
		CorrectCount:   correct,
		IncorrectCount: incorrect,
		TotalAttempts:  total,
		Accuracy:       accuracy,
		Score:          session.Score,
	}
}

// recordsDuring returns the records created inside the session's
// lifetime. Attribution is by timestamp so it survives a reload of
// persisted state mid-session.
func recordsDuring(records []models.StudyRecord, session models.StudySession) []models.StudyRecord {
	var out []models.StudyRecord
	for _, r := range records {
		if r.Timestamp.Before(session.StartTime) {
			continue
		}
		if session.EndTime != nil && r.Timestamp.After(*session.EndTime) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// RecordAttempt appends a correctness record for a studied word. When
// no session is active a 'word' session is started implicitly, so
// attempts made outside an explicit session are never lost.
func (s *Store) RecordAttempt(wordID int64, isCorrect bool, timeSpentMs int) models.StudyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		s.startSessionLocked(models.SessionWord)
	}

	record := models.StudyRecord{
		ID:          s.nextID(),
		WordID:      wordID,
		Timestamp:   s.now(),
		IsCorrect:   isCorrect,
		TimeSpentMs: timeSpentMs,
	}
	s.records = append(s.records, record)

	s.persist()
	return record
}

// Stats derives summary statistics from the current collections. It is
// recomputed on every call; nothing here is cached.
func (s *Store) Stats() models.StudyStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var dist models.TypeDistribution
	scoreSum, scored := 0.0, 0
	timeSpent := 0
	for _, session := range s.sessions {
		switch session.Type {
		case models.SessionWord:
			dist.Word++
		case models.SessionListening:
			dist.Listening++
		case models.SessionSentence:
			dist.Sentence++
		case models.SessionGrammar:
			dist.Grammar++
		}
		if session.Score != nil {
			scoreSum += *session.Score
			scored++
		}
		if session.EndTime != nil {
			timeSpent += int(session.EndTime.Sub(session.StartTime).Seconds())
		}
	}

	averageScore := 0.0
	if scored > 0 {
		averageScore = scoreSum / float64(scored)
	}

	correct := 0
	for _, r := range s.records {
		if r.IsCorrect {
			correct++
		}
	}
	successRate := 0.0
	if len(s.records) > 0 {
		successRate = float64(correct) / float64(len(s.records)) * 100
	}

	return models.StudyStats{
		TotalSessions:    len(s.sessions),
		AverageScore:     averageScore,
		TotalTimeSpent:   timeSpent,
		SuccessRate:      successRate,
		TypeDistribution: dist,
	}
}

// ResetHistory clears the record and session collections. The active
// session, if any, is left untouched.
func (s *Store) ResetHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.sessions = nil
	s.persist()
}

// ActiveSession returns a copy of the active session, or nil
func (s *Store) ActiveSession() *models.StudySession {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil
	}
	session := *s.active
	return &session
}

// Sessions returns a copy of the session history
func (s *Store) Sessions() []models.StudySession {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.StudySession, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// Records returns a copy of the attempt records
func (s *Store) Records() []models.StudyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.StudyRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Elapsed returns whole seconds since the active session started, or 0
func (s *Store) Elapsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer == nil {
		return 0
	}
	return s.timer.Elapsed()
}

// FormattedElapsed returns the active session's elapsed time as MM:SS
func (s *Store) FormattedElapsed() string {
	return FormatElapsed(s.Elapsed())
}

// Close stops the active session's timer without ending the session
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

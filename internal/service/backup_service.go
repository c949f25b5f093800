package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"hagxwon/internal/repository"
	"hagxwon/internal/study"
)

// BackupService exports and imports the persisted study state as a
// portable JSON file, for moving a learner's history between machines.
type BackupService struct {
	state study.StateStore
}

// NewBackupService creates a backup service over the state store
func NewBackupService(state study.StateStore) *BackupService {
	return &BackupService{state: state}
}

// backupFile is the on-disk shape of a backup
type backupFile struct {
	Version       int             `json:"version"`
	ExportedAt    time.Time       `json:"exported_at"`
	StudyState    json.RawMessage `json:"study_state,omitempty"`
	LastStudyDate string          `json:"last_study_date,omitempty"`
}

// Export writes the current persisted state to path
func (s *BackupService) Export(path string) error {
	backup := backupFile{
		Version:    1,
		ExportedAt: time.Now().UTC(),
	}

	if raw, err := s.state.Get(study.StateKey); err == nil {
		backup.StudyState = json.RawMessage(raw)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to read study state: %w", err)
	}

	if date, err := s.state.Get(study.LastStudyDateKey); err == nil {
		backup.LastStudyDate = date
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to read last study date: %w", err)
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// Import replaces the persisted state with the contents of path
func (s *BackupService) Import(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	var backup backupFile
	if err := json.Unmarshal(data, &backup); err != nil {
		return fmt.Errorf("invalid backup file: %w", err)
	}
	if backup.Version != 1 {
		return fmt.Errorf("unsupported backup version %d", backup.Version)
	}

	if len(backup.StudyState) > 0 {
		if !json.Valid(backup.StudyState) {
			return fmt.Errorf("backup study state is not valid JSON")
		}
		if err := s.state.Set(study.StateKey, string(backup.StudyState)); err != nil {
			return fmt.Errorf("failed to restore study state: %w", err)
		}
	}
	if backup.LastStudyDate != "" {
		if err := s.state.Set(study.LastStudyDateKey, backup.LastStudyDate); err != nil {
			return fmt.Errorf("failed to restore last study date: %w", err)
		}
	}
	return nil
}

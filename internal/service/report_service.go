package service

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"hagxwon/internal/models"
	"hagxwon/internal/study"
)

// ReportService exports the study history in several formats for the
// admin dashboard. All writers stream into the supplied io.Writer.
type ReportService struct {
	store  *study.Store
	streak *study.StreakTracker
}

// NewReportService creates a report service over the study store
func NewReportService(store *study.Store, streak *study.StreakTracker) *ReportService {
	return &ReportService{store: store, streak: streak}
}

type jsonExport struct {
	ExportedAt time.Time             `json:"exported_at"`
	Streak     int                   `json:"streak"`
	Stats      models.StudyStats     `json:"stats"`
	Sessions   []models.StudySession `json:"sessions"`
	Records    []models.StudyRecord  `json:"records"`
}

// WriteJSON writes the full history with derived stats as indented JSON
func (s *ReportService) WriteJSON(w io.Writer) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC(),
		Streak:     s.streak.Current(),
		Stats:      s.store.Stats(),
		Sessions:   s.store.Sessions(),
		Records:    s.store.Records(),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

// WriteCSV writes one row per completed or active session
func (s *ReportService) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{"id", "type", "start_time", "end_time", "duration_seconds", "score", "completed"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, session := range s.store.Sessions() {
		row := []string{
			strconv.FormatInt(session.ID, 10),
			string(session.Type),
			session.StartTime.UTC().Format(time.RFC3339),
			"",
			"",
			"",
			strconv.FormatBool(session.Completed),
		}
		if session.EndTime != nil {
			row[3] = session.EndTime.UTC().Format(time.RFC3339)
			row[4] = strconv.Itoa(int(session.EndTime.Sub(session.StartTime).Seconds()))
		}
		if session.Score != nil {
			row[5] = strconv.FormatFloat(*session.Score, 'f', 1, 64)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a workbook with Sessions, Records and Summary sheets
func (s *ReportService) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const sessionsSheet = "Sessions"
	f.SetSheetName("Sheet1", sessionsSheet)

	sessionHeader := []interface{}{"ID", "Type", "Start", "End", "Duration (s)", "Score", "Completed"}
	if err := f.SetSheetRow(sessionsSheet, "A1", &sessionHeader); err != nil {
		return fmt.Errorf("failed to write sessions header: %w", err)
	}
	for i, session := range s.store.Sessions() {
		row := []interface{}{
			session.ID,
			string(session.Type),
			session.StartTime.UTC().Format(time.RFC3339),
			"",
			"",
			"",
			session.Completed,
		}
		if session.EndTime != nil {
			row[3] = session.EndTime.UTC().Format(time.RFC3339)
			row[4] = int(session.EndTime.Sub(session.StartTime).Seconds())
		}
		if session.Score != nil {
			row[5] = *session.Score
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sessionsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write session row: %w", err)
		}
	}

	const recordsSheet = "Records"
	if _, err := f.NewSheet(recordsSheet); err != nil {
		return fmt.Errorf("failed to create records sheet: %w", err)
	}
	recordHeader := []interface{}{"ID", "Word ID", "Timestamp", "Correct", "Time Spent (ms)"}
	if err := f.SetSheetRow(recordsSheet, "A1", &recordHeader); err != nil {
		return fmt.Errorf("failed to write records header: %w", err)
	}
	for i, record := range s.store.Records() {
		row := []interface{}{
			record.ID,
			record.WordID,
			record.Timestamp.UTC().Format(time.RFC3339),
			record.IsCorrect,
			record.TimeSpentMs,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(recordsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write record row: %w", err)
		}
	}

	const summarySheet = "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	stats := s.store.Stats()
	summary := [][]interface{}{
		{"Total sessions", stats.TotalSessions},
		{"Average score", stats.AverageScore},
		{"Success rate (%)", stats.SuccessRate},
		{"Time spent (s)", stats.TotalTimeSpent},
		{"Current streak (days)", s.streak.Current()},
		{"Word sessions", stats.TypeDistribution.Word},
		{"Listening sessions", stats.TypeDistribution.Listening},
		{"Sentence sessions", stats.TypeDistribution.Sentence},
		{"Grammar sessions", stats.TypeDistribution.Grammar},
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"hagxwon/internal/models"
	"hagxwon/internal/repository"
	"hagxwon/internal/study"
)

type memoryState struct {
	values map[string]string
}

func newMemoryState() *memoryState {
	return &memoryState{values: map[string]string{}}
}

func (m *memoryState) Get(key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", repository.ErrNotFound
	}
	return v, nil
}

func (m *memoryState) Set(key, value string) error {
	m.values[key] = value
	return nil
}

func seededReportService(t *testing.T) *ReportService {
	t.Helper()

	state := newMemoryState()
	store := study.NewStore(state)
	t.Cleanup(store.Close)

	store.StartSession(models.SessionWord)
	store.RecordAttempt(1, true, 1200)
	store.RecordAttempt(2, false, 3400)
	score := 85.0
	store.EndSession(&score)

	return NewReportService(store, study.NewStreakTracker(state))
}

func TestWriteJSON(t *testing.T) {
	service := seededReportService(t)

	var buf bytes.Buffer
	if err := service.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var export jsonExport
	if err := json.Unmarshal(buf.Bytes(), &export); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(export.Sessions) != 1 {
		t.Errorf("sessions = %d, want 1", len(export.Sessions))
	}
	if len(export.Records) != 2 {
		t.Errorf("records = %d, want 2", len(export.Records))
	}
	if export.Stats.TotalSessions != 1 {
		t.Errorf("stats.TotalSessions = %d, want 1", export.Stats.TotalSessions)
	}
}

func TestWriteCSV(t *testing.T) {
	service := seededReportService(t)

	var buf bytes.Buffer
	if err := service.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header plus one session", len(rows))
	}
	if rows[1][1] != "word" {
		t.Errorf("type column = %q, want %q", rows[1][1], "word")
	}
	if rows[1][5] != "85.0" {
		t.Errorf("score column = %q, want %q", rows[1][5], "85.0")
	}
}

func TestWriteXLSX(t *testing.T) {
	service := seededReportService(t)

	var buf bytes.Buffer
	if err := service.WriteXLSX(&buf); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("output is not a valid workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Sessions", "Records", "Summary"} {
		if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
			t.Errorf("workbook is missing sheet %q", sheet)
		}
	}

	rows, err := f.GetRows("Records")
	if err != nil {
		t.Fatalf("failed to read Records sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("Records rows = %d, want header plus two records", len(rows))
	}
}

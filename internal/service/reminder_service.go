package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"hagxwon/internal/study"
)

// ReminderService schedules the daily streak nudge and the Monday
// morning report. Jobs are no-ops unless email and a recipient are
// configured, so the scheduler can always run.
type ReminderService struct {
	scheduler *gocron.Scheduler
	email     *EmailService
	store     *study.Store
	streak    *study.StreakTracker
	recipient string
}

// NewReminderService wires the scheduler against the study state
func NewReminderService(email *EmailService, store *study.Store, streak *study.StreakTracker, recipient string) *ReminderService {
	return &ReminderService{
		scheduler: gocron.NewScheduler(time.UTC),
		email:     email,
		store:     store,
		streak:    streak,
		recipient: recipient,
	}
}

// Start registers the jobs and runs the scheduler in the background.
// reminderHour is the UTC hour of day for the streak check.
func (s *ReminderService) Start(reminderHour int) error {
	if reminderHour < 0 || reminderHour > 23 {
		return fmt.Errorf("reminder hour %d out of range", reminderHour)
	}

	at := fmt.Sprintf("%02d:00", reminderHour)
	if _, err := s.scheduler.Every(1).Day().At(at).Do(s.runStreakReminder); err != nil {
		return fmt.Errorf("failed to schedule streak reminder: %w", err)
	}
	if _, err := s.scheduler.Every(1).Week().Monday().At("09:00").Do(s.runWeeklyReport); err != nil {
		return fmt.Errorf("failed to schedule weekly report: %w", err)
	}

	s.scheduler.StartAsync()
	log.Printf("Reminder scheduler started, streak check daily at %s UTC", at)
	return nil
}

// Stop halts the scheduler and waits for running jobs
func (s *ReminderService) Stop() {
	s.scheduler.Stop()
}

func (s *ReminderService) runStreakReminder() {
	if !s.email.Enabled() || s.recipient == "" {
		return
	}

	streak := s.streak.Current()
	if streak == 0 {
		return
	}

	last := s.streak.LastStudyDate()
	today := time.Now().UTC().Format("2006-01-02")
	if last == today {
		// Already studied today, nothing at risk
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.email.SendStreakReminder(ctx, s.recipient, streak, last); err != nil {
		log.Printf("Failed to send streak reminder: %v", err)
	}
}

func (s *ReminderService) runWeeklyReport() {
	if !s.email.Enabled() || s.recipient == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.email.SendWeeklyReport(ctx, s.recipient, s.store.Stats(), s.streak.Current()); err != nil {
		log.Printf("Failed to send weekly report: %v", err)
	}
}

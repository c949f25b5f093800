package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"hagxwon/internal/models"
)

// EmailService sends study reminders and reports through AWS SES.
// When no from-address is configured the service stays disabled and
// every send becomes a logged no-op, so local setups need no AWS account.
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
}

// NewEmailService creates an email service. Pass an empty fromEmail to
// run with email disabled.
func NewEmailService(ctx context.Context, region, fromEmail, fromName string) *EmailService {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		log.Printf("Email service disabled: failed to load AWS config: %v", err)
		return &EmailService{enabled: false}
	}

	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
	}
}

// Enabled reports whether the service will actually send email
func (s *EmailService) Enabled() bool {
	return s.enabled
}

// SendStreakReminder nudges the learner when today's study session is
// still missing and an active streak is on the line.
func (s *EmailService) SendStreakReminder(ctx context.Context, to string, streak int, lastStudyDate string) error {
	subject := fmt.Sprintf("Don't break your %d day streak!", streak)
	body := fmt.Sprintf(
		"You last studied on %s.\n\n"+
			"Your %d day streak resets at midnight. A single word session is enough to keep it going.\n\n"+
			"화이팅!",
		lastStudyDate, streak)

	return s.send(ctx, to, subject, body)
}

// SendWeeklyReport mails a plain-text summary of accumulated study stats
func (s *EmailService) SendWeeklyReport(ctx context.Context, to string, stats models.StudyStats, streak int) error {
	body := fmt.Sprintf(
		"Your week in review:\n\n"+
			"Sessions: %d\n"+
			"Success rate: %.1f%%\n"+
			"Average score: %.1f\n"+
			"Time spent: %s\n"+
			"Current streak: %d days\n",
		stats.TotalSessions,
		stats.SuccessRate,
		stats.AverageScore,
		time.Duration(stats.TotalTimeSpent)*time.Second,
		streak)

	return s.send(ctx, to, "Your weekly study report", body)
}

func (s *EmailService) send(ctx context.Context, to, subject, body string) error {
	if !s.enabled {
		log.Printf("Email disabled, skipping send to %s: %s", to, subject)
		return nil
	}
	if to == "" {
		return fmt.Errorf("no recipient configured")
	}

	from := s.fromEmail
	if s.fromName != "" {
		from = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	log.Printf("Sent email to %s: %s", to, subject)
	return nil
}

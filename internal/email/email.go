package email

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/physiocare/physiocare-api/internal/config"
)

// Service sends transactional mail. Implementations must be safe for
// concurrent use.
type Service interface {
	Send(to, subject, body string) error
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg config.SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// Welcome mail body for new registrations.
func WelcomeBody(username string) string {
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>Welcome to PhysioCare. Your account is ready, you can now browse services and book your first session.</p>",
		username,
	)
}

// AppointmentConfirmationBody for booking confirmations.
func AppointmentConfirmationBody(username, date, timeOfDay string) string {
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>Your appointment is scheduled for %s at %s.</p>",
		username, date, timeOfDay,
	)
}

// ReminderBody for exercise reminders dispatched by the worker.
func ReminderBody(username, exercise string) string {
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>This is a reminder to complete your prescribed exercise: %s.</p>",
		username, exercise,
	)
}

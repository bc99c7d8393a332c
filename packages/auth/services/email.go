package services

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/go-mail/mail/v2"
)

// EmailService sends transactional emails
type EmailService interface {
	SendPasswordResetEmail(to, resetURL string) error
}

// NewEmailService returns the SMTP service when SMTP is configured through
// the environment, otherwise the log-only development service.
func NewEmailService() EmailService {
	if os.Getenv("SMTP_HOST") != "" {
		return NewSMTPEmailService()
	}
	return NewLogEmailService()
}

// LogEmailService logs emails instead of sending them (for development)
type LogEmailService struct{}

func NewLogEmailService() *LogEmailService {
	return &LogEmailService{}
}

func (s *LogEmailService) SendPasswordResetEmail(to, resetURL string) error {
	subject := "Reset your password"
	body := passwordResetBody(resetURL)

	log.Printf("=== EMAIL SENT ===")
	log.Printf("To: %s", to)
	log.Printf("Subject: %s", subject)
	log.Printf("Body: %s", body)
	log.Printf("=================")
	return nil
}

// SMTPEmailService sends real emails over SMTP
type SMTPEmailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPEmailService() *SMTPEmailService {
	port := 587
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil {
			port = p
		}
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USERNAME")
	}

	return &SMTPEmailService{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     from,
	}
}

func (s *SMTPEmailService) SendPasswordResetEmail(to, resetURL string) error {
	m := mail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Reset your password")
	m.SetBody("text/plain", passwordResetBody(resetURL))

	d := mail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func passwordResetBody(resetURL string) string {
	return fmt.Sprintf(`Hello,

You requested a password reset.
Click the following link to choose a new password:

%s

This link is valid for 2 hours.

If you did not make this request, ignore this message.

The bracket team`, resetURL)
}

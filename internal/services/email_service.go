package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendWelcomeEmail(email, fullName string) error
	SendStepFailedEmail(email, role, clientName, stage string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	return &emailService{
		dialer: gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:   fromEmail,
	}
}

func (s *emailService) SendWelcomeEmail(email, fullName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to Freetrack")

	body := fmt.Sprintf(`
                <h2>Welcome, %s!</h2>
                <p>Your account has been created. Add your first client and start
                tracking your mission pipeline.</p>
        `, fullName)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}
	return nil
}

func (s *emailService) SendStepFailedEmail(email, role, clientName, stage string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Step failed: %s @ %s", role, clientName))

	body := fmt.Sprintf(`
                <h3>A step of your pipeline failed</h3>
                <p>The <strong>%s</strong> step for the mission <strong>%s</strong>
                at <strong>%s</strong> was marked as failed.</p>
                <p>Open the board to review the next actions.</p>
        `, stage, role, clientName)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send step failed email: %w", err)
	}
	return nil
}

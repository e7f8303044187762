package services

import (
	"fmt"
	"log"
	"time"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendWelcomeEmail(email, name string) error
	SendOTPEmail(email, name, otp string, ttl time.Duration) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
	dryRun bool
}

// NewEmailService builds an SMTP-backed sender. With dryRun set it logs
// instead of dialing, for local development without SMTP credentials.
func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string, dryRun bool) EmailService {
	return &emailService{
		dialer: gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:   fromEmail,
		dryRun: dryRun,
	}
}

func (s *emailService) SendWelcomeEmail(email, name string) error {
	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Your account has been successfully created. Please log in with your credentials.</p>
	`, name)
	return s.send(email, "Welcome to OTP Rental", body)
}

func (s *emailService) SendOTPEmail(email, name, otp string, ttl time.Duration) error {
	body := fmt.Sprintf(`
		<h2>Password Reset Request</h2>
		<p>Hello %s,</p>
		<p>You requested to reset your password. Please use the following OTP:</p>
		<div style="background-color:#f3f4f6;padding:20px;text-align:center;margin:20px 0;">
			<h1 style="font-size:32px;letter-spacing:5px;margin:0;">%s</h1>
		</div>
		<p>This OTP will expire in %d minutes.</p>
		<p>If you didn't request this, please ignore this email.</p>
	`, name, otp, int(ttl.Minutes()))
	return s.send(email, "Password Reset OTP - OTP Rental", body)
}

func (s *emailService) send(to, subject, htmlBody string) error {
	if s.dryRun {
		log.Printf("[email][dry-run] to=%s subject=%q", to, subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send %q email: %w", subject, err)
	}
	return nil
}

package email

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/merchantfeeadvocate/backend/internal/config"
)

// EmailService handles sending emails
type EmailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	frontendURL  string
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		smtpHost:     cfg.SMTP.Host,
		smtpPort:     cfg.SMTP.Port,
		smtpUsername: cfg.SMTP.Username,
		smtpPassword: cfg.SMTP.Password,
		fromEmail:    cfg.SMTP.FromEmail,
		frontendURL:  cfg.FrontendURL,
	}
}

// SendWelcomeEmail greets a newly enrolled partner and points them at the
// document signing step.
func (s *EmailService) SendWelcomeEmail(toEmail, firstName string) error {
	subject := "Welcome to Merchant Fee Advocate"
	signingLink := fmt.Sprintf("%s/onboarding/documents", s.frontendURL)

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: Arial, sans-serif; line-height: 1.6; }
			.container { max-width: 600px; margin: 0 auto; padding: 20px; }
			.header { background-color: #1E3A8A; color: white; padding: 10px; text-align: center; }
			.content { padding: 20px; }
			.button { display: inline-block; background-color: #1E3A8A; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>Merchant Fee Advocate</h1>
			</div>
			<div class="content">
				<h2>Hello %s,</h2>
				<p>Welcome aboard! Your partner account has been created.</p>
				<p>To activate your account, please review and sign your referral agreement and Schedule A:</p>
				<p><a href="%s" class="button">Sign Documents</a></p>
				<p>Once both documents are signed your dashboard unlocks and you can start submitting leads.</p>
				<p>Best regards,<br>The Merchant Fee Advocate Team</p>
			</div>
		</div>
	</body>
	</html>
	`, firstName, signingLink)

	return s.sendEmail(toEmail, subject, body)
}

// SendApplicationSubmittedEmail notifies the operations inbox that a partner
// submitted a referral application.
func (s *EmailService) SendApplicationSubmittedEmail(toEmail, partnerName, businessName, reference string) error {
	subject := fmt.Sprintf("New Referral Application: %s", businessName)

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<body>
		<h2>New referral application received</h2>
		<p><strong>Partner:</strong> %s</p>
		<p><strong>Business:</strong> %s</p>
		<p><strong>Reference:</strong> %s</p>
		<p>Review it in the admin dashboard.</p>
	</body>
	</html>
	`, partnerName, businessName, reference)

	return s.sendEmail(toEmail, subject, body)
}

// SendLeadReminderEmail nudges a partner about leads that have gone quiet
func (s *EmailService) SendLeadReminderEmail(toEmail, firstName string, staleCount int) error {
	subject := "You have leads waiting on follow-up"
	leadsLink := fmt.Sprintf("%s/dashboard/leads", s.frontendURL)

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<body>
		<h2>Hello %s,</h2>
		<p>You have %d lead(s) that haven't been touched in over two weeks.</p>
		<p>A quick follow-up call keeps deals moving: <a href="%s">open your leads</a>.</p>
		<p>Best regards,<br>The Merchant Fee Advocate Team</p>
	</body>
	</html>
	`, firstName, staleCount, leadsLink)

	return s.sendEmail(toEmail, subject, body)
}

// sendEmail handles the actual email sending using SMTP
func (s *EmailService) sendEmail(to, subject, body string) error {
	if s.smtpHost == "" {
		// no SMTP configured (local development): log instead of failing
		log.Printf("SMTP not configured, skipping email to %s: %s", to, subject)
		return nil
	}

	auth := smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n",
		s.fromEmail, to, subject)
	msg := []byte(headers + body)

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
		return err
	}

	return nil
}

package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"go-careers-backend/config"
	"go-careers-backend/internal/domain"
)

// ErrNotConfigured is returned when SMTP settings are incomplete
var ErrNotConfigured = errors.New("email: SMTP not configured")

// EmailService handles sending emails via SMTP
type EmailService struct {
	host       string
	port       string
	username   string
	password   string
	fromEmail  string
	adminEmail string
	sendMail   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailService creates a new email service from SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:       cfg.SMTPHost,
		port:       cfg.SMTPPort,
		username:   cfg.SMTPUsername,
		password:   cfg.SMTPPassword,
		fromEmail:  cfg.SMTPFromEmail,
		adminEmail: cfg.AdminNotificationEmail,
		sendMail:   smtp.SendMail,
	}
}

var (
	candidateTemplate = template.Must(template.New("candidate").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Application Received</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #3B82F6; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Thanks for applying, {{.CandidateName}}</h1>
        </div>
        <div class="content">
            <p>We received your application for <strong>{{.JobTitle}}</strong>.</p>
            <p>Our team reviews every application and will get back to you if your profile matches the role.</p>
        </div>
        <div class="footer">
            <p>Reference: {{.ApplicationID}}</p>
        </div>
    </div>
</body>
</html>`))

	adminTemplate = template.Must(template.New("admin").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Application</title>
</head>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>New application for {{.JobTitle}}</h2>
    <p><strong>Candidate:</strong> {{.CandidateName}} ({{.CandidateEmail}})</p>
    <p><strong>Application ID:</strong> {{.ApplicationID}}</p>
</body>
</html>`))
)

// NotifyApplicationReceived sends the candidate confirmation and the admin
// notification. Both are attempted; the errors are joined.
func (s *EmailService) NotifyApplicationReceived(_ context.Context, notice domain.ApplicationNotice) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}

	var errs []error
	if notice.CandidateEmail != "" {
		subject := fmt.Sprintf("Application received: %s", notice.JobTitle)
		if err := s.send(notice.CandidateEmail, "", subject, candidateTemplate, notice); err != nil {
			errs = append(errs, fmt.Errorf("candidate confirmation: %w", err))
		}
	}
	if s.adminEmail != "" {
		subject := fmt.Sprintf("New application: %s for %s", notice.CandidateName, notice.JobTitle)
		if err := s.send(s.adminEmail, notice.CandidateEmail, subject, adminTemplate, notice); err != nil {
			errs = append(errs, fmt.Errorf("admin notification: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (s *EmailService) send(to, replyTo, subject string, tmpl *template.Template, data any) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	var headers strings.Builder
	fmt.Fprintf(&headers, "From: %s\r\n", s.fromEmail)
	fmt.Fprintf(&headers, "To: %s\r\n", to)
	if replyTo != "" {
		fmt.Fprintf(&headers, "Reply-To: %s\r\n", replyTo)
	}
	fmt.Fprintf(&headers, "Subject: %s\r\n", sanitizeHeader(subject))
	headers.WriteString("MIME-Version: 1.0\r\n")
	headers.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")

	msg := append([]byte(headers.String()), body.Bytes()...)

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.sendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// sanitizeHeader strips line breaks so user input cannot inject headers
func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

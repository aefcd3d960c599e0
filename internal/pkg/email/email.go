package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"

	"github.com/peoplecore/hrms-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// EmailService defines the interface for sending emails. Delivery is
// best-effort single-attempt; callers dispatch asynchronously and must not
// fail their own request on error.
type EmailService interface {
	SendWelcome(to, employeeName, organizationName, loginURL string) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type welcomeEmailData struct {
	EmployeeName     string
	OrganizationName string
	LoginURL         string
}

// SendWelcome sends a welcome email to a newly created employee.
func (s *emailServiceImpl) SendWelcome(to, employeeName, organizationName, loginURL string) error {
	data := welcomeEmailData{
		EmployeeName:     employeeName,
		OrganizationName: organizationName,
		LoginURL:         loginURL,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "welcome.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Welcome to %s", organizationName), body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	if err := smtp.SendMail(addr, auth, from, []string{to}, message); err != nil {
		slog.Error("Failed to send email", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("Email sent successfully", "to", to, "subject", subject)
	return nil
}

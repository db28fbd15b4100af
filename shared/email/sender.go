package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"

	"analyst-stack/internal/models"
	"analyst-stack/shared/config"
)

type Sender struct {
	config       *config.EmailConfig
	templatePath string
}

func NewSender(cfg *config.EmailConfig) *Sender {
	return &Sender{
		config:       cfg,
		templatePath: "agents/channel-analyst/email_template.html",
	}
}

// SendReport renders the analysis report through the HTML template and mails
// it to the configured recipient.
func (s *Sender) SendReport(report *models.AnalysisReport) error {
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}

	subject := fmt.Sprintf("Channel Performance Report - %d Videos Analyzed (%s)",
		report.VideoCount, report.GeneratedAt.Format("Jan 2, 2006"))

	body, err := s.generateEmailBody(report)
	if err != nil {
		return fmt.Errorf("failed to generate email body: %w", err)
	}

	return s.SendHTML(subject, body)
}

// SendHTML sends an email with custom HTML content
func (s *Sender) SendHTML(subject, htmlBody string) error {
	return s.sendViaSMTP(subject, htmlBody)
}

func (s *Sender) sendViaSMTP(subject, body string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.SMTPServer)

	to := []string{s.config.ToEmail}
	msg := []byte(fmt.Sprintf(`To: %s
From: %s
Subject: %s
MIME-Version: 1.0
Content-Type: text/html; charset=UTF-8

%s`, s.config.ToEmail, s.config.FromEmail, subject, body))

	addr := fmt.Sprintf("%s:%d", s.config.SMTPServer, s.config.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.FromEmail, to, msg)
}

func (s *Sender) generateEmailBody(report *models.AnalysisReport) (string, error) {
	// Read template from external file
	tmplBytes, err := os.ReadFile(s.templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to read email template: %w", err)
	}

	tmpl := template.New("email").Funcs(template.FuncMap{
		"round1": func(v float64) float64 {
			if v < 0 {
				return float64(int(v*10-0.5)) / 10
			}
			return float64(int(v*10+0.5)) / 10
		},
		"pct": func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	})

	tmpl, err = tmpl.Parse(string(tmplBytes))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, report); err != nil {
		return "", err
	}

	return buf.String(), nil
}

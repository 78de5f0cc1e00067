// Package message sends operational mail.  Today that is a single template:
// the "new enquiry" notification to the site team.  An empty SMTP host puts
// the mailer in log-only mode so local and CI environments never need a
// relay.
package message

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/lumioedu/web/internal/config"
	"github.com/lumioedu/web/internal/content"
)

// Mailer delivers notification mail over SMTP via gomail.
type Mailer struct {
	cfg config.SMTP
	log *zap.SugaredLogger

	// send is swapped out by tests.
	send func(m *gomail.Message) error
}

// New builds a Mailer from the SMTP section.  The returned mailer is always
// usable; with no host configured it only logs.
func New(cfg config.SMTP, log *zap.SugaredLogger) *Mailer {
	if log == nil {
		log = zap.S()
	}
	m := &Mailer{cfg: cfg, log: log}
	if cfg.Host != "" {
		d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
		m.send = func(msg *gomail.Message) error { return d.DialAndSend(msg) }
	}
	return m
}

// Enabled reports whether a relay is configured.
func (m *Mailer) Enabled() bool { return m.send != nil }

// NotifySubmission mails the team about a freshly accepted enquiry.
func (m *Mailer) NotifySubmission(sub content.FormSubmission) error {
	subject := fmt.Sprintf("New enquiry from %s", sub.Name)
	body := submissionBody(sub)

	if m.send == nil {
		m.log.Infow("mail relay not configured, skipping notification",
			"subject", subject, "submission", sub.ID)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.NotifyTo)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.send(msg); err != nil {
		return fmt.Errorf("message: send %q: %w", subject, err)
	}
	m.log.Infow("notification sent", "subject", subject, "to", m.cfg.NotifyTo)
	return nil
}

func submissionBody(sub content.FormSubmission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name:        %s\n", sub.Name)
	fmt.Fprintf(&b, "Email:       %s\n", sub.Email)
	if sub.Phone != "" {
		fmt.Fprintf(&b, "Phone:       %s\n", sub.Phone)
	}
	if sub.Institution != "" {
		fmt.Fprintf(&b, "Institution: %s\n", sub.Institution)
	}
	fmt.Fprintf(&b, "Role:        %s\n", sub.Role)
	fmt.Fprintf(&b, "Received:    %s\n\n", sub.SubmittedAt.Format(time.RFC1123))
	b.WriteString(sub.Message)
	b.WriteString("\n")
	return b.String()
}

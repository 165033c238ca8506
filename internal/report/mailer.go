package report

import (
	"context"
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"insider-flow/internal/logger"
)

// Mailer sends rendered reports through an authenticated SMTP relay.
// Credentials come from the environment so they never land in config files.
type Mailer struct {
	host      string
	port      int
	sender    string
	password  string
	recipient string
}

// NewMailer reads SENDER_EMAIL, SENDER_PASSWORD and RECIPIENT_EMAIL from the
// environment. A missing credential is not an error: the mailer reports
// itself as unconfigured and the run continues without email.
func NewMailer(host string, port int) *Mailer {
	return &Mailer{
		host:      host,
		port:      port,
		sender:    strings.TrimSpace(os.Getenv("SENDER_EMAIL")),
		password:  os.Getenv("SENDER_PASSWORD"),
		recipient: strings.TrimSpace(os.Getenv("RECIPIENT_EMAIL")),
	}
}

// Configured reports whether all credentials needed to send are present.
func (m *Mailer) Configured() bool {
	return m.sender != "" && m.password != "" && m.recipient != ""
}

// Send delivers the HTML body with the given subject line.
func (m *Mailer) Send(ctx context.Context, subject, htmlBody string) error {
	if !m.Configured() {
		logger.Info(ctx, "email not configured, skipping report delivery")
		return nil
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.sender)
	fmt.Fprintf(&msg, "To: %s\r\n", m.recipient)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.sender, m.password, m.host)
	if err := smtp.SendMail(addr, auth, m.sender, []string{m.recipient}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send report email via %s: %w", addr, err)
	}

	logger.Info(ctx, "report email sent",
		"recipient", m.recipient,
		"smtp_host", m.host)
	return nil
}

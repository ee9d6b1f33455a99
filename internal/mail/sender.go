// Package mail delivers outreach emails over SMTP, with a logging stand-in
// for deployments that never configured credentials.
package mail

import (
	"context"
	"log/slog"
)

// Sender delivers one plain-text email.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender writes drafts to the log instead of delivering them. It stands
// in for the SMTP sender when email credentials are missing, so the rest of
// the outreach path behaves identically either way.
type LogSender struct {
	log *slog.Logger
}

// NewLogSender creates a LogSender. A nil logger uses slog's default.
func NewLogSender(log *slog.Logger) *LogSender {
	if log == nil {
		log = slog.Default()
	}
	return &LogSender{log: log}
}

// Send logs the draft and reports success. The body is withheld from the
// log line; recipient and subject are enough to trace the attempt.
func (s *LogSender) Send(_ context.Context, to, subject, _ string) error {
	s.log.Info("email sending disabled, draft logged", "to", to, "subject", subject)
	return nil
}

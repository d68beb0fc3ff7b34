package mailer

import (
	"context"

	"go.uber.org/zap"
)

// LogMailer stands in for SMTP when no relay is configured. Messages are
// written to the log instead of being delivered.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a mailer that only logs
func NewLogMailer(logger *zap.Logger) *LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogMailer{logger: logger}
}

// Send logs the message
func (m *LogMailer) Send(ctx context.Context, recipient, subject, htmlBody, textBody string) error {
	return m.SendWithAttachments(ctx, recipient, subject, htmlBody, textBody)
}

// SendWithAttachments logs the message and its attachment names
func (m *LogMailer) SendWithAttachments(_ context.Context, recipient, subject, _, textBody string, attachments ...Attachment) error {
	names := make([]string, 0, len(attachments))
	for _, a := range attachments {
		names = append(names, a.Filename)
	}
	m.logger.Info("📭 Email not sent, SMTP is not configured",
		zap.String("recipient", recipient),
		zap.String("subject", subject),
		zap.Int("body_bytes", len(textBody)),
		zap.Strings("attachments", names),
	)
	return nil
}

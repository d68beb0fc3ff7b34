// Package mailer sends HTML/plain-text email over SMTP.
package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/config"
)

// Attachment is a file attached to an outgoing message
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer delivers messages through a single SMTP relay
type SMTPMailer struct {
	cfg    config.SMTPConfig
	send   sendFunc
	logger *zap.Logger
	now    func() time.Time
}

// NewSMTPMailer creates a mailer for the configured relay
func NewSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		send:   smtp.SendMail,
		logger: logger,
		now:    time.Now,
	}
}

// Send delivers one multipart/alternative message to recipient
func (m *SMTPMailer) Send(ctx context.Context, recipient, subject, htmlBody, textBody string) error {
	return m.SendWithAttachments(ctx, recipient, subject, htmlBody, textBody)
}

// SendWithAttachments delivers a message with optional file attachments
func (m *SMTPMailer) SendWithAttachments(ctx context.Context, recipient, subject, htmlBody, textBody string, attachments ...Attachment) error {
	if err := ctx.Err(); err != nil {
		return &entities.DeliveryError{Recipient: recipient, Err: err}
	}
	if _, err := mail.ParseAddress(recipient); err != nil {
		return &entities.DeliveryError{Recipient: recipient, Err: fmt.Errorf("invalid recipient: %w", err)}
	}

	msg, err := m.buildMessage(recipient, subject, htmlBody, textBody, attachments)
	if err != nil {
		return &entities.DeliveryError{Recipient: recipient, Err: err}
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := m.cfg.Host + ":" + strconv.Itoa(m.cfg.Port)
	if err := m.send(addr, auth, m.cfg.From, []string{recipient}, msg); err != nil {
		if m.logger != nil {
			m.logger.Warn("📧 Email delivery failed",
				zap.String("recipient", recipient),
				zap.String("subject", subject),
				zap.Error(err),
			)
		}
		return &entities.DeliveryError{Recipient: recipient, Err: err}
	}

	if m.logger != nil {
		m.logger.Info("📧 Email sent",
			zap.String("recipient", recipient),
			zap.String("subject", subject),
			zap.Int("attachments", len(attachments)),
		)
	}
	return nil
}

func (m *SMTPMailer) buildMessage(recipient, subject, htmlBody, textBody string, attachments []Attachment) ([]byte, error) {
	var buf bytes.Buffer

	from := (&mail.Address{Name: m.cfg.FromName, Address: m.cfg.From}).String()
	writeHeader(&buf, "From", from)
	writeHeader(&buf, "To", recipient)
	writeHeader(&buf, "Subject", mime.QEncoding.Encode("utf-8", subject))
	writeHeader(&buf, "Date", m.now().Format(time.RFC1123Z))
	writeHeader(&buf, "MIME-Version", "1.0")

	if len(attachments) == 0 {
		alt := multipart.NewWriter(&buf)
		writeHeader(&buf, "Content-Type", "multipart/alternative; boundary="+alt.Boundary())
		buf.WriteString("\r\n")
		if err := writeAlternatives(alt, htmlBody, textBody); err != nil {
			return nil, err
		}
		if err := alt.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	mixed := multipart.NewWriter(&buf)
	writeHeader(&buf, "Content-Type", "multipart/mixed; boundary="+mixed.Boundary())
	buf.WriteString("\r\n")

	var altBuf bytes.Buffer
	alt := multipart.NewWriter(&altBuf)
	if err := writeAlternatives(alt, htmlBody, textBody); err != nil {
		return nil, err
	}
	if err := alt.Close(); err != nil {
		return nil, err
	}
	part, err := mixed.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"multipart/alternative; boundary=" + alt.Boundary()},
	})
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(altBuf.Bytes()); err != nil {
		return nil, err
	}

	for _, a := range attachments {
		ct := a.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		part, err := mixed.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {ct},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename})},
		})
		if err != nil {
			return nil, err
		}
		if err := writeBase64(part, a.Data); err != nil {
			return nil, err
		}
	}

	if err := mixed.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeAlternatives(w *multipart.Writer, htmlBody, textBody string) error {
	text, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"text/plain; charset=utf-8"},
		"Content-Transfer-Encoding": {"8bit"},
	})
	if err != nil {
		return err
	}
	if _, err := text.Write([]byte(textBody)); err != nil {
		return err
	}

	if htmlBody == "" {
		return nil
	}
	html, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"text/html; charset=utf-8"},
		"Content-Transfer-Encoding": {"8bit"},
	})
	if err != nil {
		return err
	}
	_, err = html.Write([]byte(htmlBody))
	return err
}

// writeBase64 writes data base64 encoded in 76 character lines
func writeBase64(w io.Writer, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 76 {
		if _, err := w.Write([]byte(encoded[:76] + "\r\n")); err != nil {
			return err
		}
		encoded = encoded[76:]
	}
	_, err := w.Write([]byte(encoded + "\r\n"))
	return err
}

func writeHeader(buf *bytes.Buffer, key, value string) {
	buf.WriteString(key)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString("\r\n")
}

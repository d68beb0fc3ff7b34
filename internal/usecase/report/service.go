// Package report builds the daily project report from classified tasks,
// keeps report history and exports reports as PDF or email.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/repositories"
	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/dateparse"
	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/mailer"
)

// PDFTitle heads every exported report
const PDFTitle = "ZenAI Project Report"

// MonitorRunner classifies open tasks at a reference time
type MonitorRunner interface {
	Run(ctx context.Context, ref time.Time) (*entities.MonitorReport, error)
}

// Cache keeps the latest report close at hand. GetLatest returns nil, nil on a miss.
type Cache interface {
	GetLatest(ctx context.Context) (*entities.Report, error)
	SetLatest(ctx context.Context, report *entities.Report, ttl time.Duration) error
}

// DigestDispatcher sends the daily digest
type DigestDispatcher interface {
	Dispatch(ctx context.Context, n entities.Notification) entities.DispatchResult
}

// AttachmentMailer sends a message with file attachments
type AttachmentMailer interface {
	SendWithAttachments(ctx context.Context, recipient, subject, htmlBody, textBody string, attachments ...mailer.Attachment) error
}

// Service defines report operations
type Service interface {
	GenerateDaily(ctx context.Context, ref time.Time) (*entities.Report, error)
	Latest(ctx context.Context) (*entities.Report, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Report, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Report, int64, error)
	PDF(ctx context.Context, id uuid.UUID) ([]byte, *entities.Report, error)
	EmailReport(ctx context.Context, id uuid.UUID, recipient string) error
	SendDigest(ctx context.Context, ref time.Time) (*entities.Report, entities.DispatchResult, error)
}

// Deps groups the report service collaborators. Cache, Dispatcher and
// Mailer are optional.
type Deps struct {
	Monitor    MonitorRunner
	Reports    repositories.ReportRepository
	Cache      Cache
	Dispatcher DigestDispatcher
	Mailer     AttachmentMailer
	CacheTTL   time.Duration
	Logger     *zap.Logger
}

type service struct {
	monitor    MonitorRunner
	reports    repositories.ReportRepository
	cache      Cache
	dispatcher DigestDispatcher
	mailer     AttachmentMailer
	cacheTTL   time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewService creates a new report service
func NewService(d Deps) Service {
	return &service{
		monitor:    d.Monitor,
		reports:    d.Reports,
		cache:      d.Cache,
		dispatcher: d.Dispatcher,
		mailer:     d.Mailer,
		cacheTTL:   d.CacheTTL,
		logger:     d.Logger,
		now:        time.Now,
	}
}

// GenerateDaily classifies the open tasks at ref, renders the report and
// stores it. Cache failures are logged and ignored.
func (s *service) GenerateDaily(ctx context.Context, ref time.Time) (*entities.Report, error) {
	if s.monitor == nil {
		return nil, entities.ErrNoTaskDatabase
	}
	mr, err := s.monitor.Run(ctx, ref)
	if err != nil {
		return nil, err
	}

	summary := Summarize(mr, s.now())
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report summary: %w", err)
	}

	report := &entities.Report{
		ID:           uuid.New(),
		ReportDate:   dateparse.Format(ref),
		Markdown:     RenderMarkdown(mr, summary, ref),
		Summary:      summaryJSON,
		OverdueCount: summary.Overdue,
		AtRiskCount:  summary.AtRisk,
	}

	if err := s.reports.Create(ctx, report); err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Failed to save report", zap.Error(err))
		}
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetLatest(ctx, report, s.cacheTTL); err != nil && s.logger != nil {
			s.logger.Warn("⚠️ Failed to cache latest report", zap.Error(err))
		}
	}

	if s.logger != nil {
		s.logger.Info("📊 Daily report generated",
			zap.String("report_id", report.ID.String()),
			zap.String("report_date", report.ReportDate),
			zap.Int("overdue", report.OverdueCount),
			zap.Int("at_risk", report.AtRiskCount),
		)
	}
	return report, nil
}

// Latest returns the cached report, falling back to the newest stored one
func (s *service) Latest(ctx context.Context) (*entities.Report, error) {
	if s.cache != nil {
		cached, err := s.cache.GetLatest(ctx)
		if err != nil && s.logger != nil {
			s.logger.Warn("⚠️ Report cache read failed", zap.Error(err))
		}
		if err == nil && cached != nil {
			return cached, nil
		}
	}
	return s.reports.FindLatest(ctx)
}

// Get returns one stored report
func (s *service) Get(ctx context.Context, id uuid.UUID) (*entities.Report, error) {
	return s.reports.FindByID(ctx, id)
}

// List returns stored reports newest first
func (s *service) List(ctx context.Context, limit, offset int) ([]*entities.Report, int64, error) {
	return s.reports.List(ctx, limit, offset)
}

// PDF renders a stored report as a PDF document
func (s *service) PDF(ctx context.Context, id uuid.UUID) ([]byte, *entities.Report, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	data, err := RenderPDF(PDFTitle, report.Markdown)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to render report pdf: %w", err)
	}
	return data, report, nil
}

// EmailReport sends a stored report to recipient with the PDF attached
func (s *service) EmailReport(ctx context.Context, id uuid.UUID, recipient string) error {
	if s.mailer == nil {
		return &entities.DeliveryError{Recipient: recipient, Err: errors.New("mail transport is not configured")}
	}

	data, report, err := s.PDF(ctx, id)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("%s for %s", PDFTitle, report.ReportDate)
	text := fmt.Sprintf("Hello,\n\nAttached is the ZenAI project report for %s.\n\n%s\n\nBest,\nZenAI Automated System\n",
		report.ReportDate, report.Markdown)

	err = s.mailer.SendWithAttachments(ctx, recipient, subject, "", text, mailer.Attachment{
		Filename:    fmt.Sprintf("zenai_report_%s.pdf", report.ReportDate),
		ContentType: "application/pdf",
		Data:        data,
	})
	if err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("📧 Report emailed",
			zap.String("report_id", report.ID.String()),
			zap.String("recipient", recipient),
		)
	}
	return nil
}

// SendDigest generates today's report and sends it as the daily digest
func (s *service) SendDigest(ctx context.Context, ref time.Time) (*entities.Report, entities.DispatchResult, error) {
	report, err := s.GenerateDaily(ctx, ref)
	if err != nil {
		return nil, entities.DispatchResult{}, err
	}
	if s.dispatcher == nil {
		return report, entities.DispatchResult{}, &entities.DeliveryError{Err: errors.New("notification dispatch is not configured")}
	}

	var summary entities.ReportSummary
	if err := json.Unmarshal(report.Summary, &summary); err != nil {
		return report, entities.DispatchResult{}, fmt.Errorf("failed to decode report summary: %w", err)
	}

	result := s.dispatcher.Dispatch(ctx, entities.Notification{
		Kind:          entities.NotificationDailyDigest,
		Date:          report.ReportDate,
		DigestSummary: &summary,
		DigestBody:    report.Markdown,
	})
	return report, result, nil
}

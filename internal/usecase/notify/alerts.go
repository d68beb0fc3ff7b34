package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
)

// MonitorRunner classifies open tasks at a reference time
type MonitorRunner interface {
	Run(ctx context.Context, ref time.Time) (*entities.MonitorReport, error)
}

// AlertRun is the outcome of one deadline alert pass
type AlertRun struct {
	ReferenceDate string                  `json:"reference_date"`
	Overdue       int                     `json:"overdue"`
	AtRisk        int                     `json:"at_risk"`
	Result        entities.DispatchResult `json:"result"`
}

// AlertService checks deadlines and alerts assignees
type AlertService struct {
	monitor    MonitorRunner
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewAlertService creates an alert service
func NewAlertService(monitor MonitorRunner, dispatcher *Dispatcher, logger *zap.Logger) *AlertService {
	return &AlertService{monitor: monitor, dispatcher: dispatcher, logger: logger}
}

// RunAlerts classifies open tasks at ref and sends an overdue alert or
// deadline reminder for each flagged task
func (s *AlertService) RunAlerts(ctx context.Context, ref time.Time) (*AlertRun, error) {
	report, err := s.monitor.Run(ctx, ref)
	if err != nil {
		return nil, err
	}

	run := &AlertRun{
		ReferenceDate: report.ReferenceDate,
		Overdue:       len(report.Overdue),
		AtRisk:        len(report.AtRisk),
		Result:        s.dispatcher.DispatchBatch(ctx, PlanAlerts(report)),
	}

	if s.logger != nil {
		s.logger.Info("⏰ Deadline alerts processed",
			zap.String("reference_date", run.ReferenceDate),
			zap.Int("overdue", run.Overdue),
			zap.Int("at_risk", run.AtRisk),
			zap.Int("sent", run.Result.Sent),
			zap.Int("skipped", run.Result.Skipped),
			zap.Int("failed", run.Result.Failed),
		)
	}
	return run, nil
}

package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	reportdto "github.com/ShashankMk031/ZenAI-AI-Backend/internal/adapter/dto/report"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/usecase/notify"
)

// AlertRunner runs one deadline alert pass
type AlertRunner interface {
	RunAlerts(ctx context.Context, ref time.Time) (*notify.AlertRun, error)
}

// DigestSender generates and sends the daily digest
type DigestSender interface {
	SendDigest(ctx context.Context, ref time.Time) (*entities.Report, entities.DispatchResult, error)
}

// Notification triggers alert and digest runs on demand
type Notification struct {
	alerts AlertRunner
	digest DigestSender
	logger *zap.Logger
	now    func() time.Time
}

// NewNotificationHandler creates a notification handler. A nil alert runner
// means the task store is not configured.
func NewNotificationHandler(alerts AlertRunner, digest DigestSender, logger *zap.Logger) *Notification {
	return &Notification{alerts: alerts, digest: digest, logger: logger, now: time.Now}
}

// Alerts sends overdue alerts and deadline reminders
// @Summary      Send deadline alerts
// @Description  Alerts assignees of overdue and at-risk tasks. Alerts already sent today are skipped.
// @Tags         Notifications
// @Produce      json
// @Security     BearerAuth
// @Param        reference_date  query     string  false  "Reference date (YYYY-MM-DD, default today)"
// @Success      200             {object}  notify.AlertRun
// @Failure      503             {object}  map[string]interface{}  "Task store not configured"
// @Router       /notifications/alerts [post]
func (h *Notification) Alerts(c echo.Context) error {
	if h.alerts == nil {
		return HandleError(h.logger, c, entities.ErrNoTaskDatabase)
	}
	ref, err := referenceTime(c.QueryParam("reference_date"), h.now)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	run, err := h.alerts.RunAlerts(c.Request().Context(), ref)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, run)
}

// Digest generates today's report and sends it to the digest recipients
// @Summary      Send daily digest
// @Tags         Notifications
// @Produce      json
// @Security     BearerAuth
// @Param        reference_date  query     string  false  "Reference date (YYYY-MM-DD, default today)"
// @Success      200             {object}  reportdto.DigestResponse
// @Failure      502             {object}  map[string]interface{}  "Delivery failed"
// @Router       /notifications/digest [post]
func (h *Notification) Digest(c echo.Context) error {
	ref, err := referenceTime(c.QueryParam("reference_date"), h.now)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	report, result, err := h.digest.SendDigest(c.Request().Context(), ref)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, reportdto.DigestResponse{
		Report:   reportdto.NewResponse(report),
		Delivery: result,
	})
}

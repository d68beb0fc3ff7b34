package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	taskdto "github.com/ShashankMk031/ZenAI-AI-Backend/internal/adapter/dto/task"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
)

// TaskMonitor classifies open tasks at a reference time
type TaskMonitor interface {
	Run(ctx context.Context, ref time.Time) (*entities.MonitorReport, error)
}

// Task serves read-only views over the external task database
type Task struct {
	monitor TaskMonitor
	logger  *zap.Logger
	now     func() time.Time
}

// NewTaskHandler creates a task handler. A nil monitor answers every request
// with a not-configured error.
func NewTaskHandler(monitor TaskMonitor, logger *zap.Logger) *Task {
	return &Task{monitor: monitor, logger: logger, now: time.Now}
}

// Overdue lists open tasks past their due date
// @Summary      List overdue tasks
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        reference_date  query     string  false  "Reference date (YYYY-MM-DD, default today)"
// @Success      200             {object}  taskdto.ListResponse
// @Failure      503             {object}  map[string]interface{}  "Task store not configured"
// @Router       /tasks/overdue [get]
func (h *Task) Overdue(c echo.Context) error {
	report, err := h.classify(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, taskdto.NewListResponse(report.ReferenceDate, report.Overdue))
}

// AtRisk lists open tasks due within the at-risk window
// @Summary      List at-risk tasks
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        reference_date  query     string  false  "Reference date (YYYY-MM-DD, default today)"
// @Success      200             {object}  taskdto.ListResponse
// @Failure      503             {object}  map[string]interface{}  "Task store not configured"
// @Router       /tasks/at-risk [get]
func (h *Task) AtRisk(c echo.Context) error {
	report, err := h.classify(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, taskdto.NewListResponse(report.ReferenceDate, report.AtRisk))
}

// Dashboard summarizes open, overdue and at-risk work
// @Summary      Task dashboard
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        reference_date  query     string  false  "Reference date (YYYY-MM-DD, default today)"
// @Success      200             {object}  taskdto.DashboardResponse
// @Failure      503             {object}  map[string]interface{}  "Task store not configured"
// @Router       /dashboard [get]
func (h *Task) Dashboard(c echo.Context) error {
	report, err := h.classify(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, taskdto.NewDashboardResponse(report))
}

func (h *Task) classify(c echo.Context) (*entities.MonitorReport, error) {
	if h.monitor == nil {
		return nil, entities.ErrNoTaskDatabase
	}
	ref, err := referenceTime(c.QueryParam("reference_date"), h.now)
	if err != nil {
		return nil, err
	}
	return h.monitor.Run(c.Request().Context(), ref)
}

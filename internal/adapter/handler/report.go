package handler

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ShashankMk031/ZenAI-AI-Backend/errors"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/adapter/dto/common"
	reportdto "github.com/ShashankMk031/ZenAI-AI-Backend/internal/adapter/dto/report"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/usecase/report"
)

// Report handles daily report endpoints
type Report struct {
	svc    report.Service
	logger *zap.Logger
	now    func() time.Time
}

// NewReportHandler creates a new report handler
func NewReportHandler(svc report.Service, logger *zap.Logger) *Report {
	return &Report{svc: svc, logger: logger, now: time.Now}
}

// Daily generates and stores the daily project report
// @Summary      Generate daily report
// @Description  Classifies open tasks at reference_date and stores a markdown report
// @Tags         Reports
// @Produce      json
// @Security     BearerAuth
// @Param        reference_date  query     string  false  "Reference date (YYYY-MM-DD, default today)"
// @Success      200             {object}  reportdto.Response
// @Failure      502             {object}  map[string]interface{}  "Task store query failed"
// @Failure      500             {object}  map[string]interface{}  "Report could not be built or stored"
// @Failure      503             {object}  map[string]interface{}  "Task store not configured"
// @Router       /reports/daily [get]
func (h *Report) Daily(c echo.Context) error {
	ref, err := referenceTime(c.QueryParam("reference_date"), h.now)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	r, err := h.svc.GenerateDaily(c.Request().Context(), ref)
	if err != nil {
		return HandleError(h.logger, c, generationFailed(err))
	}
	return HandleSuccess(h.logger, c, reportdto.NewResponse(r))
}

// List returns report history newest first
// @Summary      List reports
// @Tags         Reports
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (1-100, default 20)"
// @Param        offset  query     int  false  "Offset"
// @Success      200     {object}  common.ListResponse
// @Router       /reports [get]
func (h *Report) List(c echo.Context) error {
	var req reportdto.ListReportsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	if req.Limit == 0 {
		req.Limit = 20
	}

	reports, total, err := h.svc.List(c.Request().Context(), req.Limit, req.Offset)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, common.NewListResponse(
		reportdto.NewListResponse(reports), req.Limit, req.Offset, total))
}

// Latest returns the most recent report
// @Summary      Latest report
// @Tags         Reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  reportdto.Response
// @Failure      404  {object}  map[string]interface{}  "No report yet"
// @Router       /reports/latest [get]
func (h *Report) Latest(c echo.Context) error {
	r, err := h.svc.Latest(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, reportdto.NewResponse(r))
}

// Get returns one stored report
// @Summary      Get report
// @Tags         Reports
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Report ID (UUID)"
// @Success      200  {object}  reportdto.Response
// @Failure      404  {object}  map[string]interface{}  "Report not found"
// @Router       /reports/{id} [get]
func (h *Report) Get(c echo.Context) error {
	id, err := h.reportID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	r, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, notFound(id, err))
	}
	return HandleSuccess(h.logger, c, reportdto.NewResponse(r))
}

// PDF exports a stored report as a PDF download
// @Summary      Export report as PDF
// @Tags         Reports
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "Report ID (UUID)"
// @Success      200  {file}  binary
// @Failure      404  {object}  map[string]interface{}  "Report not found"
// @Failure      500  {object}  map[string]interface{}  "Export failed"
// @Router       /reports/{id}/pdf [get]
func (h *Report) PDF(c echo.Context) error {
	id, err := h.reportID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	data, r, err := h.svc.PDF(c.Request().Context(), id)
	if err != nil {
		if stdErrors.Is(err, entities.ErrReportNotFound) {
			return HandleError(h.logger, c, notFound(id, err))
		}
		return HandleError(h.logger, c, errors.ErrReportExportFailed("pdf", err))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("zenai_report_%s.pdf", r.ReportDate)))
	return c.Blob(http.StatusOK, "application/pdf", data)
}

// Email sends a stored report with its PDF attached
// @Summary      Email report
// @Tags         Reports
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string  true  "Report ID (UUID)"
// @Param        recipient  query     string  true  "Recipient email"
// @Success      200        {object}  map[string]interface{}
// @Failure      404        {object}  map[string]interface{}  "Report not found"
// @Failure      502        {object}  map[string]interface{}  "Mail delivery failed"
// @Router       /reports/{id}/email [post]
func (h *Report) Email(c echo.Context) error {
	id, err := h.reportID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	// Echo binds query params only for GET and DELETE
	var req reportdto.EmailReportRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if q := c.QueryParam("recipient"); q != "" {
		req.Recipient = q
	}
	if req.Recipient == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("recipient is required"))
	}
	if err := validate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.svc.EmailReport(c.Request().Context(), id, req.Recipient); err != nil {
		return HandleError(h.logger, c, notFound(id, err))
	}
	return HandleSuccess(h.logger, c, map[string]string{
		"report_id": id.String(),
		"recipient": req.Recipient,
		"status":    "sent",
	})
}

func (h *Report) reportID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument("id must be a UUID")
	}
	return id, nil
}

func notFound(id uuid.UUID, err error) error {
	if stdErrors.Is(err, entities.ErrReportNotFound) {
		return errors.ErrReportNotFound(id.String())
	}
	return err
}

// generationFailed keeps the domain mapping of err and reports anything
// unclassified as a failed report build.
func generationFailed(err error) error {
	mapped := toAppError(err)
	var appErr errors.AppError
	if stdErrors.As(mapped, &appErr) && appErr.Code == errors.ErrorCode_INTERNAL {
		return errors.ErrReportGenerationFailed(err)
	}
	return mapped
}

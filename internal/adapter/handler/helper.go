package handler

import (
	stdErrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ShashankMk031/ZenAI-AI-Backend/errors"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/dateparse"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// queryInt reads a non-negative integer query parameter with a default value
func queryInt(c echo.Context, key string, def int) (int, error) {
	raw := c.QueryParam(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.ErrInvalidArgument(key + " must be a non-negative integer")
	}
	return n, nil
}

// referenceTime resolves the reference time of a request: the given
// canonical date, or now when raw is empty
func referenceTime(raw string, now func() time.Time) (time.Time, error) {
	if raw == "" {
		return now(), nil
	}
	ref, err := dateparse.Parse(raw)
	if err != nil {
		return time.Time{}, errors.ErrInvalidArgument("reference_date must be a YYYY-MM-DD date")
	}
	return ref, nil
}

// bindAndValidate binds the request into req and runs struct validation
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	return validate(c, req)
}

func validate(c echo.Context, req interface{}) error {
	if c.Echo().Validator == nil {
		return nil
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrInvalidArgument(err.Error())
	}
	return nil
}

// toAppError maps domain failures onto API errors. Errors that already are
// AppErrors pass through unchanged.
func toAppError(err error) error {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return err
	}

	var (
		noModel       *entities.NoModelAvailableError
		extraction    *entities.ExtractionError
		transcription *entities.TranscriptionError
		transport     *entities.TransportError
		store         *entities.StoreError
		delivery      *entities.DeliveryError
	)

	switch {
	case stdErrors.Is(err, entities.ErrEmptyMeetingText):
		return errors.ErrEmptyMeetingText()
	case stdErrors.Is(err, entities.ErrMeetingNotFound):
		return errors.ErrNotFound("Meeting")
	case stdErrors.Is(err, entities.ErrReportNotFound):
		return errors.ErrNotFound("Report")
	case stdErrors.Is(err, entities.ErrNoTaskDatabase):
		return errors.ErrTaskStoreNotConfigured()
	case stdErrors.As(err, &noModel):
		return errors.ErrNoModelAvailable(err)
	case stdErrors.As(err, &extraction):
		return errors.ErrAIAnalysisFailed(err)
	case stdErrors.As(err, &transcription):
		return errors.ErrAITranscriptionFailed(err)
	case stdErrors.As(err, &store):
		return errors.ErrTaskStoreFailed(err)
	case stdErrors.As(err, &delivery):
		return errors.ErrNotificationFailed(err)
	case stdErrors.As(err, &transport):
		return errors.ErrAIServiceUnavailable(transport.Service, err)
	}
	return errors.ErrInternal(err)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return handleStatus(logger, c, http.StatusOK, data)
}

// HandleCreated writes a standardized 201 response
func HandleCreated(logger *zap.Logger, c echo.Context, data interface{}) error {
	return handleStatus(logger, c, http.StatusCreated, data)
}

func handleStatus(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", status),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if !stdErrors.As(toAppError(err), &appErr) {
		appErr = errors.ErrInternal(err)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.String("app_code", appErr.Code.String()),
			zap.Error(err),
		)
	}

	info := ""
	if appErr.Raw != nil {
		info = appErr.Raw.Error()
	}

	body := errs{
		Code:    appErr.Code,
		Message: appErr.Message,
		Info:    info,
		Details: appErr.Details,
	}

	return c.JSON(appErr.HTTPCode, body)
}

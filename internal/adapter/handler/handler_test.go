package handler

import (
	"bytes"
	"context"
	"encoding/json"
	stdErrors "errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ShashankMk031/ZenAI-AI-Backend/errors"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/usecase/meeting"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/usecase/notify"
	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/config"
	pkgvalidator "github.com/ShashankMk031/ZenAI-AI-Backend/pkg/validator"
)

// MockMeetingService is a mock of meeting.Service
type MockMeetingService struct {
	mock.Mock
}

func (m *MockMeetingService) Analyze(ctx context.Context, text string, ref time.Time) (*meeting.Result, error) {
	args := m.Called(ctx, text, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*meeting.Result), args.Error(1)
}

func (m *MockMeetingService) AnalyzeAudio(ctx context.Context, upload meeting.AudioUpload, ref time.Time) (*meeting.Result, error) {
	args := m.Called(ctx, upload, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*meeting.Result), args.Error(1)
}

func (m *MockMeetingService) AnalyzeAndSync(ctx context.Context, text string, ref time.Time, databaseID string) (*meeting.Result, error) {
	args := m.Called(ctx, text, ref, databaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*meeting.Result), args.Error(1)
}

func (m *MockMeetingService) Get(ctx context.Context, id uuid.UUID) (*entities.MeetingRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MeetingRecord), args.Error(1)
}

func (m *MockMeetingService) Recent(ctx context.Context, limit int) ([]*entities.MeetingRecord, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*entities.MeetingRecord), args.Error(1)
}

// MockReportService is a mock of report.Service
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) GenerateDaily(ctx context.Context, ref time.Time) (*entities.Report, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Report), args.Error(1)
}

func (m *MockReportService) Latest(ctx context.Context) (*entities.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Report), args.Error(1)
}

func (m *MockReportService) Get(ctx context.Context, id uuid.UUID) (*entities.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Report), args.Error(1)
}

func (m *MockReportService) List(ctx context.Context, limit, offset int) ([]*entities.Report, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*entities.Report), args.Get(1).(int64), args.Error(2)
}

func (m *MockReportService) PDF(ctx context.Context, id uuid.UUID) ([]byte, *entities.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(1) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]byte), args.Get(1).(*entities.Report), args.Error(2)
}

func (m *MockReportService) EmailReport(ctx context.Context, id uuid.UUID, recipient string) error {
	return m.Called(ctx, id, recipient).Error(0)
}

func (m *MockReportService) SendDigest(ctx context.Context, ref time.Time) (*entities.Report, entities.DispatchResult, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, entities.DispatchResult{}, args.Error(2)
	}
	return args.Get(0).(*entities.Report), args.Get(1).(entities.DispatchResult), args.Error(2)
}

// MockTaskMonitor is a mock of TaskMonitor
type MockTaskMonitor struct {
	mock.Mock
}

func (m *MockTaskMonitor) Run(ctx context.Context, ref time.Time) (*entities.MonitorReport, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MonitorReport), args.Error(1)
}

// MockAlertRunner is a mock of AlertRunner
type MockAlertRunner struct {
	mock.Mock
}

func (m *MockAlertRunner) RunAlerts(ctx context.Context, ref time.Time) (*notify.AlertRun, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notify.AlertRun), args.Error(1)
}

var (
	fixedNow = time.Date(2025, 10, 1, 9, 30, 0, 0, time.UTC)
	oct3     = time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC)
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newEcho(h Handlers, checks map[string]HealthCheck) *echo.Echo {
	e := echo.New()
	e.Validator = pkgvalidator.New()
	NewRouter(&config.Config{Server: config.ServerConfig{Environment: "test"}}, h, nil, checks, zap.NewNop()).Setup(e)
	return e
}

func do(t *testing.T, e *echo.Echo, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func meetingHandlers(svc meeting.Service) Handlers {
	h := NewMeetingHandler(svc, zap.NewNop())
	h.now = func() time.Time { return fixedNow }
	return Handlers{Meeting: h}
}

func TestMeeting_Analyze(t *testing.T) {
	t.Run("Should default the reference time to now", func(t *testing.T) {
		svc := new(MockMeetingService)
		svc.On("Analyze", mock.Anything, "Alice ships Friday.", fixedNow).
			Return(&meeting.Result{ReferenceDate: "2025-10-01", Model: "llama-3.3-70b-versatile"}, nil)

		rec, env := do(t, newEcho(meetingHandlers(svc), nil),
			jsonRequest(http.MethodPost, "/v1/meetings/analyze", `{"meeting_text":"Alice ships Friday."}`))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(env.Data), `"model":"llama-3.3-70b-versatile"`)
		svc.AssertExpectations(t)
	})

	t.Run("Should parse an explicit reference date", func(t *testing.T) {
		svc := new(MockMeetingService)
		svc.On("Analyze", mock.Anything, "notes", oct3).Return(&meeting.Result{ReferenceDate: "2025-10-03"}, nil)

		rec, _ := do(t, newEcho(meetingHandlers(svc), nil),
			jsonRequest(http.MethodPost, "/v1/meetings/analyze", `{"meeting_text":"notes","reference_date":"2025-10-03"}`))

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Should reject a malformed reference date", func(t *testing.T) {
		svc := new(MockMeetingService)

		rec, env := do(t, newEcho(meetingHandlers(svc), nil),
			jsonRequest(http.MethodPost, "/v1/meetings/analyze", `{"meeting_text":"notes","reference_date":"03/10/2025"}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, int(errors.ErrorCode_INVALID_ARGUMENT), env.Code)
		svc.AssertNotCalled(t, "Analyze")
	})

	t.Run("Should map empty meeting text", func(t *testing.T) {
		svc := new(MockMeetingService)
		svc.On("Analyze", mock.Anything, "  ", fixedNow).Return(nil, entities.ErrEmptyMeetingText)

		rec, env := do(t, newEcho(meetingHandlers(svc), nil),
			jsonRequest(http.MethodPost, "/v1/meetings/analyze", `{"meeting_text":"  "}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, int(errors.ErrorCode_AI_EMPTY_MEETING_TEXT), env.Code)
	})

	t.Run("Should map domain failures to API errors", func(t *testing.T) {
		tests := []struct {
			name       string
			err        error
			wantStatus int
			wantCode   errors.ErrorCode
		}{
			{"no model", &entities.NoModelAvailableError{Available: []string{"other"}}, http.StatusServiceUnavailable, errors.ErrorCode_AI_NO_MODEL_AVAILABLE},
			{"extraction", &entities.ExtractionError{Reason: "no JSON object", Raw: "hello"}, http.StatusBadGateway, errors.ErrorCode_AI_ANALYSIS_FAILED},
			{"transport", &entities.TransportError{Service: "groq", StatusCode: 500}, http.StatusBadGateway, errors.ErrorCode_AI_SERVICE_UNAVAILABLE},
			{"unknown", stdErrors.New("boom"), http.StatusInternalServerError, errors.ErrorCode_INTERNAL},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc := new(MockMeetingService)
				svc.On("Analyze", mock.Anything, "notes", fixedNow).Return(nil, tt.err)

				rec, env := do(t, newEcho(meetingHandlers(svc), nil),
					jsonRequest(http.MethodPost, "/v1/meetings/analyze", `{"meeting_text":"notes"}`))

				assert.Equal(t, tt.wantStatus, rec.Code)
				assert.Equal(t, int(tt.wantCode), env.Code)
			})
		}
	})
}

func TestMeeting_AnalyzeAndSync(t *testing.T) {
	t.Run("Should pass the database override", func(t *testing.T) {
		svc := new(MockMeetingService)
		svc.On("AnalyzeAndSync", mock.Anything, "notes", fixedNow, "db-2").
			Return(&meeting.Result{Sync: &entities.SyncResult{Total: 1, Successful: 1}}, nil)

		rec, env := do(t, newEcho(meetingHandlers(svc), nil),
			jsonRequest(http.MethodPost, "/v1/meetings/analyze-and-sync", `{"meeting_text":"notes","database_id":"db-2"}`))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(env.Data), `"notion_sync"`)
	})

	t.Run("Should report a missing task store", func(t *testing.T) {
		svc := new(MockMeetingService)
		svc.On("AnalyzeAndSync", mock.Anything, "notes", fixedNow, "").Return(nil, entities.ErrNoTaskDatabase)

		rec, env := do(t, newEcho(meetingHandlers(svc), nil),
			jsonRequest(http.MethodPost, "/v1/meetings/analyze-and-sync", `{"meeting_text":"notes"}`))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, int(errors.ErrorCode_TASK_STORE_NOT_CONFIGURED), env.Code)
	})
}

func audioRequest(t *testing.T, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("audio_file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.WriteField("reference_date", "2025-10-03"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/meetings/analyze-audio", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestMeeting_AnalyzeAudio(t *testing.T) {
	t.Run("Should forward the upload", func(t *testing.T) {
		svc := new(MockMeetingService)
		svc.On("AnalyzeAudio", mock.Anything, mock.MatchedBy(func(u meeting.AudioUpload) bool {
			return u.Filename == "standup.m4a" && string(u.Data) == "RIFF"
		}), oct3).Return(&meeting.Result{ReferenceDate: "2025-10-03"}, nil)

		rec, _ := do(t, newEcho(meetingHandlers(svc), nil), audioRequest(t, "standup.m4a", []byte("RIFF")))

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Should reject unsupported formats", func(t *testing.T) {
		svc := new(MockMeetingService)

		rec, env := do(t, newEcho(meetingHandlers(svc), nil), audioRequest(t, "notes.txt", []byte("hi")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, int(errors.ErrorCode_INVALID_ARGUMENT), env.Code)
		svc.AssertNotCalled(t, "AnalyzeAudio")
	})

	t.Run("Should reject a missing file", func(t *testing.T) {
		rec, _ := do(t, newEcho(meetingHandlers(new(MockMeetingService)), nil),
			jsonRequest(http.MethodPost, "/v1/meetings/analyze-audio", `{}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Should map transcription failures", func(t *testing.T) {
		svc := new(MockMeetingService)
		svc.On("AnalyzeAudio", mock.Anything, mock.Anything, oct3).
			Return(nil, &entities.TranscriptionError{Err: stdErrors.New("audio too short")})

		rec, env := do(t, newEcho(meetingHandlers(svc), nil), audioRequest(t, "a.wav", []byte("RIFF")))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, int(errors.ErrorCode_AI_TRANSCRIPTION_FAILED), env.Code)
	})
}

func TestMeeting_GetAndList(t *testing.T) {
	id := uuid.New()

	t.Run("Should return a stored meeting", func(t *testing.T) {
		svc := new(MockMeetingService)
		rec := entities.NewMeetingRecord(entities.MeetingSourceText, "m", "2025-10-01")
		rec.ID = id
		svc.On("Get", mock.Anything, id).Return(rec, nil)

		resp, env := do(t, newEcho(meetingHandlers(svc), nil), httptest.NewRequest(http.MethodGet, "/v1/meetings/"+id.String(), nil))

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, string(env.Data), id.String())
	})

	t.Run("Should return 404 for unknown meetings", func(t *testing.T) {
		svc := new(MockMeetingService)
		svc.On("Get", mock.Anything, id).Return(nil, entities.ErrMeetingNotFound)

		resp, env := do(t, newEcho(meetingHandlers(svc), nil), httptest.NewRequest(http.MethodGet, "/v1/meetings/"+id.String(), nil))

		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.Equal(t, int(errors.ErrorCode_MEETING_NOT_FOUND), env.Code)
	})

	t.Run("Should reject a malformed id", func(t *testing.T) {
		resp, _ := do(t, newEcho(meetingHandlers(new(MockMeetingService)), nil),
			httptest.NewRequest(http.MethodGet, "/v1/meetings/not-a-uuid", nil))
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("Should default the list limit", func(t *testing.T) {
		svc := new(MockMeetingService)
		svc.On("Recent", mock.Anything, 20).Return([]*entities.MeetingRecord{}, nil)

		resp, env := do(t, newEcho(meetingHandlers(svc), nil), httptest.NewRequest(http.MethodGet, "/v1/meetings", nil))

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `[]`, string(env.Data))
	})

	t.Run("Should validate the list limit", func(t *testing.T) {
		resp, _ := do(t, newEcho(meetingHandlers(new(MockMeetingService)), nil),
			httptest.NewRequest(http.MethodGet, "/v1/meetings?limit=500", nil))
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func taskHandlers(m TaskMonitor) Handlers {
	h := NewTaskHandler(m, zap.NewNop())
	h.now = func() time.Time { return fixedNow }
	return Handlers{Task: h}
}

func TestTask(t *testing.T) {
	due := "2025-09-29"
	report := &entities.MonitorReport{
		ReferenceDate: "2025-10-01",
		Open:          []entities.TaskSnapshot{{ExternalID: "t1"}, {ExternalID: "t2"}, {ExternalID: "t3"}},
		Overdue:       []entities.TaskSnapshot{{ExternalID: "t1", Title: "Ship", DueDate: &due}},
	}

	t.Run("Should list overdue tasks", func(t *testing.T) {
		m := new(MockTaskMonitor)
		m.On("Run", mock.Anything, fixedNow).Return(report, nil)

		rec, env := do(t, newEcho(taskHandlers(m), nil), httptest.NewRequest(http.MethodGet, "/v1/tasks/overdue", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(env.Data), `"count":1`)
		assert.Contains(t, string(env.Data), `"external_id":"t1"`)
	})

	t.Run("Should return an empty at-risk list, not null", func(t *testing.T) {
		m := new(MockTaskMonitor)
		m.On("Run", mock.Anything, oct3).Return(report, nil)

		rec, env := do(t, newEcho(taskHandlers(m), nil),
			httptest.NewRequest(http.MethodGet, "/v1/tasks/at-risk?reference_date=2025-10-03", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(env.Data), `"tasks":[]`)
		m.AssertExpectations(t)
	})

	t.Run("Should count on-track tasks in the dashboard", func(t *testing.T) {
		m := new(MockTaskMonitor)
		m.On("Run", mock.Anything, fixedNow).Return(report, nil)

		rec, env := do(t, newEcho(taskHandlers(m), nil), httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var dash struct {
			TotalOpen    int `json:"total_open"`
			OverdueCount int `json:"overdue_count"`
			OnTrackCount int `json:"on_track_count"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &dash))
		assert.Equal(t, 3, dash.TotalOpen)
		assert.Equal(t, 1, dash.OverdueCount)
		assert.Equal(t, 2, dash.OnTrackCount)
	})

	t.Run("Should answer 503 without a task store", func(t *testing.T) {
		rec, env := do(t, newEcho(taskHandlers(nil), nil), httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, int(errors.ErrorCode_TASK_STORE_NOT_CONFIGURED), env.Code)
	})

	t.Run("Should map store failures", func(t *testing.T) {
		m := new(MockTaskMonitor)
		m.On("Run", mock.Anything, fixedNow).Return(nil, &entities.StoreError{Op: "query open tasks", StatusCode: 401})

		rec, env := do(t, newEcho(taskHandlers(m), nil), httptest.NewRequest(http.MethodGet, "/v1/tasks/overdue", nil))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, int(errors.ErrorCode_TASK_STORE_FAILED), env.Code)
	})
}

func reportHandlers(svc *MockReportService) Handlers {
	h := NewReportHandler(svc, zap.NewNop())
	h.now = func() time.Time { return fixedNow }
	return Handlers{Report: h}
}

func TestReport(t *testing.T) {
	id := uuid.New()
	stored := &entities.Report{ID: id, ReportDate: "2025-10-01", Markdown: "# Report", OverdueCount: 1}

	t.Run("Should generate the daily report", func(t *testing.T) {
		svc := new(MockReportService)
		svc.On("GenerateDaily", mock.Anything, fixedNow).Return(stored, nil)

		rec, env := do(t, newEcho(reportHandlers(svc), nil), httptest.NewRequest(http.MethodGet, "/v1/reports/daily", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(env.Data), `"summary":{}`)
	})

	t.Run("Should report a failed report build", func(t *testing.T) {
		svc := new(MockReportService)
		svc.On("GenerateDaily", mock.Anything, fixedNow).Return(nil, stdErrors.New("insert reports: connection reset"))

		rec, env := do(t, newEcho(reportHandlers(svc), nil), httptest.NewRequest(http.MethodGet, "/v1/reports/daily", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, int(errors.ErrorCode_REPORT_GENERATION_FAILED), env.Code)
	})

	t.Run("Should keep task store failures on a daily report", func(t *testing.T) {
		svc := new(MockReportService)
		svc.On("GenerateDaily", mock.Anything, fixedNow).Return(nil, &entities.StoreError{StatusCode: 502})

		rec, env := do(t, newEcho(reportHandlers(svc), nil), httptest.NewRequest(http.MethodGet, "/v1/reports/daily", nil))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, int(errors.ErrorCode_TASK_STORE_FAILED), env.Code)
	})

	t.Run("Should page report history", func(t *testing.T) {
		svc := new(MockReportService)
		svc.On("List", mock.Anything, 5, 10).Return([]*entities.Report{stored}, int64(11), nil)

		rec, env := do(t, newEcho(reportHandlers(svc), nil),
			httptest.NewRequest(http.MethodGet, "/v1/reports?limit=5&offset=10", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(env.Data), `"total_items":11`)
	})

	t.Run("Should export a PDF", func(t *testing.T) {
		svc := new(MockReportService)
		svc.On("PDF", mock.Anything, id).Return([]byte("%PDF-1.3"), stored, nil)

		rec, _ := do(t, newEcho(reportHandlers(svc), nil),
			httptest.NewRequest(http.MethodGet, "/v1/reports/"+id.String()+"/pdf", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
		assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "zenai_report_2025-10-01.pdf")
		assert.Equal(t, "%PDF-1.3", rec.Body.String())
	})

	t.Run("Should return 404 for an unknown report", func(t *testing.T) {
		svc := new(MockReportService)
		svc.On("PDF", mock.Anything, id).Return(nil, nil, entities.ErrReportNotFound)

		rec, env := do(t, newEcho(reportHandlers(svc), nil),
			httptest.NewRequest(http.MethodGet, "/v1/reports/"+id.String()+"/pdf", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, int(errors.ErrorCode_REPORT_NOT_FOUND), env.Code)
	})

	t.Run("Should email a report to the query recipient", func(t *testing.T) {
		svc := new(MockReportService)
		svc.On("EmailReport", mock.Anything, id, "lead@example.com").Return(nil)

		rec, _ := do(t, newEcho(reportHandlers(svc), nil),
			httptest.NewRequest(http.MethodPost, "/v1/reports/"+id.String()+"/email?recipient=lead@example.com", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Should reject an invalid recipient", func(t *testing.T) {
		svc := new(MockReportService)

		rec, _ := do(t, newEcho(reportHandlers(svc), nil),
			httptest.NewRequest(http.MethodPost, "/v1/reports/"+id.String()+"/email?recipient=nobody", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "EmailReport")
	})

	t.Run("Should map delivery failures", func(t *testing.T) {
		svc := new(MockReportService)
		svc.On("EmailReport", mock.Anything, id, "lead@example.com").
			Return(&entities.DeliveryError{Recipient: "lead@example.com", Err: stdErrors.New("relay refused")})

		rec, env := do(t, newEcho(reportHandlers(svc), nil),
			jsonRequest(http.MethodPost, "/v1/reports/"+id.String()+"/email", `{"recipient":"lead@example.com"}`))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, int(errors.ErrorCode_NOTIFICATION_FAILED), env.Code)
	})
}

func TestNotification(t *testing.T) {
	newHandlers := func(alerts AlertRunner, digest DigestSender) Handlers {
		h := NewNotificationHandler(alerts, digest, zap.NewNop())
		h.now = func() time.Time { return fixedNow }
		return Handlers{Notification: h}
	}

	t.Run("Should run deadline alerts", func(t *testing.T) {
		alerts := new(MockAlertRunner)
		alerts.On("RunAlerts", mock.Anything, oct3).
			Return(&notify.AlertRun{ReferenceDate: "2025-10-03", Overdue: 2, Result: entities.DispatchResult{Sent: 2}}, nil)

		rec, env := do(t, newEcho(newHandlers(alerts, new(MockReportService)), nil),
			httptest.NewRequest(http.MethodPost, "/v1/notifications/alerts?reference_date=2025-10-03", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(env.Data), `"overdue":2`)
	})

	t.Run("Should answer 503 for alerts without a task store", func(t *testing.T) {
		rec, _ := do(t, newEcho(newHandlers(nil, new(MockReportService)), nil),
			httptest.NewRequest(http.MethodPost, "/v1/notifications/alerts", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("Should send the digest", func(t *testing.T) {
		digest := new(MockReportService)
		digest.On("SendDigest", mock.Anything, fixedNow).
			Return(&entities.Report{ID: uuid.New(), ReportDate: "2025-10-01"}, entities.DispatchResult{Sent: 3}, nil)

		rec, env := do(t, newEcho(newHandlers(nil, digest), nil),
			httptest.NewRequest(http.MethodPost, "/v1/notifications/digest", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(env.Data), `"delivery"`)
	})
}

func TestRouter_Health(t *testing.T) {
	t.Run("Should report ok", func(t *testing.T) {
		e := newEcho(Handlers{}, map[string]HealthCheck{
			"database": func(context.Context) error { return nil },
		})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	})

	t.Run("Should report a failing dependency", func(t *testing.T) {
		e := newEcho(Handlers{}, map[string]HealthCheck{
			"database": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return stdErrors.New("connection refused") },
		})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"redis":"connection refused"`)
	})

	t.Run("Should not register routes of missing handlers", func(t *testing.T) {
		e := newEcho(Handlers{}, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, jsonRequest(http.MethodPost, "/v1/meetings/analyze", `{}`))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

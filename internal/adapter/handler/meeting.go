package handler

import (
	stdErrors "errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ShashankMk031/ZenAI-AI-Backend/errors"
	meetingdto "github.com/ShashankMk031/ZenAI-AI-Backend/internal/adapter/dto/meeting"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/usecase/meeting"
)

// DefaultMaxAudioBytes caps uploaded audio files
const DefaultMaxAudioBytes int64 = 100 << 20

// AllowedAudioExtensions lists the audio formats the transcriber accepts
var AllowedAudioExtensions = map[string]bool{
	".mp3":  true,
	".mp4":  true,
	".mpeg": true,
	".mpga": true,
	".m4a":  true,
	".wav":  true,
	".webm": true,
}

// Meeting handles meeting analysis endpoints
type Meeting struct {
	svc           meeting.Service
	logger        *zap.Logger
	now           func() time.Time
	maxAudioBytes int64
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(svc meeting.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		svc:           svc,
		logger:        logger,
		now:           time.Now,
		maxAudioBytes: DefaultMaxAudioBytes,
	}
}

// Analyze extracts decisions, action items and risks from meeting text
// @Summary      Analyze meeting text
// @Description  Extracts key decisions, action items, risks and a summary. Relative due dates resolve against reference_date (default today).
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      meetingdto.AnalyzeRequest  true  "Meeting text"
// @Success      200      {object}  meeting.Result
// @Failure      400      {object}  map[string]interface{}  "Empty meeting text or invalid reference date"
// @Failure      502      {object}  map[string]interface{}  "Model reply could not be read or the provider failed"
// @Failure      503      {object}  map[string]interface{}  "No preferred model is available"
// @Router       /meetings/analyze [post]
func (h *Meeting) Analyze(c echo.Context) error {
	var req meetingdto.AnalyzeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	ref, err := referenceTime(req.ReferenceDate, h.now)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.svc.Analyze(c.Request().Context(), req.MeetingText, ref)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, result)
}

// AnalyzeAudio transcribes and analyzes an uploaded recording
// @Summary      Analyze meeting audio
// @Description  Transcribes an uploaded recording (mp3, mp4, mpeg, mpga, m4a, wav, webm) and analyzes the transcript
// @Tags         Meetings
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        audio_file      formData  file    true   "Meeting recording"
// @Param        reference_date  formData  string  false  "Reference date (YYYY-MM-DD)"
// @Success      200  {object}  meeting.Result
// @Failure      400  {object}  map[string]interface{}  "Missing or unsupported audio file"
// @Failure      502  {object}  map[string]interface{}  "Transcription or analysis failed"
// @Router       /meetings/analyze-audio [post]
func (h *Meeting) AnalyzeAudio(c echo.Context) error {
	ref, err := referenceTime(c.FormValue("reference_date"), h.now)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	fh, err := c.FormFile("audio_file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("audio_file is required"))
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !AllowedAudioExtensions[ext] {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(
			fmt.Sprintf("unsupported audio format %q", ext)).WithDetail("allowed", allowedExtensions()))
	}
	if fh.Size > h.maxAudioBytes {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(
			fmt.Sprintf("audio file exceeds %d bytes", h.maxAudioBytes)))
	}

	f, err := fh.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxAudioBytes+1))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if len(data) == 0 {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("audio_file is empty"))
	}

	result, err := h.svc.AnalyzeAudio(c.Request().Context(), meeting.AudioUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Data:        data,
	}, ref)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, result)
}

// AnalyzeAndSync analyzes meeting text and creates a task per action item
// @Summary      Analyze meeting text and sync tasks
// @Description  Analyzes the meeting, then creates one task per action item in the task database. Per-item failures are reported in notion_sync and do not fail the request.
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      meetingdto.AnalyzeAndSyncRequest  true  "Meeting text and optional task database"
// @Success      200      {object}  meeting.Result
// @Failure      400      {object}  map[string]interface{}  "Empty meeting text or invalid reference date"
// @Failure      503      {object}  map[string]interface{}  "Task store not configured or no model available"
// @Router       /meetings/analyze-and-sync [post]
func (h *Meeting) AnalyzeAndSync(c echo.Context) error {
	var req meetingdto.AnalyzeAndSyncRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	ref, err := referenceTime(req.ReferenceDate, h.now)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.svc.AnalyzeAndSync(c.Request().Context(), req.MeetingText, ref, req.DatabaseID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, result)
}

// Get returns a stored meeting analysis
// @Summary      Get meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  meetingdto.RecordResponse
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id} [get]
func (h *Meeting) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("id must be a UUID"))
	}

	record, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if stdErrors.Is(err, entities.ErrMeetingNotFound) {
			return HandleError(h.logger, c, errors.ErrMeetingNotFound(id.String()))
		}
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, meetingdto.NewRecordResponse(record))
}

// List returns the newest stored meeting analyses
// @Summary      List meetings
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum records (1-100, default 20)"
// @Success      200    {array}   meetingdto.RecordResponse
// @Router       /meetings [get]
func (h *Meeting) List(c echo.Context) error {
	var req meetingdto.ListMeetingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	if req.Limit == 0 {
		req.Limit = 20
	}

	records, err := h.svc.Recent(c.Request().Context(), req.Limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, meetingdto.NewRecordListResponse(records))
}

func allowedExtensions() string {
	return ".mp3, .mp4, .mpeg, .mpga, .m4a, .wav, .webm"
}

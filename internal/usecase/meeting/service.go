// Package meeting runs meeting analysis end to end: archive, analyze,
// persist and optionally push the action items to the task store.
package meeting

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/repositories"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/usecase/ai"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/usecase/tasksync"
	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/dateparse"
)

// TaskSyncer pushes action items to the task store
type TaskSyncer interface {
	Synchronize(ctx context.Context, items []entities.ActionItem, target tasksync.Target) entities.SyncResult
}

// AudioArchive keeps a copy of uploaded audio
type AudioArchive interface {
	ArchiveAudio(ctx context.Context, filename, contentType string, data []byte, ref time.Time) (string, error)
}

// AudioUpload is a received audio file
type AudioUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Result is the outcome of one analysis request
type Result struct {
	MeetingID     string                   `json:"meeting_id,omitempty"`
	ReferenceDate string                   `json:"reference_date"`
	Model         string                   `json:"model"`
	Analysis      entities.MeetingAnalysis `json:"analysis"`
	Warnings      []entities.Warning       `json:"warnings"`
	Sync          *entities.SyncResult     `json:"notion_sync,omitempty"`
}

// Service defines meeting operations
type Service interface {
	Analyze(ctx context.Context, text string, ref time.Time) (*Result, error)
	AnalyzeAudio(ctx context.Context, upload AudioUpload, ref time.Time) (*Result, error)
	AnalyzeAndSync(ctx context.Context, text string, ref time.Time, databaseID string) (*Result, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.MeetingRecord, error)
	Recent(ctx context.Context, limit int) ([]*entities.MeetingRecord, error)
}

// Deps groups the meeting service collaborators. Records, Syncer and
// Archive are optional.
type Deps struct {
	Analyzer ai.Service
	Records  repositories.MeetingRecordRepository
	Syncer   TaskSyncer
	Archive  AudioArchive
	Logger   *zap.Logger
}

type service struct {
	analyzer ai.Service
	records  repositories.MeetingRecordRepository
	syncer   TaskSyncer
	archive  AudioArchive
	logger   *zap.Logger
}

// NewService creates a new meeting service
func NewService(d Deps) Service {
	return &service{
		analyzer: d.Analyzer,
		records:  d.Records,
		syncer:   d.Syncer,
		archive:  d.Archive,
		logger:   d.Logger,
	}
}

// Analyze analyzes meeting text and stores the outcome
func (s *service) Analyze(ctx context.Context, text string, ref time.Time) (*Result, error) {
	outcome, err := s.analyzer.Analyze(ctx, text, ref)
	if err != nil {
		return nil, err
	}
	return s.record(ctx, entities.MeetingSourceText, outcome, ref, nil), nil
}

// AnalyzeAudio archives the upload, then transcribes and analyzes it. An
// archive failure is logged and does not stop the analysis.
func (s *service) AnalyzeAudio(ctx context.Context, upload AudioUpload, ref time.Time) (*Result, error) {
	var object *string
	if s.archive != nil {
		name, err := s.archive.ArchiveAudio(ctx, upload.Filename, upload.ContentType, upload.Data, ref)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("⚠️ Failed to archive meeting audio", zap.String("filename", upload.Filename), zap.Error(err))
			}
		} else {
			object = &name
		}
	}

	outcome, err := s.analyzer.AnalyzeAudio(ctx, bytes.NewReader(upload.Data), upload.Filename, ref)
	if err != nil {
		return nil, err
	}
	return s.record(ctx, entities.MeetingSourceAudio, outcome, ref, object), nil
}

// AnalyzeAndSync analyzes meeting text and creates a task per action item.
// Per-item sync failures are reported in the result, never as an error.
func (s *service) AnalyzeAndSync(ctx context.Context, text string, ref time.Time, databaseID string) (*Result, error) {
	if s.syncer == nil {
		return nil, entities.ErrNoTaskDatabase
	}

	result, err := s.Analyze(ctx, text, ref)
	if err != nil {
		return nil, err
	}

	sync := s.syncer.Synchronize(ctx, result.Analysis.ActionItems, tasksync.Target{
		DatabaseID:     databaseID,
		MeetingSummary: result.Analysis.MeetingSummary,
		MeetingDate:    result.ReferenceDate,
	})
	result.Sync = &sync

	if s.records != nil && result.MeetingID != "" {
		s.saveSync(ctx, result.MeetingID, sync)
	}
	return result, nil
}

// Get returns one stored meeting record
func (s *service) Get(ctx context.Context, id uuid.UUID) (*entities.MeetingRecord, error) {
	if s.records == nil {
		return nil, entities.ErrMeetingNotFound
	}
	return s.records.FindByID(ctx, id)
}

// Recent returns the newest stored meeting records
func (s *service) Recent(ctx context.Context, limit int) ([]*entities.MeetingRecord, error) {
	if s.records == nil {
		return []*entities.MeetingRecord{}, nil
	}
	return s.records.ListRecent(ctx, limit)
}

// record builds the result and persists it. Persistence failures are logged;
// the caller still gets the analysis it paid for.
func (s *service) record(ctx context.Context, source entities.MeetingSource, outcome *ai.AnalysisOutcome, ref time.Time, object *string) *Result {
	warnings := outcome.Warnings
	if warnings == nil {
		warnings = make([]entities.Warning, 0)
	}
	result := &Result{
		ReferenceDate: dateparse.Format(ref),
		Model:         outcome.Model,
		Analysis:      outcome.Analysis,
		Warnings:      warnings,
	}
	if s.records == nil {
		return result
	}

	rec := entities.NewMeetingRecord(source, outcome.Model, result.ReferenceDate)
	rec.AudioObject = object

	var err error
	if rec.Analysis, err = json.Marshal(outcome.Analysis); err == nil {
		rec.Warnings, err = json.Marshal(warnings)
	}
	if err == nil {
		err = s.records.Create(ctx, rec)
	}
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Failed to save meeting record", zap.Error(err))
		}
		return result
	}

	result.MeetingID = rec.ID.String()
	if s.logger != nil {
		s.logger.Info("💾 Meeting record saved",
			zap.String("meeting_id", result.MeetingID),
			zap.String("source", string(source)),
		)
	}
	return result
}

func (s *service) saveSync(ctx context.Context, meetingID string, sync entities.SyncResult) {
	id, err := uuid.Parse(meetingID)
	if err != nil {
		return
	}
	raw, err := json.Marshal(sync)
	if err == nil {
		err = s.records.UpdateSyncResult(ctx, id, datatypes.JSON(raw))
	}
	if err != nil && s.logger != nil {
		s.logger.Warn("⚠️ Failed to save sync result", zap.String("meeting_id", meetingID), zap.Error(err))
	}
}

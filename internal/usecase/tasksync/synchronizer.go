// Package tasksync pushes extracted action items into the external task store.
package tasksync

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
)

const (
	defaultSource    = "AI Meeting Analysis"
	sourceSummaryLen = 50
)

// TaskCreator creates a single task in the store
type TaskCreator interface {
	CreateTask(ctx context.Context, databaseID string, f entities.TaskFields) (entities.CreatedTask, error)
}

// Target describes where and from what meeting the tasks are created
type Target struct {
	DatabaseID     string
	MeetingSummary string
	MeetingDate    string
}

// Synchronizer creates one store task per action item. It is create-only:
// running it twice for the same items creates duplicates.
type Synchronizer struct {
	store       TaskCreator
	concurrency int
	logger      *zap.Logger
}

// NewSynchronizer creates a synchronizer with at most concurrency creates in flight
func NewSynchronizer(store TaskCreator, concurrency int, logger *zap.Logger) *Synchronizer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Synchronizer{
		store:       store,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Synchronize creates a task for each item and reports per-item outcomes in
// input order. A failed item never aborts its siblings. Once ctx is done no
// further item is started; creates already in flight finish and are reported.
func (s *Synchronizer) Synchronize(ctx context.Context, items []entities.ActionItem, target Target) entities.SyncResult {
	slots := make([]*entities.SyncedTask, len(items))
	source := SourceLabel(target.MeetingSummary)

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)

	for i := range items {
		if ctx.Err() != nil {
			break
		}
		item := items[i]
		// Started creates are not interrupted by cancellation.
		opCtx := context.WithoutCancel(ctx)
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			synced := s.syncOne(opCtx, item, target, source)
			slots[i] = &synced
			return nil
		})
	}
	_ = g.Wait()

	result := entities.SyncResult{Tasks: make([]entities.SyncedTask, 0, len(items))}
	for _, slot := range slots {
		if slot == nil {
			result.NotAttempted++
			continue
		}
		result.Total++
		if slot.SyncState == entities.SyncStateFailed {
			result.Failed++
		} else {
			result.Successful++
		}
		result.Tasks = append(result.Tasks, *slot)
	}

	if s.logger != nil {
		s.logger.Info("📋 Task sync finished",
			zap.Int("total", result.Total),
			zap.Int("successful", result.Successful),
			zap.Int("failed", result.Failed),
			zap.Int("not_attempted", result.NotAttempted),
		)
	}
	return result
}

func (s *Synchronizer) syncOne(ctx context.Context, item entities.ActionItem, target Target, source string) entities.SyncedTask {
	synced := entities.SyncedTask{
		Item:   item,
		Status: entities.TaskStatusToDo,
	}

	created, err := s.store.CreateTask(ctx, target.DatabaseID, ToTaskFields(item, target, source))
	if err != nil {
		msg := errorText(err)
		synced.SyncState = entities.SyncStateFailed
		synced.Error = &msg
		if s.logger != nil {
			s.logger.Warn("⚠️ Failed to create task",
				zap.String("title", item.Title),
				zap.Error(err),
			)
		}
		return synced
	}

	synced.ExternalID = created.ID
	synced.SyncState = entities.SyncStateCreated
	if created.URL != "" {
		url := created.URL
		synced.URL = &url
	}
	return synced
}

// ToTaskFields maps an action item to the store's task fields
func ToTaskFields(item entities.ActionItem, target Target, source string) entities.TaskFields {
	f := entities.TaskFields{
		Name:        item.Title,
		Description: item.Description,
		Assignee:    item.Assignee,
		Priority:    item.Priority,
		Status:      entities.TaskStatusToDo,
		DueDate:     item.DueDate,
		Source:      source,
	}
	if f.Priority == "" {
		f.Priority = entities.DefaultPriority
	}
	if target.MeetingDate != "" {
		d := target.MeetingDate
		f.MeetingDate = &d
	}
	return f
}

// SourceLabel names the meeting a task came from
func SourceLabel(summary string) string {
	if summary == "" {
		return defaultSource
	}
	r := []rune(summary)
	if len(r) > sourceSummaryLen {
		r = r[:sourceSummaryLen]
	}
	return "Meeting: " + string(r) + "..."
}

// errorText prefers the store's own message for rejected fields
func errorText(err error) string {
	var ve *entities.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return err.Error()
}

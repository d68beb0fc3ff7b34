// Package monitor classifies open store tasks against a reference date.
package monitor

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/dateparse"
)

// AtRiskWindow is how many days ahead a due date still counts as at risk
const AtRiskWindow = 2

// TaskQuerier lists every task that is not Done
type TaskQuerier interface {
	QueryOpenTasks(ctx context.Context) ([]entities.StoreTask, error)
}

// Monitor reads open tasks and sorts them into overdue and at-risk lists
type Monitor struct {
	store  TaskQuerier
	logger *zap.Logger
}

// NewMonitor creates a task monitor
func NewMonitor(store TaskQuerier, logger *zap.Logger) *Monitor {
	return &Monitor{store: store, logger: logger}
}

// Run queries the store and classifies the result at ref
func (m *Monitor) Run(ctx context.Context, ref time.Time) (*entities.MonitorReport, error) {
	tasks, err := m.store.QueryOpenTasks(ctx)
	if err != nil {
		var se *entities.StoreError
		if !errors.As(err, &se) {
			err = &entities.StoreError{Op: "query open tasks", Err: err}
		}
		if m.logger != nil {
			m.logger.Error("❌ Failed to query open tasks", zap.Error(err))
		}
		return nil, err
	}

	report := Classify(tasks, ref, m.logger)

	if m.logger != nil {
		m.logger.Info("🔍 Tasks classified",
			zap.String("reference_date", report.ReferenceDate),
			zap.Int("open", len(report.Open)),
			zap.Int("overdue", len(report.Overdue)),
			zap.Int("at_risk", len(report.AtRisk)),
		)
	}
	return report, nil
}

// Classify sorts tasks into overdue and at-risk at ref. It does no I/O.
// Done tasks and tasks without a usable due date are never overdue or at risk.
func Classify(tasks []entities.StoreTask, ref time.Time, logger *zap.Logger) *entities.MonitorReport {
	report := &entities.MonitorReport{
		ReferenceDate: dateparse.Format(ref),
		Overdue:       make([]entities.TaskSnapshot, 0),
		AtRisk:        make([]entities.TaskSnapshot, 0),
		Open:          make([]entities.TaskSnapshot, 0, len(tasks)),
	}

	for _, t := range tasks {
		if t.Status == entities.TaskStatusDone {
			continue
		}
		snap := snapshot(t)

		if t.DueDate != nil {
			due, err := dateparse.Parse(*t.DueDate)
			if err != nil {
				if logger != nil {
					logger.Warn("⚠️ Skipping task with unreadable due date",
						zap.String("task_id", t.ID),
						zap.String("due_date", *t.DueDate),
					)
				}
			} else {
				diff := dateparse.DaysBetween(ref, due)
				switch {
				case diff < 0:
					overdue := -diff
					snap.DaysOverdue = &overdue
					report.Overdue = append(report.Overdue, snap)
				case diff <= AtRiskWindow:
					left := diff
					snap.DaysUntilDue = &left
					report.AtRisk = append(report.AtRisk, snap)
				}
			}
		}

		report.Open = append(report.Open, snap)
	}

	sort.SliceStable(report.Overdue, func(i, j int) bool {
		a, b := report.Overdue[i], report.Overdue[j]
		if *a.DaysOverdue != *b.DaysOverdue {
			return *a.DaysOverdue > *b.DaysOverdue
		}
		return a.Title < b.Title
	})
	sort.SliceStable(report.AtRisk, func(i, j int) bool {
		a, b := report.AtRisk[i], report.AtRisk[j]
		if *a.DaysUntilDue != *b.DaysUntilDue {
			return *a.DaysUntilDue < *b.DaysUntilDue
		}
		return a.Title < b.Title
	})

	return report
}

func snapshot(t entities.StoreTask) entities.TaskSnapshot {
	return entities.TaskSnapshot{
		ExternalID:    t.ID,
		Title:         t.Title,
		AssigneeName:  t.AssigneeName,
		AssigneeEmail: t.AssigneeEmail,
		DueDate:       t.DueDate,
		Status:        t.Status,
		Priority:      t.Priority,
		URL:           t.URL,
	}
}

package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
)

type stubMonitor struct {
	report *entities.MonitorReport
	err    error
}

func (s stubMonitor) Run(context.Context, time.Time) (*entities.MonitorReport, error) {
	return s.report, s.err
}

func TestAlertService_RunAlerts(t *testing.T) {
	ref := time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)

	t.Run("Should alert every flagged task once per day", func(t *testing.T) {
		report := &entities.MonitorReport{
			ReferenceDate: "2025-10-01",
			Overdue:       []entities.TaskSnapshot{*overdueTask()},
			AtRisk:        []entities.TaskSnapshot{*atRiskTask()},
		}
		transport := new(MockTransport)
		transport.On("Send", mock.Anything, "priya@example.com", "Overdue Task Alert: Fix login", mock.Anything, mock.Anything).Return(nil).Once()
		transport.On("Send", mock.Anything, "pm@example.com", "Deadline Reminder: Write docs", mock.Anything, mock.Anything).Return(nil).Once()

		d := NewDispatcher(transport, &memoryDeduper{}, Options{DefaultRecipient: "pm@example.com", Concurrency: 2}, zap.NewNop())
		svc := NewAlertService(stubMonitor{report: report}, d, zap.NewNop())

		run, err := svc.RunAlerts(context.Background(), ref)
		require.NoError(t, err)
		assert.Equal(t, "2025-10-01", run.ReferenceDate)
		assert.Equal(t, 1, run.Overdue)
		assert.Equal(t, 1, run.AtRisk)
		assert.Equal(t, 2, run.Result.Sent)

		again, err := svc.RunAlerts(context.Background(), ref)
		require.NoError(t, err)
		assert.Zero(t, again.Result.Sent)
		assert.Equal(t, 2, again.Result.Skipped)
		transport.AssertExpectations(t)
	})

	t.Run("Should return monitor errors", func(t *testing.T) {
		storeErr := &entities.StoreError{Op: "query open tasks", StatusCode: 401}
		d := NewDispatcher(new(MockTransport), nil, Options{}, nil)

		_, err := NewAlertService(stubMonitor{err: storeErr}, d, nil).RunAlerts(context.Background(), ref)
		assert.True(t, errors.Is(err, storeErr))
	})
}

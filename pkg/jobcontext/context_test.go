package jobcontext

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
)

func TestJobBegin(t *testing.T) {
	ctx, cancel := JobBegin(context.Background(), "deadline_alerts", 2, time.Minute)
	defer cancel()

	meta := GetJobMetadata(ctx)
	assert.NotEqual(t, uuid.Nil, meta.JobID)
	assert.Equal(t, "deadline_alerts", meta.JobType)
	assert.Equal(t, 2, meta.MaxRetries)
	assert.Equal(t, 0, meta.RetryAttempt)
	assert.False(t, meta.StartTime.IsZero())

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}

func TestRun(t *testing.T) {
	zero := func() backoff.BackOff { return &backoff.ZeroBackOff{} }

	t.Run("Should retry transient failures until success", func(t *testing.T) {
		ctx, cancel := JobBegin(context.Background(), "digest", 3, time.Minute)
		defer cancel()

		var attempts []int
		err := Run(ctx, zero(), func(ctx context.Context) error {
			attempts = append(attempts, GetRetryAttempt(ctx))
			if len(attempts) < 3 {
				return &entities.TransportError{Service: "groq", Op: "complete", StatusCode: 503, Err: errors.New("unavailable")}
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2}, attempts)
	})

	t.Run("Should stop after max retries", func(t *testing.T) {
		ctx, cancel := JobBegin(context.Background(), "digest", 2, time.Minute)
		defer cancel()

		calls := 0
		err := Run(ctx, zero(), func(context.Context) error {
			calls++
			return &entities.DeliveryError{Recipient: "a@example.com", Err: errors.New("relay down")}
		})
		require.Error(t, err)
		assert.Equal(t, 3, calls)
		assert.Contains(t, err.Error(), "max retries (2) exceeded")
		var de *entities.DeliveryError
		assert.ErrorAs(t, err, &de)
	})

	t.Run("Should not retry permanent failures", func(t *testing.T) {
		ctx, cancel := JobBegin(context.Background(), "alerts", 5, time.Minute)
		defer cancel()

		calls := 0
		err := Run(ctx, zero(), func(context.Context) error {
			calls++
			return &entities.StoreError{Op: "query open tasks", StatusCode: 401, Code: "unauthorized", Message: "API token is invalid"}
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
		assert.Contains(t, err.Error(), "non-retryable error")
	})

	t.Run("Should recover panics", func(t *testing.T) {
		ctx, cancel := JobBegin(context.Background(), "alerts", 0, time.Minute)
		defer cancel()

		err := Run(ctx, zero(), func(context.Context) error {
			panic("boom")
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "panic recovered: boom")
	})

	t.Run("Should not start on a cancelled context", func(t *testing.T) {
		ctx, cancel := JobBegin(context.Background(), "alerts", 3, time.Minute)
		cancel()

		called := false
		err := Run(ctx, zero(), func(context.Context) error {
			called = true
			return nil
		})
		require.Error(t, err)
		assert.False(t, called)
	})
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"transport without reply", &entities.TransportError{Service: "notion", Op: "query", Err: errors.New("dial tcp: connection refused")}, true},
		{"transport 429", &entities.TransportError{Service: "groq", StatusCode: 429, Err: errors.New("slow down")}, true},
		{"transport 400", &entities.TransportError{Service: "groq", StatusCode: 400, Err: errors.New("bad")}, false},
		{"store 502", &entities.StoreError{Op: "create page", StatusCode: 502}, true},
		{"store validation", &entities.StoreError{Op: "create page", StatusCode: 400, Err: &entities.ValidationError{Message: "bad"}}, false},
		{"store not configured", &entities.StoreError{Op: "create page", Err: entities.ErrNoTaskDatabase}, false},
		{"no model", &entities.NoModelAvailableError{}, false},
		{"delivery", &entities.DeliveryError{Err: errors.New("421")}, true},
		{"deadline", fmt.Errorf("run: %w", context.DeadlineExceeded), true},
		{"canceled", context.Canceled, false},
		{"deadlock text", errors.New("ERROR: deadlock detected (SQLSTATE 40P01)"), true},
		{"plain", errors.New("something odd"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryableError(tt.err))
		})
	}
}

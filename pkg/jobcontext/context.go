package jobcontext

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
)

type KeyContext string

var (
	keyJobID        KeyContext = "job_id"
	keyJobType      KeyContext = "job_type"
	keyRetryAttempt KeyContext = "retry_attempt"
	keyJobStartTime KeyContext = "job_start_time"
	keyMaxRetries   KeyContext = "max_retries"
)

// DefaultTimeout bounds a single job run including its retries
const DefaultTimeout = 5 * time.Minute

// JobMetadata holds metadata for a job execution
type JobMetadata struct {
	JobID        uuid.UUID
	JobType      string
	RetryAttempt int
	MaxRetries   int
	StartTime    time.Time
}

// JobBegin initializes a job context with metadata and timeout
func JobBegin(parentCtx context.Context, jobType string, maxRetries int, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(parentCtx, timeout)

	ctx = context.WithValue(ctx, keyJobID, uuid.New())
	ctx = context.WithValue(ctx, keyJobType, jobType)
	ctx = context.WithValue(ctx, keyRetryAttempt, 0)
	ctx = context.WithValue(ctx, keyMaxRetries, maxRetries)
	ctx = context.WithValue(ctx, keyJobStartTime, time.Now())

	return ctx, cancel
}

// NewBackOff returns the exponential policy used between job attempts
func NewBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 5 * time.Second
	b.MaxInterval = time.Minute
	b.MaxElapsedTime = 0
	return b
}

// JobEnd executes the job function with panic recovery and retries
// retryable failures with exponential backoff
func JobEnd(ctx context.Context, jobFunc func(context.Context) error) error {
	return Run(ctx, NewBackOff(), jobFunc)
}

// Run is JobEnd with an explicit backoff policy. The job is attempted at
// most max retries + 1 times; a negative max retries never gives up.
func Run(ctx context.Context, policy backoff.BackOff, jobFunc func(context.Context) error) error {
	maxRetries := GetMaxRetries(ctx)
	attempt := 0

	operation := func() error {
		runCtx := SetRetryAttempt(ctx, attempt)
		attempt++

		if ctx.Err() != nil {
			return backoff.Permanent(fmt.Errorf("context cancelled before job execution: %w", ctx.Err()))
		}

		err := safeCall(runCtx, jobFunc)
		if err == nil {
			return nil
		}
		if !IsRetryableError(err) {
			return backoff.Permanent(fmt.Errorf("non-retryable error: %w", err))
		}
		return err
	}

	var b backoff.BackOff = policy
	if maxRetries >= 0 {
		b = backoff.WithMaxRetries(policy, uint64(maxRetries))
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		if maxRetries >= 0 && attempt > maxRetries && IsRetryableError(err) {
			return fmt.Errorf("max retries (%d) exceeded: %w", maxRetries, err)
		}
		return err
	}
	return nil
}

func safeCall(ctx context.Context, jobFunc func(context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic recovered: %v", p)
		}
	}()
	return jobFunc(ctx)
}

// GetJobID extracts job ID from context
func GetJobID(ctx context.Context) (uuid.UUID, bool) {
	jobID, ok := ctx.Value(keyJobID).(uuid.UUID)
	return jobID, ok
}

// GetJobType extracts job type from context
func GetJobType(ctx context.Context) (string, bool) {
	jobType, ok := ctx.Value(keyJobType).(string)
	return jobType, ok
}

// GetRetryAttempt extracts current retry attempt from context
func GetRetryAttempt(ctx context.Context) int {
	attempt, ok := ctx.Value(keyRetryAttempt).(int)
	if !ok {
		return 0
	}
	return attempt
}

// SetRetryAttempt updates retry attempt in context
func SetRetryAttempt(ctx context.Context, attempt int) context.Context {
	return context.WithValue(ctx, keyRetryAttempt, attempt)
}

// GetMaxRetries extracts max retries from context
func GetMaxRetries(ctx context.Context) int {
	maxRetries, ok := ctx.Value(keyMaxRetries).(int)
	if !ok {
		return 3 // default
	}
	return maxRetries
}

// GetJobStartTime extracts job start time from context
func GetJobStartTime(ctx context.Context) (time.Time, bool) {
	startTime, ok := ctx.Value(keyJobStartTime).(time.Time)
	return startTime, ok
}

// GetJobMetadata extracts all job metadata from context
func GetJobMetadata(ctx context.Context) *JobMetadata {
	jobID, _ := GetJobID(ctx)
	jobType, _ := GetJobType(ctx)
	startTime, _ := GetJobStartTime(ctx)

	return &JobMetadata{
		JobID:        jobID,
		JobType:      jobType,
		RetryAttempt: GetRetryAttempt(ctx),
		MaxRetries:   GetMaxRetries(ctx),
		StartTime:    startTime,
	}
}

// IsRetryableError checks if an error should trigger a retry.
// Retryable errors include network errors, timeouts, rate limits and 5xx replies.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var (
		validation *entities.ValidationError
		noModel    *entities.NoModelAvailableError
		extraction *entities.ExtractionError
		transport  *entities.TransportError
		store      *entities.StoreError
		delivery   *entities.DeliveryError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &noModel), errors.As(err, &extraction):
		return false
	case errors.Is(err, entities.ErrNoTaskDatabase), errors.Is(err, context.Canceled):
		return false
	case errors.As(err, &transport):
		return retryableStatus(transport.StatusCode)
	case errors.As(err, &store):
		return retryableStatus(store.StatusCode)
	case errors.As(err, &delivery):
		return true
	case errors.Is(err, context.DeadlineExceeded):
		return true
	}

	errStr := strings.ToLower(err.Error())

	// Network errors
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "network unreachable") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Database deadlock/lock errors (Postgres)
	if strings.Contains(errStr, "deadlock") ||
		strings.Contains(errStr, "40001") || // serialization_failure
		strings.Contains(errStr, "40p01") { // deadlock_detected
		return true
	}

	// API rate limiting
	if strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") {
		return true
	}

	// Temporary failures
	if strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "try again") {
		return true
	}

	return false
}

// retryableStatus treats transport failures without a reply, 429 and 5xx as transient
func retryableStatus(code int) bool {
	return code == 0 || code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

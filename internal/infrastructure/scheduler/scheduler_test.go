package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/usecase/notify"
)

type fakeAlerts struct {
	mu    sync.Mutex
	refs  []time.Time
	errs  []error
	calls int
}

func (f *fakeAlerts) RunAlerts(_ context.Context, ref time.Time) (*notify.AlertRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refs = append(f.refs, ref)
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return nil, err
	}
	return &notify.AlertRun{}, nil
}

type fakeDigest struct {
	calls int
	err   error
}

func (f *fakeDigest) SendDigest(_ context.Context, ref time.Time) (*entities.Report, entities.DispatchResult, error) {
	f.calls++
	if f.err != nil {
		return nil, entities.DispatchResult{}, f.err
	}
	return &entities.Report{ID: uuid.New(), ReportDate: ref.Format("2006-01-02")}, entities.DispatchResult{Sent: 1}, nil
}

type memoryLock struct {
	keys map[string]bool
	err  error
}

func (l *memoryLock) Claim(_ context.Context, key string) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	if l.keys == nil {
		l.keys = map[string]bool{}
	}
	if l.keys[key] {
		return false, nil
	}
	l.keys[key] = true
	return true, nil
}

var fixedNow = time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

func newTestScheduler(t *testing.T, alerts AlertRunner, digest DigestSender, lock Locker) *Scheduler {
	t.Helper()
	s, err := New(alerts, digest, lock, Options{
		AlertSpec:  "@every 1h",
		DigestSpec: "0 9 * * *",
		MaxRetries: 2,
		Timeout:    time.Minute,
		BackOff:    func() backoff.BackOff { return &backoff.ZeroBackOff{} },
	}, zap.NewNop())
	require.NoError(t, err)
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestNew(t *testing.T) {
	t.Run("Should register both jobs", func(t *testing.T) {
		s := newTestScheduler(t, &fakeAlerts{}, &fakeDigest{}, nil)
		assert.Len(t, s.cron.Entries(), 2)
	})

	t.Run("Should skip jobs with an empty spec", func(t *testing.T) {
		s, err := New(&fakeAlerts{}, &fakeDigest{}, nil, Options{AlertSpec: "@hourly"}, nil)
		require.NoError(t, err)
		assert.Len(t, s.cron.Entries(), 1)
	})

	t.Run("Should reject an invalid spec", func(t *testing.T) {
		_, err := New(&fakeAlerts{}, nil, nil, Options{AlertSpec: "every hour"}, nil)
		assert.Error(t, err)
	})
}

func TestScheduler_RunAlerts(t *testing.T) {
	t.Run("Should pass the reference time", func(t *testing.T) {
		alerts := &fakeAlerts{}
		s := newTestScheduler(t, alerts, nil, nil)

		require.NoError(t, s.RunAlerts(context.Background()))
		require.Len(t, alerts.refs, 1)
		assert.True(t, fixedNow.Equal(alerts.refs[0]))
	})

	t.Run("Should retry transient failures", func(t *testing.T) {
		transient := &entities.StoreError{Op: "query open tasks", StatusCode: 503}
		alerts := &fakeAlerts{errs: []error{transient, transient}}
		s := newTestScheduler(t, alerts, nil, nil)

		require.NoError(t, s.RunAlerts(context.Background()))
		assert.Equal(t, 3, alerts.calls)
	})

	t.Run("Should give up on permanent failures", func(t *testing.T) {
		alerts := &fakeAlerts{errs: []error{&entities.StoreError{Op: "query open tasks", StatusCode: 401}}}
		s := newTestScheduler(t, alerts, nil, nil)

		err := s.RunAlerts(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), JobDeadlineAlerts)
		assert.Equal(t, 1, alerts.calls)
	})
}

func TestScheduler_RunDigest(t *testing.T) {
	t.Run("Should send once per day across runs", func(t *testing.T) {
		digest := &fakeDigest{}
		lock := &memoryLock{}
		s := newTestScheduler(t, nil, digest, lock)

		require.NoError(t, s.RunDigest(context.Background()))
		require.NoError(t, s.RunDigest(context.Background()))
		assert.Equal(t, 1, digest.calls)
		assert.True(t, lock.keys["daily_digest:2025-10-01"])
	})

	t.Run("Should run when the lock store fails", func(t *testing.T) {
		digest := &fakeDigest{}
		s := newTestScheduler(t, nil, digest, &memoryLock{err: errors.New("redis down")})

		require.NoError(t, s.RunDigest(context.Background()))
		assert.Equal(t, 1, digest.calls)
	})

	t.Run("Should report digest failures", func(t *testing.T) {
		digest := &fakeDigest{err: &entities.DeliveryError{Err: errors.New("notification dispatch is not configured")}}
		s := newTestScheduler(t, nil, digest, nil)

		err := s.RunDigest(context.Background())
		require.Error(t, err)
		assert.Equal(t, 3, digest.calls)
	})
}

func TestScheduler_StartStop(t *testing.T) {
	s := newTestScheduler(t, &fakeAlerts{}, &fakeDigest{}, nil)
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}

// Package scheduler runs the periodic deadline alert and daily digest jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/usecase/notify"
	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/dateparse"
	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/jobcontext"
)

const (
	JobDeadlineAlerts = "deadline_alerts"
	JobDailyDigest    = "daily_digest"
)

// AlertRunner checks deadlines and sends alerts
type AlertRunner interface {
	RunAlerts(ctx context.Context, ref time.Time) (*notify.AlertRun, error)
}

// DigestSender builds and sends the daily digest
type DigestSender interface {
	SendDigest(ctx context.Context, ref time.Time) (*entities.Report, entities.DispatchResult, error)
}

// Locker grants a run slot to a single replica
type Locker interface {
	Claim(ctx context.Context, key string) (bool, error)
}

// Options configure job timing
type Options struct {
	AlertSpec  string
	DigestSpec string
	Location   *time.Location
	MaxRetries int
	Timeout    time.Duration
	// BackOff builds the retry policy for one run; nil uses jobcontext.NewBackOff
	BackOff func() backoff.BackOff
}

// Scheduler owns the cron runner and the registered jobs
type Scheduler struct {
	cron   *cron.Cron
	alerts AlertRunner
	digest DigestSender
	lock   Locker
	opts   Options
	logger *zap.Logger
	now    func() time.Time
}

// New registers the jobs. An empty spec disables that job; lock may be nil.
func New(alerts AlertRunner, digest DigestSender, lock Locker, opts Options, logger *zap.Logger) (*Scheduler, error) {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.BackOff == nil {
		opts.BackOff = jobcontext.NewBackOff
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Scheduler{
		alerts: alerts,
		digest: digest,
		lock:   lock,
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}

	cl := cronLogger{logger.Sugar()}
	s.cron = cron.New(
		cron.WithLocation(opts.Location),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	if opts.AlertSpec != "" && alerts != nil {
		if _, err := s.cron.AddFunc(opts.AlertSpec, func() { s.runJob(JobDeadlineAlerts, s.RunAlerts) }); err != nil {
			return nil, fmt.Errorf("invalid alert schedule %q: %w", opts.AlertSpec, err)
		}
	}
	if opts.DigestSpec != "" && digest != nil {
		if _, err := s.cron.AddFunc(opts.DigestSpec, func() { s.runJob(JobDailyDigest, s.RunDigest) }); err != nil {
			return nil, fmt.Errorf("invalid digest schedule %q: %w", opts.DigestSpec, err)
		}
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.logger.Info("⏱️ Scheduler started", zap.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()
}

// Stop stops scheduling and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("✅ Scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("⚠️ Scheduler stop timed out with jobs still running")
	}
}

func (s *Scheduler) runJob(name string, run func(context.Context) error) {
	if err := run(context.Background()); err != nil {
		s.logger.Error("❌ Scheduled job failed", zap.String("job", name), zap.Error(err))
	}
}

// RunAlerts performs one deadline alert pass with retries
func (s *Scheduler) RunAlerts(ctx context.Context) error {
	ref := s.now().In(s.opts.Location)
	slot := fmt.Sprintf("%s:%s", JobDeadlineAlerts, ref.Format("2006-01-02T15:04"))
	return s.execute(ctx, JobDeadlineAlerts, slot, func(ctx context.Context) error {
		_, err := s.alerts.RunAlerts(ctx, ref)
		return err
	})
}

// RunDigest builds and sends today's digest with retries. Only one run per
// day is performed across replicas.
func (s *Scheduler) RunDigest(ctx context.Context) error {
	ref := s.now().In(s.opts.Location)
	slot := fmt.Sprintf("%s:%s", JobDailyDigest, dateparse.Format(ref))
	return s.execute(ctx, JobDailyDigest, slot, func(ctx context.Context) error {
		report, result, err := s.digest.SendDigest(ctx, ref)
		if err != nil {
			return err
		}
		s.logger.Info("📬 Daily digest sent",
			zap.String("report_id", report.ID.String()),
			zap.Int("sent", result.Sent),
			zap.Int("failed", result.Failed),
		)
		return nil
	})
}

func (s *Scheduler) execute(parent context.Context, jobType, slot string, fn func(context.Context) error) error {
	if s.lock != nil {
		ok, err := s.lock.Claim(parent, slot)
		if err != nil {
			s.logger.Warn("⚠️ Job lock unavailable, running anyway", zap.String("job", jobType), zap.Error(err))
		} else if !ok {
			s.logger.Info("⏭️ Job slot already taken", zap.String("job", jobType), zap.String("slot", slot))
			return nil
		}
	}

	ctx, cancel := jobcontext.JobBegin(parent, jobType, s.opts.MaxRetries, s.opts.Timeout)
	defer cancel()

	meta := jobcontext.GetJobMetadata(ctx)
	s.logger.Info("▶️ Job started", zap.String("job", jobType), zap.String("job_id", meta.JobID.String()))

	err := jobcontext.Run(ctx, s.opts.BackOff(), func(ctx context.Context) error {
		if attempt := jobcontext.GetRetryAttempt(ctx); attempt > 0 {
			s.logger.Warn("🔁 Retrying job", zap.String("job", jobType), zap.Int("attempt", attempt))
		}
		return fn(ctx)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", jobType, err)
	}

	s.logger.Info("✅ Job finished",
		zap.String("job", jobType),
		zap.String("job_id", meta.JobID.String()),
		zap.Duration("elapsed", time.Since(meta.StartTime)),
	)
	return nil
}

// cronLogger routes cron's own messages to zap
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}

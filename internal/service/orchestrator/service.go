package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/chriscconte/cycling-coach/internal/observability/metrics"
	"github.com/chriscconte/cycling-coach/internal/observability/tracing"
	"github.com/chriscconte/cycling-coach/internal/observability/watermark"
	"github.com/chriscconte/cycling-coach/internal/service/alertsync"
	"github.com/chriscconte/cycling-coach/internal/service/conflict"
	"github.com/chriscconte/cycling-coach/internal/service/notify"
	"github.com/chriscconte/cycling-coach/internal/service/reconcile"
)

type Option func(*Service)

func WithRunIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newRunID = fn }
}

func WithClock(fn func() time.Time) Option {
	return func(s *Service) { s.clock = fn }
}

func WithMetrics(m *metrics.CoachMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// Service runs the periodic jobs over every owner. Each owner pipeline is sequential
// and commits independently; owners run concurrently up to Config.Concurrency.
type Service struct {
	deps       Dependencies
	cfg        Config
	reconciler *reconcile.Reconciler
	detector   *conflict.Detector
	syncer     *alertsync.Synchronizer
	scheduler  *notify.Scheduler
	emitter    *notify.Emitter
	metrics    *metrics.CoachMetrics
	newRunID   func() string
	clock      func() time.Time
}

func NewService(
	deps Dependencies,
	cfg Config,
	reconciler *reconcile.Reconciler,
	detector *conflict.Detector,
	syncer *alertsync.Synchronizer,
	scheduler *notify.Scheduler,
	emitter *notify.Emitter,
	opts ...Option,
) *Service {
	s := &Service{
		deps:       deps,
		cfg:        cfg.withDefaults(),
		reconciler: reconciler,
		detector:   detector,
		syncer:     syncer,
		scheduler:  scheduler,
		emitter:    emitter,
		newRunID:   uuid.NewString,
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Config() Config {
	return s.cfg
}

// Run executes one invocation of job with now as the virtual current time. A zero now
// uses the clock. The returned error wraps ErrRunFailed when any attempted owner failed
// to persist its reconciliation or the job could not be re-armed.
func (s *Service) Run(ctx context.Context, job Job, now time.Time) (*RunResult, error) {
	if now.IsZero() {
		now = s.clock()
	}
	startedAt := s.clock()

	result := &RunResult{
		RunID:     s.newRunID(),
		Job:       job,
		Now:       now,
		NextRunAt: now.Add(s.cfg.Cadence(job)),
	}

	var spanErr error
	ctx, span := tracing.StartRunSpan(ctx, job.String(), result.RunID, now)
	defer func() { tracing.End(span, spanErr) }()

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.RunBudget)
	defer cancel()

	slog.InfoContext(runCtx, "job run started",
		slog.String("job", job.String()),
		slog.String("run_id", result.RunID),
		slog.Time("now", now),
	)

	token, acquired := s.acquireLock(runCtx, job)
	if !acquired {
		result.Locked = true
		result.Success = true
		result.Duration = s.clock().Sub(startedAt)
		slog.InfoContext(runCtx, "job run skipped, another invocation holds the lock",
			slog.String("job", job.String()),
			slog.String("run_id", result.RunID),
		)
		return result, nil
	}
	if token != "" {
		defer s.releaseLock(ctx, job, token)
	}

	runErr := s.runOwners(runCtx, job, now, result)

	result.Success = runErr == nil
	for _, o := range result.Owners {
		if !o.Success {
			result.Success = false
		}
	}

	if err := s.rearm(ctx, job, result.NextRunAt); err != nil {
		result.RearmError = err.Error()
		result.Success = false
	}

	result.Duration = s.clock().Sub(startedAt)
	s.record(ctx, result, startedAt)

	if !result.Success {
		err := fmt.Errorf("%w: %s run %s", ErrRunFailed, job, result.RunID)
		if runErr != nil {
			err = fmt.Errorf("%w: %w", err, runErr)
		}
		spanErr = err
		slog.ErrorContext(ctx, "job run failed",
			slog.String("job", job.String()),
			slog.String("run_id", result.RunID),
			slog.Int("owners", len(result.Owners)),
			slog.Duration("duration", result.Duration),
		)
		return result, err
	}

	slog.InfoContext(ctx, "job run completed",
		slog.String("job", job.String()),
		slog.String("run_id", result.RunID),
		slog.Int("owners", len(result.Owners)),
		slog.Duration("duration", result.Duration),
		slog.Time("next_run_at", result.NextRunAt),
	)

	return result, nil
}

func (s *Service) runOwners(ctx context.Context, job Job, now time.Time, result *RunResult) error {
	users, err := s.deps.Users.ListUsers(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list users",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to list users: %w", err)
	}

	result.Owners = make([]OwnerResult, len(users))

	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)

	for i := range users {
		user := users[i]
		g.Go(func() error {
			// owner failures are reported in the result, never abort siblings
			result.Owners[i] = s.runOwner(ctx, job, now, &user)
			return nil
		})
	}

	return g.Wait()
}

func (s *Service) acquireLock(ctx context.Context, job Job) (string, bool) {
	if s.deps.Lock == nil {
		return "", true
	}

	token, ok, err := s.deps.Lock.Acquire(ctx, job.String(), s.cfg.RunBudget)
	if err != nil {
		slog.WarnContext(ctx, "failed to acquire run lock, continuing without it",
			slog.String("job", job.String()),
			slog.String("error", err.Error()),
		)
		return "", true
	}
	return token, ok
}

func (s *Service) releaseLock(ctx context.Context, job Job, token string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rearmTimeout)
	defer cancel()

	if err := s.deps.Lock.Release(ctx, job.String(), token); err != nil {
		slog.WarnContext(ctx, "failed to release run lock",
			slog.String("job", job.String()),
			slog.String("error", err.Error()),
		)
	}
}

// rearm runs on a context detached from the run budget so an exhausted run still
// schedules its successor.
func (s *Service) rearm(ctx context.Context, job Job, at time.Time) error {
	if s.deps.Scheduler == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rearmTimeout)
	defer cancel()

	if err := s.deps.Scheduler.ScheduleJob(ctx, job.String(), at); err != nil {
		slog.ErrorContext(ctx, "failed to re-arm job",
			slog.String("job", job.String()),
			slog.Time("at", at),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to re-arm %s: %w", job, err)
	}

	slog.DebugContext(ctx, "job re-armed",
		slog.String("job", job.String()),
		slog.Time("at", at),
	)
	return nil
}

func (s *Service) record(ctx context.Context, result *RunResult, startedAt time.Time) {
	watermark.RecordRun(result.Job.String(), result.Success, result.Now)

	if s.metrics != nil {
		s.metrics.RecordRunDuration(ctx, result.Job.String(), result.Success, result.Duration)
	}

	if s.deps.Recorder == nil || len(result.Owners) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rearmTimeout)
	defer cancel()

	if err := s.deps.Recorder.RecordRun(ctx, result.records(startedAt)); err != nil {
		slog.WarnContext(ctx, "failed to record run results",
			slog.String("run_id", result.RunID),
			slog.String("error", err.Error()),
		)
	}
}

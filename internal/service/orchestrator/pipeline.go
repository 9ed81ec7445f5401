package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/chriscconte/cycling-coach/internal/domain"
	"github.com/chriscconte/cycling-coach/internal/observability/logging"
	"github.com/chriscconte/cycling-coach/internal/observability/tracing"
	"github.com/chriscconte/cycling-coach/internal/service/notify"
	"github.com/chriscconte/cycling-coach/internal/service/reconcile"
)

const (
	sourcePlatform = "training_platform"
	sourceWorkouts = "health_store"
	sourceCalendar = "calendar"
)

// notificationWindow covers both the missed window (start+2h..3h) and the pre-workout
// window (start-60m..30m). ListSessions excludes its upper bound, so it is padded by a
// minute to keep a session starting exactly an hour from now.
func notificationWindow(now time.Time) (time.Time, time.Time) {
	return now.Add(-3 * time.Hour), now.Add(time.Hour + time.Minute)
}

// ownerRun is the state threaded through one owner's pipeline.
type ownerRun struct {
	job    Job
	now    time.Time
	user   *domain.User
	loc    *time.Location
	result *OwnerResult
}

func (s *Service) runOwner(ctx context.Context, job Job, now time.Time, user *domain.User) OwnerResult {
	result := OwnerResult{OwnerID: user.ID}

	if err := ctx.Err(); err != nil {
		result.Error = fmt.Sprintf("run budget exhausted before owner started: %v", err)
		return result
	}

	ctx = logging.WithOwnerID(ctx, user.ID)
	var ownerErr error
	ctx, span := tracing.StartOwnerSpan(ctx, job.String(), user.ID)
	defer func() { tracing.End(span, ownerErr) }()

	loc := user.Location(s.cfg.DefaultLocation)
	ctx = domain.WithLocation(ctx, loc)

	run := &ownerRun{
		job:    job,
		now:    now,
		user:   user,
		loc:    loc,
		result: &result,
	}

	if err := s.reconcileOwner(ctx, run); err != nil {
		result.Error = err.Error()
		ownerErr = err
		slog.ErrorContext(ctx, "owner reconciliation failed",
			slog.String("job", job.String()),
			slog.String("error", err.Error()),
		)
		return result
	}
	// persistence of the owner's timeline is what the run's success is judged on
	result.Success = true

	switch job {
	case JobCheckTraining:
		s.checkTraining(ctx, run)
	case JobDetectConflicts:
		s.detectConflicts(ctx, run)
	}

	slog.InfoContext(ctx, "owner pipeline completed",
		slog.String("job", job.String()),
		slog.Int("inserted", result.Inserted),
		slog.Int("updated", result.Updated),
		slog.Int("skipped", result.Skipped),
		slog.Int("conflicts", result.Conflicts),
		slog.Int("alerts_inserted", result.AlertsInserted),
		slog.Int("notifications_requested", result.NotificationsRequested),
		slog.Int("warnings", len(result.Warnings)),
	)

	return result
}

// stage starts the span of one pipeline step; finish must end it.
func (s *Service) stage(ctx context.Context, run *ownerRun, name string) (context.Context, func(finish func(trace.Span))) {
	started := time.Now()
	ctx, span := tracing.StartStageSpan(ctx, name, run.user.ID)
	return ctx, func(finish func(trace.Span)) {
		finish(span)
		if s.metrics != nil {
			s.metrics.RecordStageDuration(ctx, run.job.String(), name, time.Since(started))
		}
	}
}

// reconcileOwner fetches every source, merges the records into the owner's timeline and
// persists the batch. A uniqueness conflict means a concurrent run inserted the same
// record, so the existing sessions are re-read and the batch reconciled again.
func (s *Service) reconcileOwner(ctx context.Context, run *ownerRun) (err error) {
	ctx, done := s.stage(ctx, run, "reconcile")
	defer func() {
		done(func(span trace.Span) {
			tracing.RecordReconcileResult(span, run.result.Inserted, run.result.Updated, run.result.Skipped, err)
		})
	}()

	from := run.now.Add(-s.cfg.HistoryWindow)
	to := run.now.Add(s.cfg.Lookahead)

	records := s.collectRecords(ctx, run, from, to)

	// sessions just outside the fetch range can still fall inside the match window
	window := s.reconciler.Policy().MatchWindow
	existingFrom, existingTo := from.Add(-window), to.Add(window)

	var res *reconcile.Result
	for attempt := 1; attempt <= maxReconcileAttempts; attempt++ {
		existing, listErr := s.deps.Sessions.ListSessions(ctx, run.user.ID, existingFrom, existingTo)
		if listErr != nil {
			return fmt.Errorf("failed to list sessions: %w", listErr)
		}

		res = s.reconciler.Reconcile(run.user.ID, records, existing)
		if res.Unchanged() {
			break
		}

		applyErr := s.deps.Sessions.ApplyReconciliation(ctx, run.user.ID, res.ToInsert, res.ToUpdate)
		if applyErr == nil {
			break
		}
		if !errors.Is(applyErr, domain.ErrPersistenceConflict) || attempt == maxReconcileAttempts {
			return fmt.Errorf("failed to persist reconciliation: %w", applyErr)
		}

		slog.WarnContext(ctx, "reconciliation raced a concurrent insert, retrying",
			slog.Int("attempt", attempt),
			slog.String("error", applyErr.Error()),
		)
	}

	run.result.Inserted = len(res.ToInsert)
	run.result.Updated = len(res.ToUpdate)
	run.result.Skipped += len(res.Skipped)
	for _, sk := range res.Skipped {
		s.warnSkipped(ctx, run, sk)
	}

	if s.metrics != nil {
		s.metrics.RecordReconciled(ctx, "inserted", run.result.Inserted)
		s.metrics.RecordReconciled(ctx, "updated", run.result.Updated)
		s.metrics.RecordReconciled(ctx, "skipped", run.result.Skipped)
	}

	return nil
}

// collectRecords gathers normalized records from every configured source. A failing
// source is skipped with a warning so the remaining sources still reconcile.
func (s *Service) collectRecords(ctx context.Context, run *ownerRun, from, to time.Time) []domain.ExternalRecord {
	var records []domain.ExternalRecord
	var skipped []reconcile.SkippedRecord

	if s.deps.Platform != nil && run.user.AthleteID != "" {
		var planned []domain.PlannedEvent
		err := s.withProviderTimeout(ctx, func(ctx context.Context) (err error) {
			planned, err = s.deps.Platform.FetchPlannedEvents(ctx, run.user.ID, run.user.AthleteID, from, to)
			return err
		})
		if err != nil {
			s.warnProvider(ctx, run, sourcePlatform, err)
		} else {
			recs, sk := reconcile.FromPlannedEvents(planned)
			records = append(records, recs...)
			skipped = append(skipped, sk...)
		}

		// completions only exist in the past
		var activities []domain.Activity
		err = s.withProviderTimeout(ctx, func(ctx context.Context) (err error) {
			activities, err = s.deps.Platform.FetchActivities(ctx, run.user.ID, run.user.AthleteID, from, run.now)
			return err
		})
		if err != nil {
			s.warnProvider(ctx, run, sourcePlatform, err)
		} else {
			recs, sk := reconcile.FromActivities(activities)
			records = append(records, recs...)
			skipped = append(skipped, sk...)
		}
	}

	if s.deps.Workouts != nil {
		var workouts []domain.Workout
		err := s.withProviderTimeout(ctx, func(ctx context.Context) (err error) {
			workouts, err = s.deps.Workouts.FetchWorkouts(ctx, run.user.ID, from, run.now)
			return err
		})
		if err != nil {
			s.warnProvider(ctx, run, sourceWorkouts, err)
		} else {
			recs, sk := reconcile.FromWorkouts(workouts)
			records = append(records, recs...)
			skipped = append(skipped, sk...)
		}
	}

	run.result.Skipped += len(skipped)
	for _, sk := range skipped {
		s.warnSkipped(ctx, run, sk)
	}

	return records
}

func (s *Service) withProviderTimeout(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ProviderTimeout)
	defer cancel()

	err := fn(ctx)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}
	return err
}

func (s *Service) warnProvider(ctx context.Context, run *ownerRun, provider string, err error) {
	class := "unavailable"
	switch {
	case errors.Is(err, domain.ErrAuthenticationFailure):
		class = "authentication"
	case errors.Is(err, domain.ErrMalformedRecord):
		class = "malformed"
	}

	run.result.warn(fmt.Sprintf("%s %s: %v", provider, class, err))
	if s.metrics != nil {
		s.metrics.RecordProviderError(ctx, provider, class)
	}

	slog.WarnContext(ctx, "provider skipped for this run",
		slog.String("provider", provider),
		slog.String("class", class),
		slog.String("error", err.Error()),
	)
}

func (s *Service) warnSkipped(ctx context.Context, run *ownerRun, sk reconcile.SkippedRecord) {
	run.result.warn(fmt.Sprintf("skipped %s record %q: %v", sk.Record.Source, sk.Record.ExternalID, sk.Reason))
	slog.DebugContext(ctx, "record skipped",
		slog.String("source", string(sk.Record.Source)),
		slog.String("external_id", sk.Record.ExternalID),
		slog.String("reason", sk.Reason.Error()),
	)
}

// checkTraining requests missed and upcoming workout notifications for sessions around
// now, then the weekly review when its instant falls within this cadence.
func (s *Service) checkTraining(ctx context.Context, run *ownerRun) {
	if !run.user.NotificationsEnabled {
		return
	}

	var notifyErr error
	before := *run.result
	ctx, done := s.stage(ctx, run, "notify")
	defer func() {
		done(func(span trace.Span) {
			tracing.RecordNotifyResult(span,
				run.result.NotificationsRequested-before.NotificationsRequested,
				run.result.NotificationsAlready-before.NotificationsAlready,
				run.result.NotificationsFailed-before.NotificationsFailed,
				notifyErr,
			)
		})
	}()

	from, to := notificationWindow(run.now)
	sessions, err := s.deps.Sessions.ListSessions(ctx, run.user.ID, from, to)
	if err != nil {
		notifyErr = err
		run.result.warn(fmt.Sprintf("failed to list sessions for notifications: %v", err))
		slog.WarnContext(ctx, "failed to list sessions for notifications",
			slog.String("error", err.Error()),
		)
		return
	}

	var requests []*domain.NotificationRequest
	for i := range sessions {
		if req, ok := s.scheduler.MissedWorkout(&sessions[i], run.now); ok {
			requests = append(requests, req)
		}
		if req, ok := s.scheduler.PreWorkout(&sessions[i], run.now); ok {
			requests = append(requests, req)
		}
	}
	if req, ok := s.scheduler.WeeklyReview(run.user.ID, run.loc, run.now, s.cfg.Cadence(run.job)); ok {
		requests = append(requests, req)
	}

	for _, req := range requests {
		s.emit(ctx, run, req)
	}
}

// detectConflicts classifies upcoming sessions against the calendar, stores new alerts
// and requests the warnings whose trigger still lies ahead.
func (s *Service) detectConflicts(ctx context.Context, run *ownerRun) {
	if s.deps.Calendar == nil {
		return
	}

	var stageErr error
	ctx, done := s.stage(ctx, run, "detect")
	defer func() {
		done(func(span trace.Span) {
			tracing.RecordConflictResult(span, run.result.Conflicts, run.result.AlertsInserted, stageErr)
		})
	}()

	start, end := s.detector.Window(run.now)

	var events []domain.CalendarEvent
	err := s.withProviderTimeout(ctx, func(ctx context.Context) (err error) {
		events, err = s.deps.Calendar.FetchEvents(ctx, run.user.ID, start, end)
		return err
	})
	if err != nil {
		s.warnProvider(ctx, run, sourceCalendar, err)
		return
	}

	sessions, err := s.deps.Sessions.ListSessions(ctx, run.user.ID, start, end)
	if err != nil {
		stageErr = err
		run.result.warn(fmt.Sprintf("failed to list upcoming sessions: %v", err))
		return
	}

	detected := s.detector.Detect(sessions, events)
	run.result.Conflicts = len(detected)
	if s.metrics != nil {
		for _, c := range detected {
			s.metrics.RecordConflict(ctx, c.Type.String())
		}
	}

	existing, err := s.deps.Alerts.ListAlerts(ctx, run.user.ID)
	if err != nil {
		stageErr = err
		run.result.warn(fmt.Sprintf("failed to list alerts: %v", err))
		return
	}

	inserts := s.syncer.Sync(run.user.ID, detected, existing)
	if len(inserts) > 0 {
		inserted, err := s.deps.Alerts.InsertAlerts(ctx, run.user.ID, inserts)
		if err != nil {
			stageErr = err
			run.result.warn(fmt.Sprintf("failed to insert alerts: %v", err))
			return
		}
		run.result.AlertsInserted = inserted
		if s.metrics != nil {
			s.metrics.RecordAlertsInserted(ctx, inserted)
		}
	}

	if !run.user.NotificationsEnabled {
		return
	}

	// re-read so alert ids match what was persisted when a concurrent run won the insert
	alerts := append(existing, inserts...)
	if run.result.AlertsInserted != len(inserts) {
		if alerts, err = s.deps.Alerts.ListAlerts(ctx, run.user.ID); err != nil {
			stageErr = err
			run.result.warn(fmt.Sprintf("failed to re-read alerts: %v", err))
			return
		}
	}

	for i := range alerts {
		alert := &alerts[i]
		req, ok := s.scheduler.ConflictWarning(alert, run.now)
		if !ok {
			continue
		}

		outcome := s.emit(ctx, run, req)
		if outcome == notify.OutcomeFailed {
			continue
		}
		if _, err := s.deps.Alerts.MarkNotified(ctx, run.user.ID, alert.ID, run.now); err != nil {
			run.result.warn(fmt.Sprintf("failed to mark alert %s notified: %v", alert.ID, err))
			slog.WarnContext(ctx, "failed to mark alert notified",
				slog.String("alert_id", alert.ID),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (s *Service) emit(ctx context.Context, run *ownerRun, req *domain.NotificationRequest) notify.Outcome {
	outcome, err := s.emitter.Emit(ctx, req)
	switch outcome {
	case notify.OutcomeRequested:
		run.result.NotificationsRequested++
	case notify.OutcomeAlreadyRequested:
		run.result.NotificationsAlready++
	default:
		run.result.NotificationsFailed++
		if err != nil {
			run.result.warn(fmt.Sprintf("notification %s failed: %v", req.ID, err))
		}
	}
	return outcome
}

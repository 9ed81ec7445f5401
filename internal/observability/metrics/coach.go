package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	coachMeterName = "coach.orchestrator"
)

type CoachMetrics struct {
	recordsReconciled metric.Int64Counter
	conflictsDetected metric.Int64Counter
	alertsInserted    metric.Int64Counter
	notifications     metric.Int64Counter
	stageDuration     metric.Float64Histogram
	runDuration       metric.Float64Histogram
	providerErrors    metric.Int64Counter
}

func NewCoachMetrics() (*CoachMetrics, error) {
	meter := otel.Meter(coachMeterName)

	recordsReconciled, err := meter.Int64Counter(
		"coach_records_reconciled_total",
		metric.WithDescription("External records processed by reconciliation"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}

	conflictsDetected, err := meter.Int64Counter(
		"coach_conflicts_detected_total",
		metric.WithDescription("Conflicts detected between sessions and calendar events"),
		metric.WithUnit("{conflict}"),
	)
	if err != nil {
		return nil, err
	}

	alertsInserted, err := meter.Int64Counter(
		"coach_alerts_inserted_total",
		metric.WithDescription("Conflict alerts newly persisted"),
		metric.WithUnit("{alert}"),
	)
	if err != nil {
		return nil, err
	}

	notifications, err := meter.Int64Counter(
		"coach_notifications_total",
		metric.WithDescription("Notification requests by kind and outcome"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, err
	}

	stageDuration, err := meter.Float64Histogram(
		"coach_stage_duration_seconds",
		metric.WithDescription("Time spent in a single pipeline stage"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20,
		),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Histogram(
		"coach_run_duration_seconds",
		metric.WithDescription("Orchestrator run duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300,
		),
	)
	if err != nil {
		return nil, err
	}

	providerErrors, err := meter.Int64Counter(
		"coach_provider_errors_total",
		metric.WithDescription("Provider failures by provider and class"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	return &CoachMetrics{
		recordsReconciled: recordsReconciled,
		conflictsDetected: conflictsDetected,
		alertsInserted:    alertsInserted,
		notifications:     notifications,
		stageDuration:     stageDuration,
		runDuration:       runDuration,
		providerErrors:    providerErrors,
	}, nil
}

// RecordReconciled counts records by outcome: inserted, updated, unchanged or skipped.
func (m *CoachMetrics) RecordReconciled(ctx context.Context, outcome string, count int) {
	if count == 0 {
		return
	}
	m.recordsReconciled.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *CoachMetrics) RecordConflict(ctx context.Context, conflictType string) {
	m.conflictsDetected.Add(ctx, 1, metric.WithAttributes(
		attribute.String("conflict_type", conflictType),
	))
}

func (m *CoachMetrics) RecordAlertsInserted(ctx context.Context, count int) {
	if count == 0 {
		return
	}
	m.alertsInserted.Add(ctx, int64(count))
}

func (m *CoachMetrics) RecordNotification(ctx context.Context, kind, outcome string) {
	m.notifications.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
}

func (m *CoachMetrics) RecordStageDuration(ctx context.Context, job, stage string, duration time.Duration) {
	m.stageDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("job", job),
		attribute.String("stage", stage),
	))
}

func (m *CoachMetrics) RecordRunDuration(ctx context.Context, job string, success bool, duration time.Duration) {
	m.runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("job", job),
		attribute.Bool("success", success),
	))
}

func (m *CoachMetrics) RecordProviderError(ctx context.Context, provider, class string) {
	m.providerErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("class", class),
	))
}

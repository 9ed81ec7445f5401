package tracing

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const coachTracerName = "github.com/chriscconte/cycling-coach/internal/service/orchestrator"

func CoachTracer() trace.Tracer {
	return otel.Tracer(coachTracerName)
}

func StartRunSpan(ctx context.Context, job, runID string, now time.Time) (context.Context, trace.Span) {
	return CoachTracer().Start(ctx, "coach.run."+job,
		trace.WithAttributes(
			attribute.String("run.job", job),
			attribute.String("run.id", runID),
			attribute.String("run.now", now.Format(time.RFC3339)),
		),
	)
}

func StartOwnerSpan(ctx context.Context, job, ownerID string) (context.Context, trace.Span) {
	return CoachTracer().Start(ctx, "coach.owner",
		trace.WithAttributes(
			attribute.String("run.job", job),
			attribute.String("owner_id", ownerID),
		),
	)
}

// StartStageSpan covers one step of an owner pipeline such as reconcile or detect.
func StartStageSpan(ctx context.Context, stage, ownerID string) (context.Context, trace.Span) {
	return CoachTracer().Start(ctx, "coach.stage."+stage,
		trace.WithAttributes(
			attribute.String("stage", stage),
			attribute.String("owner_id", ownerID),
		),
	)
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return CoachTracer().Start(ctx, "coach.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartRedisOperationSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	return CoachTracer().Start(ctx, "coach.redis."+operation,
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", operation),
			attribute.String("db.key", key),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartPostgresOperationSpan(ctx context.Context, operation, table string) (context.Context, trace.Span) {
	return CoachTracer().Start(ctx, "coach.postgres."+operation,
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation", operation),
			attribute.String("db.sql.table", table),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordReconcileResult(span trace.Span, inserted, updated, skipped int, err error) {
	span.SetAttributes(
		attribute.Int("reconcile.inserted_count", inserted),
		attribute.Int("reconcile.updated_count", updated),
		attribute.Int("reconcile.skipped_count", skipped),
	)
	End(span, err)
}

func RecordConflictResult(span trace.Span, detected, alertsInserted int, err error) {
	span.SetAttributes(
		attribute.Int("conflict.detected_count", detected),
		attribute.Int("conflict.alerts_inserted_count", alertsInserted),
	)
	End(span, err)
}

func RecordNotifyResult(span trace.Span, requested, alreadyRequested, failed int, err error) {
	span.SetAttributes(
		attribute.Int("notify.requested_count", requested),
		attribute.Int("notify.already_requested_count", alreadyRequested),
		attribute.Int("notify.failed_count", failed),
	)
	End(span, err)
}

// End sets the span status from err and ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// InjectToHTTPRequest writes the trace context of ctx into the outgoing request headers.
func InjectToHTTPRequest(ctx context.Context, req *http.Request) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

// InjectToMap is used for transports that carry headers as plain maps, such as task payloads.
func InjectToMap(ctx context.Context, headers map[string]string) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(headers))
}

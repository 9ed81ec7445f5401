package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chriscconte/cycling-coach/internal/domain"
	"github.com/chriscconte/cycling-coach/internal/observability/metrics"
)

type Outcome string

const (
	OutcomeRequested        Outcome = "requested"
	OutcomeAlreadyRequested Outcome = "already_requested"
	OutcomeFailed           Outcome = "failed"
)

// Emitter moves eligible requests to the requested state by handing them to the dispatcher.
type Emitter struct {
	dispatcher domain.NotificationDispatcher
	ledger     domain.NotificationLedger
	metrics    *metrics.CoachMetrics
}

func NewEmitter(dispatcher domain.NotificationDispatcher, ledger domain.NotificationLedger, m *metrics.CoachMetrics) *Emitter {
	return &Emitter{
		dispatcher: dispatcher,
		ledger:     ledger,
		metrics:    m,
	}
}

func (e *Emitter) Emit(ctx context.Context, req *domain.NotificationRequest) (Outcome, error) {
	if e.ledger != nil {
		requested, err := e.ledger.IsRequested(ctx, req.ID)
		if err != nil {
			slog.WarnContext(ctx, "failed to check notification ledger",
				slog.String("request_id", req.ID),
				slog.String("error", err.Error()),
			)
			// dispatcher de-duplicates by id, continue
		} else if requested {
			slog.DebugContext(ctx, "skipping already requested notification",
				slog.String("request_id", req.ID),
				slog.String("kind", req.Kind.String()),
			)
			e.record(ctx, req, OutcomeAlreadyRequested)
			return OutcomeAlreadyRequested, nil
		}
	}

	if e.dispatcher == nil {
		e.record(ctx, req, OutcomeFailed)
		return OutcomeFailed, fmt.Errorf("no notification dispatcher configured for request %s", req.ID)
	}

	if err := e.dispatcher.Dispatch(ctx, req); err != nil {
		slog.ErrorContext(ctx, "failed to dispatch notification",
			slog.String("request_id", req.ID),
			slog.String("kind", req.Kind.String()),
			slog.String("owner_id", req.OwnerID),
			slog.String("error", err.Error()),
		)
		e.record(ctx, req, OutcomeFailed)
		return OutcomeFailed, fmt.Errorf("failed to dispatch notification %s: %w", req.ID, err)
	}

	if e.ledger != nil {
		if _, err := e.ledger.MarkRequested(ctx, req); err != nil {
			slog.WarnContext(ctx, "failed to record requested notification",
				slog.String("request_id", req.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	slog.InfoContext(ctx, "notification requested",
		slog.String("request_id", req.ID),
		slog.String("kind", req.Kind.String()),
		slog.String("owner_id", req.OwnerID),
		slog.Time("trigger_at", req.TriggerAt),
	)
	e.record(ctx, req, OutcomeRequested)

	return OutcomeRequested, nil
}

func (e *Emitter) record(ctx context.Context, req *domain.NotificationRequest, outcome Outcome) {
	if e.metrics != nil {
		e.metrics.RecordNotification(ctx, req.Kind.String(), string(outcome))
	}
}

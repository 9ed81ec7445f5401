package taskqueue

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

const defaultMaxRetries = 3

// TaskQueue delivers notification requests and re-arms periodic jobs through the same transport.
type TaskQueue interface {
	domain.NotificationDispatcher
	domain.JobScheduler
	Close() error
}

// JobTaskName derives the task name of a job invocation, so re-arming the same
// job for the same instant twice collapses into one task.
func JobTaskName(job string, at time.Time) string {
	name := strings.NewReplacer("_", "-", " ", "-").Replace(job)
	return name + "-" + at.UTC().Format("20060102T150405Z")
}

func backoff(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
}

// withRetry runs fn up to maxRetries times with exponential backoff between attempts.
// fn reports whether a failure is worth retrying.
func withRetry(ctx context.Context, maxRetries int, name string, fn func(ctx context.Context) (bool, error)) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			wait := backoff(attempt)
			slog.DebugContext(ctx, "retrying task registration",
				slog.String("task_name", name),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", wait),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		retryable, err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return err
		}
	}

	slog.ErrorContext(ctx, "all retries exhausted for task registration",
		slog.String("task_name", name),
		slog.Int("max_retries", maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return &RetriesExhaustedError{Attempts: maxRetries, Err: lastErr}
}

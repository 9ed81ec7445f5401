package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=scheduling.go -destination=scheduling_mock.go -package=domain

// NotificationDispatcher delivers requests and de-duplicates by request ID.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, req *NotificationRequest) error
}

// NotificationLedger records requests already handed to the dispatcher.
type NotificationLedger interface {
	IsRequested(ctx context.Context, requestID string) (bool, error)
	// MarkRequested reports false when the request was already recorded.
	MarkRequested(ctx context.Context, req *NotificationRequest) (bool, error)
}

// JobScheduler asks the periodic host to invoke a job at the given instant.
type JobScheduler interface {
	ScheduleJob(ctx context.Context, job string, at time.Time) error
}

// RunLock guards a job against overlapping invocations.
type RunLock interface {
	Acquire(ctx context.Context, job string, ttl time.Duration) (string, bool, error)
	Release(ctx context.Context, job, token string) error
}

package domain

import (
	"context"
	"time"
)

// RunRecord summarises one owner's pipeline within a job run.
type RunRecord struct {
	RunID                  string
	Job                    string
	OwnerID                string
	StartedAt              time.Time
	Duration               time.Duration
	Inserted               int
	Updated                int
	Skipped                int
	Conflicts              int
	AlertsInserted         int
	NotificationsRequested int
	Warnings               int
	Success                bool
}

//go:generate mockgen -source=run_result_recorder.go -destination=run_result_recorder_mock.go -package=domain

type RunResultRecorder interface {
	RecordRun(ctx context.Context, records []RunRecord) error
	Flush(ctx context.Context) error
	Close() error
}

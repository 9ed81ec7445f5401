package orchestrator

import (
	"time"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

type OwnerResult struct {
	OwnerID                string   `json:"owner_id"`
	Inserted               int      `json:"inserted"`
	Updated                int      `json:"updated"`
	Skipped                int      `json:"skipped"`
	Conflicts              int      `json:"conflicts"`
	AlertsInserted         int      `json:"alerts_inserted"`
	NotificationsRequested int      `json:"notifications_requested"`
	NotificationsAlready   int      `json:"notifications_already_requested"`
	NotificationsFailed    int      `json:"notifications_failed"`
	Warnings               []string `json:"warnings,omitempty"`
	Error                  string   `json:"error,omitempty"`
	Success                bool     `json:"success"`
}

func (r *OwnerResult) warn(warning string) {
	r.Warnings = append(r.Warnings, warning)
}

type RunResult struct {
	RunID      string        `json:"run_id"`
	Job        Job           `json:"job"`
	Now        time.Time     `json:"now"`
	Duration   time.Duration `json:"duration"`
	NextRunAt  time.Time     `json:"next_run_at"`
	Locked     bool          `json:"locked,omitempty"`
	Success    bool          `json:"success"`
	RearmError string        `json:"rearm_error,omitempty"`
	Owners     []OwnerResult `json:"owners"`
}

func (r *RunResult) records(startedAt time.Time) []domain.RunRecord {
	records := make([]domain.RunRecord, 0, len(r.Owners))
	for _, o := range r.Owners {
		records = append(records, domain.RunRecord{
			RunID:                  r.RunID,
			Job:                    r.Job.String(),
			OwnerID:                o.OwnerID,
			StartedAt:              startedAt,
			Duration:               r.Duration,
			Inserted:               o.Inserted,
			Updated:                o.Updated,
			Skipped:                o.Skipped,
			Conflicts:              o.Conflicts,
			AlertsInserted:         o.AlertsInserted,
			NotificationsRequested: o.NotificationsRequested,
			Warnings:               len(o.Warnings),
			Success:                o.Success,
		})
	}
	return records
}

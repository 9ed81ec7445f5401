//go:build gcloud

package runrecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt             time.Time `bigquery:"recorded_at"`
	RunID                  string    `bigquery:"run_id"`
	Job                    string    `bigquery:"job"`
	OwnerID                string    `bigquery:"owner_id"`
	StartedAt              time.Time `bigquery:"started_at"`
	DurationMs             int64     `bigquery:"duration_ms"`
	Inserted               int64     `bigquery:"inserted"`
	Updated                int64     `bigquery:"updated"`
	Skipped                int64     `bigquery:"skipped"`
	Conflicts              int64     `bigquery:"conflicts"`
	AlertsInserted         int64     `bigquery:"alerts_inserted"`
	NotificationsRequested int64     `bigquery:"notifications_requested"`
	Warnings               int64     `bigquery:"warnings"`
	Success                bool      `bigquery:"success"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.RunResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "run result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, run result recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, run result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	slog.InfoContext(ctx, "run result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter(),
	}, nil
}

func (r *bigQueryRecorder) RecordRun(ctx context.Context, records []domain.RunRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]*bigQueryRecord, 0, len(records))
	for _, record := range records {
		rows = append(rows, &bigQueryRecord{
			RecordedAt:             now,
			RunID:                  record.RunID,
			Job:                    record.Job,
			OwnerID:                record.OwnerID,
			StartedAt:              record.StartedAt,
			DurationMs:             record.Duration.Milliseconds(),
			Inserted:               int64(record.Inserted),
			Updated:                int64(record.Updated),
			Skipped:                int64(record.Skipped),
			Conflicts:              int64(record.Conflicts),
			AlertsInserted:         int64(record.AlertsInserted),
			NotificationsRequested: int64(record.NotificationsRequested),
			Warnings:               int64(record.Warnings),
			Success:                record.Success,
		})
	}

	if err := r.inserter.Put(ctx, rows); err != nil {
		slog.WarnContext(ctx, "failed to insert run results to BigQuery",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Flush(_ context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

//go:build !gcloud

package runrecorder

import (
	"context"
	"log/slog"
	"strconv"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

const runMeasurement = "owner_run"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.RunResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "run result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, run result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)

	slog.InfoContext(ctx, "run result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket),
		bucket:   cfg.InfluxDBBucket,
	}, nil
}

func runPoint(record domain.RunRecord) *write.Point {
	return influxdb2.NewPoint(
		runMeasurement,
		map[string]string{
			"run_id":   record.RunID,
			"job":      record.Job,
			"owner_id": record.OwnerID,
			"success":  strconv.FormatBool(record.Success),
		},
		map[string]any{
			"duration_ms":             record.Duration.Milliseconds(),
			"inserted":                record.Inserted,
			"updated":                 record.Updated,
			"skipped":                 record.Skipped,
			"conflicts":               record.Conflicts,
			"alerts_inserted":         record.AlertsInserted,
			"notifications_requested": record.NotificationsRequested,
			"warnings":                record.Warnings,
		},
		record.StartedAt,
	)
}

func (r *influxDBRecorder) RecordRun(ctx context.Context, records []domain.RunRecord) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]*write.Point, 0, len(records))
	for _, record := range records {
		points = append(points, runPoint(record))
	}

	if err := r.writeAPI.WritePoint(ctx, points...); err != nil {
		slog.WarnContext(ctx, "failed to write run results to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("bucket", r.bucket),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return r.writeAPI.Flush(ctx)
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}

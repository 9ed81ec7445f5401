//go:build !gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/chriscconte/cycling-coach/internal/config"
	"github.com/chriscconte/cycling-coach/internal/infra/taskqueue"
	"github.com/chriscconte/cycling-coach/internal/observability"
	"github.com/chriscconte/cycling-coach/internal/observability/logging"
)

func initTaskQueue(_ context.Context, cfg *config.Config) (taskqueue.TaskQueue, func() error, error) {
	if cfg.TaskQueue.PrimindTasksURL == "" {
		slog.Warn("PRIMIND_TASKS_URL not set, task queue dispatch and job re-arm disabled")

		return nil, nil, nil
	}

	tq := taskqueue.NewPrimindTasksClient(taskqueue.PrimindTasksConfig{
		BaseURL:           cfg.TaskQueue.PrimindTasksURL,
		NotificationQueue: cfg.TaskQueue.QueueName,
		JobQueue:          cfg.TaskQueue.JobQueueName,
		JobTargetBaseURL:  cfg.Orchestrator.JobTargetBaseURL,
		MaxRetries:        cfg.TaskQueue.MaxRetries,
	})

	slog.Info("task queue initialized",
		slog.String("type", "primind_tasks"),
		slog.String("url", cfg.TaskQueue.PrimindTasksURL),
		slog.String("queue", cfg.TaskQueue.QueueName),
		slog.String("job_queue", cfg.TaskQueue.JobQueueName),
	)

	return tq, tq.Close, nil
}

func initObservability(ctx context.Context, cfg *config.Config) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "cycling-coach"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: "",
		},
		Environment:   env,
		GCPProjectID:  "",
		SamplingRate:  1.0,
		DefaultModule: logging.Module("coach"),
		LogLevel:      cfg.LogLevel,
	})
}

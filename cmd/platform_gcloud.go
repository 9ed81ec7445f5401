//go:build gcloud

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

func initTaskQueue(ctx context.Context, cfg *config.Config) (taskqueue.TaskQueue, func() error, error) {
	cloudTasksClient, err := taskqueue.NewCloudTasksClient(ctx, taskqueue.CloudTasksConfig{
		ProjectID:             cfg.TaskQueue.GCloudProjectID,
		LocationID:            cfg.TaskQueue.GCloudLocationID,
		NotificationQueue:     cfg.TaskQueue.GCloudQueueID,
		JobQueue:              cfg.TaskQueue.GCloudJobQueueID,
		NotificationTargetURL: cfg.TaskQueue.GCloudTargetURL,
		JobTargetBaseURL:      cfg.Orchestrator.JobTargetBaseURL,
		ServiceAccountEmail:   cfg.TaskQueue.GCloudServiceAccount,
		MaxRetries:            cfg.TaskQueue.MaxRetries,
	})
	if err != nil {
		return nil, nil, err
	}

	slog.Info("task queue initialized",
		slog.String("type", "cloud_tasks"),
		slog.String("project", cfg.TaskQueue.GCloudProjectID),
		slog.String("location", cfg.TaskQueue.GCloudLocationID),
		slog.String("queue", cfg.TaskQueue.GCloudQueueID),
		slog.String("job_queue", cfg.TaskQueue.GCloudJobQueueID),
	)

	cleanup := func() error {
		if err := cloudTasksClient.Close(); err != nil {
			slog.Warn("failed to close cloud tasks client", slog.String("error", err.Error()))

			return err
		}

		return nil
	}

	return cloudTasksClient, cleanup, nil
}

func initObservability(ctx context.Context, cfg *config.Config) (*observability.Resources, error) {
	serviceName := os.Getenv("K_SERVICE")
	if serviceName == "" {
		serviceName = "cycling-coach"
	}

	env := logging.EnvProd
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = cfg.TaskQueue.GCloudProjectID
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: os.Getenv("K_REVISION"),
		},
		Environment:   env,
		GCPProjectID:  projectID,
		SamplingRate:  1.0,
		DefaultModule: logging.Module("coach"),
		LogLevel:      cfg.LogLevel,
	})
}

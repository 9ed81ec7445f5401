//go:build gcloud

package taskqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/chriscconte/cycling-coach/internal/domain"
	"github.com/chriscconte/cycling-coach/internal/observability/tracing"
)

type CloudTasksConfig struct {
	ProjectID         string
	LocationID        string
	NotificationQueue string
	JobQueue          string
	// NotificationTargetURL receives notification tasks; JobTargetBaseURL receives job re-arms.
	NotificationTargetURL string
	JobTargetBaseURL      string
	// ServiceAccountEmail signs the OIDC token attached to job tasks.
	ServiceAccountEmail string
	MaxRetries          int
}

type CloudTasksClient struct {
	client *cloudtasks.Client
	cfg    CloudTasksConfig
}

func NewCloudTasksClient(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksClient, error) {
	client, err := cloudtasks.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}

	return &CloudTasksClient{
		client: client,
		cfg:    cfg,
	}, nil
}

func (c *CloudTasksClient) queuePath(queue string) string {
	return fmt.Sprintf("projects/%s/locations/%s/queues/%s", c.cfg.ProjectID, c.cfg.LocationID, queue)
}

func (c *CloudTasksClient) Dispatch(ctx context.Context, req *domain.NotificationRequest) error {
	payload, err := json.Marshal(NewNotificationTask(req))
	if err != nil {
		return fmt.Errorf("failed to marshal notification task: %w", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
	}
	tracing.InjectToMap(ctx, headers)

	queuePath := c.queuePath(c.cfg.NotificationQueue)
	task := &taskspb.Task{
		Name: queuePath + "/tasks/" + req.ID,
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: &taskspb.HttpRequest{
				HttpMethod: taskspb.HttpMethod_POST,
				Url:        c.cfg.NotificationTargetURL,
				Headers:    headers,
				Body:       payload,
			},
		},
	}
	if !req.TriggerAt.IsZero() {
		task.ScheduleTime = timestamppb.New(req.TriggerAt)
	}

	return c.create(ctx, &taskspb.CreateTaskRequest{Parent: queuePath, Task: task})
}

func (c *CloudTasksClient) ScheduleJob(ctx context.Context, job string, at time.Time) error {
	payload, err := json.Marshal(JobTask{Job: job, ScheduledFor: at.UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal job task: %w", err)
	}

	target := fmt.Sprintf("%s/api/v1/jobs/%s?from=%s",
		c.cfg.JobTargetBaseURL, url.PathEscape(job), url.QueryEscape(at.UTC().Format(time.RFC3339)))

	httpReq := &taskspb.HttpRequest{
		HttpMethod: taskspb.HttpMethod_POST,
		Url:        target,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: payload,
	}
	if c.cfg.ServiceAccountEmail != "" {
		httpReq.AuthorizationHeader = &taskspb.HttpRequest_OidcToken{
			OidcToken: &taskspb.OidcToken{
				ServiceAccountEmail: c.cfg.ServiceAccountEmail,
				Audience:            c.cfg.JobTargetBaseURL,
			},
		}
	}

	queuePath := c.queuePath(c.cfg.JobQueue)
	task := &taskspb.Task{
		Name:         queuePath + "/tasks/" + JobTaskName(job, at),
		MessageType:  &taskspb.Task_HttpRequest{HttpRequest: httpReq},
		ScheduleTime: timestamppb.New(at),
	}

	return c.create(ctx, &taskspb.CreateTaskRequest{Parent: queuePath, Task: task})
}

func (c *CloudTasksClient) create(ctx context.Context, req *taskspb.CreateTaskRequest) error {
	return withRetry(ctx, c.cfg.MaxRetries, req.Task.Name, func(ctx context.Context) (bool, error) {
		return c.createTask(ctx, req)
	})
}

func (c *CloudTasksClient) createTask(ctx context.Context, req *taskspb.CreateTaskRequest) (bool, error) {
	ctx, span := tracing.StartExternalAPISpan(ctx, "cloud_tasks.create", req.Parent)
	defer span.End()

	slog.DebugContext(ctx, "registering task to Cloud Tasks",
		slog.String("queue_path", req.Parent),
		slog.String("task_name", req.Task.Name),
	)

	createdTask, err := c.client.CreateTask(ctx, req)
	if err != nil {
		switch status.Code(err) {
		case codes.AlreadyExists:
			slog.DebugContext(ctx, "task already registered",
				slog.String("task_name", req.Task.Name),
			)
			return false, nil
		case codes.InvalidArgument, codes.PermissionDenied, codes.NotFound:
			span.RecordError(err)
			return false, fmt.Errorf("failed to create cloud task: %w", err)
		}

		span.RecordError(err)
		slog.WarnContext(ctx, "failed to create cloud task",
			slog.String("task_name", req.Task.Name),
			slog.String("error", err.Error()),
		)
		return true, fmt.Errorf("failed to create cloud task: %w", err)
	}

	var scheduleTime time.Time
	if createdTask.ScheduleTime != nil {
		scheduleTime = createdTask.ScheduleTime.AsTime()
	}

	slog.InfoContext(ctx, "task registered to Cloud Tasks",
		slog.String("task_name", createdTask.Name),
		slog.Time("schedule_time", scheduleTime),
	)

	return false, nil
}

func (c *CloudTasksClient) Close() error {
	return c.client.Close()
}

//go:build !gcloud

package taskqueue

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/chriscconte/cycling-coach/internal/domain"
	"github.com/chriscconte/cycling-coach/internal/observability/tracing"
)

type PrimindTasksConfig struct {
	BaseURL           string
	NotificationQueue string
	JobQueue          string
	// JobTargetBaseURL is where re-armed job tasks are delivered, usually this service.
	JobTargetBaseURL string
	MaxRetries       int
	HTTPClient       *http.Client
}

// PrimindTasksClient talks to the Primind Tasks emulator, which mirrors the Cloud Tasks API over JSON.
type PrimindTasksClient struct {
	baseURL           string
	notificationQueue string
	jobQueue          string
	jobTargetBaseURL  string
	httpClient        *http.Client
	maxRetries        int
}

func NewPrimindTasksClient(cfg PrimindTasksConfig) *PrimindTasksClient {
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
		}
	}

	return &PrimindTasksClient{
		baseURL:           cfg.BaseURL,
		notificationQueue: cfg.NotificationQueue,
		jobQueue:          cfg.JobQueue,
		jobTargetBaseURL:  cfg.JobTargetBaseURL,
		httpClient:        httpClient,
		maxRetries:        maxRetries,
	}
}

func (c *PrimindTasksClient) Dispatch(ctx context.Context, req *domain.NotificationRequest) error {
	payload, err := json.Marshal(NewNotificationTask(req))
	if err != nil {
		return fmt.Errorf("failed to marshal notification task: %w", err)
	}

	task := PrimindTask{
		Name:        req.ID,
		HTTPRequest: c.httpRequest(ctx, "", payload),
	}
	if !req.TriggerAt.IsZero() {
		task.ScheduleTime = req.TriggerAt.UTC().Format(time.RFC3339)
	}

	return c.register(ctx, c.notificationQueue, task)
}

func (c *PrimindTasksClient) ScheduleJob(ctx context.Context, job string, at time.Time) error {
	payload, err := json.Marshal(JobTask{Job: job, ScheduledFor: at.UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal job task: %w", err)
	}

	target := fmt.Sprintf("%s/api/v1/jobs/%s?from=%s",
		c.jobTargetBaseURL, url.PathEscape(job), url.QueryEscape(at.UTC().Format(time.RFC3339)))

	task := PrimindTask{
		Name:         JobTaskName(job, at),
		HTTPRequest:  c.httpRequest(ctx, target, payload),
		ScheduleTime: at.UTC().Format(time.RFC3339),
	}

	return c.register(ctx, c.jobQueue, task)
}

func (c *PrimindTasksClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *PrimindTasksClient) httpRequest(ctx context.Context, target string, payload []byte) PrimindHTTPRequest {
	headers := map[string]string{
		"Content-Type": "application/json",
	}
	tracing.InjectToMap(ctx, headers)

	return PrimindHTTPRequest{
		URL:     target,
		Body:    base64.StdEncoding.EncodeToString(payload),
		Headers: headers,
	}
}

func (c *PrimindTasksClient) queueURL(queue string) string {
	if queue != "" && queue != "default" {
		return fmt.Sprintf("%s/tasks/%s", c.baseURL, queue)
	}
	return fmt.Sprintf("%s/tasks", c.baseURL)
}

func (c *PrimindTasksClient) register(ctx context.Context, queue string, task PrimindTask) error {
	reqBody, err := json.Marshal(PrimindTaskRequest{Task: task})
	if err != nil {
		return fmt.Errorf("failed to marshal primind request: %w", err)
	}

	target := c.queueURL(queue)

	return withRetry(ctx, c.maxRetries, task.Name, func(ctx context.Context) (bool, error) {
		return c.doRequest(ctx, target, task.Name, reqBody)
	})
}

func (c *PrimindTasksClient) doRequest(ctx context.Context, target, taskName string, reqBody []byte) (bool, error) {
	ctx, span := tracing.StartExternalAPISpan(ctx, "primind_tasks.create", target)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(reqBody))
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		slog.WarnContext(ctx, "failed to send request to Primind Tasks",
			slog.String("task_name", taskName),
			slog.String("error", err.Error()),
		)
		return true, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusConflict:
		slog.DebugContext(ctx, "task already registered",
			slog.String("task_name", taskName),
		)
		return false, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return false, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		slog.WarnContext(ctx, "unexpected status code from Primind Tasks",
			slog.String("task_name", taskName),
			slog.Int("status_code", resp.StatusCode),
		)
		return true, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var primindResp PrimindTaskResponse
	if err := json.NewDecoder(resp.Body).Decode(&primindResp); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}

	slog.InfoContext(ctx, "task registered to Primind Tasks",
		slog.String("task_name", primindResp.Name),
		slog.String("schedule_time", primindResp.ScheduleTime),
	)

	return false, nil
}

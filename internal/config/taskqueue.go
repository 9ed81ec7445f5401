package config

import (
	"os"
	"strings"
)

const (
	primindTasksURLEnv      = "PRIMIND_TASKS_URL"
	taskQueueNameEnv        = "TASK_QUEUE_NAME"
	jobQueueNameEnv         = "JOB_QUEUE_NAME"
	taskQueueMaxRetriesEnv  = "TASK_QUEUE_MAX_RETRIES"
	gcloudProjectIDEnv      = "GCLOUD_PROJECT_ID"
	gcloudLocationIDEnv     = "GCLOUD_LOCATION_ID"
	gcloudQueueIDEnv        = "GCLOUD_QUEUE_ID"
	gcloudJobQueueIDEnv     = "GCLOUD_JOB_QUEUE_ID"
	gcloudTargetURLEnv      = "GCLOUD_TARGET_URL"
	gcloudServiceAccountEnv = "GCLOUD_SERVICE_ACCOUNT_EMAIL"

	notificationDispatcherEnv = "NOTIFICATION_DISPATCHER"
	kafkaBrokersEnv           = "KAFKA_BROKERS"
	kafkaNotificationTopicEnv = "KAFKA_NOTIFICATION_TOPIC"

	defaultQueueName         = "default"
	defaultJobQueueName      = "coach-jobs"
	defaultMaxRetries        = 3
	defaultNotificationTopic = "coach.notifications"
)

type DispatcherKind string

const (
	DispatcherTasks DispatcherKind = "tasks"
	DispatcherKafka DispatcherKind = "kafka"
)

type TaskQueueConfig struct {
	PrimindTasksURL string
	QueueName       string
	JobQueueName    string

	GCloudProjectID      string
	GCloudLocationID     string
	GCloudQueueID        string
	GCloudJobQueueID     string
	GCloudTargetURL      string
	GCloudServiceAccount string

	MaxRetries int
}

func LoadTaskQueueConfig() *TaskQueueConfig {
	return &TaskQueueConfig{
		PrimindTasksURL: os.Getenv(primindTasksURLEnv),
		QueueName:       stringOr(taskQueueNameEnv, defaultQueueName),
		JobQueueName:    stringOr(jobQueueNameEnv, defaultJobQueueName),

		GCloudProjectID:      os.Getenv(gcloudProjectIDEnv),
		GCloudLocationID:     os.Getenv(gcloudLocationIDEnv),
		GCloudQueueID:        os.Getenv(gcloudQueueIDEnv),
		GCloudJobQueueID:     os.Getenv(gcloudJobQueueIDEnv),
		GCloudTargetURL:      os.Getenv(gcloudTargetURLEnv),
		GCloudServiceAccount: os.Getenv(gcloudServiceAccountEnv),

		MaxRetries: positiveInt(taskQueueMaxRetriesEnv, defaultMaxRetries),
	}
}

// DispatcherConfig selects where notification requests go. Job re-arms always use the task queue.
type DispatcherConfig struct {
	Kind              DispatcherKind
	KafkaBrokers      []string
	NotificationTopic string
}

func LoadDispatcherConfig() *DispatcherConfig {
	var brokers []string
	for _, b := range strings.Split(os.Getenv(kafkaBrokersEnv), ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	return &DispatcherConfig{
		Kind:              DispatcherKind(strings.ToLower(stringOr(notificationDispatcherEnv, string(DispatcherTasks)))),
		KafkaBrokers:      brokers,
		NotificationTopic: stringOr(kafkaNotificationTopicEnv, defaultNotificationTopic),
	}
}

func (c *DispatcherConfig) Validate() error {
	switch c.Kind {
	case DispatcherTasks:
		return nil
	case DispatcherKafka:
		if len(c.KafkaBrokers) == 0 {
			return ErrKafkaBrokerMissing
		}
		return nil
	default:
		return ErrUnknownDispatcher
	}
}

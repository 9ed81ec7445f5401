package taskqueue

import (
	"time"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

// NotificationTask is the body delivered to the notification receiver.
type NotificationTask struct {
	RequestID string            `json:"request_id"`
	Kind      string            `json:"kind"`
	OwnerID   string            `json:"owner_id"`
	SubjectID string            `json:"subject_id"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Category  string            `json:"category"`
	TriggerAt time.Time         `json:"trigger_at"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func NewNotificationTask(req *domain.NotificationRequest) *NotificationTask {
	return &NotificationTask{
		RequestID: req.ID,
		Kind:      req.Kind.String(),
		OwnerID:   req.OwnerID,
		SubjectID: req.SubjectID,
		Title:     req.Title,
		Body:      req.Body,
		Category:  string(req.Category),
		TriggerAt: req.TriggerAt.UTC(),
		Metadata:  req.Metadata,
	}
}

// JobTask is the body of a re-arm task; the receiver treats ScheduledFor as the run's now.
type JobTask struct {
	Job          string    `json:"job"`
	ScheduledFor time.Time `json:"scheduled_for"`
}

type PrimindTaskRequest struct {
	Task PrimindTask `json:"task"`
}

type PrimindTask struct {
	Name         string             `json:"name,omitempty"`
	HTTPRequest  PrimindHTTPRequest `json:"httpRequest"`
	ScheduleTime string             `json:"scheduleTime,omitempty"`
}

type PrimindHTTPRequest struct {
	URL     string            `json:"url,omitempty"`
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type PrimindTaskResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}

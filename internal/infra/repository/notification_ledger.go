package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

const (
	requestedKeyPrefix = "notify:requested:"

	// Longer than the weekly review cadence so a week-keyed request never re-fires.
	requestedTTL = 8 * 24 * time.Hour
)

type requestedRecord struct {
	RequestID   string    `json:"request_id"`
	Kind        string    `json:"kind"`
	OwnerID     string    `json:"owner_id"`
	SubjectID   string    `json:"subject_id"`
	TriggerAt   time.Time `json:"trigger_at"`
	RequestedAt time.Time `json:"requested_at"`
}

type notificationLedger struct {
	client *redis.Client
	now    func() time.Time
}

func NewNotificationLedger(client *redis.Client) domain.NotificationLedger {
	return &notificationLedger{
		client: client,
		now:    time.Now,
	}
}

func (l *notificationLedger) IsRequested(ctx context.Context, requestID string) (bool, error) {
	key := requestedKeyPrefix + requestID

	exists, err := l.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}

	return exists > 0, nil
}

func (l *notificationLedger) MarkRequested(ctx context.Context, req *domain.NotificationRequest) (bool, error) {
	if req == nil || req.ID == "" {
		return false, ErrInvalidRequestData
	}

	key := requestedKeyPrefix + req.ID

	data, err := json.Marshal(requestedRecord{
		RequestID:   req.ID,
		Kind:        req.Kind.String(),
		OwnerID:     req.OwnerID,
		SubjectID:   req.SubjectID,
		TriggerAt:   req.TriggerAt,
		RequestedAt: l.now(),
	})
	if err != nil {
		return false, ErrInvalidRequestData
	}

	return l.client.SetNX(ctx, key, data, requestedTTL).Result()
}

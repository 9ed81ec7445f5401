package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=training_repository.go -destination=training_repository_mock.go -package=domain

type TrainingRepository interface {
	ListSessions(ctx context.Context, ownerID string, from, to time.Time) ([]TrainingSession, error)
	GetSession(ctx context.Context, ownerID, sessionID string) (*TrainingSession, error)
	// ApplyReconciliation writes one owner's batch atomically. It returns
	// ErrPersistenceConflict when an inserted (owner, source, external id) already exists.
	ApplyReconciliation(ctx context.Context, ownerID string, inserts, updates []TrainingSession) error
	UpdateSession(ctx context.Context, session *TrainingSession) error
	DeleteSession(ctx context.Context, ownerID, sessionID string) error
}

type AlertRepository interface {
	ListAlerts(ctx context.Context, ownerID string) ([]ConflictAlert, error)
	GetAlert(ctx context.Context, ownerID, alertID string) (*ConflictAlert, error)
	// InsertAlerts skips alerts whose (session id, event id) pair already exists and
	// returns the number actually inserted.
	InsertAlerts(ctx context.Context, ownerID string, alerts []ConflictAlert) (int, error)
	// MarkNotified flips the notification-sent flag once; it reports false if already set.
	MarkNotified(ctx context.Context, ownerID, alertID string, at time.Time) (bool, error)
	UpdateStatus(ctx context.Context, ownerID, alertID string, status AlertStatus, resolution string, at time.Time) error
}

type UserRepository interface {
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, userID string) (*User, error)
}

type GoalRepository interface {
	ListGoals(ctx context.Context, ownerID string) ([]Goal, error)
}

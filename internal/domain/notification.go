package domain

import "time"

type NotificationKind string

const (
	NotificationMissedWorkout   NotificationKind = "missed_workout"
	NotificationPreWorkout      NotificationKind = "pre_workout"
	NotificationConflictWarning NotificationKind = "conflict_warning"
	NotificationWeeklyReview    NotificationKind = "weekly_review"
)

func (k NotificationKind) String() string {
	return string(k)
}

// NotificationCategory lets the receiving client attach contextual actions.
type NotificationCategory string

const (
	CategoryMissedWorkout    NotificationCategory = "MISSED_WORKOUT"
	CategoryTrainingConflict NotificationCategory = "TRAINING_CONFLICT"
	CategoryCheckIn          NotificationCategory = "CHECK_IN"
	CategoryUpcomingWorkout  NotificationCategory = "UPCOMING_WORKOUT"
)

// NotificationRequest is an intent to deliver a message at TriggerAt.
// ID is stable for a given (Kind, SubjectID) pair.
type NotificationRequest struct {
	ID        string               `json:"id"`
	Kind      NotificationKind     `json:"kind"`
	OwnerID   string               `json:"owner_id"`
	SubjectID string               `json:"subject_id"`
	TriggerAt time.Time            `json:"trigger_at"`
	Title     string               `json:"title"`
	Body      string               `json:"body"`
	Category  NotificationCategory `json:"category"`
	Metadata  map[string]string    `json:"metadata,omitempty"`
}

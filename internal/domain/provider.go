package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=provider.go -destination=provider_mock.go -package=domain

// CalendarProvider returns ErrProviderUnavailable when calendar access is not authorized.
type CalendarProvider interface {
	FetchEvents(ctx context.Context, ownerID string, start, end time.Time) ([]CalendarEvent, error)
}

// WorkoutProvider reads cycling workouts from the health store.
type WorkoutProvider interface {
	FetchWorkouts(ctx context.Context, ownerID string, start, end time.Time) ([]Workout, error)
}

// TrainingPlatform reads the owner's platform calendar and history. Implementations
// obtain the owner's bearer credential from a SecretStore.
type TrainingPlatform interface {
	FetchPlannedEvents(ctx context.Context, ownerID, athleteID string, start, end time.Time) ([]PlannedEvent, error)
	FetchActivities(ctx context.Context, ownerID, athleteID string, start, end time.Time) ([]Activity, error)
}

// SecretStore is an opaque credential store keyed by name. Values must never be logged.
type SecretStore interface {
	Get(ctx context.Context, name string) (string, bool, error)
	Set(ctx context.Context, name, value string) (bool, error)
	Delete(ctx context.Context, name string) (bool, error)
}

// PlatformCredentialName is the secret store key of an owner's training platform token.
func PlatformCredentialName(ownerID string) string {
	return "intervals_icu.token." + ownerID
}

package domain

import (
	"slices"
	"strings"
	"time"
)

// Source identifies where a training record came from.
type Source string

const (
	SourceTrainingPlatform         Source = "intervals_icu"
	SourceTrainingPlatformActivity Source = "intervals_icu_activity"
	SourceHealthStore              Source = "healthkit"
	SourceManual                   Source = "manual"
)

func (s Source) String() string {
	return string(s)
}

func (s Source) IsValid() bool {
	switch s {
	case SourceTrainingPlatform, SourceTrainingPlatformActivity, SourceHealthStore, SourceManual:
		return true
	}
	return false
}

// RecordKind distinguishes planned events from completed activities.
type RecordKind string

const (
	RecordKindPlanned    RecordKind = "planned"
	RecordKindCompletion RecordKind = "completion"
)

type SessionType string

const (
	SessionTypeEndurance  SessionType = "endurance"
	SessionTypeInterval   SessionType = "interval"
	SessionTypeTempo      SessionType = "tempo"
	SessionTypeRecovery   SessionType = "recovery"
	SessionTypeRace       SessionType = "race"
	SessionTypeIndoorRide SessionType = "indoor_ride"
	SessionTypeOther      SessionType = "other"
)

// ClassifySessionType derives a session type from a provider activity type and title.
func ClassifySessionType(activityType, title string) SessionType {
	kind := strings.ToLower(activityType)
	name := strings.ToLower(title)

	if kind != "" && !strings.Contains(kind, "ride") && !strings.Contains(kind, "cycl") {
		return SessionTypeOther
	}

	switch {
	case strings.Contains(kind, "virtual"), strings.Contains(kind, "indoor"),
		strings.Contains(name, "indoor"), strings.Contains(name, "trainer"), strings.Contains(name, "zwift"):
		return SessionTypeIndoorRide
	case strings.Contains(name, "race"), strings.Contains(name, "crit"):
		return SessionTypeRace
	case strings.Contains(name, "interval"), strings.Contains(name, "vo2"), strings.Contains(name, "threshold"):
		return SessionTypeInterval
	case strings.Contains(name, "tempo"), strings.Contains(name, "sweet spot"):
		return SessionTypeTempo
	case strings.Contains(name, "recovery"), strings.Contains(name, "easy spin"):
		return SessionTypeRecovery
	}

	return SessionTypeEndurance
}

const DefaultPlannedDuration = 60 * time.Minute

type PlannedMetrics struct {
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	DistanceKm      *float64 `json:"distance_km,omitempty"`
	Intensity       *string  `json:"intensity,omitempty"`
	Load            *int     `json:"load,omitempty"`
}

type ActualMetrics struct {
	DurationMinutes      *int     `json:"duration_minutes,omitempty"`
	DistanceKm           *float64 `json:"distance_km,omitempty"`
	AvgHeartRate         *int     `json:"avg_heart_rate,omitempty"`
	MaxHeartRate         *int     `json:"max_heart_rate,omitempty"`
	AvgPowerWatts        *int     `json:"avg_power_watts,omitempty"`
	NormalizedPowerWatts *int     `json:"normalized_power_watts,omitempty"`
	Load                 *int     `json:"load,omitempty"`
	PerceivedEffort      *int     `json:"perceived_effort,omitempty"`
}

// TrainingSession is the canonical planned or completed workout.
type TrainingSession struct {
	ID               string            `json:"id"`
	OwnerID          string            `json:"owner_id"`
	ScheduledAt      time.Time         `json:"scheduled_at"`
	SessionType      SessionType       `json:"session_type"`
	Title            string            `json:"title"`
	Description      string            `json:"description,omitempty"`
	Planned          PlannedMetrics    `json:"planned"`
	Completed        bool              `json:"completed"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty"`
	Actual           ActualMetrics     `json:"actual"`
	Sources          []Source          `json:"sources"`
	ExternalIDs      map[Source]string `json:"external_ids,omitempty"`
	UserNotes        string            `json:"user_notes,omitempty"`
	CoachingFeedback string            `json:"coaching_feedback,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// PlannedDuration returns the planned duration, defaulting to one hour when unset.
func (s *TrainingSession) PlannedDuration() time.Duration {
	if s.Planned.DurationMinutes == nil || *s.Planned.DurationMinutes <= 0 {
		return DefaultPlannedDuration
	}
	return time.Duration(*s.Planned.DurationMinutes) * time.Minute
}

func (s *TrainingSession) EndsAt() time.Time {
	return s.ScheduledAt.Add(s.PlannedDuration())
}

func (s *TrainingSession) HasSource(src Source) bool {
	return slices.Contains(s.Sources, src)
}

func (s *TrainingSession) ExternalID(src Source) (string, bool) {
	id, ok := s.ExternalIDs[src]
	return id, ok && id != ""
}

// AttachSource records provenance and, when externalID is set, the dedup key for src.
func (s *TrainingSession) AttachSource(src Source, externalID string) {
	if !s.HasSource(src) {
		s.Sources = append(s.Sources, src)
		slices.Sort(s.Sources)
	}
	if externalID == "" {
		return
	}
	if s.ExternalIDs == nil {
		s.ExternalIDs = make(map[Source]string)
	}
	s.ExternalIDs[src] = externalID
}

// Clone returns a deep copy so callers can mutate without aliasing the original.
func (s TrainingSession) Clone() TrainingSession {
	out := s
	out.Sources = slices.Clone(s.Sources)
	if s.ExternalIDs != nil {
		out.ExternalIDs = make(map[Source]string, len(s.ExternalIDs))
		for k, v := range s.ExternalIDs {
			out.ExternalIDs[k] = v
		}
	}
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		out.CompletedAt = &t
	}
	return out
}

// ExternalRecord is a provider-neutral training record prior to reconciliation.
type ExternalRecord struct {
	Source       Source
	ExternalID   string
	Kind         RecordKind
	StartTime    time.Time
	Title        string
	Description  string
	ActivityType string
	Planned      PlannedMetrics
	Actual       ActualMetrics
}

// PlannedEvent is a workout scheduled on the training platform.
type PlannedEvent struct {
	ID                string
	Start             time.Time
	Name              string
	Description       string
	Type              string
	MovingTimeSeconds *int
	DistanceMeters    *float64
	Load              *int
}

// Activity is a completed workout recorded on the training platform.
type Activity struct {
	ID                string
	Start             time.Time
	Name              string
	Type              string
	MovingTimeSeconds *int
	DistanceMeters    *float64
	AvgHeartRate      *int
	MaxHeartRate      *int
	AvgWatts          *int
	WeightedAvgWatts  *int
	Load              *int
	PerceivedExertion *int
}

// Workout is a cycling workout read from the health store.
type Workout struct {
	ID             string
	Start          time.Time
	End            time.Time
	DistanceMeters *float64
	AvgHeartRate   *float64
	MaxHeartRate   *float64
	AvgPowerWatts  *float64
}

// CalendarEvent is a commitment from the owner's personal calendar.
type CalendarEvent struct {
	ID       string
	Title    string
	Start    time.Time
	End      time.Time
	AllDay   bool
	Location string
}

// TrainingStats summarises a set of sessions.
type TrainingStats struct {
	TotalSessions     int     `json:"total_sessions"`
	CompletedSessions int     `json:"completed_sessions"`
	UpcomingSessions  int     `json:"upcoming_sessions"`
	CompletionRate    float64 `json:"completion_rate"`
	TotalDistanceKm   float64 `json:"total_distance_km"`
	TotalDurationMin  int     `json:"total_duration_minutes"`
	TotalLoad         int     `json:"total_load"`
	AvgPowerWatts     *int    `json:"avg_power_watts,omitempty"`
	AvgHeartRate      *int    `json:"avg_heart_rate,omitempty"`
}

package domain

import "time"

type User struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	Email                string         `json:"email,omitempty"`
	AthleteID            string         `json:"athlete_id,omitempty"`
	FTPWatts             *int           `json:"ftp_watts,omitempty"`
	ThresholdHeartRate   *int           `json:"threshold_heart_rate,omitempty"`
	MaxHeartRate         *int           `json:"max_heart_rate,omitempty"`
	WeightKg             *float64       `json:"weight_kg,omitempty"`
	PreferredDays        []time.Weekday `json:"preferred_days,omitempty"`
	PreferredTimeOfDay   string         `json:"preferred_time_of_day,omitempty"`
	Timezone             string         `json:"timezone,omitempty"`
	NotificationsEnabled bool           `json:"notifications_enabled"`
}

// Location resolves the user's timezone, falling back to fallback when unset or unknown.
func (u *User) Location(fallback *time.Location) *time.Location {
	if u.Timezone == "" {
		return fallback
	}
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return fallback
	}
	return loc
}

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusOnTrack   GoalStatus = "on_track"
	GoalStatusAtRisk    GoalStatus = "at_risk"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusAbandoned GoalStatus = "abandoned"
)

type Goal struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	GoalType    string     `json:"goal_type"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
	TargetValue *float64   `json:"target_value,omitempty"`
	Progress    float64    `json:"progress"`
	Status      GoalStatus `json:"status"`
	Priority    int        `json:"priority"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IsOpen reports whether the goal still counts toward coaching context.
func (g *Goal) IsOpen() bool {
	return g.Status != GoalStatusCompleted && g.Status != GoalStatusAbandoned
}

// EvaluateStatus applies progress and deadline rules and returns the resulting status.
func (g *Goal) EvaluateStatus(now time.Time) GoalStatus {
	if g.Status == GoalStatusAbandoned {
		return g.Status
	}
	switch {
	case g.Progress >= 1:
		return GoalStatusCompleted
	case g.TargetDate != nil && g.TargetDate.Before(now):
		return GoalStatusAtRisk
	case g.Progress > 0.7:
		return GoalStatusOnTrack
	}
	return g.Status
}

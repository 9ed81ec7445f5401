package domain

import "time"

type ConflictType string

const (
	ConflictOverlap        ConflictType = "overlap"
	ConflictTooCloseBefore ConflictType = "too_close_before"
	ConflictTooCloseAfter  ConflictType = "too_close_after"
	ConflictTravelRequired ConflictType = "travel_required"
)

func (t ConflictType) String() string {
	return string(t)
}

// Severity ranks conflict types, higher is worse.
func (t ConflictType) Severity() int {
	switch t {
	case ConflictOverlap:
		return 3
	case ConflictTooCloseBefore, ConflictTooCloseAfter:
		return 2
	case ConflictTravelRequired:
		return 1
	default:
		return 0
	}
}

// Conflict is a classified pairing of one session and one calendar event.
type Conflict struct {
	SessionID  string
	EventID    string
	EventTitle string
	Location   string
	ConflictAt time.Time
	Type       ConflictType
}

func (c Conflict) Severity() int {
	return c.Type.Severity()
}

type AlertStatus string

const (
	AlertStatusPending  AlertStatus = "pending"
	AlertStatusResolved AlertStatus = "resolved"
	AlertStatusIgnored  AlertStatus = "ignored"
)

func (s AlertStatus) String() string {
	return string(s)
}

// AlertKey is the dedup key of a ConflictAlert.
type AlertKey struct {
	SessionID string
	EventID   string
}

type ConflictAlert struct {
	ID               string       `json:"id"`
	OwnerID          string       `json:"owner_id"`
	SessionID        string       `json:"session_id"`
	EventID          string       `json:"calendar_event_id"`
	EventTitle       string       `json:"calendar_event_title"`
	ConflictAt       time.Time    `json:"conflict_at"`
	Type             ConflictType `json:"conflict_type"`
	Status           AlertStatus  `json:"status"`
	Resolution       string       `json:"resolution,omitempty"`
	ResolvedAt       *time.Time   `json:"resolved_at,omitempty"`
	NotificationSent bool         `json:"notification_sent"`
	NotifiedAt       *time.Time   `json:"notified_at,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
}

func (a *ConflictAlert) Key() AlertKey {
	return AlertKey{SessionID: a.SessionID, EventID: a.EventID}
}

// Transition validates a user-driven status change. Only pending alerts may change.
func (a *ConflictAlert) Transition(to AlertStatus) error {
	if a.Status != AlertStatusPending {
		return ErrInvalidAlertTransition
	}
	if to != AlertStatusResolved && to != AlertStatusIgnored {
		return ErrInvalidAlertTransition
	}
	return nil
}

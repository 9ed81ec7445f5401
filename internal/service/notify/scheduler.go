package notify

import (
	"fmt"
	"time"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

const (
	missedWindowStart = 2 * time.Hour
	missedWindowEnd   = 3 * time.Hour
	preWindowStart    = 60 * time.Minute
	preWindowEnd      = 30 * time.Minute
	conflictLeadTime  = 24 * time.Hour
)

// WeeklyReviewConfig is the recurring local instant of the weekly check-in.
type WeeklyReviewConfig struct {
	Weekday time.Weekday
	Hour    int
}

func DefaultWeeklyReviewConfig() WeeklyReviewConfig {
	return WeeklyReviewConfig{Weekday: time.Sunday, Hour: 18}
}

// Scheduler decides whether a subject is eligible for a notification at a given instant.
// It holds no state; the requested state lives with the dispatcher and the ledger.
type Scheduler struct {
	weekly WeeklyReviewConfig
}

func NewScheduler(weekly WeeklyReviewConfig) *Scheduler {
	if weekly.Hour < 0 || weekly.Hour > 23 {
		weekly.Hour = DefaultWeeklyReviewConfig().Hour
	}
	return &Scheduler{weekly: weekly}
}

// MissedWorkout is eligible during [start+2h, start+3h) while the session is incomplete.
func (s *Scheduler) MissedWorkout(session *domain.TrainingSession, now time.Time) (*domain.NotificationRequest, bool) {
	if session.Completed {
		return nil, false
	}
	if !inWindow(now, session.ScheduledAt.Add(missedWindowStart), session.ScheduledAt.Add(missedWindowEnd)) {
		return nil, false
	}

	id := RequestID(domain.NotificationMissedWorkout, session.ID)
	return &domain.NotificationRequest{
		ID:        id,
		Kind:      domain.NotificationMissedWorkout,
		OwnerID:   session.OwnerID,
		SubjectID: session.ID,
		TriggerAt: session.ScheduledAt.Add(missedWindowStart),
		Title:     missedWorkoutTitle,
		Body:      fmt.Sprintf(missedWorkoutBody, session.Title),
		Category:  domain.CategoryMissedWorkout,
		Metadata: map[string]string{
			"type":       "missed_workout",
			"trainingId": session.ID,
		},
	}, true
}

// PreWorkout is eligible during [start-60m, start-30m) while the session is incomplete.
func (s *Scheduler) PreWorkout(session *domain.TrainingSession, now time.Time) (*domain.NotificationRequest, bool) {
	if session.Completed {
		return nil, false
	}
	if !inWindow(now, session.ScheduledAt.Add(-preWindowStart), session.ScheduledAt.Add(-preWindowEnd)) {
		return nil, false
	}

	id := RequestID(domain.NotificationPreWorkout, session.ID)
	return &domain.NotificationRequest{
		ID:        id,
		Kind:      domain.NotificationPreWorkout,
		OwnerID:   session.OwnerID,
		SubjectID: session.ID,
		TriggerAt: session.ScheduledAt.Add(-preWindowEnd),
		Title:     preWorkoutTitle,
		Body:      fmt.Sprintf(pickVariant(id, preWorkoutBodies), session.Title),
		Category:  domain.CategoryUpcomingWorkout,
		Metadata: map[string]string{
			"type":       "pre_workout",
			"trainingId": session.ID,
		},
	}, true
}

// ConflictWarning triggers 24h before the conflict, only while that instant is ahead of now.
func (s *Scheduler) ConflictWarning(alert *domain.ConflictAlert, now time.Time) (*domain.NotificationRequest, bool) {
	if alert.Status != domain.AlertStatusPending || alert.NotificationSent {
		return nil, false
	}
	trigger := alert.ConflictAt.Add(-conflictLeadTime)
	if !trigger.After(now) {
		return nil, false
	}

	return &domain.NotificationRequest{
		ID:        RequestID(domain.NotificationConflictWarning, alert.ID),
		Kind:      domain.NotificationConflictWarning,
		OwnerID:   alert.OwnerID,
		SubjectID: alert.ID,
		TriggerAt: trigger,
		Title:     conflictTitle,
		Body:      fmt.Sprintf(conflictBody, alert.EventTitle),
		Category:  domain.CategoryTrainingConflict,
		Metadata: map[string]string{
			"type":       "conflict_alert",
			"conflictId": alert.ID,
			"trainingId": alert.SessionID,
		},
	}, true
}

// WeeklyReview is eligible when the next weekly instant in loc falls within [now, now+horizon).
func (s *Scheduler) WeeklyReview(ownerID string, loc *time.Location, now time.Time, horizon time.Duration) (*domain.NotificationRequest, bool) {
	next := s.NextWeeklyReview(now, loc)
	if next.Sub(now) >= horizon {
		return nil, false
	}

	year, week := next.ISOWeek()
	subject := fmt.Sprintf("%s:%04d-W%02d", ownerID, year, week)

	return &domain.NotificationRequest{
		ID:        RequestID(domain.NotificationWeeklyReview, subject),
		Kind:      domain.NotificationWeeklyReview,
		OwnerID:   ownerID,
		SubjectID: subject,
		TriggerAt: next,
		Title:     weeklyReviewTitle,
		Body:      weeklyReviewBody,
		Category:  domain.CategoryCheckIn,
		Metadata: map[string]string{
			"type":   "weekly_review",
			"userId": ownerID,
		},
	}, true
}

// NextWeeklyReview returns the first configured weekly instant at or after now.
func (s *Scheduler) NextWeeklyReview(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	daysAhead := (int(s.weekly.Weekday) - int(local.Weekday()) + 7) % 7

	y, m, d := local.Date()
	next := time.Date(y, m, d+daysAhead, s.weekly.Hour, 0, 0, 0, loc)
	if next.Before(now) {
		next = time.Date(y, m, d+daysAhead+7, s.weekly.Hour, 0, 0, 0, loc)
	}
	return next
}

func inWindow(now, start, end time.Time) bool {
	return !now.Before(start) && now.Before(end)
}

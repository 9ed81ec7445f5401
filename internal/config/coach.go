package config

import (
	"os"
	"strconv"
	"time"
)

const (
	reconcileMatchWindowEnv = "RECONCILE_MATCH_WINDOW_MINUTES"
	reconcileHistoryDaysEnv = "RECONCILE_HISTORY_DAYS"
	conflictLookaheadEnv    = "CONFLICT_LOOKAHEAD_DAYS"
	weeklyReviewWeekdayEnv  = "WEEKLY_REVIEW_WEEKDAY"
	weeklyReviewHourEnv     = "WEEKLY_REVIEW_HOUR"

	defaultMatchWindowMinutes = 240
	defaultHistoryDays        = 30
	defaultLookaheadDays      = 14
	defaultWeeklyReviewDay    = time.Sunday
	defaultWeeklyReviewHour   = 18
)

// CoachConfig holds the reconciliation, conflict and notification tunables.
type CoachConfig struct {
	MatchWindow         time.Duration
	HistoryWindow       time.Duration
	ConflictLookahead   time.Duration
	WeeklyReviewWeekday time.Weekday
	WeeklyReviewHour    int
}

func LoadCoachConfig() *CoachConfig {
	weekday := defaultWeeklyReviewDay
	if v := os.Getenv(weeklyReviewWeekdayEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 6 {
			weekday = time.Weekday(parsed)
		}
	}

	hour := defaultWeeklyReviewHour
	if v := os.Getenv(weeklyReviewHourEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 23 {
			hour = parsed
		}
	}

	return &CoachConfig{
		MatchWindow:         time.Duration(positiveInt(reconcileMatchWindowEnv, defaultMatchWindowMinutes)) * time.Minute,
		HistoryWindow:       time.Duration(positiveInt(reconcileHistoryDaysEnv, defaultHistoryDays)) * 24 * time.Hour,
		ConflictLookahead:   time.Duration(positiveInt(conflictLookaheadEnv, defaultLookaheadDays)) * 24 * time.Hour,
		WeeklyReviewWeekday: weekday,
		WeeklyReviewHour:    hour,
	}
}

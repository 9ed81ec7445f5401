package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

var start = time.Date(2025, 3, 4, 18, 0, 0, 0, time.UTC)

func testSession() *domain.TrainingSession {
	return &domain.TrainingSession{
		ID:          "session-1",
		OwnerID:     "user-1",
		ScheduledAt: start,
		Title:       "Tempo Intervals",
	}
}

func TestMissedWorkoutWindow(t *testing.T) {
	s := NewScheduler(DefaultWeeklyReviewConfig())

	tests := []struct {
		name      string
		now       time.Time
		completed bool
		eligible  bool
	}{
		{"before window", start.Add(119 * time.Minute), false, false},
		{"window start inclusive", start.Add(2 * time.Hour), false, true},
		{"inside window", start.Add(150 * time.Minute), false, true},
		{"window end exclusive", start.Add(3 * time.Hour), false, false},
		{"completed session", start.Add(150 * time.Minute), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := testSession()
			session.Completed = tt.completed

			req, ok := s.MissedWorkout(session, tt.now)
			if ok != tt.eligible {
				t.Fatalf("expected eligible=%v, got %v", tt.eligible, ok)
			}
			if !ok {
				return
			}
			if req.Category != domain.CategoryMissedWorkout {
				t.Errorf("expected category %s, got %s", domain.CategoryMissedWorkout, req.Category)
			}
			if req.Body != "Hey! I noticed you didn't complete Tempo Intervals. Everything okay?" {
				t.Errorf("unexpected body %q", req.Body)
			}
			if !req.TriggerAt.Equal(start.Add(2 * time.Hour)) {
				t.Errorf("unexpected trigger %v", req.TriggerAt)
			}
		})
	}
}

func TestPreWorkoutWindow(t *testing.T) {
	s := NewScheduler(DefaultWeeklyReviewConfig())

	tests := []struct {
		name     string
		now      time.Time
		eligible bool
	}{
		{"too early", start.Add(-61 * time.Minute), false},
		{"window start inclusive", start.Add(-60 * time.Minute), true},
		{"inside window", start.Add(-45 * time.Minute), true},
		{"window end exclusive", start.Add(-30 * time.Minute), false},
		{"too late", start.Add(-10 * time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, ok := s.PreWorkout(testSession(), tt.now)
			if ok != tt.eligible {
				t.Fatalf("expected eligible=%v, got %v", tt.eligible, ok)
			}
			if ok && !strings.Contains(req.Body, "Tempo Intervals") {
				t.Errorf("expected body to mention the session title, got %q", req.Body)
			}
		})
	}
}

func TestRequestIDIsStable(t *testing.T) {
	s := NewScheduler(DefaultWeeklyReviewConfig())
	session := testSession()

	first, _ := s.MissedWorkout(session, start.Add(2*time.Hour))
	second, _ := s.MissedWorkout(session, start.Add(2*time.Hour+50*time.Minute))

	if first.ID != second.ID {
		t.Errorf("expected stable id across runs, got %s and %s", first.ID, second.ID)
	}
	if first.Body != second.Body {
		t.Error("expected stable body across runs")
	}

	pre, _ := s.PreWorkout(session, start.Add(-45*time.Minute))
	if pre.ID == first.ID {
		t.Error("expected different kinds to produce different ids")
	}
	if RequestID(domain.NotificationMissedWorkout, "session-2") == first.ID {
		t.Error("expected different subjects to produce different ids")
	}
}

func TestConflictWarning(t *testing.T) {
	s := NewScheduler(DefaultWeeklyReviewConfig())
	conflictAt := time.Date(2025, 3, 6, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		alert    domain.ConflictAlert
		now      time.Time
		eligible bool
	}{
		{
			name:     "trigger in the future",
			alert:    domain.ConflictAlert{ID: "a1", Status: domain.AlertStatusPending, ConflictAt: conflictAt, EventTitle: "Dentist"},
			now:      conflictAt.Add(-48 * time.Hour),
			eligible: true,
		},
		{
			name:  "trigger already passed",
			alert: domain.ConflictAlert{ID: "a1", Status: domain.AlertStatusPending, ConflictAt: conflictAt},
			now:   conflictAt.Add(-12 * time.Hour),
		},
		{
			name:  "already notified",
			alert: domain.ConflictAlert{ID: "a1", Status: domain.AlertStatusPending, ConflictAt: conflictAt, NotificationSent: true},
			now:   conflictAt.Add(-48 * time.Hour),
		},
		{
			name:  "resolved alert",
			alert: domain.ConflictAlert{ID: "a1", Status: domain.AlertStatusResolved, ConflictAt: conflictAt},
			now:   conflictAt.Add(-48 * time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, ok := s.ConflictWarning(&tt.alert, tt.now)
			if ok != tt.eligible {
				t.Fatalf("expected eligible=%v, got %v", tt.eligible, ok)
			}
			if !ok {
				return
			}
			if !req.TriggerAt.Equal(conflictAt.Add(-24 * time.Hour)) {
				t.Errorf("unexpected trigger %v", req.TriggerAt)
			}
			if req.Category != domain.CategoryTrainingConflict {
				t.Errorf("unexpected category %s", req.Category)
			}
			if req.Body != "Your calendar event 'Dentist' conflicts with your training. Would you like to reschedule?" {
				t.Errorf("unexpected body %q", req.Body)
			}
		})
	}
}

func TestWeeklyReview(t *testing.T) {
	s := NewScheduler(WeeklyReviewConfig{Weekday: time.Sunday, Hour: 19})
	sunday := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		now      time.Time
		eligible bool
		trigger  time.Time
	}{
		{"three hours ahead", sunday.Add(16 * time.Hour), true, sunday.Add(19 * time.Hour)},
		{"exactly at instant", sunday.Add(19 * time.Hour), true, sunday.Add(19 * time.Hour)},
		{"five hours ahead is outside horizon", sunday.Add(14 * time.Hour), false, time.Time{}},
		{"just after rolls to next week", sunday.Add(19*time.Hour + time.Minute), false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, ok := s.WeeklyReview("user-1", time.UTC, tt.now, 4*time.Hour)
			if ok != tt.eligible {
				t.Fatalf("expected eligible=%v, got %v", tt.eligible, ok)
			}
			if !ok {
				return
			}
			if !req.TriggerAt.Equal(tt.trigger) {
				t.Errorf("expected trigger %v, got %v", tt.trigger, req.TriggerAt)
			}
			if req.Category != domain.CategoryCheckIn {
				t.Errorf("unexpected category %s", req.Category)
			}
		})
	}
}

func TestNextWeeklyReviewHonoursLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	s := NewScheduler(WeeklyReviewConfig{Weekday: time.Sunday, Hour: 19})

	// Monday 00:30 UTC is still Sunday 19:30 local, so the next review is a week later.
	now := time.Date(2025, 3, 10, 0, 30, 0, 0, time.UTC)
	next := s.NextWeeklyReview(now, loc)

	expected := time.Date(2025, 3, 16, 19, 0, 0, 0, loc)
	if !next.Equal(expected) {
		t.Errorf("expected %v, got %v", expected, next)
	}
}

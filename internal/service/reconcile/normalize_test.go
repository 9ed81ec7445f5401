package reconcile

import (
	"errors"
	"testing"
	"time"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }

func TestFromActivitiesFiltersNonRides(t *testing.T) {
	activities := []domain.Activity{
		{ID: "a1", Start: baseTime, Type: "Ride", MovingTimeSeconds: intPtr(3570), DistanceMeters: floatPtr(32456)},
		{ID: "a2", Start: baseTime, Type: "VirtualRide", AvgWatts: intPtr(220)},
		{ID: "a3", Start: baseTime, Type: "Run"},
		{ID: "", Start: baseTime, Type: "Ride"},
	}

	records, skipped := FromActivities(activities)

	if len(records) != 2 {
		t.Fatalf("expected 2 ride records, got %d", len(records))
	}
	if len(skipped) != 1 || !errors.Is(skipped[0].Reason, domain.ErrMalformedRecord) {
		t.Fatalf("expected the id-less ride to be skipped as malformed, got %+v", skipped)
	}

	first := records[0]
	if first.Kind != domain.RecordKindCompletion {
		t.Errorf("expected completion kind, got %s", first.Kind)
	}
	if first.Source != domain.SourceTrainingPlatformActivity {
		t.Errorf("expected activity source tag, got %s", first.Source)
	}
	if *first.Actual.DurationMinutes != 60 {
		t.Errorf("expected 60 minutes, got %d", *first.Actual.DurationMinutes)
	}
	if *first.Actual.DistanceKm != 32.46 {
		t.Errorf("expected 32.46 km, got %v", *first.Actual.DistanceKm)
	}
	if records[1].Actual.DistanceKm != nil {
		t.Error("expected absent distance to stay unset")
	}
}

func TestFromPlannedEvents(t *testing.T) {
	events := []domain.PlannedEvent{
		{ID: "e1", Start: baseTime, Name: "Sweet Spot 3x15", Type: "Ride", MovingTimeSeconds: intPtr(5400), Load: intPtr(85)},
		{ID: "e2", Name: "No date"},
	}

	records, skipped := FromPlannedEvents(events)

	if len(records) != 1 || len(skipped) != 1 {
		t.Fatalf("expected 1 record and 1 skipped, got %d and %d", len(records), len(skipped))
	}
	rec := records[0]
	if rec.Kind != domain.RecordKindPlanned || rec.Source != domain.SourceTrainingPlatform {
		t.Errorf("unexpected record kind/source: %s/%s", rec.Kind, rec.Source)
	}
	if *rec.Planned.DurationMinutes != 90 || *rec.Planned.Load != 85 {
		t.Errorf("unexpected planned metrics: %+v", rec.Planned)
	}
}

func TestFromWorkoutsDerivesDuration(t *testing.T) {
	workouts := []domain.Workout{
		{ID: "w1", Start: baseTime, End: baseTime.Add(58 * time.Minute), AvgHeartRate: floatPtr(141.6), AvgPowerWatts: floatPtr(209.7)},
		{ID: "w2", Start: baseTime},
	}

	records, skipped := FromWorkouts(workouts)

	if len(skipped) != 0 {
		t.Fatalf("expected no skipped workouts, got %d", len(skipped))
	}
	if *records[0].Actual.DurationMinutes != 58 {
		t.Errorf("expected 58 minutes, got %d", *records[0].Actual.DurationMinutes)
	}
	if *records[0].Actual.AvgHeartRate != 142 || *records[0].Actual.AvgPowerWatts != 210 {
		t.Errorf("unexpected rounding: %+v", records[0].Actual)
	}
	if records[1].Actual.DurationMinutes != nil {
		t.Error("expected duration to be unset when end is missing")
	}
}

func TestClassifySessionType(t *testing.T) {
	tests := []struct {
		activityType string
		title        string
		expected     domain.SessionType
	}{
		{"VirtualRide", "Zwift group ride", domain.SessionTypeIndoorRide},
		{"Ride", "Threshold intervals", domain.SessionTypeInterval},
		{"Ride", "Saturday tempo", domain.SessionTypeTempo},
		{"Ride", "Recovery spin", domain.SessionTypeRecovery},
		{"Ride", "Local crit race", domain.SessionTypeRace},
		{"Ride", "", domain.SessionTypeEndurance},
		{"", "Long ride", domain.SessionTypeEndurance},
		{"Run", "Easy run", domain.SessionTypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.activityType+"/"+tt.title, func(t *testing.T) {
			if got := domain.ClassifySessionType(tt.activityType, tt.title); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

package training

import (
	"testing"
	"time"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestStats(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	sessions := []domain.TrainingSession{
		{
			ID: "s1", ScheduledAt: now.Add(-72 * time.Hour), Completed: true,
			Actual: domain.ActualMetrics{DurationMinutes: intPtr(90), DistanceKm: floatPtr(45.5), AvgPowerWatts: intPtr(200), AvgHeartRate: intPtr(140), Load: intPtr(80)},
		},
		{
			ID: "s2", ScheduledAt: now.Add(-48 * time.Hour), Completed: true,
			Actual: domain.ActualMetrics{DurationMinutes: intPtr(60), DistanceKm: floatPtr(30), AvgPowerWatts: intPtr(250), Load: intPtr(70)},
		},
		{ID: "s3", ScheduledAt: now.Add(-24 * time.Hour)},
		{ID: "s4", ScheduledAt: now.Add(24 * time.Hour)},
	}

	stats := Stats(sessions, now)

	if stats.TotalSessions != 4 || stats.CompletedSessions != 2 || stats.UpcomingSessions != 1 {
		t.Fatalf("unexpected counts %+v", stats)
	}
	if want := 2.0 / 3.0; stats.CompletionRate != want {
		t.Errorf("expected completion rate %v, got %v", want, stats.CompletionRate)
	}
	if stats.TotalDistanceKm != 75.5 {
		t.Errorf("expected 75.5 km, got %v", stats.TotalDistanceKm)
	}
	if stats.TotalDurationMin != 150 {
		t.Errorf("expected 150 minutes, got %d", stats.TotalDurationMin)
	}
	if stats.TotalLoad != 150 {
		t.Errorf("expected load 150, got %d", stats.TotalLoad)
	}
	if stats.AvgPowerWatts == nil || *stats.AvgPowerWatts != 225 {
		t.Errorf("expected avg power 225, got %v", stats.AvgPowerWatts)
	}
	if stats.AvgHeartRate == nil || *stats.AvgHeartRate != 140 {
		t.Errorf("expected avg heart rate 140, got %v", stats.AvgHeartRate)
	}
}

func TestStatsEmpty(t *testing.T) {
	stats := Stats(nil, time.Now())

	if stats.CompletionRate != 0 || stats.AvgPowerWatts != nil || stats.AvgHeartRate != nil {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

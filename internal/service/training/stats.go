package training

import (
	"time"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

const DefaultStatsWindow = 30 * 24 * time.Hour

// Stats summarises sessions relative to now. Totals and averages cover completed
// sessions only; the completion rate is completed over sessions already due.
func Stats(sessions []domain.TrainingSession, now time.Time) domain.TrainingStats {
	var stats domain.TrainingStats
	var due, powerSum, powerN, hrSum, hrN int

	for i := range sessions {
		s := &sessions[i]
		stats.TotalSessions++

		if !s.Completed {
			if s.ScheduledAt.After(now) {
				stats.UpcomingSessions++
			} else {
				due++
			}
			continue
		}

		stats.CompletedSessions++
		due++

		a := s.Actual
		if a.DistanceKm != nil {
			stats.TotalDistanceKm += *a.DistanceKm
		}
		if a.DurationMinutes != nil {
			stats.TotalDurationMin += *a.DurationMinutes
		}
		if a.Load != nil {
			stats.TotalLoad += *a.Load
		}
		if a.AvgPowerWatts != nil {
			powerSum += *a.AvgPowerWatts
			powerN++
		}
		if a.AvgHeartRate != nil {
			hrSum += *a.AvgHeartRate
			hrN++
		}
	}

	if due > 0 {
		stats.CompletionRate = float64(stats.CompletedSessions) / float64(due)
	}
	if powerN > 0 {
		avg := powerSum / powerN
		stats.AvgPowerWatts = &avg
	}
	if hrN > 0 {
		avg := hrSum / hrN
		stats.AvgHeartRate = &avg
	}

	return stats
}

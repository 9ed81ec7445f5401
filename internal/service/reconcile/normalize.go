package reconcile

import (
	"fmt"
	"math"
	"strings"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

// FromPlannedEvents converts training platform calendar entries into planned records.
func FromPlannedEvents(events []domain.PlannedEvent) ([]domain.ExternalRecord, []SkippedRecord) {
	records := make([]domain.ExternalRecord, 0, len(events))
	var skipped []SkippedRecord

	for _, e := range events {
		rec := domain.ExternalRecord{
			Source:       domain.SourceTrainingPlatform,
			ExternalID:   e.ID,
			Kind:         domain.RecordKindPlanned,
			StartTime:    e.Start,
			Title:        e.Name,
			Description:  e.Description,
			ActivityType: e.Type,
			Planned: domain.PlannedMetrics{
				DurationMinutes: secondsToMinutes(e.MovingTimeSeconds),
				DistanceKm:      metersToKm(e.DistanceMeters),
				Load:            e.Load,
			},
		}
		if err := requireID(rec); err != nil {
			skipped = append(skipped, SkippedRecord{Record: rec, Reason: err})
			continue
		}
		records = append(records, rec)
	}

	return records, skipped
}

// FromActivities converts completed platform activities. Non-cycling activities are ignored.
// Activity ids live in their own id space, so they carry a separate source tag and can
// attach to the session created from the matching planned event.
func FromActivities(activities []domain.Activity) ([]domain.ExternalRecord, []SkippedRecord) {
	records := make([]domain.ExternalRecord, 0, len(activities))
	var skipped []SkippedRecord

	for _, a := range activities {
		if !IsRide(a.Type) {
			continue
		}
		rec := domain.ExternalRecord{
			Source:       domain.SourceTrainingPlatformActivity,
			ExternalID:   a.ID,
			Kind:         domain.RecordKindCompletion,
			StartTime:    a.Start,
			Title:        a.Name,
			ActivityType: a.Type,
			Actual: domain.ActualMetrics{
				DurationMinutes:      secondsToMinutes(a.MovingTimeSeconds),
				DistanceKm:           metersToKm(a.DistanceMeters),
				AvgHeartRate:         a.AvgHeartRate,
				MaxHeartRate:         a.MaxHeartRate,
				AvgPowerWatts:        a.AvgWatts,
				NormalizedPowerWatts: a.WeightedAvgWatts,
				Load:                 a.Load,
				PerceivedEffort:      a.PerceivedExertion,
			},
		}
		if err := requireID(rec); err != nil {
			skipped = append(skipped, SkippedRecord{Record: rec, Reason: err})
			continue
		}
		records = append(records, rec)
	}

	return records, skipped
}

// FromWorkouts converts health store cycling workouts into completion records.
func FromWorkouts(workouts []domain.Workout) ([]domain.ExternalRecord, []SkippedRecord) {
	records := make([]domain.ExternalRecord, 0, len(workouts))
	var skipped []SkippedRecord

	for _, w := range workouts {
		rec := domain.ExternalRecord{
			Source:       domain.SourceHealthStore,
			ExternalID:   w.ID,
			Kind:         domain.RecordKindCompletion,
			StartTime:    w.Start,
			ActivityType: "Ride",
			Actual: domain.ActualMetrics{
				DistanceKm:    metersToKm(w.DistanceMeters),
				AvgHeartRate:  roundPtr(w.AvgHeartRate),
				MaxHeartRate:  roundPtr(w.MaxHeartRate),
				AvgPowerWatts: roundPtr(w.AvgPowerWatts),
			},
		}
		if !w.Start.IsZero() && w.End.After(w.Start) {
			minutes := int(math.Round(w.End.Sub(w.Start).Minutes()))
			rec.Actual.DurationMinutes = &minutes
		}
		if err := requireID(rec); err != nil {
			skipped = append(skipped, SkippedRecord{Record: rec, Reason: err})
			continue
		}
		records = append(records, rec)
	}

	return records, skipped
}

// IsRide reports whether a platform activity type is a cycling activity.
func IsRide(activityType string) bool {
	return strings.Contains(strings.ToLower(activityType), "ride")
}

func requireID(rec domain.ExternalRecord) error {
	if rec.ExternalID == "" {
		return fmt.Errorf("%w: %s record without id", domain.ErrMalformedRecord, rec.Source)
	}
	if rec.StartTime.IsZero() {
		return fmt.Errorf("%w: %s record %s without start time", domain.ErrMalformedRecord, rec.Source, rec.ExternalID)
	}
	return nil
}

func secondsToMinutes(seconds *int) *int {
	if seconds == nil {
		return nil
	}
	m := int(math.Round(float64(*seconds) / 60))
	return &m
}

func metersToKm(meters *float64) *float64 {
	if meters == nil {
		return nil
	}
	km := math.Round(*meters/10) / 100
	return &km
}

func roundPtr(v *float64) *int {
	if v == nil {
		return nil
	}
	r := int(math.Round(*v))
	return &r
}

package reconcile

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/chriscconte/cycling-coach/internal/domain"
	"github.com/chriscconte/cycling-coach/internal/service/timewindow"
)

const DefaultMatchWindow = 4 * time.Hour

// Policy holds the tunable matching parameters.
type Policy struct {
	// MatchWindow is the maximum distance between a record's start time and an existing
	// session's scheduled start for the two to be treated as the same workout.
	MatchWindow time.Duration
}

func DefaultPolicy() Policy {
	return Policy{MatchWindow: DefaultMatchWindow}
}

type SkippedRecord struct {
	Record domain.ExternalRecord
	Reason error
}

type Result struct {
	ToInsert []domain.TrainingSession
	ToUpdate []domain.TrainingSession
	Skipped  []SkippedRecord
}

// Unchanged reports whether applying the result would be a no-op.
func (r *Result) Unchanged() bool {
	return len(r.ToInsert) == 0 && len(r.ToUpdate) == 0
}

type Option func(*Reconciler)

func WithIDGenerator(fn func() string) Option {
	return func(r *Reconciler) { r.newID = fn }
}

func WithClock(fn func() time.Time) Option {
	return func(r *Reconciler) { r.now = fn }
}

type Reconciler struct {
	policy Policy
	newID  func() string
	now    func() time.Time
}

func NewReconciler(policy Policy, opts ...Option) *Reconciler {
	if policy.MatchWindow <= 0 {
		policy.MatchWindow = DefaultMatchWindow
	}
	r := &Reconciler{
		policy: policy,
		newID:  uuid.NewString,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reconciler) Policy() Policy {
	return r.policy
}

// Reconcile merges records into the owner's existing sessions. Neither input is mutated.
func (r *Reconciler) Reconcile(ownerID string, records []domain.ExternalRecord, existing []domain.TrainingSession) *Result {
	now := r.now()
	result := &Result{}

	working := make([]*domain.TrainingSession, 0, len(existing)+len(records))
	for _, s := range existing {
		if s.OwnerID != ownerID {
			continue
		}
		c := s.Clone()
		working = append(working, &c)
	}
	existingCount := len(working)
	changed := make(map[int]bool)
	var changeOrder []int

	ordered := slices.Clone(records)
	slices.SortStableFunc(ordered, func(a, b domain.ExternalRecord) int {
		return cmp.Or(
			a.StartTime.Compare(b.StartTime),
			cmp.Compare(a.Source, b.Source),
			cmp.Compare(a.ExternalID, b.ExternalID),
		)
	})

	for _, rec := range ordered {
		if err := validate(rec); err != nil {
			result.Skipped = append(result.Skipped, SkippedRecord{Record: rec, Reason: err})
			continue
		}

		idx, sameSource := r.match(working, rec)
		if idx < 0 {
			working = append(working, r.newSession(ownerID, rec, now))
			continue
		}

		if merge(working[idx], rec, sameSource) {
			working[idx].UpdatedAt = now
			if idx < existingCount && !changed[idx] {
				changed[idx] = true
				changeOrder = append(changeOrder, idx)
			}
		}
	}

	for _, idx := range changeOrder {
		result.ToUpdate = append(result.ToUpdate, *working[idx])
	}
	for _, s := range working[existingCount:] {
		result.ToInsert = append(result.ToInsert, *s)
	}

	return result
}

func validate(rec domain.ExternalRecord) error {
	if rec.StartTime.IsZero() {
		return fmt.Errorf("%w: missing start time", domain.ErrMalformedRecord)
	}
	if !rec.Source.IsValid() {
		return fmt.Errorf("%w: unknown source %q", domain.ErrMalformedRecord, rec.Source)
	}
	if rec.Kind != domain.RecordKindPlanned && rec.Kind != domain.RecordKindCompletion {
		return fmt.Errorf("%w: unknown record kind %q", domain.ErrMalformedRecord, rec.Kind)
	}
	return nil
}

// match returns the index of the session rec should merge into, or -1. sameSource is true
// when the match came from the record's own external id.
func (r *Reconciler) match(working []*domain.TrainingSession, rec domain.ExternalRecord) (int, bool) {
	if rec.ExternalID != "" {
		for i, s := range working {
			if id, ok := s.ExternalID(rec.Source); ok && id == rec.ExternalID {
				return i, true
			}
		}
	}

	best := -1
	var bestDelta time.Duration
	for i, s := range working {
		if _, ok := s.ExternalID(rec.Source); ok {
			continue
		}
		delta := timewindow.Abs(s.ScheduledAt.Sub(rec.StartTime))
		if !timewindow.Within(delta, r.policy.MatchWindow) {
			continue
		}
		if best < 0 || closer(s, delta, working[best], bestDelta) {
			best = i
			bestDelta = delta
		}
	}

	return best, false
}

// closer orders candidates by delta, then creation time, then id.
func closer(a *domain.TrainingSession, aDelta time.Duration, b *domain.TrainingSession, bDelta time.Duration) bool {
	if aDelta != bDelta {
		return aDelta < bDelta
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

func (r *Reconciler) newSession(ownerID string, rec domain.ExternalRecord, now time.Time) *domain.TrainingSession {
	s := &domain.TrainingSession{
		ID:          r.newID(),
		OwnerID:     ownerID,
		ScheduledAt: rec.StartTime,
		SessionType: domain.ClassifySessionType(rec.ActivityType, rec.Title),
		Title:       rec.Title,
		Description: rec.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if s.Title == "" {
		s.Title = defaultTitle(s.SessionType)
	}
	s.AttachSource(rec.Source, rec.ExternalID)
	mergeMetrics(s, rec)
	return s
}

func defaultTitle(t domain.SessionType) string {
	switch t {
	case domain.SessionTypeIndoorRide:
		return "Indoor Ride"
	case domain.SessionTypeOther:
		return "Workout"
	default:
		return "Ride"
	}
}

// merge folds rec into s and reports whether s changed.
func merge(s *domain.TrainingSession, rec domain.ExternalRecord, sameSource bool) bool {
	hadSource := s.HasSource(rec.Source)
	_, hadID := s.ExternalID(rec.Source)
	s.AttachSource(rec.Source, rec.ExternalID)
	changed := !hadSource || (!hadID && rec.ExternalID != "")

	if sameSource {
		changed = setString(&s.Title, rec.Title) || changed
		changed = setString(&s.Description, rec.Description) || changed
		if rec.Kind == domain.RecordKindPlanned && !s.ScheduledAt.Equal(rec.StartTime) {
			s.ScheduledAt = rec.StartTime
			changed = true
		}
	} else {
		changed = fillString(&s.Title, rec.Title) || changed
		changed = fillString(&s.Description, rec.Description) || changed
	}

	return mergeMetrics(s, rec) || changed
}

// mergeMetrics copies the record's set metrics of its own kind. Unset metrics never clear
// values contributed by another source.
func mergeMetrics(s *domain.TrainingSession, rec domain.ExternalRecord) bool {
	changed := false

	switch rec.Kind {
	case domain.RecordKindPlanned:
		p := rec.Planned
		changed = set(&s.Planned.DurationMinutes, p.DurationMinutes) || changed
		changed = set(&s.Planned.DistanceKm, p.DistanceKm) || changed
		changed = set(&s.Planned.Intensity, p.Intensity) || changed
		changed = set(&s.Planned.Load, p.Load) || changed

	case domain.RecordKindCompletion:
		a := rec.Actual
		changed = set(&s.Actual.DurationMinutes, a.DurationMinutes) || changed
		changed = set(&s.Actual.DistanceKm, a.DistanceKm) || changed
		changed = set(&s.Actual.AvgHeartRate, a.AvgHeartRate) || changed
		changed = set(&s.Actual.MaxHeartRate, a.MaxHeartRate) || changed
		changed = set(&s.Actual.AvgPowerWatts, a.AvgPowerWatts) || changed
		changed = set(&s.Actual.NormalizedPowerWatts, a.NormalizedPowerWatts) || changed
		changed = set(&s.Actual.Load, a.Load) || changed
		changed = set(&s.Actual.PerceivedEffort, a.PerceivedEffort) || changed

		if !s.Completed {
			s.Completed = true
			changed = true
		}
		if s.CompletedAt == nil {
			at := rec.StartTime
			s.CompletedAt = &at
			changed = true
		}
	}

	return changed
}

func set[T comparable](dst **T, src *T) bool {
	if src == nil {
		return false
	}
	if *dst != nil && **dst == *src {
		return false
	}
	v := *src
	*dst = &v
	return true
}

func setString(dst *string, src string) bool {
	if src == "" || *dst == src {
		return false
	}
	*dst = src
	return true
}

func fillString(dst *string, src string) bool {
	if *dst != "" {
		return false
	}
	return setString(dst, src)
}

package conflict

import (
	"time"

	"github.com/chriscconte/cycling-coach/internal/domain"
	"github.com/chriscconte/cycling-coach/internal/service/timewindow"
)

const (
	DefaultLookahead = 14 * 24 * time.Hour
	DefaultCloseGap  = 30 * time.Minute
	DefaultTravelGap = 2 * time.Hour
)

// CanonicalSlots are the daily start times probed when suggesting an alternative.
var CanonicalSlots = []timewindow.ClockTime{
	{Hour: 6},
	{Hour: 7},
	{Hour: 12},
	{Hour: 17},
	{Hour: 18},
	{Hour: 19},
}

type Config struct {
	Lookahead time.Duration
	CloseGap  time.Duration
	TravelGap time.Duration
}

func DefaultConfig() Config {
	return Config{
		Lookahead: DefaultLookahead,
		CloseGap:  DefaultCloseGap,
		TravelGap: DefaultTravelGap,
	}
}

type Detector struct {
	cfg Config
}

func NewDetector(cfg Config) *Detector {
	def := DefaultConfig()
	if cfg.Lookahead <= 0 {
		cfg.Lookahead = def.Lookahead
	}
	if cfg.CloseGap <= 0 {
		cfg.CloseGap = def.CloseGap
	}
	if cfg.TravelGap <= 0 {
		cfg.TravelGap = def.TravelGap
	}
	return &Detector{cfg: cfg}
}

// Window returns the calendar range the detector needs events for.
func (d *Detector) Window(now time.Time) (time.Time, time.Time) {
	return now, now.Add(d.cfg.Lookahead)
}

// Detect classifies every (incomplete session, timed event) pair. Completed sessions and
// all-day events are ignored. The result has no meaningful order. ConflictAt is the
// session start, since warnings are about the workout and not the event.
func (d *Detector) Detect(sessions []domain.TrainingSession, events []domain.CalendarEvent) []domain.Conflict {
	var conflicts []domain.Conflict

	for i := range sessions {
		s := &sessions[i]
		if s.Completed {
			continue
		}
		for _, e := range events {
			if e.AllDay {
				continue
			}
			kind, ok := d.Classify(s, e)
			if !ok {
				continue
			}
			conflicts = append(conflicts, domain.Conflict{
				SessionID:  s.ID,
				EventID:    e.ID,
				EventTitle: e.Title,
				Location:   e.Location,
				ConflictAt: s.ScheduledAt,
				Type:       kind,
			})
		}
	}

	return conflicts
}

// Classify applies the precedence overlap, too_close_before, too_close_after, travel_required.
func (d *Detector) Classify(s *domain.TrainingSession, e domain.CalendarEvent) (domain.ConflictType, bool) {
	start := s.ScheduledAt
	end := s.EndsAt()

	if timewindow.Overlaps(e.Start, e.End, start, end) {
		return domain.ConflictOverlap, true
	}

	gapBefore := start.Sub(e.End)
	if e.End.Before(start) && timewindow.InRange(gapBefore, d.cfg.CloseGap) {
		return domain.ConflictTooCloseBefore, true
	}

	if e.Start.After(end) && timewindow.InRange(e.Start.Sub(end), d.cfg.CloseGap) {
		return domain.ConflictTooCloseAfter, true
	}

	if e.Location != "" && e.End.Before(start) && timewindow.InRange(gapBefore, d.cfg.TravelGap) {
		return domain.ConflictTravelRequired, true
	}

	return "", false
}

// SuggestAlternativeTime returns the first canonical slot on the session's calendar day,
// in loc, whose session-length window is free of busy events.
func SuggestAlternativeTime(s *domain.TrainingSession, busy []domain.CalendarEvent, loc *time.Location) (time.Time, bool, error) {
	if loc == nil {
		loc = s.ScheduledAt.Location()
	}

	intervals := make([]timewindow.Interval, 0, len(busy))
	for _, e := range busy {
		if e.AllDay {
			continue
		}
		intervals = append(intervals, timewindow.Interval{Start: e.Start, End: e.End})
	}

	return timewindow.FirstFreeSlot(s.ScheduledAt.In(loc), CanonicalSlots, s.PlannedDuration(), intervals)
}

package timewindow

import (
	"errors"
	"time"
)

var ErrInvalidDuration = errors.New("duration must be positive")

// Interval is a half-open [Start, End) time range.
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start time.Time, d time.Duration) Interval {
	return Interval{Start: start, End: start.Add(d)}
}

func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i.Start, i.End, other.Start, other.End)
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Within reports whether |delta| is strictly less than limit.
func Within(delta, limit time.Duration) bool {
	return Abs(delta) < limit
}

// InRange reports whether gap lies in (0, limit].
func InRange(gap, limit time.Duration) bool {
	return gap > 0 && gap <= limit
}

func Abs(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// ClockTime is a wall-clock time of day.
type ClockTime struct {
	Hour   int
	Minute int
}

// On returns the instant for the clock time on the calendar day of day, in day's location.
func (c ClockTime) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, day.Location())
}

// FirstFreeSlot returns the first candidate on day whose duration-long window does not
// overlap any busy interval. Candidates are probed in the order given.
func FirstFreeSlot(day time.Time, candidates []ClockTime, duration time.Duration, busy []Interval) (time.Time, bool, error) {
	if duration <= 0 {
		return time.Time{}, false, ErrInvalidDuration
	}

	for _, c := range candidates {
		slot := NewInterval(c.On(day), duration)

		free := true
		for _, b := range busy {
			if slot.Overlaps(b) {
				free = false
				break
			}
		}
		if free {
			return slot.Start, true, nil
		}
	}

	return time.Time{}, false, nil
}

// Package streak computes habit and user-level streak counters.
//
// Two independent policies live here and are intentionally not unified:
// activities use an hour-gap window that depends on their frequency, while the
// user-level counters (expenses, goals, activities) compare calendar days.
package streak

import "time"

// Frequency mirrors the activity frequency tags.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
	FrequencyCustom Frequency = "custom"
)

const (
	dailyWindow  = 48 * time.Hour
	weeklyWindow = 14 * 24 * time.Hour
)

// NextActivityStreak returns the streak an activity should hold after being
// completed at now. last is the previous completion, nil if there is none.
func NextActivityStreak(prev int, last *time.Time, now time.Time, frequency Frequency) int {
	if last == nil {
		return 1
	}

	elapsed := now.Sub(*last)

	switch frequency {
	case FrequencyDaily:
		if elapsed <= dailyWindow {
			return prev + 1
		}
		return 1
	case FrequencyWeekly:
		if elapsed <= weeklyWindow {
			return prev + 1
		}
		return 1
	default:
		return prev + 1
	}
}

// Counter is a calendar-day streak and the moment it was last advanced.
type Counter struct {
	Count  int
	LastAt *time.Time
}

// Advance records an event at the given time and returns the updated counter.
//
// Same calendar day leaves the count alone, the next calendar day increments
// it and any larger gap (or no previous event) restarts it at 1. Events dated
// before LastAt's day do not change the count or move LastAt backwards.
func (c Counter) Advance(at time.Time) Counter {
	if c.LastAt == nil {
		return Counter{Count: 1, LastAt: &at}
	}

	diff := DaysBetween(*c.LastAt, at)
	switch {
	case diff < 0:
		return c
	case diff == 0:
		if at.After(*c.LastAt) {
			c.LastAt = &at
		}
		return c
	case diff == 1:
		return Counter{Count: c.Count + 1, LastAt: &at}
	default:
		return Counter{Count: 1, LastAt: &at}
	}
}

// DaysBetween returns the number of calendar days from one timestamp to the
// other, with both normalised to midnight in to's location.
func DaysBetween(from, to time.Time) int {
	loc := to.Location()
	fy, fm, fd := from.In(loc).Date()
	ty, tm, td := to.Date()

	start := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}

package service

import (
	"time"
)

const clockLayout = "15:04:05"

// parseClock parses a zero-padded HH:MM:SS time-of-day string.
func parseClock(s string) (time.Time, error) {
	return time.Parse(clockLayout, s)
}

// endAfterStart reports whether end is strictly after start. Malformed times
// count as not-after so callers reject them as validation failures.
func endAfterStart(start, end string) bool {
	startT, err := parseClock(start)
	if err != nil {
		return false
	}
	endT, err := parseClock(end)
	if err != nil {
		return false
	}
	return endT.After(startT)
}

// DatesBetween produces every date in [from, to] inclusive, ascending. An
// inverted range produces nothing. Bulk operations compose this with the
// employee list instead of nesting ad-hoc loops, so iteration order stays
// explicit and testable.
func DatesBetween(from, to time.Time) []time.Time {
	from = truncateToDay(from)
	to = truncateToDay(to)

	var dates []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// WeekStart returns the Monday of the week containing the date. Weeks start
// on Monday everywhere in the roster views.
func WeekStart(date time.Time) time.Time {
	date = truncateToDay(date)
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}

// MonthRange returns the first and last day of the month containing the date.
func MonthRange(date time.Time) (time.Time, time.Time) {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

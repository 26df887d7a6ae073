package util

import "time"

// Date returns the calendar date of t as observed in loc,
// stored as midnight UTC so it compares equally across backends.
func Date(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}

	local := t.In(loc)

	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// CalendarDate keeps the year, month and day of t as given, dropping its
// clock and zone.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today is the current calendar date in loc.
func Today(loc *time.Location) time.Time {
	return Date(time.Now(), loc)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, err
	}

	return Date(t, time.UTC), nil
}

// WindowStart returns the exclusive lower bound of a trailing window of
// days ending at (and including) end.
func WindowStart(end time.Time, days int) time.Time {
	return end.AddDate(0, 0, -days)
}

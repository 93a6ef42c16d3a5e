package recurrence

import (
	"time"

	"pillbox/internal/models"
)

// StartOfDay normalizes a time to local midnight. Range checks must compare
// calendar dates, not instants, so a pill starting "today" is active no
// matter what time of day it was created.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsActiveOn reports whether the recurrence rule schedules a dose on the
// given date. Unrecognized rule types (including "custom", which has no
// evaluation semantics yet) are inactive.
func IsActiveOn(f models.Frequency, date time.Time) bool {
	day := StartOfDay(date)
	start := StartOfDay(f.StartDate)

	if day.Before(start) {
		return false
	}
	if f.EndDate != nil && day.After(StartOfDay(*f.EndDate)) {
		return false
	}

	switch f.Type {
	case models.FrequencyDaily:
		return true
	case models.FrequencyWeekly:
		// The first Value days of every 7-day cycle from StartDate are
		// active. This is intentionally not "every Nth weekday".
		daysSinceStart := int(day.Sub(start) / (24 * time.Hour))
		return daysSinceStart%7 < f.Value
	case models.FrequencyMonthly:
		return day.Day() <= f.Value
	case models.FrequencyAsNeeded:
		return true
	default:
		return false
	}
}

// OccursToday reports whether a dose occurs on the current date.
func OccursToday(f models.Frequency, today time.Time) bool {
	return IsActiveOn(f, today)
}

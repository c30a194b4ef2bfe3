// Package recurrence computes reminder occurrences.
//
// All arithmetic happens in the location of the reference time passed in, so
// callers decide the zone once. Month days that exceed a month's length are
// clamped to the last day of that month (monthDay 31 fires on Feb 28, or
// Feb 29 in leap years).
package recurrence

import (
	"time"

	"waremind/internal/models"
)

// Next returns the next occurrence of r strictly after ref, or false when
// the reminder's schedule can never produce one (missing weekdays, missing
// month day, or a one-time date already in the past).
func Next(r *models.Reminder, ref time.Time) (time.Time, bool) {
	switch r.Frequency {
	case models.FrequencyDaily:
		return nextDaily(r, ref), true
	case models.FrequencyWeekly:
		return nextWeekly(r, ref)
	case models.FrequencyMonthly:
		return nextMonthly(r, ref)
	case models.FrequencyOnce:
		return nextOnce(r, ref)
	}
	return time.Time{}, false
}

// NextN returns up to n future occurrences by re-invoking Next with each
// result as the new reference. Next itself holds no state, so callers that
// need several occurrences (calendar views) compose it this way.
func NextN(r *models.Reminder, ref time.Time, n int) []time.Time {
	var occurrences []time.Time
	cursor := ref
	for i := 0; i < n; i++ {
		next, ok := Next(r, cursor)
		if !ok {
			break
		}
		occurrences = append(occurrences, next)
		cursor = next
	}
	return occurrences
}

func at(year int, month time.Month, day int, tod models.TimeOfDay, loc *time.Location) time.Time {
	return time.Date(year, month, day, tod.Hour, tod.Minute, 0, 0, loc)
}

func nextDaily(r *models.Reminder, ref time.Time) time.Time {
	candidate := at(ref.Year(), ref.Month(), ref.Day(), r.Time, ref.Location())
	if !candidate.After(ref) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate
}

func nextWeekly(r *models.Reminder, ref time.Time) (time.Time, bool) {
	days := r.Weekdays()
	if days == nil {
		return time.Time{}, false
	}
	// Offset 7 covers the case where today is the only matching weekday
	// but today's instant has already passed.
	for offset := 0; offset <= 7; offset++ {
		day := ref.AddDate(0, 0, offset)
		if !days[day.Weekday()] {
			continue
		}
		candidate := at(day.Year(), day.Month(), day.Day(), r.Time, ref.Location())
		if candidate.After(ref) {
			return candidate, true
		}
	}
	return time.Time{}, false
}

func nextMonthly(r *models.Reminder, ref time.Time) (time.Time, bool) {
	if r.MonthDay < 1 || r.MonthDay > 31 {
		return time.Time{}, false
	}
	candidate := monthAt(ref.Year(), ref.Month(), r.MonthDay, r.Time, ref.Location())
	if candidate.After(ref) {
		return candidate, true
	}
	return monthAt(ref.Year(), ref.Month()+1, r.MonthDay, r.Time, ref.Location()), true
}

func nextOnce(r *models.Reminder, ref time.Time) (time.Time, bool) {
	if r.Date == nil {
		return time.Time{}, false
	}
	d := r.Date.In(ref.Location())
	candidate := at(d.Year(), d.Month(), d.Day(), r.Time, ref.Location())
	if !candidate.After(ref) {
		return time.Time{}, false
	}
	return candidate, true
}

// monthAt builds day/time within the given month, clamping day to the
// month's length. month may be out of range (e.g. January+12); time.Date
// normalizes it before clamping.
func monthAt(year int, month time.Month, day int, tod models.TimeOfDay, loc *time.Location) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	if last := daysIn(first.Year(), first.Month(), loc); day > last {
		day = last
	}
	return at(first.Year(), first.Month(), day, tod, loc)
}

// daysIn returns the number of days in the month: day zero of the following
// month is the last day of this one.
func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

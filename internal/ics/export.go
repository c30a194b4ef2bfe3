// Package ics renders reminders as an iCalendar feed so calendar-view
// clients can subscribe to upcoming occurrences.
package ics

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"waremind/internal/logger"
	"waremind/internal/models"
	"waremind/internal/recurrence"
	"waremind/internal/whatsapp"
)

// eventDuration is the slot length rendered per occurrence; reminders are
// instants, so this only affects calendar display.
const eventDuration = 15 * time.Minute

// Export serializes the reminders into a VCALENDAR. Reminders whose schedule
// yields no occurrence after now are skipped, matching the scheduler's view.
func Export(reminders []*models.Reminder, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//waremind//reminder calendar//EN")

	for _, reminder := range reminders {
		next, ok := recurrence.Next(reminder, now)
		if !ok {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("reminder-%d@waremind", reminder.ID))
		event.SetCreatedTime(reminder.CreatedAt)
		event.SetDtStampTime(now)
		event.SetStartAt(next)
		event.SetEndAt(next.Add(eventDuration))
		event.SetSummary(fmt.Sprintf("WhatsApp: %s", reminder.ContactName))
		event.SetDescription(reminder.Message)
		event.SetURL(whatsapp.Link(reminder.PhoneNumber, reminder.Message))

		if rule := RuleString(reminder); rule != "" {
			event.AddRrule(rule)
		}
	}

	return cal.Serialize()
}

var rruleDayTags = map[string]string{
	"sun": "SU", "mon": "MO", "tue": "TU", "wed": "WE",
	"thu": "TH", "fri": "FR", "sat": "SA",
}

// RuleString builds the RFC 5545 RRULE for a recurring reminder, or "" for
// one-time reminders and schedules that cannot be expressed.
func RuleString(reminder *models.Reminder) string {
	var parts []string
	switch reminder.Frequency {
	case models.FrequencyDaily:
		parts = append(parts, "FREQ=DAILY")
	case models.FrequencyWeekly:
		var days []string
		for _, tag := range reminder.WeekDays {
			if d, ok := rruleDayTags[tag]; ok {
				days = append(days, d)
			}
		}
		if len(days) == 0 {
			return ""
		}
		parts = append(parts, "FREQ=WEEKLY", "BYDAY="+strings.Join(days, ","))
	case models.FrequencyMonthly:
		if reminder.MonthDay < 1 || reminder.MonthDay > 31 {
			return ""
		}
		parts = append(parts, "FREQ=MONTHLY", fmt.Sprintf("BYMONTHDAY=%d", reminder.MonthDay))
	default:
		return ""
	}
	parts = append(parts,
		fmt.Sprintf("BYHOUR=%d", reminder.Time.Hour),
		fmt.Sprintf("BYMINUTE=%d", reminder.Time.Minute),
	)

	rule := strings.Join(parts, ";")
	// Round-trip through the rrule parser so a malformed rule never
	// reaches a subscriber's calendar.
	if _, err := rrule.StrToRRule(rule); err != nil {
		logger.Log.Warnf("Skipping unparseable RRULE %q for reminder %d: %v", rule, reminder.ID, err)
		return ""
	}
	return rule
}

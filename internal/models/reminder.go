package models

import "time"

// Frequency determines how a reminder recurs and which of the optional
// schedule fields (WeekDays, MonthDay, Date) is meaningful.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyOnce    Frequency = "once"
)

// TimeOfDay is the wall-clock time a reminder fires at.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// weekdayTags maps stored weekday tags to time.Weekday ordinals
// (Sunday=0, matching the frontend's convention).
var weekdayTags = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// ParseWeekday resolves a weekday tag like "mon". Unknown tags report false.
func ParseWeekday(tag string) (time.Weekday, bool) {
	wd, ok := weekdayTags[tag]
	return wd, ok
}

type Reminder struct {
	ID            int64      `json:"id"`
	ContactName   string     `json:"contact_name"`
	PhoneNumber   string     `json:"phone_number"` // free-form; normalized to digits when deep-linking
	Message       string     `json:"message"`
	Time          TimeOfDay  `json:"time"`
	Frequency     Frequency  `json:"frequency"`
	WeekDays      []string   `json:"week_days,omitempty"` // meaningful iff Frequency == weekly
	MonthDay      int        `json:"month_day,omitempty"` // meaningful iff Frequency == monthly, 1-31
	Date          *time.Time `json:"date,omitempty"`      // meaningful iff Frequency == once
	IsActive      bool       `json:"is_active"`
	LastTriggered *time.Time `json:"last_triggered,omitempty"` // duplicate-fire suppression only, not a history log
	CreatedAt     time.Time  `json:"created_at"`
}

// IsRecurring returns true if this reminder can fire more than once
func (r *Reminder) IsRecurring() bool {
	return r.Frequency != FrequencyOnce
}

// Weekdays maps the stored weekday tags onto time.Weekday ordinals.
// Unknown tags are ignored; an empty result means the weekly schedule
// is unusable and the reminder never fires.
func (r *Reminder) Weekdays() map[time.Weekday]bool {
	if len(r.WeekDays) == 0 {
		return nil
	}
	set := make(map[time.Weekday]bool, len(r.WeekDays))
	for _, tag := range r.WeekDays {
		if wd, ok := ParseWeekday(tag); ok {
			set[wd] = true
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

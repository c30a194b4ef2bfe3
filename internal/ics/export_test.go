package ics

import (
	"strings"
	"testing"
	"time"

	"waremind/internal/models"
)

func TestRuleString(t *testing.T) {
	t.Parallel()
	date := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		reminder *models.Reminder
		want     string
	}{
		{
			name: "daily",
			reminder: &models.Reminder{
				Frequency: models.FrequencyDaily,
				Time:      models.TimeOfDay{Hour: 9, Minute: 30},
			},
			want: "FREQ=DAILY;BYHOUR=9;BYMINUTE=30",
		},
		{
			name: "weekly",
			reminder: &models.Reminder{
				Frequency: models.FrequencyWeekly,
				WeekDays:  []string{"mon", "wed"},
				Time:      models.TimeOfDay{Hour: 8, Minute: 0},
			},
			want: "FREQ=WEEKLY;BYDAY=MO,WE;BYHOUR=8;BYMINUTE=0",
		},
		{
			name: "monthly",
			reminder: &models.Reminder{
				Frequency: models.FrequencyMonthly,
				MonthDay:  15,
				Time:      models.TimeOfDay{Hour: 10, Minute: 0},
			},
			want: "FREQ=MONTHLY;BYMONTHDAY=15;BYHOUR=10;BYMINUTE=0",
		},
		{
			name: "once has no rule",
			reminder: &models.Reminder{
				Frequency: models.FrequencyOnce,
				Date:      &date,
				Time:      models.TimeOfDay{Hour: 12, Minute: 0},
			},
			want: "",
		},
		{
			name: "weekly without days has no rule",
			reminder: &models.Reminder{
				Frequency: models.FrequencyWeekly,
				Time:      models.TimeOfDay{Hour: 8, Minute: 0},
			},
			want: "",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := RuleString(tt.reminder); got != tt.want {
				t.Fatalf("RuleString = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExportContainsRecurringEvent(t *testing.T) {
	t.Parallel()
	now := time.Date(2023, 6, 6, 12, 0, 0, 0, time.UTC) // Tuesday
	reminders := []*models.Reminder{
		{
			ID:          7,
			ContactName: "Asha",
			PhoneNumber: "9876543210",
			Message:     "weekly sync",
			Frequency:   models.FrequencyWeekly,
			WeekDays:    []string{"wed"},
			Time:        models.TimeOfDay{Hour: 8, Minute: 0},
			IsActive:    true,
			CreatedAt:   now,
		},
		{
			// No month day: skipped entirely.
			ID:        8,
			Frequency: models.FrequencyMonthly,
			Time:      models.TimeOfDay{Hour: 9, Minute: 0},
			CreatedAt: now,
		},
	}

	out := Export(reminders, now)

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"reminder-7@waremind",
		"FREQ=WEEKLY;BYDAY=WE;BYHOUR=8;BYMINUTE=0",
		"SUMMARY:WhatsApp: Asha",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("export missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "reminder-8@waremind") {
		t.Fatal("reminder without a schedulable occurrence must be skipped")
	}
}

package recurrence

import (
	"testing"
	"time"

	"waremind/internal/models"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		t.Fatalf("bad test time %q: %v", value, err)
	}
	return parsed
}

func TestNextDailyStrictlyFuture(t *testing.T) {
	t.Parallel()
	reminder := &models.Reminder{
		Frequency: models.FrequencyDaily,
		Time:      models.TimeOfDay{Hour: 9, Minute: 0},
	}
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{name: "before today's instant", ref: "2023-06-01 08:59:00", want: "2023-06-01 09:00:00"},
		{name: "exactly at instant", ref: "2023-06-01 09:00:00", want: "2023-06-02 09:00:00"},
		{name: "after today's instant", ref: "2023-06-01 09:00:05", want: "2023-06-02 09:00:00"},
		{name: "late evening", ref: "2023-06-01 23:30:00", want: "2023-06-02 09:00:00"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ref := mustTime(t, tt.ref)
			got, ok := Next(reminder, ref)
			if !ok {
				t.Fatal("daily reminder must always have a next occurrence")
			}
			if !got.After(ref) {
				t.Fatalf("Next returned %v, not strictly after %v", got, ref)
			}
			if want := mustTime(t, tt.want); !got.Equal(want) {
				t.Fatalf("Next = %v, want %v", got, want)
			}
		})
	}
}

func TestNextWeeklySelectsEarliestMatchingDay(t *testing.T) {
	t.Parallel()
	reminder := &models.Reminder{
		Frequency: models.FrequencyWeekly,
		Time:      models.TimeOfDay{Hour: 8, Minute: 0},
		WeekDays:  []string{"mon", "wed"},
	}
	tests := []struct {
		name string
		ref  string // 2023-06-06 is a Tuesday
		want string
	}{
		{name: "tuesday maps to wednesday", ref: "2023-06-06 08:00:00", want: "2023-06-07 08:00:00"},
		{name: "today still upcoming", ref: "2023-06-07 07:00:00", want: "2023-06-07 08:00:00"},
		{name: "today already passed", ref: "2023-06-07 08:00:01", want: "2023-06-12 08:00:00"},
		{name: "sunday maps to monday", ref: "2023-06-04 12:00:00", want: "2023-06-05 08:00:00"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ref := mustTime(t, tt.ref)
			got, ok := Next(reminder, ref)
			if !ok {
				t.Fatal("expected an occurrence")
			}
			if want := mustTime(t, tt.want); !got.Equal(want) {
				t.Fatalf("Next = %v, want %v", got, want)
			}
			if wd := got.Weekday(); wd != time.Monday && wd != time.Wednesday {
				t.Fatalf("occurrence weekday %v not in the configured set", wd)
			}
		})
	}
}

func TestNextWeeklySingleDayAdvancesFullWeek(t *testing.T) {
	t.Parallel()
	reminder := &models.Reminder{
		Frequency: models.FrequencyWeekly,
		Time:      models.TimeOfDay{Hour: 8, Minute: 0},
		WeekDays:  []string{"wed"},
	}
	// Wednesday just after the instant: only match is the same weekday next week.
	ref := mustTime(t, "2023-06-07 08:00:30")
	got, ok := Next(reminder, ref)
	if !ok {
		t.Fatal("expected an occurrence")
	}
	if want := mustTime(t, "2023-06-14 08:00:00"); !got.Equal(want) {
		t.Fatalf("Next = %v, want %v", got, want)
	}
}

func TestNextWeeklyWithoutDaysHasNoOccurrence(t *testing.T) {
	t.Parallel()
	reminder := &models.Reminder{
		Frequency: models.FrequencyWeekly,
		Time:      models.TimeOfDay{Hour: 8, Minute: 0},
	}
	if _, ok := Next(reminder, mustTime(t, "2023-06-06 08:00:00")); ok {
		t.Fatal("weekly reminder without weekdays must have no occurrence")
	}
}

func TestNextMonthlyRollsToNextCalendarMonth(t *testing.T) {
	t.Parallel()
	reminder := &models.Reminder{
		Frequency: models.FrequencyMonthly,
		Time:      models.TimeOfDay{Hour: 10, Minute: 0},
		MonthDay:  15,
	}
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{name: "upcoming this month", ref: "2023-06-10 09:00:00", want: "2023-06-15 10:00:00"},
		{name: "passed this month", ref: "2023-06-15 10:00:00", want: "2023-07-15 10:00:00"},
		{name: "december wraps the year", ref: "2023-12-20 09:00:00", want: "2024-01-15 10:00:00"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Next(reminder, mustTime(t, tt.ref))
			if !ok {
				t.Fatal("expected an occurrence")
			}
			if want := mustTime(t, tt.want); !got.Equal(want) {
				t.Fatalf("Next = %v, want %v", got, want)
			}
		})
	}
}

// Pins the month-length policy: day 31 clamps to the last day of short
// months instead of rolling into the next one.
func TestNextMonthlyClampsShortMonths(t *testing.T) {
	t.Parallel()
	reminder := &models.Reminder{
		Frequency: models.FrequencyMonthly,
		Time:      models.TimeOfDay{Hour: 10, Minute: 0},
		MonthDay:  31,
	}
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{name: "february clamps to 28", ref: "2023-02-01 00:00:00", want: "2023-02-28 10:00:00"},
		{name: "leap february clamps to 29", ref: "2024-02-01 00:00:00", want: "2024-02-29 10:00:00"},
		{name: "january passed rolls into clamped february", ref: "2023-01-31 10:00:00", want: "2023-02-28 10:00:00"},
		{name: "april clamps to 30", ref: "2023-04-01 00:00:00", want: "2023-04-30 10:00:00"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Next(reminder, mustTime(t, tt.ref))
			if !ok {
				t.Fatal("expected an occurrence")
			}
			if want := mustTime(t, tt.want); !got.Equal(want) {
				t.Fatalf("Next = %v, want %v", got, want)
			}
		})
	}
}

func TestNextMonthlyWithoutDayHasNoOccurrence(t *testing.T) {
	t.Parallel()
	reminder := &models.Reminder{
		Frequency: models.FrequencyMonthly,
		Time:      models.TimeOfDay{Hour: 10, Minute: 0},
	}
	if _, ok := Next(reminder, mustTime(t, "2023-06-01 00:00:00")); ok {
		t.Fatal("monthly reminder without a month day must have no occurrence")
	}
}

func TestNextOnceIsSingleFire(t *testing.T) {
	t.Parallel()
	date := mustTime(t, "2023-01-01 00:00:00")
	reminder := &models.Reminder{
		Frequency: models.FrequencyOnce,
		Time:      models.TimeOfDay{Hour: 12, Minute: 0},
		Date:      &date,
	}

	got, ok := Next(reminder, mustTime(t, "2022-12-31 12:00:00"))
	if !ok {
		t.Fatal("expected the occurrence before the date")
	}
	if want := mustTime(t, "2023-01-01 12:00:00"); !got.Equal(want) {
		t.Fatalf("Next = %v, want %v", got, want)
	}

	for _, ref := range []string{"2023-01-01 12:00:00", "2023-06-01 00:00:00"} {
		if _, ok := Next(reminder, mustTime(t, ref)); ok {
			t.Fatalf("once reminder must not recur at ref %s", ref)
		}
	}

	noDate := &models.Reminder{Frequency: models.FrequencyOnce, Time: models.TimeOfDay{Hour: 12}}
	if _, ok := Next(noDate, mustTime(t, "2022-01-01 00:00:00")); ok {
		t.Fatal("once reminder without a date must have no occurrence")
	}
}

func TestNextNComposesStatelessly(t *testing.T) {
	t.Parallel()
	reminder := &models.Reminder{
		Frequency: models.FrequencyWeekly,
		Time:      models.TimeOfDay{Hour: 8, Minute: 0},
		WeekDays:  []string{"mon", "wed"},
	}
	occurrences := NextN(reminder, mustTime(t, "2023-06-04 00:00:00"), 3)
	want := []string{"2023-06-05 08:00:00", "2023-06-07 08:00:00", "2023-06-12 08:00:00"}
	if len(occurrences) != len(want) {
		t.Fatalf("NextN returned %d occurrences, want %d", len(occurrences), len(want))
	}
	for i, w := range want {
		if !occurrences[i].Equal(mustTime(t, w)) {
			t.Fatalf("occurrence[%d] = %v, want %s", i, occurrences[i], w)
		}
	}

	// A one-time reminder yields a single occurrence no matter how many
	// are requested.
	date := mustTime(t, "2023-07-01 00:00:00")
	once := &models.Reminder{Frequency: models.FrequencyOnce, Time: models.TimeOfDay{Hour: 9}, Date: &date}
	if got := NextN(once, mustTime(t, "2023-06-01 00:00:00"), 5); len(got) != 1 {
		t.Fatalf("NextN for a once reminder returned %d occurrences, want 1", len(got))
	}
}

func TestNextUnknownFrequencyHasNoOccurrence(t *testing.T) {
	t.Parallel()
	reminder := &models.Reminder{Frequency: "yearly", Time: models.TimeOfDay{Hour: 9}}
	if _, ok := Next(reminder, mustTime(t, "2023-06-01 00:00:00")); ok {
		t.Fatal("unknown frequency must have no occurrence")
	}
}

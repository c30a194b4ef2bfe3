package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"waremind/internal/logger"
	"waremind/internal/models"
	"waremind/internal/recurrence"
	"waremind/internal/whatsapp"
)

// validateReminder rejects payloads the calculator cannot work with. The
// frontend form does the friendly validation; this is the backstop.
func validateReminder(reminder *models.Reminder) string {
	if reminder.ContactName == "" {
		return "contact_name is required"
	}
	if whatsapp.Digits(reminder.PhoneNumber) == "" {
		return "phone_number must contain digits"
	}
	if reminder.Time.Hour < 0 || reminder.Time.Hour > 23 || reminder.Time.Minute < 0 || reminder.Time.Minute > 59 {
		return "time is out of range"
	}
	switch reminder.Frequency {
	case models.FrequencyDaily:
	case models.FrequencyWeekly:
		if len(reminder.WeekDays) == 0 {
			return "weekly reminders need at least one week day"
		}
		for _, tag := range reminder.WeekDays {
			if _, ok := models.ParseWeekday(tag); !ok {
				return "week_days contains an unknown tag: " + tag
			}
		}
	case models.FrequencyMonthly:
		if reminder.MonthDay < 1 || reminder.MonthDay > 31 {
			return "month_day must be between 1 and 31"
		}
	case models.FrequencyOnce:
		if reminder.Date == nil {
			return "one-time reminders need a date"
		}
	default:
		return "frequency must be daily, weekly, monthly or once"
	}
	return ""
}

func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := s.reminders.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if reminders == nil {
		reminders = []*models.Reminder{}
	}
	writeJSON(w, http.StatusOK, reminders)
}

func (s *Server) handleCreateReminder(w http.ResponseWriter, r *http.Request) {
	reminder := &models.Reminder{IsActive: true}
	if !readJSON(w, r, reminder) {
		return
	}
	if msg := validateReminder(reminder); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if err := s.reminders.Create(r.Context(), reminder); err != nil {
		writeStoreError(w, err)
		return
	}
	s.refreshScheduler(r.Context())
	writeJSON(w, http.StatusCreated, reminder)
}

func (s *Server) handleGetReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	reminder, err := s.reminders.GetByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reminder)
}

func (s *Server) handleUpdateReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	reminder := &models.Reminder{}
	if !readJSON(w, r, reminder) {
		return
	}
	reminder.ID = id
	if msg := validateReminder(reminder); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if err := s.reminders.Update(r.Context(), reminder); err != nil {
		writeStoreError(w, err)
		return
	}
	s.refreshScheduler(r.Context())
	writeJSON(w, http.StatusOK, reminder)
}

func (s *Server) handleDeleteReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	deleted, err := s.reminders.Delete(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	s.refreshScheduler(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	reminder, err := s.reminders.GetByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if err := s.reminders.SetActive(r.Context(), id, !reminder.IsActive); err != nil {
		writeStoreError(w, err)
		return
	}
	reminder.IsActive = !reminder.IsActive
	s.refreshScheduler(r.Context())
	writeJSON(w, http.StatusOK, reminder)
}

// handleReminderOccurrences previews the next n firing instants, for the
// frontend's "upcoming" column.
func (s *Server) handleReminderOccurrences(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	n := 5
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 50 {
			writeError(w, http.StatusBadRequest, "n must be between 1 and 50")
			return
		}
		n = parsed
	}
	reminder, err := s.reminders.GetByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	occurrences := recurrence.NextN(reminder, time.Now().In(s.loc), n)
	if occurrences == nil {
		occurrences = []time.Time{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reminder_id": id,
		"occurrences": occurrences,
	})
}

// handleCheckReminder runs a single reminder through the due check right now,
// firing it if it is inside the tolerance window.
func (s *Server) handleCheckReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	reminder, err := s.reminders.GetByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	fired := s.sched.CheckReminder(r.Context(), reminder)
	writeJSON(w, http.StatusOK, map[string]any{
		"reminder_id": id,
		"fired":       fired,
	})
}

// refreshScheduler reloads the active set after a mutation. The LISTEN/NOTIFY
// feed covers other writers; doing it inline keeps the local instance from
// waiting on a round trip through Postgres.
func (s *Server) refreshScheduler(ctx context.Context) {
	active, err := s.reminders.ListActive(ctx)
	if err != nil {
		logger.Log.Errorf("Failed to reload active reminders: %v", err)
		return
	}
	s.sched.SetReminders(active)
	s.sched.Notify()
}

// Package api exposes the JSON surface the browser frontend talks to: CRUD
// for every entity, the SSE event feed, and the due-reminder engine's manual
// controls.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"waremind/internal/ai"
	"waremind/internal/events"
	"waremind/internal/logger"
	"waremind/internal/repository"
	"waremind/internal/scheduler"
)

type Server struct {
	mux *http.ServeMux

	reminders *repository.ReminderRepository
	contacts  *repository.ContactRepository
	templates *repository.TemplateRepository
	statuses  *repository.StatusRepository
	stickers  *repository.StickerRepository
	settings  *repository.SettingsRepository

	sched *scheduler.Scheduler
	bus   *events.Bus
	ai    *ai.Client // nil when not configured
	loc   *time.Location
}

type Deps struct {
	Reminders *repository.ReminderRepository
	Contacts  *repository.ContactRepository
	Templates *repository.TemplateRepository
	Statuses  *repository.StatusRepository
	Stickers  *repository.StickerRepository
	Settings  *repository.SettingsRepository
	Scheduler *scheduler.Scheduler
	Bus       *events.Bus
	AI        *ai.Client
	Location  *time.Location
}

func NewServer(deps Deps) *Server {
	s := &Server{
		mux:       http.NewServeMux(),
		reminders: deps.Reminders,
		contacts:  deps.Contacts,
		templates: deps.Templates,
		statuses:  deps.Statuses,
		stickers:  deps.Stickers,
		settings:  deps.Settings,
		sched:     deps.Scheduler,
		bus:       deps.Bus,
		ai:        deps.AI,
		loc:       deps.Location,
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.logMiddleware(s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("GET /api/reminders", s.handleListReminders)
	s.mux.HandleFunc("POST /api/reminders", s.handleCreateReminder)
	s.mux.HandleFunc("GET /api/reminders/{id}", s.handleGetReminder)
	s.mux.HandleFunc("PUT /api/reminders/{id}", s.handleUpdateReminder)
	s.mux.HandleFunc("DELETE /api/reminders/{id}", s.handleDeleteReminder)
	s.mux.HandleFunc("POST /api/reminders/{id}/toggle", s.handleToggleReminder)
	s.mux.HandleFunc("GET /api/reminders/{id}/occurrences", s.handleReminderOccurrences)
	s.mux.HandleFunc("POST /api/reminders/{id}/check", s.handleCheckReminder)

	s.mux.HandleFunc("GET /api/contacts", s.handleListContacts)
	s.mux.HandleFunc("POST /api/contacts", s.handleCreateContact)
	s.mux.HandleFunc("GET /api/contacts/{id}", s.handleGetContact)
	s.mux.HandleFunc("PUT /api/contacts/{id}", s.handleUpdateContact)
	s.mux.HandleFunc("DELETE /api/contacts/{id}", s.handleDeleteContact)

	s.mux.HandleFunc("GET /api/templates", s.handleListTemplates)
	s.mux.HandleFunc("POST /api/templates", s.handleCreateTemplate)
	s.mux.HandleFunc("GET /api/templates/{id}", s.handleGetTemplate)
	s.mux.HandleFunc("PUT /api/templates/{id}", s.handleUpdateTemplate)
	s.mux.HandleFunc("DELETE /api/templates/{id}", s.handleDeleteTemplate)

	s.mux.HandleFunc("GET /api/statuses", s.handleListStatuses)
	s.mux.HandleFunc("POST /api/statuses", s.handleCreateStatus)
	s.mux.HandleFunc("GET /api/statuses/{id}", s.handleGetStatus)
	s.mux.HandleFunc("PUT /api/statuses/{id}", s.handleUpdateStatus)
	s.mux.HandleFunc("DELETE /api/statuses/{id}", s.handleDeleteStatus)

	s.mux.HandleFunc("GET /api/stickers", s.handleListStickers)
	s.mux.HandleFunc("POST /api/stickers", s.handleCreateSticker)
	s.mux.HandleFunc("GET /api/stickers/{id}", s.handleGetSticker)
	s.mux.HandleFunc("PUT /api/stickers/{id}", s.handleUpdateSticker)
	s.mux.HandleFunc("DELETE /api/stickers/{id}", s.handleDeleteSticker)

	s.mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	s.mux.HandleFunc("PUT /api/settings", s.handleUpdateSettings)

	s.mux.HandleFunc("GET /api/events", s.handleEvents)
	s.mux.HandleFunc("GET /api/calendar.ics", s.handleCalendar)

	s.mux.HandleFunc("GET /api/scheduler/sound", s.handleSoundState)
	s.mux.HandleFunc("POST /api/scheduler/silence", s.handleSilence)

	s.mux.HandleFunc("POST /api/ai/parse", s.handleAIParse)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Log.Debugf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeStoreError maps repository errors onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	logger.Log.Errorf("Storage error: %v", err)
	writeError(w, http.StatusInternalServerError, "storage error")
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"waremind/internal/ics"
	"waremind/internal/logger"
)

// handleEvents streams bus events to the browser over SSE. The frontend uses
// the feed to show due notifications, play the alert sound, open deep links
// and reload lists after changes.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	// Subscribe before the headers go out so a client that has seen the
	// response start cannot miss events published right after.
	ch, unsubscribe := s.bus.Subscribe(32)
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	// Periodic comments keep proxies from closing an idle stream.
	keepalive := time.NewTicker(25 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepalive.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		case event := <-ch:
			payload, err := json.Marshal(event)
			if err != nil {
				logger.Log.Errorf("Failed to encode event: %v", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, payload)
			flusher.Flush()
		}
	}
}

// handleCalendar serves the active reminders as an iCalendar feed that
// calendar apps can subscribe to.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	reminders, err := s.reminders.ListActive(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="reminders.ics"`)
	fmt.Fprint(w, ics.Export(reminders, time.Now().In(s.loc)))
}

func (s *Server) handleSoundState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"playing": s.sched.IsSoundActive()})
}

// handleSilence stops the alert sound without waiting for the fade.
func (s *Server) handleSilence(w http.ResponseWriter, _ *http.Request) {
	s.sched.Silence()
	writeJSON(w, http.StatusOK, map[string]bool{"playing": false})
}

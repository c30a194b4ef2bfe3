package api

import (
	"net/http"
	"time"

	"waremind/internal/logger"
)

type aiParseRequest struct {
	Text string `json:"text"`
}

// handleAIParse turns a free-form sentence into a reminder draft the frontend
// pre-fills the form with. Returns 503 when no AI key is configured.
func (s *Server) handleAIParse(w http.ResponseWriter, r *http.Request) {
	if s.ai == nil {
		writeError(w, http.StatusServiceUnavailable, "AI parsing is not configured")
		return
	}
	req := aiParseRequest{}
	if !readJSON(w, r, &req) {
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	draft, err := s.ai.ParseDraft(r.Context(), req.Text, time.Now().In(s.loc))
	if err != nil {
		logger.Log.Errorf("AI parse failed: %v", err)
		writeError(w, http.StatusBadGateway, "AI parsing failed")
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

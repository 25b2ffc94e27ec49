package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// StartSession handles POST /quiz/sessions.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Start(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionToResponse(sess))
}

// GetSession handles GET /quiz/sessions/{token}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		serviceError(w, r, err, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(sess))
}

// SaveSession handles PUT /quiz/sessions/{token}. Partial answers are
// accepted as-is.
func (s *Server) SaveSession(w http.ResponseWriter, r *http.Request) {
	var req SaveSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := s.sessions.Save(r.Context(), chi.URLParam(r, "token"), req.Step, req.Answers)
	if err != nil {
		serviceError(w, r, err, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(sess))
}

// DeleteSession handles DELETE /quiz/sessions/{token}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "token")); err != nil {
		serviceError(w, r, err, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

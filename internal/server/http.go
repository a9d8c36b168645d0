package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/lox/pokerbot/internal/game"
	"github.com/lox/pokerbot/internal/store"
)

// maxBodySize bounds request bodies on the JSON API
const maxBodySize = 1 << 16

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/game", s.handleCreate)
	mux.HandleFunc("GET /api/game/{id}", s.handleView)
	mux.HandleFunc("DELETE /api/game/{id}", s.handleDelete)
	mux.HandleFunc("POST /api/game/{id}/action", s.handleAction)
	mux.HandleFunc("POST /api/game/{id}/deal", s.handleDeal)
	mux.HandleFunc("POST /api/game/{id}/advance", s.handleAdvance)
	mux.HandleFunc("POST /api/game/{id}/step", s.handleStep)
	mux.HandleFunc("POST /api/game/{id}/settings", s.handleSettings)
	mux.HandleFunc("GET /api/game/{id}/ws", s.handleWebSocket)
	return mux
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if !s.decode(w, r, &req) {
		return
	}
	view, err := s.games.CreateTable(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	view, err := s.games.View(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.games.DeleteTable(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.games.Act(r.Context(), r.PathValue("id"), req)
	s.writeResult(w, res, err)
}

func (s *Server) handleDeal(w http.ResponseWriter, r *http.Request) {
	res, err := s.games.Deal(r.Context(), r.PathValue("id"))
	s.writeResult(w, res, err)
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	res, err := s.games.Advance(r.Context(), r.PathValue("id"))
	s.writeResult(w, res, err)
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	res, err := s.games.Step(r.Context(), r.PathValue("id"))
	s.writeResult(w, res, err)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if !s.decode(w, r, &req) {
		return
	}
	view, err := s.games.UpdateSettings(r.Context(), r.PathValue("id"), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// decode reads an optional JSON body into v. An empty body leaves v untouched.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return false
	}
	return true
}

func (s *Server) writeResult(w http.ResponseWriter, res *CommandResult, err error) {
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("Request failed", "error", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}

// errorStatus maps service errors onto HTTP statuses and stable error codes
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, game.ErrInvalidState):
		return http.StatusConflict, "invalid_state"
	case errors.Is(err, game.ErrInvalidAction):
		return http.StatusBadRequest, "invalid_action"
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, store.ErrExists):
		return http.StatusConflict, "exists"
	}
	return http.StatusInternalServerError, "internal"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

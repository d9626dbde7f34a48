package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cargohub/cargokb/internal/cargo"
	"github.com/cargohub/cargokb/internal/store"
)

// handleGetCargo returns one cargo record with its tracking history.
func (s *Server) handleGetCargo(w http.ResponseWriter, r *http.Request) {
	trackingNumber := chi.URLParam(r, "trackingNumber")

	c, err := s.store.GetCargo(r.Context(), trackingNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, "cargo not found", http.StatusNotFound)
			return
		}
		jsonError(w, "get cargo: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type actionRequest struct {
	UserID string `json:"user_id"`
	Reason string `json:"reason"`
}

// handleReturnCargo starts a return for a delivered cargo via an explicit
// read-modify-write cycle against the store.
func (s *Server) handleReturnCargo(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, func(c cargo.Cargo, reason string) (cargo.Cargo, error) {
		if reason == "" {
			reason = "Müşteri talebi"
		}
		return cargo.ApplyReturn(c, reason, time.Now())
	})
}

// handleCancelCargo cancels a cargo that has not left the warehouse.
func (s *Server) handleCancelCargo(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, func(c cargo.Cargo, _ string) (cargo.Cargo, error) {
		return cargo.ApplyCancel(c, time.Now())
	})
}

func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request, transition func(cargo.Cargo, string) (cargo.Cargo, error)) {
	trackingNumber := chi.URLParam(r, "trackingNumber")

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		jsonError(w, "user_id is required", http.StatusBadRequest)
		return
	}

	current, err := s.store.GetCargo(r.Context(), trackingNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, "cargo not found", http.StatusNotFound)
			return
		}
		jsonError(w, "get cargo: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if current.UserID != req.UserID {
		jsonError(w, "cargo does not belong to this user", http.StatusForbidden)
		return
	}

	next, err := transition(*current, req.Reason)
	if err != nil {
		if errors.Is(err, cargo.ErrNotEligible) {
			jsonError(w, err.Error(), http.StatusConflict)
			return
		}
		jsonError(w, "transition failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := s.store.PutCargo(r.Context(), next); err != nil {
		jsonError(w, "save cargo: "+err.Error(), http.StatusInternalServerError)
		return
	}

	s.log.Info("cargo transition",
		"tracking_number", trackingNumber,
		"user_id", req.UserID,
		"status", next.Status,
	)
	writeJSON(w, http.StatusOK, next)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}

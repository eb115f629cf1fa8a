package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/alerts"
	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/centro"
	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/store"
)

const version = "0.1.0"

// Handler contains shared dependencies for the dashboard HTTP handlers.
type Handler struct {
	platform *centro.Client
	store    *store.Store
	alerts   *alerts.Log
	logger   zerolog.Logger
	now      func() time.Time
}

// NewHandler creates a new Handler over the monitor's state.
func NewHandler(platform *centro.Client, st *store.Store, al *alerts.Log, logger zerolog.Logger) *Handler {
	return &Handler{
		platform: platform,
		store:    st,
		alerts:   al,
		logger:   logger,
		now:      time.Now,
	}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}

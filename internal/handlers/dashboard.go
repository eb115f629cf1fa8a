package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/centro"
	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/metrics"
)

// Chatters returns the active conversation set, most recent first.
// The payload is the current immutable snapshot; a Stale flag marks data
// surviving from before a failed polling cycle.
func (h *Handler) Chatters(w http.ResponseWriter, r *http.Request) {
	h.JSON(w, http.StatusOK, h.store.Snapshot())
}

// AlertsResponse wraps the session alert log.
type AlertsResponse struct {
	Alerts interface{} `json:"alerts"`
	Total  int         `json:"total"`
}

// Alerts returns the session's alerts, newest first.
func (h *Handler) Alerts(w http.ResponseWriter, r *http.Request) {
	recs := h.alerts.Records()
	h.JSON(w, http.StatusOK, AlertsResponse{Alerts: recs, Total: len(recs)})
}

// StatsResponse carries the dashboard headline numbers.
type StatsResponse struct {
	ActiveChatters int  `json:"activeChatters"`
	TotalPending   int  `json:"totalPending"`
	RecentlyActive int  `json:"recentlyActive"`
	Alerts         int  `json:"alerts"`
	Stale          bool `json:"stale"`
}

// Stats returns the headline numbers for the stat cards.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	st := snap.Stats(h.now())
	h.JSON(w, http.StatusOK, StatsResponse{
		ActiveChatters: st.ActiveChatters,
		TotalPending:   st.TotalPending,
		RecentlyActive: st.RecentlyActive,
		Alerts:         h.alerts.Len(),
		Stale:          snap.Stale,
	})
}

// SendMessageRequest is the relay request body.
type SendMessageRequest struct {
	Message string `json:"message"`
}

// SendMessage relays an operator text message to one contact through the
// platform.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "id")

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		h.Error(w, http.StatusBadRequest, "message is required")
		return
	}

	auth, err := h.platform.Authenticate(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("relay authentication failed")
		h.Error(w, http.StatusBadGateway, "platform authentication failed")
		return
	}

	if err := h.platform.SendMessage(r.Context(), auth, contactID, req.Message); err != nil {
		h.logger.Error().Err(err).Str("contact_id", contactID).Msg("relay send failed")
		if centro.IsUpstream(err) {
			h.Error(w, http.StatusBadGateway, err.Error())
			return
		}
		h.Error(w, http.StatusInternalServerError, "failed to send message")
		return
	}

	metrics.MessagesRelayed.Inc()
	h.JSON(w, http.StatusOK, map[string]bool{"sent": true})
}

// ResetAlerts clears the session alert log. Wired to sign-out.
func (h *Handler) ResetAlerts(w http.ResponseWriter, r *http.Request) {
	h.alerts.Reset()
	h.JSON(w, http.StatusOK, map[string]bool{"cleared": true})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/crypto"
	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/metrics"
)

// HashHandler serves the standalone token issuance endpoint. Responses use
// the platform's {status, response|error} envelope so callers can treat
// hashd and the platform uniformly.
type HashHandler struct {
	logger zerolog.Logger
}

// NewHashHandler creates the hashd handler.
func NewHashHandler(logger zerolog.Logger) *HashHandler {
	return &HashHandler{logger: logger}
}

// GenerateHashRequest is the token issuance request body.
type GenerateHashRequest struct {
	Password string `json:"password"`
	Secret   string `json:"secret"`
	Till     int64  `json:"till"`
}

// HashPayload is the success payload.
type HashPayload struct {
	Hash string `json:"hash"`
	Till int64  `json:"till"`
}

type hashEnvelope struct {
	Status   bool         `json:"status"`
	Response *HashPayload `json:"response,omitempty"`
	Error    string       `json:"error,omitempty"`
}

func (h *HashHandler) envelope(w http.ResponseWriter, status int, env hashEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

// GenerateHash issues a time-boxed auth token.
func (h *HashHandler) GenerateHash(w http.ResponseWriter, r *http.Request) {
	var req GenerateHashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.TokenIssueFailures.WithLabelValues("invalid_request").Inc()
		h.envelope(w, http.StatusBadRequest, hashEnvelope{Error: "invalid JSON body"})
		return
	}

	if req.Password == "" || req.Secret == "" || req.Till == 0 {
		metrics.TokenIssueFailures.WithLabelValues("invalid_request").Inc()
		h.envelope(w, http.StatusBadRequest, hashEnvelope{
			Error: "Missing required parameters: password, secret, and till are required",
		})
		return
	}

	hash, err := crypto.Issue(req.Password, req.Secret, req.Till)
	if err != nil {
		metrics.TokenIssueFailures.WithLabelValues("crypto").Inc()
		h.logger.Error().Err(err).Msg("token issuance failed")
		h.envelope(w, http.StatusInternalServerError, hashEnvelope{Error: err.Error()})
		return
	}

	metrics.TokensIssued.Inc()
	h.envelope(w, http.StatusOK, hashEnvelope{
		Status:   true,
		Response: &HashPayload{Hash: hash, Till: req.Till},
	})
}

// Health reports hashd liveness. The service is stateless, so reachable
// means healthy.
func (h *HashHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"version": version,
	})
}

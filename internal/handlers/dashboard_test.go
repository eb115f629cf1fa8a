package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/alerts"
	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/centro"
	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/models"
	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/store"
)

func newDashboardHandler(platform *centro.Client) (*Handler, *store.Store, *alerts.Log) {
	st := store.New()
	al := alerts.NewLog(nil, zerolog.Nop())
	h := NewHandler(platform, st, al, zerolog.Nop())
	h.now = func() time.Time { return time.Unix(10000, 0) }
	return h, st, al
}

func TestChatters(t *testing.T) {
	h, st, _ := newDashboardHandler(nil)
	st.Publish([]models.Chatter{
		{ID: "c1", Name: "Sam", PendingCount: 2, Status: models.StatusWarning},
	}, time.Unix(9000, 0))

	rec := httptest.NewRecorder()
	h.Chatters(rec, httptest.NewRequest(http.MethodGet, "/chatters", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var snap store.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.Len(t, snap.Chatters, 1)
	assert.Equal(t, "Sam", snap.Chatters[0].Name)
	assert.False(t, snap.Stale)
}

func TestAlertsEndpoint(t *testing.T) {
	h, _, al := newDashboardHandler(nil)
	al.Raise(httptest.NewRequest(http.MethodGet, "/", nil).Context(),
		alerts.Key{ContactID: "c1", Severity: models.StatusCritical},
		alerts.Notification{Name: "Sam"})

	rec := httptest.NewRecorder()
	h.Alerts(rec, httptest.NewRequest(http.MethodGet, "/alerts", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Alerts []alerts.Record `json:"alerts"`
		Total  int             `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "Sam", resp.Alerts[0].Name)
}

func TestStats(t *testing.T) {
	h, st, al := newDashboardHandler(nil)
	st.Publish([]models.Chatter{
		{ID: "c1", PendingCount: 3, LastMessageTimestamp: 9900},
		{ID: "c2", PendingCount: 1, LastMessageTimestamp: 5000},
	}, time.Unix(9900, 0))
	al.Raise(httptest.NewRequest(http.MethodGet, "/", nil).Context(),
		alerts.Key{ContactID: "c2", Severity: models.StatusCritical},
		alerts.Notification{Name: "Alex"})

	rec := httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.ActiveChatters)
	assert.Equal(t, 4, resp.TotalPending)
	assert.Equal(t, 1, resp.RecentlyActive)
	assert.Equal(t, 1, resp.Alerts)
}

func TestResetAlerts(t *testing.T) {
	h, _, al := newDashboardHandler(nil)
	al.Raise(httptest.NewRequest(http.MethodGet, "/", nil).Context(),
		alerts.Key{ContactID: "c1", Severity: models.StatusCritical},
		alerts.Notification{Name: "Sam"})

	rec := httptest.NewRecorder()
	h.ResetAlerts(rec, httptest.NewRequest(http.MethodPost, "/alerts/reset", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, al.Len())
}

func TestSendMessage(t *testing.T) {
	platformSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/client.auth":
			json.NewEncoder(w).Encode(map[string]any{"status": true, "response": "auth-1"})
		case "/chat.sendMessage":
			assert.Equal(t, "c1", r.URL.Query().Get("interlocutorId"))
			json.NewEncoder(w).Encode(map[string]any{"status": true, "response": map[string]any{"sent": true}})
		default:
			t.Errorf("unexpected platform call %s", r.URL.Path)
		}
	}))
	defer platformSrv.Close()

	client := centro.NewClient(platformSrv.URL, "op@example.com", "pw",
		"75f2bd1131870721df8eb57d322e8adb", "ct", centro.LocalIssuer{})
	h, _, _ := newDashboardHandler(client)

	r := chi.NewRouter()
	r.Post("/chatters/{id}/message", h.SendMessage)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chatters/c1/message",
		bytes.NewBufferString(`{"message":"on my way"}`))
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSendMessageValidation(t *testing.T) {
	h, _, _ := newDashboardHandler(nil)
	r := chi.NewRouter()
	r.Post("/chatters/{id}/message", h.SendMessage)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chatters/c1/message",
		bytes.NewBufferString(`{"message":"   "}`))
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendMessageUpstreamFailure(t *testing.T) {
	platformSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": false, "error": "auth rejected"})
	}))
	defer platformSrv.Close()

	client := centro.NewClient(platformSrv.URL, "op@example.com", "pw",
		"75f2bd1131870721df8eb57d322e8adb", "ct", centro.LocalIssuer{})
	h, _, _ := newDashboardHandler(client)

	r := chi.NewRouter()
	r.Post("/chatters/{id}/message", h.SendMessage)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chatters/c1/message",
		bytes.NewBufferString(`{"message":"hello"}`))
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHealthDegradedBeforeFirstCycle(t *testing.T) {
	h, st, _ := newDashboardHandler(nil)

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	st.Publish(nil, time.Unix(9000, 0))
	rec = httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	st.MarkStale()
	rec = httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

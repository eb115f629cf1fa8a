package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/crypto"
)

const testSecret = "75f2bd1131870721df8eb57d322e8adb"

func postGenerateHash(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHashHandler(zerolog.Nop())
	req := httptest.NewRequest(http.MethodPost, "/generate-hash", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.GenerateHash(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) hashEnvelope {
	t.Helper()
	var env hashEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestGenerateHash(t *testing.T) {
	rec := postGenerateHash(t, `{"password":"pw","secret":"`+testSecret+`","till":1700003600}`)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	require.True(t, env.Status)
	require.NotNil(t, env.Response)
	assert.Equal(t, int64(1700003600), env.Response.Till)

	plain, err := crypto.Decode(env.Response.Hash, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "1700003600.pw", plain)
}

func TestGenerateHashMissingFields(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"no password", `{"secret":"` + testSecret + `","till":100}`},
		{"no secret", `{"password":"pw","till":100}`},
		{"no till", `{"password":"pw","secret":"` + testSecret + `"}`},
		{"empty body", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postGenerateHash(t, tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			env := decodeEnvelope(t, rec)
			assert.False(t, env.Status)
			assert.Equal(t, "Missing required parameters: password, secret, and till are required", env.Error)
		})
	}
}

func TestGenerateHashBadSecret(t *testing.T) {
	rec := postGenerateHash(t, `{"password":"pw","secret":"tooshort","till":100}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.False(t, env.Status)
	assert.NotEmpty(t, env.Error)
}

func TestGenerateHashInvalidJSON(t *testing.T) {
	rec := postGenerateHash(t, `{not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Status)
}

func TestGenerateHashTokensDiffer(t *testing.T) {
	body := `{"password":"pw","secret":"` + testSecret + `","till":100}`
	first := decodeEnvelope(t, postGenerateHash(t, body))
	second := decodeEnvelope(t, postGenerateHash(t, body))
	require.NotNil(t, first.Response)
	require.NotNil(t, second.Response)
	assert.NotEqual(t, first.Response.Hash, second.Response.Hash)
}

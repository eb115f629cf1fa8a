package centro

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/crypto"
)

// TokenIssuer produces the time-boxed auth hash the platform exchanges
// for a session token.
type TokenIssuer interface {
	Issue(ctx context.Context, password, secret string, till int64) (string, error)
}

// LocalIssuer issues tokens in-process.
type LocalIssuer struct{}

func (LocalIssuer) Issue(_ context.Context, password, secret string, till int64) (string, error) {
	return crypto.Issue(password, secret, till)
}

// HTTPIssuer issues tokens by calling the standalone hashd service.
type HTTPIssuer struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewHTTPIssuer creates an issuer backed by the hashd endpoint.
func NewHTTPIssuer(baseURL string) *HTTPIssuer {
	return &HTTPIssuer{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type issueRequest struct {
	Password string `json:"password"`
	Secret   string `json:"secret"`
	Till     int64  `json:"till"`
}

type issueResponse struct {
	Status   bool   `json:"status"`
	Error    string `json:"error"`
	Response struct {
		Hash string `json:"hash"`
		Till int64  `json:"till"`
	} `json:"response"`
}

func (i *HTTPIssuer) Issue(ctx context.Context, password, secret string, till int64) (string, error) {
	payload, err := json.Marshal(issueRequest{Password: password, Secret: secret, Till: till})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.BaseURL+"/generate-hash", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := i.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("hash service unavailable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("hash service unavailable: %w", err)
	}

	var out issueResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("hash service returned invalid response (HTTP %d)", resp.StatusCode)
	}
	if !out.Status {
		msg := out.Error
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return "", fmt.Errorf("hash generation failed: %s", msg)
	}
	return out.Response.Hash, nil
}

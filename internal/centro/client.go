// Package centro is a client for the chat platform's external HTTP API.
// Every operation returns a JSON envelope {status, response|error}; a falsy
// status or a transport failure surfaces as *UpstreamError.
package centro

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/models"
)

// contactLimit caps chat.getContacts to 400 records per call. The API
// exposes no pagination beyond that; accounts with more open conversations
// are out of scope.
const contactLimit = 400

// tokenValidity is the validity window requested for each auth token.
const tokenValidity = 3600 * time.Second

// UpstreamError is a failure reported by the platform API, either an
// explicit status:false envelope or a transport-level problem.
type UpstreamError struct {
	Op      string
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// AuthError wraps a failure during token issuance or exchange.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsUpstream checks if an error is an UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// Client is a platform API client for a single account.
type Client struct {
	BaseURL     string
	Email       string
	Password    string
	Secret      string
	ClientToken string
	Issuer      TokenIssuer
	HTTPClient  *http.Client

	// Now is the clock used for token expiry; overridable in tests.
	Now func() time.Time
}

// NewClient creates a platform client.
func NewClient(baseURL, email, password, secret, clientToken string, issuer TokenIssuer) *Client {
	return &Client{
		BaseURL:     baseURL,
		Email:       email,
		Password:    password,
		Secret:      secret,
		ClientToken: clientToken,
		Issuer:      issuer,
		HTTPClient:  &http.Client{Timeout: 30 * time.Second},
		Now:         time.Now,
	}
}

// envelope is the platform's uniform response wrapper.
type envelope struct {
	Status   bool            `json:"status"`
	Response json.RawMessage `json:"response"`
	Error    string          `json:"error"`
}

// doRequest performs one API call and unwraps the envelope.
func (c *Client) doRequest(ctx context.Context, method, op string, params url.Values) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+"/"+op+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &UpstreamError{Op: op, Message: err.Error()}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Op: op, Message: err.Error()}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &UpstreamError{Op: op, Message: fmt.Sprintf("invalid response (HTTP %d)", resp.StatusCode)}
	}
	if !env.Status {
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("request failed (HTTP %d)", resp.StatusCode)
		}
		return nil, &UpstreamError{Op: op, Message: msg}
	}
	return env.Response, nil
}

// Authenticate obtains a session token: it has the issuer produce a
// time-boxed hash valid for one hour, then exchanges it via client.auth.
// Failures at either step are wrapped as *AuthError.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	till := c.Now().Add(tokenValidity).Unix()

	hash, err := c.Issuer.Issue(ctx, c.Password, c.Secret, till)
	if err != nil {
		return "", &AuthError{Err: err}
	}

	params := url.Values{}
	params.Set("email", c.Email)
	params.Set("till", strconv.FormatInt(till, 10))
	params.Set("hash", hash)

	raw, err := c.doRequest(ctx, http.MethodGet, "client.auth", params)
	if err != nil {
		return "", &AuthError{Err: err}
	}

	var token string
	if err := json.Unmarshal(raw, &token); err != nil {
		return "", &AuthError{Err: &UpstreamError{Op: "client.auth", Message: "unexpected token payload"}}
	}
	return token, nil
}

// contactsResponse is the chat.getContacts payload.
type contactsResponse struct {
	Collection map[string]models.Contact `json:"collection"`
}

// ListContacts fetches the account's conversation partners, keyed by
// contact ID.
func (c *Client) ListContacts(ctx context.Context, auth string) (map[string]models.Contact, error) {
	params := url.Values{}
	params.Set("ct", c.ClientToken)
	params.Set("auth", auth)
	params.Set("limit", strconv.Itoa(contactLimit))

	raw, err := c.doRequest(ctx, http.MethodGet, "chat.getContacts", params)
	if err != nil {
		return nil, err
	}

	var resp contactsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &UpstreamError{Op: "chat.getContacts", Message: "unexpected contacts payload"}
	}

	contacts := make(map[string]models.Contact, len(resp.Collection))
	for id, contact := range resp.Collection {
		if contact.ID == "" {
			contact.ID = id
		}
		contacts[id] = contact
	}
	return contacts, nil
}

// ListMessages fetches the full message history for one conversation.
// No pagination control is exposed by the API.
func (c *Client) ListMessages(ctx context.Context, auth, interlocutorID string) ([]models.Message, error) {
	params := url.Values{}
	params.Set("ct", c.ClientToken)
	params.Set("auth", auth)
	params.Set("interlocutorId", interlocutorID)

	raw, err := c.doRequest(ctx, http.MethodGet, "chat.getMessages", params)
	if err != nil {
		return nil, err
	}

	var msgs []models.Message
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil, &UpstreamError{Op: "chat.getMessages", Message: "unexpected messages payload"}
	}
	return msgs, nil
}

// SendMessage sends a text message to one contact. The platform expects
// the message payload itself percent-encoded inside the query parameter.
func (c *Client) SendMessage(ctx context.Context, auth, interlocutorID, text string) error {
	params := url.Values{}
	params.Set("ct", c.ClientToken)
	params.Set("auth", auth)
	params.Set("interlocutorId", interlocutorID)
	params.Set("message", url.QueryEscape(text))
	params.Set("type", models.TypeText)

	_, err := c.doRequest(ctx, http.MethodPost, "chat.sendMessage", params)
	return err
}

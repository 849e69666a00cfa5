// Package identity is the HTTP client for the remote identity provider.
// It covers the two calls the authorization layer needs: opaque token
// verification and role membership lookups.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for classifying provider failures
var (
	// ErrNotConfigured means no secret key is provisioned. Callers treat
	// this as a distinct state, not a transient failure.
	ErrNotConfigured = errors.New("identity provider not configured")

	// ErrUnavailable means the provider could not be reached at all.
	ErrUnavailable = errors.New("identity provider unreachable")

	// ErrRejected means the provider answered with a non-success status.
	ErrRejected = errors.New("identity provider rejected the request")

	// ErrMalformedResponse means the provider answered with a body that
	// does not parse as the expected shape.
	ErrMalformedResponse = errors.New("malformed identity provider response")
)

const defaultTimeout = 10 * time.Second

// TokenState is the provider's view of one opaque access token.
type TokenState struct {
	Object    string `json:"object"`
	ID        string `json:"id"`
	Subject   string `json:"subject"`
	IssuedAt  int64  `json:"issued_at"`
	ExpiresAt int64  `json:"expires_at"`
	Revoked   bool   `json:"revoked"`
	Expired   bool   `json:"expired"`
}

// RoleMembership is one organization-scoped role grant held by a subject.
type RoleMembership struct {
	Role           string `json:"role"`
	OrganizationID string `json:"organization_id"`
}

// Config holds the provider connection settings
type Config struct {
	SecretKey string
	BaseURL   string
	Timeout   time.Duration
}

// Client talks to the identity provider's REST API
type Client struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new identity provider client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		secretKey: cfg.SecretKey,
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Configured reports whether a secret key is provisioned. An unconfigured
// client fails every call with ErrNotConfigured and never goes on the wire.
func (c *Client) Configured() bool {
	return c.secretKey != ""
}

// VerifyToken asks the provider for the current state of an opaque access token.
func (c *Client) VerifyToken(ctx context.Context, token string) (*TokenState, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	payload, err := json.Marshal(map[string]string{"token": token})
	if err != nil {
		return nil, fmt.Errorf("encode verify request: %w", err)
	}

	body, err := c.post(ctx, "/v1/tokens/verify", payload)
	if err != nil {
		return nil, err
	}

	var state TokenState
	if err := json.Unmarshal(body, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &state, nil
}

// ListRoleMemberships fetches the role grants currently held by a subject.
// Results are fetched fresh on every call; nothing is cached client-side.
func (c *Client) ListRoleMemberships(ctx context.Context, subjectID string) ([]RoleMembership, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	path := "/v1/subjects/" + url.PathEscape(subjectID) + "/role_memberships"
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var list struct {
		Data []RoleMembership `json:"data"`
	}
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return list.Data, nil
}

func (c *Client) post(ctx context.Context, path string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Keep cancellation distinguishable from provider downtime.
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrMalformedResponse, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d, body: %s", ErrRejected, resp.StatusCode, string(body))
	}

	return body, nil
}

package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vitalog/vitalog/internal/models"
	"github.com/vitalog/vitalog/pkg/api"
)

// TokenSource supplies the bearer token attached to every request
type TokenSource func(ctx context.Context) (string, error)

// Client is the HTTP implementation of the remote adapter. Upserts go
// through PUT keyed by entity id, deletes through DELETE; both are
// idempotent on the server, so a retried request whose first response
// was lost cannot create a duplicate record.
type Client struct {
	httpClient *http.Client
	tokens     TokenSource
	baseURL    string
}

// NewClient creates a new remote adapter client. Every call carries a
// bounded timeout; hitting it classifies as transient.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Register registers this device with the server. No token is
// attached: registration is what makes tokens obtainable.
func (c *Client) Register(ctx context.Context, deviceID, secret string) error {
	req := api.RegisterRequest{DeviceID: deviceID, Secret: secret}
	return c.send(ctx, http.MethodPost, "/api/v1/auth/register", req, nil, false)
}

// Login exchanges device credentials for an access token
func (c *Client) Login(ctx context.Context, deviceID, secret string) (*api.TokenResponse, error) {
	req := api.LoginRequest{DeviceID: deviceID, Secret: secret}

	var resp api.TokenResponse
	if err := c.send(ctx, http.MethodPost, "/api/v1/auth/login", req, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Apply sends one outbox entry to the server
func (c *Client) Apply(ctx context.Context, entry *models.OutboxEntry) error {
	switch entry.Operation {
	case models.OpCreate, models.OpUpdate:
		return c.upsert(ctx, entry)
	case models.OpDelete:
		return c.tombstone(ctx, entry)
	default:
		return Permanent(api.CodeValidation, fmt.Errorf("unknown operation %q", entry.Operation))
	}
}

// upsert sends PUT /api/v1/entities/{kind}/{id}
func (c *Client) upsert(ctx context.Context, entry *models.OutboxEntry) error {
	req := api.UpsertRequest{
		Payload: entry.PayloadSnapshot,
		Version: entry.Version,
	}

	var resp api.UpsertResponse
	path := fmt.Sprintf("/api/v1/entities/%s/%s", entry.Kind, entry.EntityID)
	if err := c.doRequest(ctx, http.MethodPut, path, req, &resp); err != nil {
		return err
	}

	return nil
}

// tombstone sends DELETE /api/v1/entities/{kind}/{id}
func (c *Client) tombstone(ctx context.Context, entry *models.OutboxEntry) error {
	var resp api.TombstoneResponse
	path := fmt.Sprintf("/api/v1/entities/%s/%s", entry.Kind, entry.EntityID)
	return c.doRequest(ctx, http.MethodDelete, path, nil, &resp)
}

// doRequest performs an authenticated request and classifies every
// failure
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	return c.send(ctx, method, path, body, result, true)
}

func (c *Client) send(ctx context.Context, method, path string, body, result interface{}, withToken bool) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return Permanent(api.CodeValidation, fmt.Errorf("failed to marshal request body: %w", err))
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return Permanent(api.CodeValidation, fmt.Errorf("failed to create request: %w", err))
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if withToken && c.tokens != nil {
		token, err := c.tokens(ctx)
		if err != nil {
			return Transient(fmt.Errorf("failed to get access token: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Connection failures and client timeouts are retryable
		return Transient(fmt.Errorf("request failed: %w", err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Transient(fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyStatus(resp.StatusCode, respBody)
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return Transient(fmt.Errorf("failed to decode response: %w", err))
		}
	}

	return nil
}

// classifyStatus maps an HTTP status to a remote error class.
// 408, 429 and 5xx are retryable; everything else in 4xx is a
// server-confirmed rejection and will not succeed on retry.
func classifyStatus(status int, body []byte) error {
	var errResp api.ErrorResponse
	msg := string(body)
	code := ""
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		msg = errResp.Message
		code = errResp.Code
	}

	err := fmt.Errorf("server error (%d): %s", status, msg)

	switch {
	case status == http.StatusRequestTimeout, status == http.StatusTooManyRequests, status >= 500:
		return Transient(err)
	default:
		if code == "" {
			code = api.CodeValidation
		}
		return Permanent(code, err)
	}
}

package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope mirrors the API response wrapper with the payload left raw
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
		Details   []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
	Meta *struct {
		Total      int64 `json:"total"`
		Page       int   `json:"page"`
		PageSize   int   `json:"page_size"`
		TotalPages int   `json:"total_pages"`
	} `json:"meta"`
}

// Response is a recorded API call
type Response struct {
	Code     int
	Header   http.Header
	Body     []byte
	Envelope Envelope
}

// Client drives an http.Handler with fixed credentials
type Client struct {
	t       *testing.T
	handler http.Handler
	headers map[string]string
}

// NewClient creates an unauthenticated client
func NewClient(t *testing.T, handler http.Handler) *Client {
	return &Client{t: t, handler: handler, headers: map[string]string{}}
}

// WithAPIKey returns a copy authenticating with a workspace API key
func (c *Client) WithAPIKey(key string) *Client {
	return c.with(map[string]string{"X-API-Key": key})
}

// WithSession returns a copy authenticating with a bearer token inside a workspace.
// A nil workspace sends no workspace header.
func (c *Client) WithSession(token string, workspaceID uuid.UUID) *Client {
	h := map[string]string{"Authorization": "Bearer " + token}
	if workspaceID != uuid.Nil {
		h["X-Workspace-ID"] = workspaceID.String()
	}
	return c.with(h)
}

// InWorkspace returns a copy with the workspace header replaced
func (c *Client) InWorkspace(workspaceID uuid.UUID) *Client {
	return c.with(map[string]string{"X-Workspace-ID": workspaceID.String()})
}

func (c *Client) with(extra map[string]string) *Client {
	headers := make(map[string]string, len(c.headers)+len(extra))
	for k, v := range c.headers {
		headers[k] = v
	}
	for k, v := range extra {
		headers[k] = v
	}
	return &Client{t: c.t, handler: c.handler, headers: headers}
}

// Do sends a request; a non-nil body is encoded as JSON
func (c *Client) Do(method, path string, body any) *Response {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err, "Failed to marshal request body")
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)

	resp := &Response{Code: w.Code, Header: w.Header(), Body: w.Body.Bytes()}
	if len(resp.Body) > 0 && w.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(resp.Body, &resp.Envelope)
	}
	return resp
}

// Get is Do with GET
func (c *Client) Get(path string) *Response {
	c.t.Helper()
	return c.Do(http.MethodGet, path, nil)
}

// Post is Do with POST
func (c *Client) Post(path string, body any) *Response {
	c.t.Helper()
	return c.Do(http.MethodPost, path, body)
}

// Data decodes the envelope payload into T
func Data[T any](t *testing.T, resp *Response) T {
	t.Helper()
	var out T
	require.True(t, resp.Envelope.Success, "expected success, got %d: %s", resp.Code, resp.Body)
	require.NoError(t, json.Unmarshal(resp.Envelope.Data, &out), "Failed to decode data")
	return out
}

// RequireStatus fails the test unless the response has the given status
func RequireStatus(t *testing.T, resp *Response, status int) {
	t.Helper()
	require.Equal(t, status, resp.Code, "unexpected status, body: %s", resp.Body)
}

// AssertError checks an error envelope's status and code
func AssertError(t *testing.T, resp *Response, status int, code string) {
	t.Helper()
	assert.Equal(t, status, resp.Code, "body: %s", resp.Body)
	assert.False(t, resp.Envelope.Success)
	if assert.NotNil(t, resp.Envelope.Error, "expected error object") {
		assert.Equal(t, code, resp.Envelope.Error.Code)
	}
}

// Package llm calls a hosted Messages-style LLM API.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/salescrm/backend/internal/application/assistant"
	"github.com/salescrm/backend/internal/infrastructure/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// APIVersion is sent in the anthropic-version header
const APIVersion = "2023-06-01"

const (
	defaultMaxTokens = 1024
	maxRetries       = 2
	maxRetryWait     = 10 * time.Second
)

// APIError is a non-2xx response from the model API
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("llm api returned %d %s: %s", e.StatusCode, e.Type, e.Message)
}

// Retryable reports whether the request may succeed when repeated
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Client implements assistant.Model over HTTP
type Client struct {
	baseURL   string
	apiKey    string
	model     string
	maxTokens int
	client    *http.Client
	logger    *zap.Logger
	sleep     func(ctx context.Context, d time.Duration) error
}

// NewClient creates a Client from config. An API key is required.
func NewClient(cfg config.LLMConfig, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llm api key is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		maxTokens: maxTokens,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
		sleep:  sleepContext,
	}, nil
}

type messagesRequest struct {
	Model     string               `json:"model"`
	MaxTokens int                  `json:"max_tokens"`
	System    string               `json:"system,omitempty"`
	Messages  []assistant.Message  `json:"messages"`
	Tools     []assistant.ToolSpec `json:"tools,omitempty"`
}

type messagesResponse struct {
	ID         string                   `json:"id"`
	Content    []assistant.ContentBlock `json:"content"`
	StopReason string                   `json:"stop_reason"`
	Usage      assistant.Usage          `json:"usage"`
}

type errorEnvelope struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one request. 429 and 5xx responses are retried with backoff.
func (c *Client) Complete(ctx context.Context, req assistant.CompletionRequest) (*assistant.Completion, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}
	body, err := json.Marshal(messagesRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    req.System,
		Messages:  sanitize(req.Messages),
		Tools:     req.Tools,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode llm request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		out, wait, err := c.do(ctx, body)
		if err == nil {
			return out, nil
		}
		lastErr = err
		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.Retryable() || attempt == maxRetries {
			break
		}
		if wait <= 0 {
			wait = time.Duration(500*(1<<attempt)) * time.Millisecond
		}
		c.logger.Warn("llm request failed, retrying",
			zap.Int("status", apiErr.StatusCode),
			zap.Int("attempt", attempt+1),
			zap.Duration("wait", wait),
		)
		if err := c.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, body []byte) (*assistant.Completion, time.Duration, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build llm request: %w", err)
	}
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", APIVersion)
	httpReq.Header.Set("content-type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to reach llm api: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read llm response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		var env errorEnvelope
		if json.Unmarshal(raw, &env) == nil && env.Error.Message != "" {
			apiErr.Type, apiErr.Message = env.Error.Type, env.Error.Message
		}
		return nil, retryAfter(resp.Header.Get("retry-after")), apiErr
	}

	var out messagesResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, 0, fmt.Errorf("failed to decode llm response: %w", err)
	}
	return &assistant.Completion{
		Content:    out.Content,
		StopReason: out.StopReason,
		Usage:      out.Usage,
	}, 0, nil
}

// sanitize drops empty text blocks, which the API rejects, and gives tool calls an object input
func sanitize(messages []assistant.Message) []assistant.Message {
	out := make([]assistant.Message, 0, len(messages))
	for _, m := range messages {
		blocks := make([]assistant.ContentBlock, 0, len(m.Content))
		for _, b := range m.Content {
			switch {
			case b.Type == assistant.BlockText && strings.TrimSpace(b.Text) == "":
				continue
			case b.Type == assistant.BlockToolUse && len(b.Input) == 0:
				b.Input = json.RawMessage(`{}`)
			}
			blocks = append(blocks, b)
		}
		if len(blocks) > 0 {
			out = append(out, assistant.Message{Role: m.Role, Content: blocks})
		}
	}
	return out
}

func retryAfter(header string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || secs <= 0 {
		return 0
	}
	d := time.Duration(secs) * time.Second
	if d > maxRetryWait {
		d = maxRetryWait
	}
	return d
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

var _ assistant.Model = (*Client)(nil)

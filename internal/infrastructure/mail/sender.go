// Package mail sends transactional email through a hosted provider API.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	appemail "github.com/salescrm/backend/internal/application/email"
	"github.com/salescrm/backend/internal/infrastructure/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// DefaultAPIURL is the provider endpoint used when none is configured
const DefaultAPIURL = "https://api.resend.com"

var htmlTag = regexp.MustCompile(`<[a-zA-Z][^>]*>`)

// ProviderError is a non-2xx response from the provider
type ProviderError struct {
	StatusCode int
	Name       string
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("mail provider returned %d %s: %s", e.StatusCode, e.Name, e.Message)
	}
	return fmt.Sprintf("mail provider returned %d: %s", e.StatusCode, e.Message)
}

// HTTPSender posts messages to a Resend-compatible /emails endpoint
type HTTPSender struct {
	baseURL string
	apiKey  string
	from    string
	client  *http.Client
}

// NewHTTPSender creates a sender. The from address must parse as an RFC 5322 address.
func NewHTTPSender(cfg config.MailConfig) (*HTTPSender, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("mail api key is required")
	}
	fromAddr, err := mail.ParseAddress(cfg.FromAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid mail from address %q: %w", cfg.FromAddress, err)
	}
	if cfg.FromName != "" {
		fromAddr.Name = cfg.FromName
	}
	baseURL := strings.TrimRight(cfg.APIURL, "/")
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSender{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		from:    fromAddr.String(),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

type sendTag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type sendRequest struct {
	From    string    `json:"from"`
	To      []string  `json:"to"`
	Subject string    `json:"subject"`
	HTML    string    `json:"html,omitempty"`
	Text    string    `json:"text,omitempty"`
	Tags    []sendTag `json:"tags,omitempty"`
}

type sendResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Send delivers msg and returns the provider message ID
func (s *HTTPSender) Send(ctx context.Context, msg appemail.OutboundMessage) (string, error) {
	payload := sendRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
	}
	if htmlTag.MatchString(msg.Body) {
		payload.HTML = msg.Body
	} else {
		payload.Text = msg.Body
	}
	for name, value := range msg.Tags {
		payload.Tags = append(payload.Tags, sendTag{Name: name, Value: value})
	}
	sort.Slice(payload.Tags, func(i, j int) bool { return payload.Tags[i].Name < payload.Tags[j].Name })

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode email: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	// the provider dedupes retries of the same log
	if id := msg.Tags["email_log_id"]; id != "" {
		req.Header.Set("Idempotency-Key", id)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach mail provider: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read mail provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		perr := &ProviderError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		var er errorResponse
		if json.Unmarshal(raw, &er) == nil && er.Message != "" {
			perr.Name, perr.Message = er.Name, er.Message
		}
		return "", perr
	}

	var out sendResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("failed to decode mail provider response: %w", err)
	}
	if out.ID == "" {
		return "", errors.New("mail provider response has no message id")
	}
	return out.ID, nil
}

// LogSender writes messages to the log instead of sending them. Used when no provider is configured.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, msg appemail.OutboundMessage) (string, error) {
	id := "log-" + uuid.NewString()
	s.logger.Info("email not sent: no mail provider configured",
		zap.String("message_id", id),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("body_bytes", len(msg.Body)),
	)
	return id, nil
}

// NewSender returns an HTTPSender when an API key is configured, otherwise a LogSender
func NewSender(cfg config.MailConfig, logger *zap.Logger) (appemail.Sender, error) {
	if cfg.APIKey == "" {
		logger.Warn("mail api key not set, emails will only be logged")
		return NewLogSender(logger), nil
	}
	return NewHTTPSender(cfg)
}

var (
	_ appemail.Sender = (*HTTPSender)(nil)
	_ appemail.Sender = (*LogSender)(nil)
)

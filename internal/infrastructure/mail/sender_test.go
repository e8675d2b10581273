package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	appemail "github.com/salescrm/backend/internal/application/email"
	"github.com/salescrm/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testSender(t *testing.T, handler http.HandlerFunc) *HTTPSender {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	s, err := NewHTTPSender(config.MailConfig{
		APIURL:      srv.URL + "/",
		APIKey:      "re_test",
		FromAddress: "crm@example.com",
		FromName:    "Acme CRM",
	})
	require.NoError(t, err)
	return s
}

func TestHTTPSender_Send(t *testing.T) {
	var got sendRequest
	s := testSender(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		assert.Equal(t, "log-1", r.Header.Get("Idempotency-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"4ef9a417"}`))
	})

	id, err := s.Send(context.Background(), appemail.OutboundMessage{
		To:      "ada@example.com",
		Subject: "Hello",
		Body:    "Plain body",
		Tags:    map[string]string{"workspace_id": "ws-1", "email_log_id": "log-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "4ef9a417", id)
	assert.Equal(t, `"Acme CRM" <crm@example.com>`, got.From)
	assert.Equal(t, []string{"ada@example.com"}, got.To)
	assert.Equal(t, "Plain body", got.Text)
	assert.Empty(t, got.HTML)
	assert.Equal(t, []sendTag{{"email_log_id", "log-1"}, {"workspace_id", "ws-1"}}, got.Tags)
}

func TestHTTPSender_SendHTML(t *testing.T) {
	var got sendRequest
	s := testSender(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"x"}`))
	})
	_, err := s.Send(context.Background(), appemail.OutboundMessage{To: "a@b.co", Subject: "s", Body: "<p>Hi</p>"})
	require.NoError(t, err)
	assert.Equal(t, "<p>Hi</p>", got.HTML)
	assert.Empty(t, got.Text)
}

func TestHTTPSender_ProviderError(t *testing.T) {
	s := testSender(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"name":"validation_error","message":"Invalid to field"}`))
	})
	_, err := s.Send(context.Background(), appemail.OutboundMessage{To: "a@b.co", Subject: "s", Body: "b"})
	require.Error(t, err)
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusUnprocessableEntity, perr.StatusCode)
	assert.Equal(t, "validation_error", perr.Name)
	assert.Contains(t, err.Error(), "Invalid to field")
}

func TestHTTPSender_NonJSONError(t *testing.T) {
	s := testSender(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})
	_, err := s.Send(context.Background(), appemail.OutboundMessage{To: "a@b.co", Subject: "s", Body: "b"})
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "bad gateway", perr.Message)
}

func TestNewSender(t *testing.T) {
	s, err := NewSender(config.MailConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LogSender{}, s)

	id, err := s.Send(context.Background(), appemail.OutboundMessage{To: "a@b.co"})
	require.NoError(t, err)
	assert.Contains(t, id, "log-")

	_, err = NewSender(config.MailConfig{APIKey: "k", FromAddress: "not an address"}, zap.NewNop())
	assert.Error(t, err)
}

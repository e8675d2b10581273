package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain object", `{"a":1}`, `{"a":1}`},
		{"fenced json", "Here you go:\n```json\n{\"summary\": \"ok\"}\n```\nThanks", `{"summary": "ok"}`},
		{"fenced without language", "```\n[1, 2, 3]\n```", `[1, 2, 3]`},
		{"fence beats bare object", "{\"first\": true}\n```json\n{\"second\": true}\n```", `{"second": true}`},
		{"chatty prefix", `Sure! {"sentiment": "positive", "next_steps": ["call"]} Hope that helps.`, `{"sentiment": "positive", "next_steps": ["call"]}`},
		{"braces inside strings", `note {"text": "a } tricky { one", "n": [1]}`, `{"text": "a } tricky { one", "n": [1]}`},
		{"escaped quote", `{"q": "say \"hi\" }"}`, `{"q": "say \"hi\" }"}`},
		{"skips invalid candidate", `{not json} then {"ok": 1}`, `{"ok": 1}`},
		{"non-json fence ignored", "```go\nx := 1\n```\n{\"x\": 2}", `{"x": 2}`},
		{"prose around fenced block with extra text", "```json\nResult: {\"y\": 3}\n```", `{"y": 3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.in)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestExtractJSON_None(t *testing.T) {
	for _, in := range []string{"", "no json here", "{unbalanced", "[1, 2"} {
		_, err := ExtractJSON(in)
		assert.ErrorIs(t, err, ErrNoJSON, in)
	}
}

func TestDecodeJSON(t *testing.T) {
	var out struct {
		Summary   string   `json:"summary"`
		NextSteps []string `json:"next_steps"`
	}
	err := DecodeJSON("```json\n{\"summary\":\"Good call\",\"next_steps\":[\"send proposal\"]}\n```", &out)
	require.NoError(t, err)
	assert.Equal(t, "Good call", out.Summary)
	assert.Equal(t, []string{"send proposal"}, out.NextSteps)
}

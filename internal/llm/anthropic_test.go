package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewAnthropicProvider(
		AnthropicConfig{APIKey: "test-key", Model: "claude-haiku"},
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	require.NoError(t, err)
	return p
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":   "msg_test",
		"type": "message",
		"role": "assistant",
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func TestAnthropicProviderStructuredOutput(t *testing.T) {
	var sent map[string]any
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&sent)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(anthropicMessage(`{"answer":2}`, "end_turn"))
	})

	resp, err := p.Generate(context.Background(), UserPrompt("You write quizzes.", "Go.", answerSchema(), 256))
	require.NoError(t, err)
	assert.JSONEq(t, `{"answer":2}`, string(resp.Content))
	assert.Equal(t, 80, resp.Usage.TotalTokens)
	assert.Equal(t, "end", resp.StopReason)
	assert.Equal(t, "claude-haiku-4-5-20251001", resp.Model)

	assert.Equal(t, "claude-haiku-4-5-20251001", sent["model"])
	assert.Contains(t, sent, "system")
}

func TestAnthropicProviderErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   map[string]any
		check  func(t *testing.T, err error)
	}{
		{
			name:   "rate limit",
			status: http.StatusTooManyRequests,
			body:   map[string]any{"type": "error", "error": map[string]any{"type": "rate_limit_error", "message": "slow down"}},
			check: func(t *testing.T, err error) {
				var rl *ErrRateLimit
				assert.ErrorAs(t, err, &rl)
			},
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   map[string]any{"type": "error", "error": map[string]any{"type": "api_error", "message": "boom"}},
			check: func(t *testing.T, err error) {
				var unavail *ErrProviderUnavailable
				assert.ErrorAs(t, err, &unavail)
			},
		},
		{
			name:   "truncated",
			status: http.StatusOK,
			body:   anthropicMessage(`{"answer":`, "max_tokens"),
			check: func(t *testing.T, err error) {
				var maxTok *ErrMaxTokensExceeded
				assert.ErrorAs(t, err, &maxTok)
			},
		},
		{
			name:   "schema violation",
			status: http.StatusOK,
			body:   anthropicMessage(`{"answer":"two"}`, "end_turn"),
			check: func(t *testing.T, err error) {
				var inv *ErrInvalidResponse
				assert.ErrorAs(t, err, &inv)
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_ = json.NewEncoder(w).Encode(tc.body)
			})
			_, err := p.Generate(context.Background(), UserPrompt("", "q", answerSchema(), 64))
			require.Error(t, err)
			tc.check(t, err)
		})
	}
}

func TestAnthropicModelMapping(t *testing.T) {
	assert.Equal(t, "claude-sonnet-4-5-20250929", resolveModel("claude-sonnet", anthropicModels))
	assert.Equal(t, "claude-haiku-4-5-20251001", resolveModel("claude-haiku", anthropicModels))
	assert.Equal(t, "claude-opus-4-1", resolveModel("claude-opus-4-1", anthropicModels))
}

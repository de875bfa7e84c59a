package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return newOpenAICompatible("test-key", server.URL+"/v1", "gpt-4o-mini")
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAIProviderStructuredOutput(t *testing.T) {
	var sent map[string]any
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&sent)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletion(`{"answer":1,"label":"a"}`, "stop"))
	})

	resp, err := p.Generate(context.Background(), UserPrompt("You write quizzes.", "Go.", answerSchema(), 256))
	require.NoError(t, err)
	assert.JSONEq(t, `{"answer":1,"label":"a"}`, string(resp.Content))
	assert.Equal(t, 40, resp.Usage.InputTokens)
	assert.Equal(t, 65, resp.Usage.TotalTokens)
	assert.Equal(t, "end", resp.StopReason)

	msgs, ok := sent["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])

	format, ok := sent["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_schema", format["type"])
	js := format["json_schema"].(map[string]any)
	assert.Equal(t, "llm-test-answer", js["name"])
	assert.Equal(t, true, js["strict"])
}

func TestOpenAIProviderErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   map[string]any
		check  func(t *testing.T, err error)
	}{
		{
			name:   "rate limit",
			status: http.StatusTooManyRequests,
			body:   map[string]any{"error": map[string]any{"type": "tokens", "message": "slow down", "code": "rate_limit_exceeded"}},
			check: func(t *testing.T, err error) {
				var rl *ErrRateLimit
				assert.ErrorAs(t, err, &rl)
			},
		},
		{
			name:   "server error",
			status: http.StatusBadGateway,
			body:   map[string]any{"error": map[string]any{"type": "server_error", "message": "boom"}},
			check: func(t *testing.T, err error) {
				var unavail *ErrProviderUnavailable
				assert.ErrorAs(t, err, &unavail)
			},
		},
		{
			name:   "truncated",
			status: http.StatusOK,
			body:   chatCompletion(`{"answer"`, "length"),
			check: func(t *testing.T, err error) {
				var maxTok *ErrMaxTokensExceeded
				assert.ErrorAs(t, err, &maxTok)
			},
		},
		{
			name:   "no choices",
			status: http.StatusOK,
			body:   map[string]any{"id": "x", "object": "chat.completion", "model": "gpt-4o-mini", "choices": []any{}},
			check: func(t *testing.T, err error) {
				var inv *ErrInvalidResponse
				assert.ErrorAs(t, err, &inv)
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
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

func TestNewOpenAIProvider(t *testing.T) {
	_, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"})
	assert.Error(t, err)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o", BaseURL: "https://example.test/v1"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.ModelID())
}

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var templateSchema = &Schema{
	Name: "sdk-test-template",
	Definition: map[string]any{
		"type":       "object",
		"properties": map[string]any{"template": map[string]any{"type": "string"}},
		"required":   []string{"template"},
	},
}

func serve(t *testing.T, status int, body any) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 12},
	}
}

func TestAnthropicProvider(t *testing.T) {
	t.Run("structured output", func(t *testing.T) {
		url := serve(t, http.StatusOK, anthropicMessage(`{"template":"Soit {pointA}."}`, "end_turn"))
		p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "k", Model: "claude-haiku", BaseURL: url})
		require.NoError(t, err)

		resp, err := p.Generate(context.Background(), Request{
			Messages: []Message{{Role: RoleUser, Content: "go"}},
			Schema:   templateSchema,
		})
		require.NoError(t, err)
		assert.JSONEq(t, `{"template":"Soit {pointA}."}`, string(resp.Content))
		assert.Equal(t, 62, resp.Usage.TotalTokens)
		assert.Equal(t, "end", resp.StopReason)
	})

	t.Run("truncated", func(t *testing.T) {
		url := serve(t, http.StatusOK, anthropicMessage(`{"templ`, "max_tokens"))
		p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "k", BaseURL: url})
		require.NoError(t, err)

		_, err = p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "go"}}})
		var mt *ErrMaxTokensExceeded
		assert.ErrorAs(t, err, &mt)
	})

	t.Run("rate limited", func(t *testing.T) {
		url := serve(t, http.StatusTooManyRequests, map[string]any{
			"type":  "error",
			"error": map[string]any{"type": "rate_limit_error", "message": "slow down"},
		})
		p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "k", BaseURL: url})
		require.NoError(t, err)

		_, err = p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "go"}}})
		var rl *ErrRateLimit
		assert.ErrorAs(t, err, &rl)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := NewAnthropicProvider(AnthropicConfig{})
		assert.Error(t, err)
	})
}

func TestOpenAIProvider(t *testing.T) {
	t.Run("structured output", func(t *testing.T) {
		url := serve(t, http.StatusOK, map[string]any{
			"id":    "chatcmpl-test",
			"model": "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": `{"template":"t"}`},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 20, "completion_tokens": 5, "total_tokens": 25},
		})
		p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: url})
		require.NoError(t, err)

		resp, err := p.Generate(context.Background(), Request{
			System:   "sys",
			Messages: []Message{{Role: RoleUser, Content: "go"}},
			Schema:   templateSchema,
		})
		require.NoError(t, err)
		assert.Equal(t, 25, resp.Usage.TotalTokens)
		assert.Equal(t, "gpt-4o-mini", p.ModelID())
	})

	t.Run("server error", func(t *testing.T) {
		url := serve(t, http.StatusServiceUnavailable, map[string]any{
			"error": map[string]any{"message": "overloaded", "type": "server_error"},
		})
		p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", BaseURL: url})
		require.NoError(t, err)

		_, err = p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "go"}}})
		var unavail *ErrProviderUnavailable
		assert.ErrorAs(t, err, &unavail)
	})
}

func TestOpenRouterProvider_DefaultBaseURL(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "k", Model: "openai/gpt-4o-mini"})
	require.NoError(t, err)
	assert.Equal(t, "openai/gpt-4o-mini", p.ModelID())

	_, err = NewOpenRouterProvider(OpenRouterConfig{})
	assert.Error(t, err)
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(templateSchema.Definition)
	assert.Equal(t, []string{"template"}, s.Required)
	require.Contains(t, s.Properties, "template")
	assert.Equal(t, "STRING", string(s.Properties["template"].Type))
}

func TestGeminiProvider_Generate(t *testing.T) {
	t.Run("structured output", func(t *testing.T) {
		var path string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"candidates": []map[string]any{{
					"content": map[string]any{
						"role":  "model",
						"parts": []map[string]any{{"text": `{"template":"Trouve {pointB}."}`}},
					},
					"finishReason": "STOP",
				}},
				"usageMetadata": map[string]any{"promptTokenCount": 12, "candidatesTokenCount": 6, "totalTokenCount": 18},
			})
		}))
		t.Cleanup(srv.Close)

		p, err := NewGeminiProvider(context.Background(), GeminiConfig{APIKey: "k", Model: "gemini-flash", BaseURL: srv.URL})
		require.NoError(t, err)
		assert.Equal(t, "gemini-2.5-flash", p.ModelID())

		resp, err := p.Generate(context.Background(), Request{
			System:   "sys",
			Messages: []Message{{Role: RoleUser, Content: "go"}},
			Schema:   templateSchema,
		})
		require.NoError(t, err)
		assert.JSONEq(t, `{"template":"Trouve {pointB}."}`, string(resp.Content))
		assert.Equal(t, 18, resp.Usage.TotalTokens)
		assert.Equal(t, 6, resp.Usage.OutputTokens)
		assert.True(t, strings.Contains(path, "gemini-2.5-flash:generateContent"), path)
	})

	t.Run("truncated", func(t *testing.T) {
		url := serve(t, http.StatusOK, map[string]any{
			"candidates": []map[string]any{{
				"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": `{"templ`}}},
				"finishReason": "MAX_TOKENS",
			}},
		})
		p, err := NewGeminiProvider(context.Background(), GeminiConfig{APIKey: "k", BaseURL: url})
		require.NoError(t, err)

		_, err = p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "go"}}})
		var trunc *ErrMaxTokensExceeded
		assert.ErrorAs(t, err, &trunc)
	})

	t.Run("rate limited", func(t *testing.T) {
		url := serve(t, http.StatusTooManyRequests, map[string]any{
			"error": map[string]any{"code": 429, "message": "quota", "status": "RESOURCE_EXHAUSTED"},
		})
		p, err := NewGeminiProvider(context.Background(), GeminiConfig{APIKey: "k", BaseURL: url})
		require.NoError(t, err)

		_, err = p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "go"}}})
		var rl *ErrRateLimit
		assert.ErrorAs(t, err, &rl)
	})

	t.Run("api error", func(t *testing.T) {
		url := serve(t, http.StatusBadRequest, map[string]any{
			"error": map[string]any{"code": 400, "message": "bad request", "status": "INVALID_ARGUMENT"},
		})
		p, err := NewGeminiProvider(context.Background(), GeminiConfig{APIKey: "k", BaseURL: url})
		require.NoError(t, err)

		_, err = p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "go"}}})
		var unavail *ErrProviderUnavailable
		assert.ErrorAs(t, err, &unavail)
	})
}

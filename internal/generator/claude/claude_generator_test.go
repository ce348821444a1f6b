package claude_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brushquote/internal/config"
	"brushquote/internal/generator"
	"brushquote/internal/generator/claude"
	"brushquote/internal/port"
)

func newTestGenerator(serverURL string) *claude.Generator {
	cfg := &config.GeneratorProviderConfig{
		Provider:     "claude",
		APIKey:       "test-api-key",
		DefaultModel: "claude-sonnet-4-20250514",
		TimeoutSecs:  30,
	}
	return claude.NewGeneratorWithEndpoint(cfg, serverURL)
}

func testInput() port.GenerateInput {
	return port.GenerateInput{Values: map[string]any{"client_name": "Jordan Alvarez"}}
}

func TestClaudeGenerator_Generate_Success(t *testing.T) {
	responseBody := map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": `{"proposal":{"introduction":"Dear Jordan"},"upsells":[]}`,
			},
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)
		assert.Equal(t, "claude-sonnet-4-20250514", reqBody["model"])
		assert.Equal(t, float64(8192), reqBody["max_tokens"])

		messages := reqBody["messages"].([]interface{})
		assert.Len(t, messages, 1)
		msg := messages[0].(map[string]interface{})
		assert.Equal(t, "user", msg["role"])
		assert.Contains(t, msg["content"].(string), "client_name: Jordan Alvarez")

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(responseBody)
	}))
	defer server.Close()

	gen := newTestGenerator(server.URL)

	result, err := gen.Generate(context.Background(), testInput())

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "claude-sonnet-4-20250514", result.ModelUsed)
	assert.NotEmpty(t, result.PromptUsed)
	assert.JSONEq(t, `{"proposal":{"introduction":"Dear Jordan"},"upsells":[]}`, string(result.Content))
}

func TestClaudeGenerator_Generate_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"rate limited"}}`))
	}))
	defer server.Close()

	gen := newTestGenerator(server.URL)

	result, err := gen.Generate(context.Background(), testInput())

	assert.Nil(t, result)
	require.Error(t, err)

	var rlErr *generator.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "claude", rlErr.Provider)
	assert.Equal(t, 30*time.Second, rlErr.RetryAfter)
}

func TestClaudeGenerator_Generate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"type":"server_error","message":"internal error"}}`))
	}))
	defer server.Close()

	gen := newTestGenerator(server.URL)

	result, err := gen.Generate(context.Background(), testInput())

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic API error (status 500)")
}

func TestClaudeGenerator_Generate_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"content": []map[string]interface{}{}})
	}))
	defer server.Close()

	gen := newTestGenerator(server.URL)

	result, err := gen.Generate(context.Background(), testInput())

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestClaudeGenerator_Generate_TruncatedOutput(t *testing.T) {
	responseBody := map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": `{"proposal":{"introduction":"Dear`},
		},
		"stop_reason": "max_tokens",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(responseBody)
	}))
	defer server.Close()

	gen := newTestGenerator(server.URL)

	result, err := gen.Generate(context.Background(), testInput())

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_tokens")
}

func TestClaudeGenerator_Generate_InvalidJSONOutput(t *testing.T) {
	responseBody := map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": "Here is your proposal! ```json ..."},
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(responseBody)
	}))
	defer server.Close()

	gen := newTestGenerator(server.URL)

	result, err := gen.Generate(context.Background(), testInput())

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing LLM JSON output")
}

func TestClaudeGenerator_Generate_ConnectionRefused(t *testing.T) {
	gen := newTestGenerator("http://localhost:1")

	result, err := gen.Generate(context.Background(), testInput())

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calling anthropic API")
}

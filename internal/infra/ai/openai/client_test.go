package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/stratiq/internal/domain/ai"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewClient("sk-test", "proj_123", "")
	cfg := openai.DefaultConfig("sk-test")
	cfg.BaseURL = srv.URL + "/v1"
	cfg.HTTPClient = &http.Client{Transport: projectTransport{project: "proj_123", next: http.DefaultTransport}}
	c.Client = openai.NewClientWithConfig(cfg)
	return c
}

func TestCompleteSendsJSONRequest(t *testing.T) {
	var got openai.ChatCompletionRequest
	var project string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		project = r.Header.Get("OpenAI-Project")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Role: "assistant", Content: `{"scope":"Retail"}`}}},
		})
	})

	out, err := c.Complete(context.Background(), "sys", "user", ai.Options{JSON: true, Temperature: 0.2})
	require.NoError(t, err)
	assert.Equal(t, `{"scope":"Retail"}`, out)
	assert.Equal(t, "proj_123", project)
	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, defaultMaxTokens, got.MaxTokens)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, got.ResponseFormat.Type)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "sys", got.Messages[0].Content)
	assert.Equal(t, "openai/gpt-4o-mini", c.Name())
}

func TestCompleteMapsQuotaError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"You exceeded your current quota","type":"insufficient_quota","code":"insufficient_quota"}}`))
	})

	_, err := c.Complete(context.Background(), "sys", "user", ai.Options{})
	assert.ErrorIs(t, err, ai.ErrQuotaExceeded)
}

func TestCompleteEmptyResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := c.Complete(context.Background(), "sys", "user", ai.Options{})
	assert.ErrorIs(t, err, ai.ErrEmptyResponse)
}

func TestReasoningModels(t *testing.T) {
	assert.True(t, isReasoningModel("o3-2025-04-16"))
	assert.True(t, isReasoningModel("gpt-5-mini"))
	assert.False(t, isReasoningModel("gpt-4o-mini"))
}

package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/stratiq/internal/domain/ai"
)

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), "", "", "")
	assert.Error(t, err)
}

func TestComplete(t *testing.T) {
	var body map[string]any
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"scope\":\"Retail\"}"}]}}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), "test-key", "", srv.URL)
	require.NoError(t, err)
	out, err := c.Complete(context.Background(), "sys", "user", ai.Options{JSON: true})
	require.NoError(t, err)

	assert.Equal(t, `{"scope":"Retail"}`, out)
	assert.True(t, strings.HasSuffix(path, "models/"+DefaultModel+":generateContent"), path)
	gen, _ := body["generationConfig"].(map[string]any)
	assert.Equal(t, "application/json", gen["responseMimeType"])
	assert.Contains(t, body, "systemInstruction")
	assert.Equal(t, "gemini/"+DefaultModel, c.Name())
}

func TestCompleteQuota(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), "test-key", "", srv.URL)
	require.NoError(t, err)
	_, err = c.Complete(context.Background(), "sys", "user", ai.Options{})
	assert.ErrorIs(t, err, ai.ErrQuotaExceeded)
}

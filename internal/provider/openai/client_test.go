package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Complete(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"name\":\"Plan\"}"}}]}`))
	}))
	defer server.Close()

	client := &Client{APIKey: "test-key", BaseURL: server.URL, Model: "test-model"}

	content, err := client.Complete(context.Background(), "You are a coach.", "Make a plan.")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Plan"}`, content)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-model", gotReq.Model)
	assert.Equal(t, "json_object", gotReq.ResponseFormat.Type)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "You are a coach.", gotReq.Messages[0].Content)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
}

func TestClient_Complete_MissingAPIKey(t *testing.T) {
	client := &Client{}
	_, err := client.Complete(context.Background(), "sys", "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestClient_Complete_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := &Client{APIKey: "test-key", BaseURL: server.URL}
	_, err := client.Complete(context.Background(), "sys", "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestClient_Complete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := &Client{APIKey: "test-key", BaseURL: server.URL}
	_, err := client.Complete(context.Background(), "sys", "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

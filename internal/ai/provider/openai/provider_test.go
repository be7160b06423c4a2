package openai

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

	"github.com/lk2023060901/ai-chatbox-backend/internal/ai/provider/types"
)

func newTestProvider(t *testing.T, baseURL string) *Provider {
	t.Helper()

	p, err := New(&types.Config{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Model:   "gpt-4o",
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	return p
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(&types.Config{BaseURL: "http://localhost"})
	assert.ErrorIs(t, err, types.ErrMissingAPIKey)

	_, err = New(&types.Config{APIKey: "k"})
	assert.ErrorIs(t, err, types.ErrMissingBaseURL)
}

func TestCreateResponse(t *testing.T) {
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/responses", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "resp_123",
			"status": "completed",
			"output": [
				{"type": "message", "role": "assistant", "content": [{"type": "output_text", "text": "Hello"}]}
			]
		}`))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)

	resp, err := p.CreateResponse(context.Background(), &types.ResponseRequest{
		Input: "hi",
	})
	require.NoError(t, err)

	assert.Equal(t, "resp_123", resp.ID)
	require.Len(t, resp.Output, 1)
	assert.Equal(t, types.OutputTypeMessage, resp.Output[0].Type)
	assert.Equal(t, "Hello", resp.Output[0].Content[0].Text)

	// 未指定模型时回填配置的默认模型
	assert.Equal(t, "gpt-4o", gotBody["model"])
}

func TestCreateResponse_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "invalid previous_response_id", "type": "invalid_request_error"}}`))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)

	_, err := p.CreateResponse(context.Background(), &types.ResponseRequest{Input: "hi"})
	require.Error(t, err)

	var provErr *types.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, http.StatusBadRequest, provErr.StatusCode)
	assert.Equal(t, "invalid previous_response_id", provErr.Message)
}

func TestCreateResponse_APIErrorRawBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)

	_, err := p.CreateResponse(context.Background(), &types.ResponseRequest{Input: "hi"})
	require.Error(t, err)

	var provErr *types.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, http.StatusBadGateway, provErr.StatusCode)
	assert.Equal(t, "upstream unavailable", provErr.Message)
}

func TestExtractAPIError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"structured error", `{"error": {"message": "boom"}}`, "boom"},
		{"empty message", `{"error": {"message": ""}}`, `{"error": {"message": ""}}`},
		{"plain text", "gateway timeout", "gateway timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractAPIError([]byte(tt.body)))
		})
	}
}

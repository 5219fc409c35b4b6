package insights_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/bucket/internal/insights"
)

func TestClient_Complete(t *testing.T) {
	var got map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Spend less on coffee.  "}}]}`))
	}))
	defer srv.Close()

	c := insights.NewClient(srv.URL, "secret", "gpt-3.5-turbo", time.Second)

	text, err := c.Complete(context.Background(), []insights.Message{{Role: insights.RoleUser, Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "Spend less on coffee.", text)

	assert.Equal(t, "gpt-3.5-turbo", got["model"])
	assert.InDelta(t, 0.2, got["temperature"], 1e-9)
	assert.InDelta(t, 600, got["max_tokens"], 1e-9)
	assert.InDelta(t, 0.5, got["frequency_penalty"], 1e-9)
	assert.InDelta(t, 0.5, got["presence_penalty"], 1e-9)
	assert.Len(t, got["messages"], 1)
}

func TestClient_Complete_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "Status", status: http.StatusTooManyRequests, body: `{"error":{"message":"slow down"}}`},
		{name: "APIError", status: http.StatusOK, body: `{"error":{"message":"bad key"}}`},
		{name: "NoChoices", status: http.StatusOK, body: `{"choices":[]}`},
		{name: "Garbage", status: http.StatusOK, body: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := insights.NewClient(srv.URL, "", "m", time.Second)

			_, err := c.Complete(context.Background(), nil)
			assert.Error(t, err)
		})
	}
}

package exchange_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/bucket/internal/exchange"
)

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/secret/latest/USD", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":"success","base_code":"USD","conversion_rates":{"USD":1,"EUR":0.9213,"JPY":151.2}}`))
	}))
	defer srv.Close()

	rates, err := exchange.NewClient(srv.URL+"/", "secret", time.Second).Fetch(context.Background(), "USD")
	require.NoError(t, err)
	assert.Len(t, rates, 3)
	assert.True(t, rates["EUR"].Equal(decimal.RequireFromString("0.9213")))
}

func TestClient_Fetch_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "BadStatus", status: http.StatusForbidden, body: `forbidden`},
		{name: "ErrorResult", status: http.StatusOK, body: `{"result":"error","error-type":"invalid-key"}`},
		{name: "MalformedBody", status: http.StatusOK, body: `{"result":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := exchange.NewClient(srv.URL, "k", time.Second).Fetch(context.Background(), "USD")
			assert.Error(t, err)
		})
	}
}

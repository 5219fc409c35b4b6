package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bucketHttp "github.com/MrJamesThe3rd/bucket/internal/http"
	"github.com/MrJamesThe3rd/bucket/internal/http/account"
	"github.com/MrJamesThe3rd/bucket/internal/http/auth"
	"github.com/MrJamesThe3rd/bucket/internal/http/category"
	"github.com/MrJamesThe3rd/bucket/internal/http/export"
	"github.com/MrJamesThe3rd/bucket/internal/http/importcsv"
	"github.com/MrJamesThe3rd/bucket/internal/http/insights"
	"github.com/MrJamesThe3rd/bucket/internal/http/loan"
	"github.com/MrJamesThe3rd/bucket/internal/http/matching"
	"github.com/MrJamesThe3rd/bucket/internal/http/settings"
	"github.com/MrJamesThe3rd/bucket/internal/http/transaction"
	"github.com/MrJamesThe3rd/bucket/internal/http/wallet"
)

var secret = []byte("router-secret")

// newRouter builds the router without services; the requests below are
// answered before any handler reaches its service.
func newRouter() http.Handler {
	return bucketHttp.New(bucketHttp.Handlers{
		Transactions: transaction.NewHandler(nil, nil),
		Accounts:     account.NewHandler(nil, nil),
		Categories:   category.NewHandler(nil, nil),
		Loans:        loan.NewHandler(nil, nil),
		Wallet:       wallet.NewHandler(nil, nil),
		Import:       importcsv.NewHandler(nil, nil),
		Export:       export.NewHandler(nil, nil),
		Matching:     matching.NewHandler(nil),
		Insights:     insights.NewHandler(nil, nil),
		Settings:     settings.NewHandler(nil, nil),
	}, bucketHttp.Options{
		AllowedOrigins: []string{"https://app.example"},
		Secret:         secret,
	})
}

func TestRouter_Healthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RequiresToken(t *testing.T) {
	router := newRouter()

	for _, path := range []string{"/api/v1/accounts", "/api/v1/wallet/overview", "/api/v1/loans"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestRouter_AuthenticatedRequestReachesHandler(t *testing.T) {
	token, err := auth.Issue(secret, "device-1", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/matching/suggest", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "title query parameter is required")
}

func TestRouter_RejectsNonJSONBodies(t *testing.T) {
	token, err := auth.Issue(secret, "device-1", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "text/plain")
	req.ContentLength = 4

	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/accounts", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEqual(t, http.StatusUnauthorized, rec.Code)
}

package api_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/bucket/internal/account"
	"github.com/MrJamesThe3rd/bucket/internal/http/api"
	"github.com/MrJamesThe3rd/bucket/internal/loan"
	"github.com/MrJamesThe3rd/bucket/internal/transaction"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("get: %w", transaction.ErrNotFound), want: http.StatusNotFound},
		{err: loan.ErrRecordNotFound, want: http.StatusNotFound},
		{err: account.ErrLimitReached, want: http.StatusPaymentRequired},
		{err: fmt.Errorf("%w: amount", transaction.ErrInvalid), want: http.StatusBadRequest},
		{err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, api.StatusOf(tt.err))
		})
	}
}

func TestError_HidesInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	api.Error(rec, fmt.Errorf("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pq")
}

func TestRangeFromQuery(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		query     string
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{
			name:      "Dates",
			query:     "start_date=2026-01-01&end_date=2026-01-31",
			wantStart: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
		{
			name:      "Month",
			query:     "year=2026&month=2",
			wantStart: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
		{
			name:      "Default",
			wantStart: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
		{name: "BadDate", query: "start_date=nope&end_date=2026-01-01", wantErr: true},
		{name: "Reversed", query: "start_date=2026-02-01&end_date=2026-01-01", wantErr: true},
		{name: "BadMonth", query: "year=2026&month=13", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)

			got, err := api.RangeFromQuery(req, 15, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.wantStart.Equal(got.Start), "start %s", got.Start)
			assert.True(t, tt.wantEnd.Equal(got.End), "end %s", got.End)
		})
	}
}

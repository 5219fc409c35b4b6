// Package api holds the request and response helpers shared by the v1
// handlers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bucket/internal/account"
	"github.com/MrJamesThe3rd/bucket/internal/category"
	"github.com/MrJamesThe3rd/bucket/internal/exchange"
	"github.com/MrJamesThe3rd/bucket/internal/importer"
	"github.com/MrJamesThe3rd/bucket/internal/loan"
	"github.com/MrJamesThe3rd/bucket/internal/settings"
	"github.com/MrJamesThe3rd/bucket/internal/transaction"
	"github.com/MrJamesThe3rd/bucket/internal/wallet"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes err with the status its sentinel maps to. Unknown errors are
// logged and hidden behind a generic 500.
func Error(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", status)

		return
	}

	http.Error(w, err.Error(), status)
}

func StatusOf(err error) int {
	switch {
	case errors.Is(err, transaction.ErrNotFound),
		errors.Is(err, account.ErrNotFound),
		errors.Is(err, category.ErrNotFound),
		errors.Is(err, loan.ErrNotFound),
		errors.Is(err, loan.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, account.ErrLimitReached),
		errors.Is(err, category.ErrLimitReached),
		errors.Is(err, loan.ErrLimitReached):
		return http.StatusPaymentRequired
	case errors.Is(err, transaction.ErrInvalid),
		errors.Is(err, loan.ErrInvalid),
		errors.Is(err, settings.ErrInvalidCurrency),
		errors.Is(err, importer.ErrUnknownProfile):
		return http.StatusBadRequest
	case errors.Is(err, exchange.ErrRateNotFound):
		return http.StatusUnprocessableEntity
	}

	return http.StatusInternalServerError
}

func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	return nil
}

func IDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", name)
	}

	return id, nil
}

// RangeFromQuery reads start_date/end_date (inclusive days) or year/month.
// Without either it returns the current period for startDay.
func RangeFromQuery(r *http.Request, startDay int, now time.Time) (wallet.Range, error) {
	q := r.URL.Query()

	if s, e := q.Get("start_date"), q.Get("end_date"); s != "" || e != "" {
		start, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return wallet.Range{}, fmt.Errorf("invalid start_date %q", s)
		}

		end, err := time.Parse(time.DateOnly, e)
		if err != nil {
			return wallet.Range{}, fmt.Errorf("invalid end_date %q", e)
		}

		if end.Before(start) {
			return wallet.Range{}, fmt.Errorf("end_date before start_date")
		}

		return wallet.Range{Start: start, End: end.Add(24*time.Hour - time.Nanosecond)}, nil
	}

	if y, m := q.Get("year"), q.Get("month"); y != "" && m != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return wallet.Range{}, fmt.Errorf("invalid year %q", y)
		}

		month, err := strconv.Atoi(m)
		if err != nil || month < 1 || month > 12 {
			return wallet.Range{}, fmt.Errorf("invalid month %q", m)
		}

		return wallet.MonthRange(year, time.Month(month), startDay), nil
	}

	return wallet.CurrentMonth(now, startDay), nil
}

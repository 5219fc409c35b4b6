package wallet

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/bucket/internal/http/api"
	txResponse "github.com/MrJamesThe3rd/bucket/internal/http/transaction"
	"github.com/MrJamesThe3rd/bucket/internal/wallet"
)

type Handler struct {
	svc      *wallet.Service
	sessions api.Sessions
	now      func() time.Time
}

func NewHandler(svc *wallet.Service, sessions api.Sessions) *Handler {
	return &Handler{svc: svc, sessions: sessions, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/overview", h.overview)
	r.Get("/history", h.history)
}

type accountBalanceResponse struct {
	AccountID   uuid.UUID        `json:"account_id"`
	Name        string           `json:"name"`
	Currency    string           `json:"currency"`
	Balance     decimal.Decimal  `json:"balance"`
	BaseBalance *decimal.Decimal `json:"base_balance"`
	Included    bool             `json:"included"`
}

type dayResponse struct {
	Date         string                `json:"date"`
	Income       *decimal.Decimal      `json:"income"`
	Expense      *decimal.Decimal      `json:"expense"`
	Transactions []txResponse.Response `json:"transactions"`
}

type overviewResponse struct {
	PeriodStart  time.Time                `json:"period_start"`
	PeriodEnd    time.Time                `json:"period_end"`
	BaseCurrency string                   `json:"base_currency"`
	Balance      *decimal.Decimal         `json:"balance"`
	Unavailable  []uuid.UUID              `json:"unavailable_accounts,omitempty"`
	Buffer       decimal.Decimal          `json:"buffer"`
	BufferDiff   *decimal.Decimal         `json:"buffer_diff"`
	Income       *decimal.Decimal         `json:"income"`
	Expense      *decimal.Decimal         `json:"expense"`
	Accounts     []accountBalanceResponse `json:"accounts"`
	History      []dayResponse            `json:"history"`
}

func toDays(days []wallet.Day) []dayResponse {
	resp := make([]dayResponse, 0, len(days))
	for _, d := range days {
		resp = append(resp, dayResponse{
			Date:         d.Date.Format(time.DateOnly),
			Income:       d.Income,
			Expense:      d.Expense,
			Transactions: txResponse.ToResponseList(d.Transactions),
		})
	}

	return resp
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Snapshot(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	rng, err := api.RangeFromQuery(r, sess.StartDayOfMonth, h.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	o, err := h.svc.Overview(r.Context(), sess, rng)
	if err != nil {
		api.Error(w, err)
		return
	}

	accounts := make([]accountBalanceResponse, 0, len(o.Accounts))
	for _, ab := range o.Accounts {
		accounts = append(accounts, accountBalanceResponse{
			AccountID:   ab.Account.ID,
			Name:        ab.Account.Name,
			Currency:    ab.Currency,
			Balance:     ab.Balance,
			BaseBalance: ab.BaseBalance,
			Included:    ab.Account.IncludeInBalance,
		})
	}

	api.JSON(w, http.StatusOK, overviewResponse{
		PeriodStart:  o.Period.Start,
		PeriodEnd:    o.Period.End,
		BaseCurrency: o.BaseCurrency,
		Balance:      o.Balance.Total,
		Unavailable:  o.Balance.Unavailable,
		Buffer:       o.Buffer,
		BufferDiff:   o.BufferDiff,
		Income:       o.Totals.Income,
		Expense:      o.Totals.Expense,
		Accounts:     accounts,
		History:      toDays(o.History),
	})
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Snapshot(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	rng, err := api.RangeFromQuery(r, sess.StartDayOfMonth, h.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	days, err := h.svc.History(r.Context(), sess, rng)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, toDays(days))
}

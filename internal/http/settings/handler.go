package settings

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/bucket/internal/http/api"
	"github.com/MrJamesThe3rd/bucket/internal/settings"
)

type Handler struct {
	svc   *settings.Service
	rates settings.RateSyncer
}

func NewHandler(svc *settings.Service, rates settings.RateSyncer) *Handler {
	return &Handler{svc: svc, rates: rates}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Patch("/", h.update)
	r.Post("/rates/sync", h.syncRates)
}

type settingsResponse struct {
	Name              string          `json:"name"`
	Currency          string          `json:"currency"`
	BufferAmount      decimal.Decimal `json:"buffer_amount"`
	Premium           bool            `json:"premium"`
	ShowNotifications bool            `json:"show_notifications"`
	StartDayOfMonth   int             `json:"start_day_of_month"`
}

func toResponse(s *settings.Settings) settingsResponse {
	return settingsResponse{
		Name:              s.Name,
		Currency:          s.Currency,
		BufferAmount:      s.BufferAmount,
		Premium:           s.Premium,
		ShowNotifications: s.ShowNotifications,
		StartDayOfMonth:   s.StartDayOfMonth,
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Get(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(st))
}

type updateSettingsRequest struct {
	Currency          *string          `json:"currency,omitempty"`
	BufferAmount      *decimal.Decimal `json:"buffer_amount,omitempty"`
	ShowNotifications *bool            `json:"show_notifications,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := api.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	if req.Currency != nil {
		if _, err := h.svc.SetCurrency(ctx, *req.Currency); err != nil {
			api.Error(w, err)
			return
		}
	}

	if req.BufferAmount != nil {
		if _, err := h.svc.SetBuffer(ctx, *req.BufferAmount); err != nil {
			api.Error(w, err)
			return
		}
	}

	if req.ShowNotifications != nil {
		if _, err := h.svc.SetShowNotifications(ctx, *req.ShowNotifications); err != nil {
			api.Error(w, err)
			return
		}
	}

	h.get(w, r)
}

func (h *Handler) syncRates(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Get(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	if err := h.rates.Sync(r.Context(), st.Currency); err != nil {
		api.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

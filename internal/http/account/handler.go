package account

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bucket/internal/account"
	"github.com/MrJamesThe3rd/bucket/internal/http/api"
)

type Handler struct {
	svc      *account.Service
	sessions api.Sessions
}

func NewHandler(svc *account.Service, sessions api.Sessions) *Handler {
	return &Handler{svc: svc, sessions: sessions}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/preload", h.preload)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
}

type accountResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Currency         *string   `json:"currency,omitempty"`
	Color            int32     `json:"color"`
	Icon             string    `json:"icon,omitempty"`
	IncludeInBalance bool      `json:"include_in_balance"`
	OrderNum         float64   `json:"order_num"`
	CreatedAt        time.Time `json:"created_at"`
}

func toResponse(a *account.Account) accountResponse {
	return accountResponse{
		ID:               a.ID,
		Name:             a.Name,
		Currency:         a.Currency,
		Color:            a.Color,
		Icon:             a.Icon,
		IncludeInBalance: a.IncludeInBalance,
		OrderNum:         a.OrderNum,
		CreatedAt:        a.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.List(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	resp := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, toResponse(a))
	}

	api.JSON(w, http.StatusOK, resp)
}

func (h *Handler) preload(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.Preload(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	resp := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, toResponse(a))
	}

	api.JSON(w, http.StatusOK, resp)
}

type accountRequest struct {
	Name             *string `json:"name,omitempty"`
	Currency         *string `json:"currency,omitempty"`
	Color            *int32  `json:"color,omitempty"`
	Icon             *string `json:"icon,omitempty"`
	IncludeInBalance *bool   `json:"include_in_balance,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := api.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == nil || *req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	sess, err := h.sessions.Snapshot(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	params := account.CreateParams{
		Name:             *req.Name,
		Currency:         req.Currency,
		IncludeInBalance: req.IncludeInBalance == nil || *req.IncludeInBalance,
	}

	if req.Color != nil {
		params.Color = *req.Color
	}

	if req.Icon != nil {
		params.Icon = *req.Icon
	}

	a, err := h.svc.Create(r.Context(), sess, params)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusCreated, toResponse(a))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := api.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(a))
}

// update changes an account in place. Setting currency to an empty string
// makes the account follow the base currency again.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := api.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req accountRequest
	if err := api.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess, err := h.sessions.Snapshot(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}

	if req.Name != nil {
		a.Name = *req.Name
	}

	if req.Currency != nil {
		a.Currency = req.Currency
	}

	if req.Color != nil {
		a.Color = *req.Color
	}

	if req.Icon != nil {
		a.Icon = *req.Icon
	}

	if req.IncludeInBalance != nil {
		a.IncludeInBalance = *req.IncludeInBalance
	}

	if err := h.svc.Update(r.Context(), sess, a); err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(a))
}

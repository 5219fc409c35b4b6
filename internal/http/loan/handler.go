package loan

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/bucket/internal/http/api"
	"github.com/MrJamesThe3rd/bucket/internal/loan"
)

type Handler struct {
	svc      *loan.Service
	sessions api.Sessions
}

func NewHandler(svc *loan.Service, sessions api.Sessions) *Handler {
	return &Handler{svc: svc, sessions: sessions}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)

	r.Post("/{id}/records", h.createRecord)
	r.Put("/records/{recordID}", h.updateRecord)
	r.Delete("/records/{recordID}", h.deleteRecord)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	loans, err := h.svc.List(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	resp := make([]loanResponse, 0, len(loans))
	for _, l := range loans {
		resp = append(resp, toLoanResponse(l))
	}

	api.JSON(w, http.StatusOK, resp)
}

type loanRequest struct {
	Name              string          `json:"name"`
	Amount            decimal.Decimal `json:"amount"`
	Type              loan.Type       `json:"type"`
	AccountID         *uuid.UUID      `json:"account_id,omitempty"`
	Color             int32           `json:"color"`
	Icon              string          `json:"icon"`
	CreateTransaction bool            `json:"create_transaction"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if err := api.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess, err := h.sessions.Snapshot(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	l, err := h.svc.Create(r.Context(), sess, loan.CreateParams{
		Name:              req.Name,
		Amount:            req.Amount,
		Type:              req.Type,
		AccountID:         req.AccountID,
		Color:             req.Color,
		Icon:              req.Icon,
		CreateTransaction: req.CreateTransaction,
	})
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusCreated, toLoanResponse(l))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := api.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, toDetailsResponse(d))
}

// update replaces the loan. With create_transaction false any mirrored
// principal transaction is soft-deleted, and that removal is final: sending
// create_transaction true later leaves the loan without a mirrored
// transaction.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := api.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req loanRequest
	if err := api.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess, err := h.sessions.Snapshot(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	l := &loan.Loan{
		ID:        id,
		Name:      req.Name,
		Amount:    req.Amount,
		Type:      req.Type,
		AccountID: req.AccountID,
		Color:     req.Color,
		Icon:      req.Icon,
	}

	if err := h.svc.Update(r.Context(), sess, l, req.CreateTransaction); err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, toLoanResponse(l))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := api.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		api.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type recordRequest struct {
	Amount            decimal.Decimal `json:"amount"`
	AccountID         *uuid.UUID      `json:"account_id,omitempty"`
	Note              string          `json:"note"`
	DateTime          time.Time       `json:"date_time"`
	CreateTransaction bool            `json:"create_transaction"`
}

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	loanID, err := api.IDParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req recordRequest
	if err := api.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess, err := h.sessions.Snapshot(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	rec, err := h.svc.CreateRecord(r.Context(), sess, loanID, loan.RecordParams{
		Amount:            req.Amount,
		AccountID:         req.AccountID,
		Note:              req.Note,
		DateTime:          req.DateTime,
		CreateTransaction: req.CreateTransaction,
	})
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusCreated, toRecordResponse(rec))
}

func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	id, err := api.IDParam(r, "recordID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req recordRequest
	if err := api.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess, err := h.sessions.Snapshot(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	dt := req.DateTime
	if dt.IsZero() {
		dt = time.Now().UTC()
	}

	rec := &loan.Record{
		ID:        id,
		Amount:    req.Amount,
		AccountID: req.AccountID,
		Note:      req.Note,
		DateTime:  dt,
	}

	if err := h.svc.UpdateRecord(r.Context(), sess, rec, req.CreateTransaction); err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, toRecordResponse(rec))
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := api.IDParam(r, "recordID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteRecord(r.Context(), id); err != nil {
		api.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

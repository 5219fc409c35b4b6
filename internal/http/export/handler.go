package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/bucket/internal/export"
	"github.com/MrJamesThe3rd/bucket/internal/http/api"
	txResponse "github.com/MrJamesThe3rd/bucket/internal/http/transaction"
	"github.com/MrJamesThe3rd/bucket/internal/transaction"
)

type Handler struct {
	svc      *export.Service
	sessions api.Sessions
}

func NewHandler(svc *export.Service, sessions api.Sessions) *Handler {
	return &Handler{svc: svc, sessions: sessions}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.metadata)
	r.Post("/download", h.download)
}

type exportRequest struct {
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

type exportMetadataResponse struct {
	Transactions []txResponse.Response `json:"transactions"`
	Summary      string                `json:"summary"`
}

func (h *Handler) filter(r *http.Request) (transaction.ListFilter, error) {
	var req exportRequest
	if r.ContentLength != 0 {
		if err := api.Decode(r, &req); err != nil {
			return transaction.ListFilter{}, err
		}
	}

	return transaction.ListFilter{StartDate: req.StartDate, EndDate: req.EndDate}, nil
}

func (h *Handler) metadata(w http.ResponseWriter, r *http.Request) {
	filter, err := h.filter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess, err := h.sessions.Snapshot(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	items, err := h.svc.Items(r.Context(), sess, filter)
	if err != nil {
		api.Error(w, err)
		return
	}

	txs := make([]*transaction.Transaction, 0, len(items))
	for _, item := range items {
		txs = append(txs, item.Transaction)
	}

	api.JSON(w, http.StatusOK, exportMetadataResponse{
		Transactions: txResponse.ToResponseList(txs),
		Summary:      h.svc.GenerateSummary(items),
	})
}

// download streams the export as a CSV readable by the ivy import profile.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	filter, err := h.filter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess, err := h.sessions.Snapshot(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	var buf bytes.Buffer
	if _, err := h.svc.Export(r.Context(), sess, &buf, filter); err != nil {
		api.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"bucket_export_%s.csv\"", time.Now().Format("20060102")))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

package importcsv

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bucket/internal/encoding"
	"github.com/MrJamesThe3rd/bucket/internal/http/api"
	"github.com/MrJamesThe3rd/bucket/internal/importer"
)

const maxUploadSize = 10 << 20

type Handler struct {
	svc      *importer.Service
	sessions api.Sessions
}

func NewHandler(svc *importer.Service, sessions api.Sessions) *Handler {
	return &Handler{svc: svc, sessions: sessions}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type failedRowResponse struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type importResponse struct {
	RowsFound            int                 `json:"rows_found"`
	TransactionsImported int                 `json:"transactions_imported"`
	AccountsImported     int                 `json:"accounts_imported"`
	CategoriesImported   int                 `json:"categories_imported"`
	FailedRows           []failedRowResponse `json:"failed_rows"`
}

// importCSV expects a multipart form with a file field and optional
// profile (defaults to ivy), charset and account_id fields.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	opts := importer.Options{
		Profile: importer.Profile(r.FormValue("profile")),
		Charset: encoding.ParseCharset(r.FormValue("charset")),
	}

	if opts.Profile == "" {
		opts.Profile = importer.ProfileIvy
	}

	if s := r.FormValue("account_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid account_id", http.StatusBadRequest)
			return
		}

		opts.AccountID = &id
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	sess, err := h.sessions.Snapshot(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	res, err := h.svc.Import(r.Context(), sess, file, opts)
	if err != nil {
		api.Error(w, err)
		return
	}

	resp := importResponse{
		RowsFound:            res.RowsFound,
		TransactionsImported: res.TransactionsImported,
		AccountsImported:     res.AccountsImported,
		CategoriesImported:   res.CategoriesImported,
		FailedRows:           make([]failedRowResponse, 0, len(res.FailedRows)),
	}

	for _, f := range res.FailedRows {
		resp.FailedRows = append(resp.FailedRows, failedRowResponse{Line: f.Line, Reason: f.Reason})
	}

	api.JSON(w, http.StatusOK, resp)
}

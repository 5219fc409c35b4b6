package insights

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/bucket/internal/http/api"
	"github.com/MrJamesThe3rd/bucket/internal/insights"
)

type Handler struct {
	svc      *insights.Service
	sessions api.Sessions
	now      func() time.Time
}

func NewHandler(svc *insights.Service, sessions api.Sessions) *Handler {
	return &Handler{svc: svc, sessions: sessions, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.generate)
}

type insightRequest struct {
	Question string `json:"question"`
}

type insightResponse struct {
	Text     string `json:"text"`
	Advisory bool   `json:"advisory"`
}

// generate takes the same range query parameters as the wallet endpoints.
func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var req insightRequest
	if r.ContentLength != 0 {
		if err := api.Decode(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

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

	in, err := h.svc.Generate(r.Context(), sess, rng, req.Question)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, insightResponse{Text: in.Text, Advisory: in.Advisory})
}

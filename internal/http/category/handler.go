package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bucket/internal/category"
	"github.com/MrJamesThe3rd/bucket/internal/http/api"
)

type Handler struct {
	svc      *category.Service
	sessions api.Sessions
}

func NewHandler(svc *category.Service, sessions api.Sessions) *Handler {
	return &Handler{svc: svc, sessions: sessions}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/preload", h.preload)
}

type categoryResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Color    int32     `json:"color"`
	Icon     string    `json:"icon,omitempty"`
	OrderNum float64   `json:"order_num"`
}

func toResponseList(categories []*category.Category) []categoryResponse {
	resp := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, categoryResponse{
			ID:       c.ID,
			Name:     c.Name,
			Color:    c.Color,
			Icon:     c.Icon,
			OrderNum: c.OrderNum,
		})
	}

	return resp
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.List(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponseList(categories))
}

type createCategoryRequest struct {
	Name  string `json:"name"`
	Color int32  `json:"color"`
	Icon  string `json:"icon"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := api.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	sess, err := h.sessions.Snapshot(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	c, err := h.svc.Create(r.Context(), sess, category.CreateParams{
		Name:  req.Name,
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusCreated, toResponseList([]*category.Category{c})[0])
}

func (h *Handler) preload(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Preload(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponseList(categories))
}

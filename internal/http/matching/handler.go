package matching

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bucket/internal/http/api"
	"github.com/MrJamesThe3rd/bucket/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
}

type suggestResponse struct {
	Title      string     `json:"title"`
	CategoryID *uuid.UUID `json:"category_id"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		http.Error(w, "title query parameter is required", http.StatusBadRequest)
		return
	}

	categoryID, err := h.svc.Suggest(r.Context(), title)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, suggestResponse{Title: title, CategoryID: categoryID})
}

type learnRequest struct {
	TitlePattern string    `json:"title_pattern"`
	CategoryID   uuid.UUID `json:"category_id"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := api.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.TitlePattern == "" || req.CategoryID == uuid.Nil {
		http.Error(w, "title_pattern and category_id are required", http.StatusBadRequest)
		return
	}

	if err := h.svc.Learn(r.Context(), req.TitlePattern, req.CategoryID); err != nil {
		api.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

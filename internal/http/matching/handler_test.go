package matching_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	handler "github.com/MrJamesThe3rd/bucket/internal/http/matching"
	"github.com/MrJamesThe3rd/bucket/internal/matching"
)

func setup(t *testing.T) (*matching.MockRepository, http.Handler) {
	repo := matching.NewMockRepository(gomock.NewController(t))

	r := chi.NewRouter()
	handler.NewHandler(matching.NewService(repo)).Routes(r)

	return repo, r
}

func TestHandler_Suggest(t *testing.T) {
	repo, h := setup(t)
	categoryID := uuid.New()

	repo.EXPECT().FindMatch(gomock.Any(), "PINGO DOCE").Return(&categoryID, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/suggest?title=PINGO+DOCE", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Title      string     `json:"title"`
		CategoryID *uuid.UUID `json:"category_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.CategoryID)
	assert.Equal(t, categoryID, *resp.CategoryID)
}

func TestHandler_Learn(t *testing.T) {
	repo, h := setup(t)
	categoryID := uuid.New()

	repo.EXPECT().CreateMapping(gomock.Any(), "PINGO DOCE", categoryID).Return(nil)

	body := `{"title_pattern": "PINGO DOCE", "category_id": "` + categoryID.String() + `"}`

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestHandler_LearnMissingFields(t *testing.T) {
	_, h := setup(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title_pattern": "X"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/queries/list_categories"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/usecases/create_category"
)

// CategoriesHandler serves /api/categories.
type CategoriesHandler struct {
	Responder

	createCategory *create_category.Interactor
	listCategories *list_categories.Query
}

func NewCategoriesHandler(
	createCategory *create_category.Interactor,
	listCategories *list_categories.Query,
	rs Responder,
) *CategoriesHandler {
	return &CategoriesHandler{
		Responder:      rs,
		createCategory: createCategory,
		listCategories: listCategories,
	}
}

func (h *CategoriesHandler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
}

func (h *CategoriesHandler) list(w http.ResponseWriter, r *http.Request) {
	views, err := h.listCategories.Execute(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]Category, 0, len(views))
	for _, v := range views {
		out = append(out, toCategory(v))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *CategoriesHandler) create(w http.ResponseWriter, r *http.Request) {
	var in CategoryInput
	if err := decodeBody(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	view, err := h.createCategory.Execute(r.Context(), &create_category.Request{
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/categories/%d", view.ID))
	h.writeJSON(w, http.StatusCreated, toCategory(view))
}

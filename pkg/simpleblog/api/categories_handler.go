package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/simple-blog/pkg/simpleblog"
)

// CategoriesHandler handles HTTP requests for categories. Category
// management is plain CRUD maintained outside the core; the listing feeds
// the post filter.
type CategoriesHandler struct {
	service simpleblog.Service
}

// NewCategoriesHandler creates a new categories handler
func NewCategoriesHandler(service simpleblog.Service) *CategoriesHandler {
	return &CategoriesHandler{service: service}
}

// Routes returns the routes for categories
func (h *CategoriesHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListCategories)
	r.Get("/{id}", h.GetCategory)

	return r
}

// ListCategories lists all categories
func (h *CategoriesHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, categories)
}

// GetCategory fetches a single category
func (h *CategoriesHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, simpleblog.ErrCategoryNotFound)
		return
	}

	category, err := h.service.GetCategory(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, category)
}

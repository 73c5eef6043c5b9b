package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/pos-terminal/internal/catalog"
)

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if products == nil {
		products = []catalog.Product{}
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/products/")
	p, err := h.catalog.Lookup(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		respondJSONError(w, "product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.catalog.Create(r.Context(), p)
	if err != nil {
		respondJSONError(w, err.Error(), catalogStatus(err))
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/products/")

	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	p.ID = id

	if err := h.catalog.Update(r.Context(), p); err != nil {
		respondJSONError(w, err.Error(), catalogStatus(err))
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/products/")

	outcome, err := h.catalog.Delete(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		respondJSONError(w, "product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, outcome)
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if categories == nil {
		categories = []catalog.Category{}
	}
	respondJSON(w, http.StatusOK, categories)
}

func catalogStatus(err error) int {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrInvalidName), errors.Is(err, catalog.ErrInvalidPrice),
		errors.Is(err, catalog.ErrCategoryUnknown):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

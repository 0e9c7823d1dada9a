package handler

import (
	"net/http"
	"strconv"

	"reeltrivia/internal/dataset"
	"reeltrivia/internal/service"
)

// CatalogHandler serves the read-only dataset views.
type CatalogHandler struct {
	catalogSvc *service.CatalogService
}

func NewCatalogHandler(catalogSvc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// Search handles GET /v1/search.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := dataset.SearchParams{
		Query:      q.Get("q"),
		AgeLower:   intParam(q.Get("ageLower")),
		AgeUpper:   intParam(q.Get("ageUpper")),
		SortKey:    q.Get("sortKey"),
		Descending: q.Get("order") == "desc",
	}

	results := h.catalogSvc.Search(params)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
		"count":   len(results),
	})
}

// Genres handles GET /v1/genres.
func (h *CatalogHandler) Genres(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalogSvc.Genres())
}

// Bounds handles GET /v1/bounds.
func (h *CatalogHandler) Bounds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalogSvc.Bounds())
}

// Franchises handles GET /v1/franchises.
func (h *CatalogHandler) Franchises(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalogSvc.Franchises())
}

func intParam(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

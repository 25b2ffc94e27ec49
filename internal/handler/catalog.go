package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/campmatch/internal/domain"
)

// ListCategories handles GET /categories.
// The optional ?prefix= filters by slug prefix.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	var prefix string
	if err := runtime.BindQueryParameter("form", true, false, "prefix", r.URL.Query(), &prefix); err != nil {
		badRequest(w, err.Error())
		return
	}

	categories, err := s.catalog.ListCategories(r.Context(), prefix)
	if err != nil {
		internalError(w, r, err)
		return
	}

	resp := make([]Category, len(categories))
	for i, c := range categories {
		resp[i] = categoryToResponse(c)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetCategory handles GET /categories/{slug}.
func (s *Server) GetCategory(w http.ResponseWriter, r *http.Request) {
	c, err := s.catalog.GetCategory(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		serviceError(w, r, err, "category not found")
		return
	}
	writeJSON(w, http.StatusOK, categoryToResponse(c))
}

// ListCamps handles GET /camps?page=&limit=. It is the fallback listing
// shown when no camp clears the match threshold, featured camps first.
// The total is also sent as X-Total-Count.
func (s *Server) ListCamps(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	if err := runtime.BindQueryParameter("form", true, false, "page", r.URL.Query(), &page); err != nil {
		badRequest(w, "page must be an integer")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		badRequest(w, "limit must be an integer")
		return
	}
	p := domain.NewPage(page, limit)

	camps, total, err := s.catalog.ListCamps(r.Context(), p)
	if err != nil {
		internalError(w, r, err)
		return
	}

	data := make([]Camp, len(camps))
	for i, c := range camps {
		data[i] = campToResponse(c)
	}
	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	writeJSON(w, http.StatusOK, CampList{
		Data:       data,
		Pagination: Pagination{Page: p.Number, Limit: p.Size, Total: total},
	})
}

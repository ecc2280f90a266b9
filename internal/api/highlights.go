package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rasmushax/eridehero/internal/compare"
	"github.com/rasmushax/eridehero/internal/stats"
	"github.com/rasmushax/eridehero/internal/store"
)

type HighlightsHandler struct {
	store    store.Store
	registry *compare.Registry
	stats    *stats.Service
}

func NewHighlightsHandler(s store.Store, reg *compare.Registry, statsSvc *stats.Service) *HighlightsHandler {
	return &HighlightsHandler{store: s, registry: reg, stats: statsSvc}
}

type HighlightsResponse struct {
	Slug     string                `json:"slug"`
	Name     string                `json:"name"`
	Category string                `json:"category"`
	Result   *compare.SingleResult `json:"result"`
}

// Highlights classifies a single product against its price bracket.
// GET /api/v1/products/{slug}/highlights
func (h *HighlightsHandler) Highlights(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.store.GetProductBySlug(r.Context(), slug)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if product == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
		return
	}

	cp := product.ToCompare()
	if h.stats != nil {
		if st, err := h.stats.StatsFor(r.Context(), product.Slug, product.Category); err == nil {
			cp.Stats = st
		}
	}

	writeJSON(w, http.StatusOK, HighlightsResponse{
		Slug:     product.Slug,
		Name:     product.Name,
		Category: product.Category,
		Result:   h.registry.Single(cp, product.Category),
	})
}

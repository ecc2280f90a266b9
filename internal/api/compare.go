package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rasmushax/eridehero/internal/compare"
	"github.com/rasmushax/eridehero/internal/events"
	"github.com/rasmushax/eridehero/internal/stats"
	"github.com/rasmushax/eridehero/internal/store"
)

type CompareHandler struct {
	store    store.Store
	registry *compare.Registry
	stats    *stats.Service
	bus      events.Client
}

func NewCompareHandler(s store.Store, reg *compare.Registry, statsSvc *stats.Service, bus events.Client) *CompareHandler {
	return &CompareHandler{store: s, registry: reg, stats: statsSvc, bus: bus}
}

type CompareRequest struct {
	Slugs []string `json:"slugs"`
	Type  string   `json:"type"`
}

type CompareResponse struct {
	Type       string                      `json:"type"`
	Products   []string                    `json:"products"`
	Advantages [][]compare.AdvantageRecord `json:"advantages"`
}

// Compare runs the advantage engine over the requested products.
// POST /api/v1/compare
func (h *CompareHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Slugs) == 0 || req.Type == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "slugs and type required"})
		return
	}

	products, err := h.store.GetProductsBySlugs(r.Context(), req.Slugs)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if len(products) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no products found"})
		return
	}

	cmpProducts := make([]compare.Product, len(products))
	slugs := make([]string, len(products))
	for i, p := range products {
		cmpProducts[i] = p.ToCompare()
		slugs[i] = p.Slug
	}

	// Single-product mode needs population stats attached.
	if len(cmpProducts) == 1 && h.stats != nil {
		if st, err := h.stats.StatsFor(r.Context(), products[0].Slug, req.Type); err == nil {
			cmpProducts[0].Stats = st
		}
	}

	advantages := h.registry.Calculate(cmpProducts, req.Type)

	if h.bus != nil {
		lens := make([]int, len(advantages))
		for i := range advantages {
			lens[i] = len(advantages[i])
		}
		_ = h.bus.Publish(events.SubjectCompareComputed(req.Type), events.CompareComputedEvent{
			Category:     req.Type,
			ProductIDs:   slugs,
			Mode:         compareMode(len(cmpProducts)),
			ComputedAt:   time.Now().UTC(),
			AdvantageLen: lens,
		})
	}

	writeJSON(w, http.StatusOK, CompareResponse{
		Type:       req.Type,
		Products:   slugs,
		Advantages: advantages,
	})
}

func compareMode(n int) string {
	switch n {
	case 1:
		return "single"
	case 2:
		return "head_to_head"
	default:
		return "multi"
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

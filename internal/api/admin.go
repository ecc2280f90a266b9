package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/rasmushax/eridehero/internal/events"
	"github.com/rasmushax/eridehero/internal/stats"
	"github.com/rasmushax/eridehero/internal/store"
)

type AdminHandler struct {
	store store.Store
	stats *stats.Service
	bus   events.Client
}

func NewAdminHandler(s store.Store, statsSvc *stats.Service, bus events.Client) *AdminHandler {
	return &AdminHandler{store: s, stats: statsSvc, bus: bus}
}

type StatsSummary struct {
	Category     string         `json:"category"`
	RefreshedAt  time.Time      `json:"refreshed_at"`
	ProductCount int            `json:"product_count"`
	BracketSizes map[string]int `json:"bracket_sizes"`
}

// Stats reports the cached population snapshots without the per-product
// detail, which can run to thousands of entries.
// GET /api/v1/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.stats == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "stats disabled"})
		return
	}

	snaps := h.stats.Snapshots()
	summaries := make([]StatsSummary, 0, len(snaps))
	for _, snap := range snaps {
		summaries = append(summaries, StatsSummary{
			Category:     snap.Category,
			RefreshedAt:  snap.RefreshedAt,
			ProductCount: snap.ProductCount,
			BracketSizes: snap.BracketSizes,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Category < summaries[j].Category })

	writeJSON(w, http.StatusOK, map[string]interface{}{"snapshots": summaries})
}

// Refresh forces a recompute of every category snapshot.
// POST /api/v1/stats/refresh
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if h.stats == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "stats disabled"})
		return
	}

	if err := h.stats.RefreshAll(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

type UpsertProductRequest struct {
	Slug     string         `json:"slug"`
	Name     string         `json:"name"`
	Category string         `json:"category"`
	Price    float64        `json:"price"`
	Specs    map[string]any `json:"specs"`
}

// UpsertProduct creates or replaces a product and invalidates its category's
// population snapshot.
// POST /api/v1/products
func (h *AdminHandler) UpsertProduct(w http.ResponseWriter, r *http.Request) {
	var req UpsertProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Slug == "" || req.Category == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "slug and category required"})
		return
	}

	p := &store.Product{
		ID:       uuid.New(),
		Slug:     req.Slug,
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Specs:    req.Specs,
	}
	if err := h.store.UpsertProduct(r.Context(), p); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.stats != nil {
		h.stats.Invalidate(req.Category)
	}
	if h.bus != nil {
		_ = h.bus.Publish(events.SubjectProductChanged(req.Slug), events.ProductUpdatedEvent{
			Slug:     req.Slug,
			Category: req.Category,
		})
	}

	writeJSON(w, http.StatusCreated, p)
}

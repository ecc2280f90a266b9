package api

import (
	"net/http"
	"sort"

	"github.com/rasmushax/eridehero/internal/catalog"
)

type CategoriesHandler struct {
	catalog *catalog.Catalog
}

func NewCategoriesHandler(cat *catalog.Catalog) *CategoriesHandler {
	return &CategoriesHandler{catalog: cat}
}

type CategorySummary struct {
	Slug     string   `json:"slug"`
	Specs    []string `json:"specs"`
	Brackets int      `json:"brackets"`
}

// List returns the configured categories and their comparable spec keys.
// GET /api/v1/categories
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries := make([]CategorySummary, 0, len(h.catalog.Categories))
	for slug, cat := range h.catalog.Categories {
		keys := make([]string, len(cat.Specs))
		for i, def := range cat.Specs {
			keys[i] = def.Key
		}
		summaries = append(summaries, CategorySummary{
			Slug:     slug,
			Specs:    keys,
			Brackets: len(h.catalog.BracketsFor(slug)),
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Slug < summaries[j].Slug })

	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": summaries})
}

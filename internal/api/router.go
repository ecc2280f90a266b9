package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rasmushax/eridehero/internal/catalog"
	"github.com/rasmushax/eridehero/internal/compare"
	"github.com/rasmushax/eridehero/internal/events"
	"github.com/rasmushax/eridehero/internal/stats"
	"github.com/rasmushax/eridehero/internal/store"
)

func NewRouter(s store.Store, reg *compare.Registry, cat *catalog.Catalog, statsSvc *stats.Service, bus events.Client, adminToken string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	compareH := NewCompareHandler(s, reg, statsSvc, bus)
	highlights := NewHighlightsHandler(s, reg, statsSvc)
	categories := NewCategoriesHandler(cat)
	admin := NewAdminHandler(s, statsSvc, bus)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/compare", compareH.Compare)
		r.Get("/products/{slug}/highlights", highlights.Highlights)
		r.Get("/categories", categories.List)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Get("/stats", admin.Stats)
			r.Post("/stats/refresh", admin.Refresh)
			r.Post("/products", admin.UpsertProduct)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

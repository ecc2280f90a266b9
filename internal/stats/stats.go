// Package stats computes the population statistics the single-product mode
// consumes: per-bracket percentiles and percent-vs-average deviations for
// every spec of every product in a category. The comparison engine itself is
// bracket-size-agnostic; this layer applies the small-bracket fallback and
// feeds the engine's classifier.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rasmushax/eridehero/internal/catalog"
	"github.com/rasmushax/eridehero/internal/compare"
	"github.com/rasmushax/eridehero/internal/events"
	"github.com/rasmushax/eridehero/internal/store"
)

// CategorySnapshot is one refresh of a category's population statistics.
type CategorySnapshot struct {
	Category     string                                  `json:"category"`
	RefreshedAt  time.Time                               `json:"refreshed_at"`
	ProductCount int                                     `json:"product_count"`
	BracketSizes map[string]int                          `json:"bracket_sizes"`
	Products     map[string]map[string]compare.SpecStats `json:"products"` // slug -> spec key -> stats
}

// Service owns snapshot computation and lookup. Events and cache are
// optional collaborators, nil-safe like the rest of the wiring.
type Service struct {
	store    store.Store
	catalog  *catalog.Catalog
	registry *compare.Registry
	bus      events.Client
	cache    *Cache
	logger   *slog.Logger

	mu        sync.RWMutex
	snapshots map[string]*CategorySnapshot
}

func New(s store.Store, cat *catalog.Catalog, reg *compare.Registry, bus events.Client, cache *Cache, logger *slog.Logger) *Service {
	return &Service{
		store:     s,
		catalog:   cat,
		registry:  reg,
		bus:       bus,
		cache:     cache,
		logger:    logger,
		snapshots: make(map[string]*CategorySnapshot),
	}
}

// StatsFor returns the latest statistics for one product, computing the
// category snapshot on first use. Nil when the product is unknown to the
// population or the category is unsupported.
func (s *Service) StatsFor(ctx context.Context, slug, category string) (map[string]compare.SpecStats, error) {
	cat := s.catalog.Resolve(category)
	if cat == nil {
		return nil, nil
	}

	s.mu.RLock()
	snap := s.snapshots[cat.Slug]
	s.mu.RUnlock()

	// A restarted instance can serve from the Redis snapshot while the
	// first refresh is still pending.
	if snap == nil && s.cache != nil {
		if cached, err := s.cache.LoadSnapshot(ctx, cat.Slug); err == nil && cached != nil {
			s.mu.Lock()
			s.snapshots[cat.Slug] = cached
			s.mu.Unlock()
			snap = cached
		}
	}

	if snap == nil {
		var err error
		snap, err = s.Refresh(ctx, cat.Slug)
		if err != nil {
			return nil, err
		}
	}
	if snap == nil {
		return nil, nil
	}
	return snap.Products[slug], nil
}

// Snapshot returns the cached snapshot for a category without refreshing.
func (s *Service) Snapshot(category string) *CategorySnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshots[category]
}

// Snapshots returns every cached snapshot.
func (s *Service) Snapshots() []*CategorySnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*CategorySnapshot, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		out = append(out, snap)
	}
	return out
}

// Invalidate drops a category's snapshot; the next lookup recomputes it.
func (s *Service) Invalidate(category string) {
	if cat := s.catalog.Resolve(category); cat != nil {
		category = cat.Slug
	}
	s.mu.Lock()
	delete(s.snapshots, category)
	s.mu.Unlock()
}

// Refresh recomputes a category's snapshot from the product population.
func (s *Service) Refresh(ctx context.Context, category string) (*CategorySnapshot, error) {
	cat := s.catalog.Resolve(category)
	if cat == nil {
		return nil, nil
	}
	classifier := s.registry.Classifier(cat.Slug)
	if classifier == nil {
		return nil, nil
	}

	products, err := s.store.ListProductsByCategory(ctx, cat.Slug)
	if err != nil {
		return nil, fmt.Errorf("load %s population: %w", cat.Slug, err)
	}

	snap := buildSnapshot(s.catalog, cat, classifier, products)

	s.mu.Lock()
	s.snapshots[cat.Slug] = snap
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.StoreSnapshot(ctx, snap); err != nil {
			s.logger.Warn("failed to cache stats snapshot", "category", cat.Slug, "error", err)
		}
	}
	if s.bus != nil {
		_ = s.bus.Publish(events.SubjectStatsRefreshed(cat.Slug), events.StatsRefreshedEvent{
			Category:    cat.Slug,
			Products:    snap.ProductCount,
			Brackets:    len(snap.BracketSizes),
			RefreshedAt: snap.RefreshedAt,
		})
	}
	return snap, nil
}

// RefreshAll recomputes every category present in the store.
func (s *Service) RefreshAll(ctx context.Context) error {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	for _, c := range categories {
		if _, err := s.Refresh(ctx, c); err != nil {
			s.logger.Warn("stats refresh failed", "category", c, "error", err)
		}
	}
	return nil
}

// buildSnapshot is the pure computation: bracket grouping, then per spec per
// product a direction-adjusted percentile and percent-vs-average. Brackets
// under the classifier's minimum size fall back to the whole category.
func buildSnapshot(fullCat *catalog.Catalog, cat *catalog.Category, classifier *compare.BracketClassifier, products []*store.Product) *CategorySnapshot {
	snap := &CategorySnapshot{
		Category:     cat.Slug,
		RefreshedAt:  time.Now().UTC(),
		ProductCount: len(products),
		BracketSizes: make(map[string]int),
		Products:     make(map[string]map[string]compare.SpecStats, len(products)),
	}

	accessor := compare.NewAccessor(fullCat, cat)
	byBracket := make(map[string][]*store.Product)
	for _, p := range products {
		key := classifier.Classify(p.Price).Key
		byBracket[key] = append(byBracket[key], p)
	}
	for key, members := range byBracket {
		snap.BracketSizes[key] = len(members)
	}

	// Per spec, pre-resolve numeric values for the whole category once.
	type specValues struct {
		def    catalog.SpecDefinition
		values map[string]float64 // slug -> value
	}
	resolved := make([]specValues, 0, len(cat.Specs))
	for _, def := range cat.Specs {
		sv := specValues{def: def, values: make(map[string]float64)}
		for _, p := range products {
			raw, ok := accessor.Resolve(p.Specs, def.Key)
			if !ok {
				continue
			}
			if f, ok := compare.NumericValue(raw, def, fullCat.Transforms); ok {
				sv.values[p.Slug] = f
			}
		}
		resolved = append(resolved, sv)
	}

	minSize := classifier.MinBracketSize()
	for _, p := range products {
		population := byBracket[classifier.Classify(p.Price).Key]
		if len(population) < minSize {
			population = products
		}

		productStats := make(map[string]compare.SpecStats)
		for _, sv := range resolved {
			mine, ok := sv.values[p.Slug]
			if !ok {
				continue
			}
			st, ok := computeSpecStats(mine, p.Slug, population, sv.values, sv.def.HigherIsBetter())
			if ok {
				productStats[sv.def.Key] = st
			}
		}
		if len(productStats) > 0 {
			snap.Products[p.Slug] = productStats
		}
	}
	return snap
}

// computeSpecStats derives percentile ("% of peers beaten", direction
// adjusted) and percent deviation from the population average.
func computeSpecStats(mine float64, slug string, population []*store.Product, values map[string]float64, higherBetter bool) (compare.SpecStats, bool) {
	var peers, beaten int
	var sum float64
	var counted int
	for _, p := range population {
		v, ok := values[p.Slug]
		if !ok {
			continue
		}
		sum += v
		counted++
		if p.Slug == slug {
			continue
		}
		peers++
		if higherBetter && mine > v || !higherBetter && mine < v {
			beaten++
		}
	}
	if peers == 0 {
		return compare.SpecStats{}, false
	}

	st := compare.SpecStats{
		Percentile: float64(beaten) / float64(peers) * 100,
	}
	if avg := sum / float64(counted); avg != 0 {
		st.PctVsAverage = (mine - avg) / avg * 100
	}
	return st, true
}

package stats

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/rasmushax/eridehero/internal/catalog"
	"github.com/rasmushax/eridehero/internal/compare"
	"github.com/rasmushax/eridehero/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockStore serves a fixed product population.
type mockStore struct {
	products []*store.Product
}

func (m *mockStore) GetProduct(_ context.Context, id uuid.UUID) (*store.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockStore) GetProductBySlug(_ context.Context, slug string) (*store.Product, error) {
	for _, p := range m.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockStore) GetProductsBySlugs(_ context.Context, slugs []string) ([]*store.Product, error) {
	var out []*store.Product
	for _, slug := range slugs {
		if p, _ := m.GetProductBySlug(context.Background(), slug); p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockStore) ListProductsByCategory(_ context.Context, category string) ([]*store.Product, error) {
	var out []*store.Product
	for _, p := range m.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockStore) ListCategories(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, p := range m.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out, nil
}

func (m *mockStore) UpsertProduct(_ context.Context, p *store.Product) error {
	m.products = append(m.products, p)
	return nil
}

func (m *mockStore) Close() error { return nil }

func midBracketScooter(slug string, topSpeed, weight float64) *store.Product {
	return &store.Product{
		ID:       uuid.New(),
		Slug:     slug,
		Name:     slug,
		Category: "escooter",
		Price:    600,
		Specs: map[string]any{
			"top_speed": topSpeed,
			"weight":    weight,
		},
	}
}

func newService(products []*store.Product) *Service {
	cat := catalog.Default()
	reg := compare.NewRegistry(cat, compare.DefaultOptions())
	return New(&mockStore{products: products}, cat, reg, nil, nil, discardLogger())
}

func testPopulation() []*store.Product {
	return []*store.Product{
		midBracketScooter("s1", 20, 45),
		midBracketScooter("s2", 22, 42),
		midBracketScooter("s3", 24, 40),
		midBracketScooter("s4", 26, 38),
		midBracketScooter("s5", 28, 36),
		midBracketScooter("s6", 30, 34),
	}
}

func TestRefreshComputesPercentiles(t *testing.T) {
	svc := newService(testPopulation())

	snap, err := svc.Refresh(context.Background(), "escooter")
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if snap == nil {
		t.Fatal("expected a snapshot")
	}
	if snap.ProductCount != 6 {
		t.Errorf("product count = %d", snap.ProductCount)
	}
	if snap.BracketSizes["mid"] != 6 {
		t.Errorf("bracket sizes = %v", snap.BracketSizes)
	}

	best := snap.Products["s6"]["top_speed"]
	if best.Percentile != 100 {
		t.Errorf("fastest scooter percentile = %v, want 100", best.Percentile)
	}
	// Average top speed is 25; 30 is +20%.
	if math.Abs(best.PctVsAverage-20) > 0.01 {
		t.Errorf("pct vs average = %v, want 20", best.PctVsAverage)
	}

	worst := snap.Products["s1"]["top_speed"]
	if worst.Percentile != 0 {
		t.Errorf("slowest scooter percentile = %v, want 0", worst.Percentile)
	}
}

func TestRefreshDirectionAdjustsPercentile(t *testing.T) {
	svc := newService(testPopulation())
	snap, err := svc.Refresh(context.Background(), "escooter")
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	// Weight is lower-better, so the lightest scooter beats all peers.
	lightest := snap.Products["s6"]["weight"]
	if lightest.Percentile != 100 {
		t.Errorf("lightest scooter percentile = %v, want 100", lightest.Percentile)
	}
}

func TestSmallBracketFallsBackToCategory(t *testing.T) {
	products := testPopulation()
	// One premium-priced outlier; its bracket has a single member.
	outlier := midBracketScooter("lux", 40, 60)
	outlier.Price = 1500
	products = append(products, outlier)

	svc := newService(products)
	snap, err := svc.Refresh(context.Background(), "escooter")
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if snap.BracketSizes["premium"] != 1 {
		t.Fatalf("bracket sizes = %v", snap.BracketSizes)
	}
	// With category-wide fallback the outlier has 6 peers and beats them all.
	st := snap.Products["lux"]["top_speed"]
	if st.Percentile != 100 {
		t.Errorf("outlier percentile = %v, want 100 via category fallback", st.Percentile)
	}
}

func TestStatsForRefreshesOnDemand(t *testing.T) {
	svc := newService(testPopulation())

	st, err := svc.StatsFor(context.Background(), "s5", "e-scooter")
	if err != nil {
		t.Fatalf("StatsFor: %v", err)
	}
	if st == nil {
		t.Fatal("expected stats for known product")
	}
	if _, ok := st["top_speed"]; !ok {
		t.Error("missing top_speed stats")
	}

	if st, _ := svc.StatsFor(context.Background(), "s5", "hoverboard"); st != nil {
		t.Error("unsupported category should yield nil stats")
	}
}

func TestInvalidateDropsSnapshot(t *testing.T) {
	svc := newService(testPopulation())
	if _, err := svc.Refresh(context.Background(), "escooter"); err != nil {
		t.Fatal(err)
	}
	if svc.Snapshot("escooter") == nil {
		t.Fatal("expected snapshot after refresh")
	}
	svc.Invalidate("Electric Scooter")
	if svc.Snapshot("escooter") != nil {
		t.Error("snapshot should be dropped after invalidation")
	}
}

func TestSingleProductEndToEnd(t *testing.T) {
	// Stats feed straight into the engine's single-product mode.
	svc := newService(testPopulation())
	cat := catalog.Default()
	reg := compare.NewRegistry(cat, compare.DefaultOptions())

	st, err := svc.StatsFor(context.Background(), "s6", "escooter")
	if err != nil {
		t.Fatal(err)
	}

	p := compare.Product{
		ID:    "s6",
		Type:  "escooter",
		Price: 600,
		Specs: map[string]any{"top_speed": 30.0, "weight": 34.0},
		Stats: st,
	}
	res := reg.Single(p, "escooter")
	if res == nil {
		t.Fatal("expected single result")
	}
	if len(res.Advantages) == 0 {
		t.Error("top-percentile specs should surface as advantages")
	}
	if len(res.Weaknesses) != 0 {
		t.Errorf("best-in-class product should have no weaknesses, got %+v", res.Weaknesses)
	}
}

package compare

import (
	"testing"

	"github.com/rasmushax/eridehero/internal/catalog"
)

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(catalog.Default(), DefaultOptions())
}

func TestRegistryAliasNormalization(t *testing.T) {
	r := newRegistry(t)

	aliases := []string{"escooter", "e-scooter", "Electric Scooter", "ELECTRIC SCOOTERS", "scooter"}
	for _, alias := range aliases {
		if r.CalculatorFor(alias) == nil {
			t.Errorf("alias %q should resolve to the escooter calculator", alias)
		}
	}
}

func TestRegistryMemoizesCalculators(t *testing.T) {
	r := newRegistry(t)
	first := r.CalculatorFor("e-scooter")
	second := r.CalculatorFor("Electric Scooter")
	if first != second {
		t.Error("aliases of the same category should share one calculator instance")
	}
}

func TestRegistryUnsupportedType(t *testing.T) {
	r := newRegistry(t)
	if r.CalculatorFor("hoverboard") != nil {
		t.Error("unsupported type should return nil calculator")
	}

	products := []Product{
		{ID: "a", Specs: map[string]any{"top_speed": 30.0}},
		{ID: "b", Specs: map[string]any{"top_speed": 20.0}},
	}
	out := r.Calculate(products, "hoverboard")
	if len(out) != 2 {
		t.Fatalf("expected one list per product, got %d", len(out))
	}
	for i, advs := range out {
		if advs == nil || len(advs) != 0 {
			t.Errorf("product %d: expected empty advantage list, got %v", i, advs)
		}
	}
}

func TestRegistryDispatchByCount(t *testing.T) {
	r := newRegistry(t)

	a := Product{ID: "a", Price: 600, Specs: map[string]any{"top_speed": 28.0},
		Stats: map[string]SpecStats{"top_speed": {Percentile: 90, PctVsAverage: 20}}}
	b := Product{ID: "b", Specs: map[string]any{"top_speed": 25.0}}
	c := Product{ID: "c", Specs: map[string]any{"top_speed": 22.0}}

	t.Run("single", func(t *testing.T) {
		out := r.Calculate([]Product{a}, "escooter")
		if len(out) != 1 || len(out[0]) != 1 {
			t.Fatalf("expected one advantage from population stats, got %+v", out)
		}
	})

	t.Run("head to head", func(t *testing.T) {
		out := r.Calculate([]Product{a, b}, "escooter")
		if len(out) != 2 || len(out[0]) != 1 || len(out[1]) != 0 {
			t.Fatalf("unexpected head-to-head output: %+v", out)
		}
	})

	t.Run("multi", func(t *testing.T) {
		out := r.Calculate([]Product{a, b, c}, "escooter")
		if len(out) != 3 || len(out[0]) != 1 {
			t.Fatalf("unexpected multi output: %+v", out)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if out := r.Calculate(nil, "escooter"); len(out) != 0 {
			t.Fatalf("expected no lists for no products, got %+v", out)
		}
	})
}

func TestRegistrySingleUnsupported(t *testing.T) {
	r := newRegistry(t)
	if r.Single(Product{ID: "a"}, "hoverboard") != nil {
		t.Error("unsupported type should return nil single result")
	}
}

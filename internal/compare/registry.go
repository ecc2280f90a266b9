package compare

import (
	"sync"

	"github.com/rasmushax/eridehero/internal/catalog"
)

// Registry maps product-type strings to calculators and dispatches by
// product count. It is an explicit object constructed once by the caller;
// the calculator memo is an optimization only and never a source of truth.
type Registry struct {
	catalog *catalog.Catalog
	opts    Options

	mu          sync.RWMutex
	calculators map[string]*Calculator
}

// NewRegistry builds a registry over a validated catalog.
func NewRegistry(cat *catalog.Catalog, opts Options) *Registry {
	return &Registry{
		catalog:     cat,
		opts:        opts,
		calculators: make(map[string]*Calculator),
	}
}

// CalculatorFor returns the memoized calculator for a product type, or nil
// for unsupported types.
func (r *Registry) CalculatorFor(productType string) *Calculator {
	category := r.catalog.Resolve(productType)
	if category == nil {
		return nil
	}

	r.mu.RLock()
	calc, ok := r.calculators[category.Slug]
	r.mu.RUnlock()
	if ok {
		return calc
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if calc, ok := r.calculators[category.Slug]; ok {
		return calc
	}
	calc = NewCalculator(r.catalog, category, r.opts)
	r.calculators[category.Slug] = calc
	return calc
}

// Calculate is the single entry point: one advantage list per input product,
// dispatched on product count (1 = single, 2 = head-to-head, 3+ = multi).
// Unsupported types yield empty lists, never an error; comparison is an
// enhancement, not a requirement for displaying a product.
func (r *Registry) Calculate(products []Product, productType string) [][]AdvantageRecord {
	out := make([][]AdvantageRecord, len(products))
	for i := range out {
		out[i] = []AdvantageRecord{}
	}

	calc := r.CalculatorFor(productType)
	if calc == nil || len(products) == 0 {
		return out
	}

	switch len(products) {
	case 1:
		if res := calc.Single(products[0]); res != nil {
			out[0] = res.Advantages
		}
		return out
	case 2:
		return calc.HeadToHead(products[0], products[1])
	default:
		return calc.Multi(products)
	}
}

// Single runs single-product classification for a type, returning both
// advantages and weaknesses. Nil when the type is unsupported or the
// category has no single-product policy.
func (r *Registry) Single(p Product, productType string) *SingleResult {
	calc := r.CalculatorFor(productType)
	if calc == nil {
		return nil
	}
	return calc.Single(p)
}

// Classifier exposes a type's bracket classifier for the stats layer.
// Nil for unsupported types.
func (r *Registry) Classifier(productType string) *BracketClassifier {
	calc := r.CalculatorFor(productType)
	if calc == nil {
		return nil
	}
	return calc.classifier
}

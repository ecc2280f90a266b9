package compare

import (
	"fmt"

	"github.com/rasmushax/eridehero/internal/catalog"
)

// Product is the engine's view of a product: already-loaded spec data plus
// optional externally computed population statistics for single-product mode.
type Product struct {
	ID    string               `json:"id"`
	Name  string               `json:"name"`
	Type  string               `json:"type"`
	Price float64              `json:"price,omitempty"`
	Specs map[string]any       `json:"specs"`
	Stats map[string]SpecStats `json:"stats,omitempty"`
}

// SpecStats carries the population statistics for one spec of one product,
// computed externally (see internal/stats). Percentile is "% of peers
// beaten", pre-adjusted for direction.
type SpecStats struct {
	Percentile   float64 `json:"percentile"`
	PctVsAverage float64 `json:"pct_vs_average"`
}

// SingleResult is the outcome of single-product classification.
type SingleResult struct {
	Bracket    catalog.PriceBracket `json:"bracket"`
	Advantages []AdvantageRecord    `json:"advantages"`
	Weaknesses []AdvantageRecord    `json:"weaknesses"`
}

// Options tunes a calculator.
type Options struct {
	MaxAdvantages int
	Thresholds    Thresholds
}

// DefaultOptions caps each product at 4 advantages with default thresholds.
func DefaultOptions() Options {
	return Options{MaxAdvantages: 4, Thresholds: DefaultThresholds()}
}

// Calculator runs comparisons for one category. Category-specific behavior
// is entirely data (spec list, rankings, brackets); the calculator itself is
// the same for every category.
type Calculator struct {
	category   *catalog.Category
	accessor   *Accessor
	transforms *catalog.Transforms
	classifier *BracketClassifier // nil when the category has no bracket policy
	max        int
}

// NewCalculator assembles a calculator for the category from catalog data.
func NewCalculator(cat *catalog.Catalog, category *catalog.Category, opts Options) *Calculator {
	if opts.MaxAdvantages <= 0 {
		opts.MaxAdvantages = 4
	}
	var classifier *BracketClassifier
	if brackets := cat.BracketsFor(category.Slug); len(brackets) > 0 {
		classifier = NewBracketClassifier(brackets, opts.Thresholds)
	}
	return &Calculator{
		category:   category,
		accessor:   NewAccessor(cat, category),
		transforms: cat.Transforms,
		classifier: classifier,
		max:        opts.MaxAdvantages,
	}
}

// HeadToHead compares exactly two products, returning one advantage list per
// product. Specs run in priority order, so when more specs qualify than the
// cap allows, earlier specs win the slots.
func (c *Calculator) HeadToHead(a, b Product) [][]AdvantageRecord {
	out := [][]AdvantageRecord{{}, {}}

	for _, def := range c.category.Specs {
		if len(out[0]) >= c.max && len(out[1]) >= c.max {
			break
		}
		va, oka := c.accessor.Resolve(a.Specs, def.Key)
		vb, okb := c.accessor.Resolve(b.Specs, def.Key)
		if !oka || !okb {
			continue // missing data is expected, not an error
		}
		winner, ok := Compare(va, vb, def, c.transforms)
		if !ok || len(out[winner]) >= c.max {
			continue
		}
		winnerVal, loserVal := va, vb
		if winner == WinnerB {
			winnerVal, loserVal = vb, va
		}
		if rec := Render(def, winnerVal, loserVal, winner, c.transforms); rec != nil {
			out[winner] = append(out[winner], *rec)
		}
	}
	return out
}

// Multi compares three or more products. For each spec the argwinner across
// all comparable values takes the advantage; a shared best value means no
// winner, extending the pairwise tie rule n-way.
func (c *Calculator) Multi(products []Product) [][]AdvantageRecord {
	out := make([][]AdvantageRecord, len(products))
	for i := range out {
		out[i] = []AdvantageRecord{}
	}

	for _, def := range c.category.Specs {
		if c.allCapped(out) {
			break
		}
		values := make([]any, len(products))
		var contenders []int
		for i, p := range products {
			v, ok := c.accessor.Resolve(p.Specs, def.Key)
			if !ok || !Comparable(v, def, c.transforms) {
				continue
			}
			values[i] = v
			contenders = append(contenders, i)
		}
		if len(contenders) < 2 {
			continue
		}

		best, ok := c.argWinner(values, contenders, def)
		if !ok || len(out[best]) >= c.max {
			continue
		}
		runnerUp, ok := c.runnerUp(values, contenders, best, def)
		if !ok {
			continue
		}
		if rec := Render(def, values[best], values[runnerUp], best, c.transforms); rec != nil {
			out[best] = append(out[best], *rec)
		}
	}
	return out
}

// argWinner scans contenders for a unique best value under the spec's rule.
func (c *Calculator) argWinner(values []any, contenders []int, def catalog.SpecDefinition) (int, bool) {
	best := contenders[0]
	for _, i := range contenders[1:] {
		if w, ok := Compare(values[best], values[i], def, c.transforms); ok && w == WinnerB {
			best = i
		}
	}
	// The best must strictly beat every other contender; any tie means the
	// top value is shared and no one wins.
	for _, i := range contenders {
		if i == best {
			continue
		}
		w, ok := Compare(values[best], values[i], def, c.transforms)
		if !ok || w != WinnerA {
			return 0, false
		}
	}
	return best, true
}

// runnerUp finds the best remaining value, used as the loser side of the
// rendered comparison.
func (c *Calculator) runnerUp(values []any, contenders []int, best int, def catalog.SpecDefinition) (int, bool) {
	runner := -1
	for _, i := range contenders {
		if i == best {
			continue
		}
		if runner == -1 {
			runner = i
			continue
		}
		if w, ok := Compare(values[runner], values[i], def, c.transforms); ok && w == WinnerB {
			runner = i
		}
	}
	return runner, runner != -1
}

func (c *Calculator) allCapped(out [][]AdvantageRecord) bool {
	for i := range out {
		if len(out[i]) < c.max {
			return false
		}
	}
	return true
}

// Single classifies one product against its bracket population using the
// externally computed statistics attached to the product. Returns nil when
// the category has no bracket policy or the product carries no stats.
func (c *Calculator) Single(p Product) *SingleResult {
	if c.classifier == nil || len(p.Stats) == 0 {
		return nil
	}
	res := &SingleResult{
		Bracket:    c.classifier.Classify(p.Price),
		Advantages: []AdvantageRecord{},
		Weaknesses: []AdvantageRecord{},
	}

	for _, def := range c.category.Specs {
		if len(res.Advantages) >= c.max && len(res.Weaknesses) >= c.max {
			break
		}
		st, ok := p.Stats[def.Key]
		if !ok {
			continue
		}
		v, present := c.accessor.Resolve(p.Specs, def.Key)
		if !present {
			continue
		}
		hb := def.HigherIsBetter()
		if c.classifier.IsAdvantage(st.Percentile, st.PctVsAverage, hb) && len(res.Advantages) < c.max {
			if rec := c.renderSingle(def, v, st, res.Bracket, true); rec != nil {
				res.Advantages = append(res.Advantages, *rec)
			}
			continue
		}
		if c.classifier.IsWeakness(st.Percentile, st.PctVsAverage, hb) && len(res.Weaknesses) < c.max {
			if rec := c.renderSingle(def, v, st, res.Bracket, false); rec != nil {
				res.Weaknesses = append(res.Weaknesses, *rec)
			}
		}
	}
	return res
}

func (c *Calculator) renderSingle(def catalog.SpecDefinition, v any, st SpecStats, bracket catalog.PriceBracket, advantage bool) *AdvantageRecord {
	display := valueString(v)
	if c.transforms != nil && def.Display != "" {
		if s, ok := c.transforms.Display(def.Display, v); ok {
			display = s
		}
	} else if f, ok := toFloat(v); ok {
		display = withUnit(formatNumber(f, def.Format == catalog.FormatDecimal), def.Unit)
	}
	if display == "" {
		return nil
	}

	rec := &AdvantageRecord{
		Winner:     0,
		SpecKey:    def.Key,
		WinnerVal:  v,
		Comparison: display,
		Tooltip:    def.Tooltip,
	}
	diff := st.PctVsAverage
	rec.Diff = &diff

	if advantage {
		rec.Text = fmt.Sprintf("Among the best %s in the %s bracket", def.Label, bracket.Label)
	} else {
		rec.Text = fmt.Sprintf("Below-average %s for the %s bracket", def.Label, bracket.Label)
	}
	return rec
}

// Package catalog holds the spec-definition configuration the comparison
// engine runs against: per-category spec lists, ranking tables, price
// brackets, type aliases and named value transforms. All of it is data;
// category-specific behavior lives here, not in code.
package catalog

import (
	"fmt"
	"strings"
)

// Format selects the comparison rule for a spec.
type Format string

const (
	FormatNumeric      Format = "numeric"
	FormatDecimal      Format = "decimal"
	FormatBoolean      Format = "boolean"
	FormatRanked       Format = "ranked"
	FormatDisplay      Format = "display"
	FormatMotorCount   Format = "motor_count"
	FormatFeatureCount Format = "feature_count"
)

// DiffFormat selects the phrasing template for a rendered advantage.
type DiffFormat string

const (
	DiffFaster       DiffFormat = "faster"
	DiffMore         DiffFormat = "more"
	DiffHigher       DiffFormat = "higher"
	DiffLarger       DiffFormat = "larger"
	DiffLighter      DiffFormat = "lighter"
	DiffLonger       DiffFormat = "longer"
	DiffShorter      DiffFormat = "shorter"
	DiffLower        DiffFormat = "lower"
	DiffBetter       DiffFormat = "better"
	DiffLargerTires  DiffFormat = "larger_tires"
	DiffSaferTires   DiffFormat = "safer_tires"
	DiffFoldableBars DiffFormat = "foldable_bars"
	DiffHasFeature   DiffFormat = "has_feature"
	DiffWaterResist  DiffFormat = "water_resistance"
	DiffSuspension   DiffFormat = "suspension"
	DiffTireType     DiffFormat = "tire_type"
)

var knownFormats = map[Format]bool{
	FormatNumeric: true, FormatDecimal: true, FormatBoolean: true,
	FormatRanked: true, FormatDisplay: true, FormatMotorCount: true,
	FormatFeatureCount: true,
}

var knownDiffFormats = map[DiffFormat]bool{
	DiffFaster: true, DiffMore: true, DiffHigher: true, DiffLarger: true,
	DiffLighter: true, DiffLonger: true, DiffShorter: true, DiffLower: true,
	DiffBetter: true, DiffLargerTires: true, DiffSaferTires: true,
	DiffFoldableBars: true, DiffHasFeature: true, DiffWaterResist: true,
	DiffSuspension: true, DiffTireType: true,
}

// SpecDefinition describes one comparable spec within a category.
type SpecDefinition struct {
	Key          string     `yaml:"key"`
	Label        string     `yaml:"label"`
	Unit         string     `yaml:"unit,omitempty"`
	HigherBetter *bool      `yaml:"higher_better,omitempty"` // nil = true
	Format       Format     `yaml:"format"`
	DiffFormat   DiffFormat `yaml:"diff_format,omitempty"`
	Ranking      []string   `yaml:"ranking,omitempty"` // low → high
	Tooltip      string     `yaml:"tooltip,omitempty"`
	MinDiff      int        `yaml:"min_diff,omitempty"` // feature_count gate, default 2
	Normalizer   string     `yaml:"normalizer,omitempty"`
	Display      string     `yaml:"display_formatter,omitempty"`
}

// HigherIsBetter reports the comparison direction, defaulting to true.
func (d SpecDefinition) HigherIsBetter() bool {
	return d.HigherBetter == nil || *d.HigherBetter
}

// FeatureMinDiff returns the feature-count significance gate.
func (d SpecDefinition) FeatureMinDiff() int {
	if d.MinDiff > 0 {
		return d.MinDiff
	}
	return 2
}

// PriceBracket is one price band within a category. Min is inclusive, Max
// exclusive; Max == 0 means unbounded.
type PriceBracket struct {
	Key   string  `yaml:"key"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Label string  `yaml:"label"`
}

// Contains reports whether price falls inside the band.
func (b PriceBracket) Contains(price float64) bool {
	if price < b.Min {
		return false
	}
	return b.Max == 0 || price < b.Max
}

// Category bundles everything the engine needs for one product type.
type Category struct {
	Slug      string            `yaml:"slug"`
	Wrapper   string            `yaml:"wrapper"` // top-level key spec data nests under
	Specs     []SpecDefinition  `yaml:"specs"`   // priority order
	Overrides map[string]string `yaml:"overrides,omitempty"`
	Brackets  []PriceBracket    `yaml:"brackets,omitempty"`
}

// Catalog is the full spec configuration plus the transform registry.
// Constructed once at startup and read-only afterwards.
type Catalog struct {
	Categories map[string]*Category
	Aliases    map[string]string
	Transforms *Transforms

	genericBrackets []PriceBracket
}

// Resolve maps a free-form product-type string to its category, or nil.
func (c *Catalog) Resolve(productType string) *Category {
	slug := NormalizeType(productType)
	if canonical, ok := c.Aliases[slug]; ok {
		slug = canonical
	}
	return c.Categories[slug]
}

// Wrappers returns the wrapper keys of all configured categories, used by
// the accessor to detect which category sub-object a spec map carries.
func (c *Catalog) Wrappers() []string {
	out := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.Wrapper != "" {
			out = append(out, cat.Wrapper)
		}
	}
	return out
}

// BracketsFor returns the category's bracket table, falling back to the
// generic table when a category defines none. Categories without their own
// table deliberately share the generic bands.
func (c *Catalog) BracketsFor(slug string) []PriceBracket {
	if cat, ok := c.Categories[slug]; ok && len(cat.Brackets) > 0 {
		return cat.Brackets
	}
	return c.genericBrackets
}

// NormalizeType canonicalizes a free-form type string for alias lookup:
// lowercased, spaces and underscores collapsed to hyphens.
func NormalizeType(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.Join(strings.Fields(s), "-")
	return s
}

// Validate rejects unknown format and diffFormat tags, unresolvable
// transform names, duplicate spec keys and malformed bracket tables.
// Configuration typos surface at load time, not mid-comparison.
func (c *Catalog) Validate() error {
	for slug, cat := range c.Categories {
		seen := make(map[string]bool, len(cat.Specs))
		for _, def := range cat.Specs {
			if def.Key == "" {
				return fmt.Errorf("category %s: spec with empty key", slug)
			}
			if seen[def.Key] {
				return fmt.Errorf("category %s: duplicate spec key %q", slug, def.Key)
			}
			seen[def.Key] = true
			if !knownFormats[def.Format] {
				return fmt.Errorf("category %s: spec %s: unknown format %q", slug, def.Key, def.Format)
			}
			if def.DiffFormat != "" && !knownDiffFormats[def.DiffFormat] {
				return fmt.Errorf("category %s: spec %s: unknown diff format %q", slug, def.Key, def.DiffFormat)
			}
			if def.Format == FormatRanked && len(def.Ranking) < 2 {
				return fmt.Errorf("category %s: spec %s: ranked format needs a ranking list", slug, def.Key)
			}
			if def.Normalizer != "" && !c.Transforms.HasNormalizer(def.Normalizer) {
				return fmt.Errorf("category %s: spec %s: unknown normalizer %q", slug, def.Key, def.Normalizer)
			}
			if def.Display != "" && !c.Transforms.HasDisplay(def.Display) {
				return fmt.Errorf("category %s: spec %s: unknown display formatter %q", slug, def.Key, def.Display)
			}
		}
		if err := validateBrackets(slug, cat.Brackets); err != nil {
			return err
		}
	}
	for alias, target := range c.Aliases {
		if _, ok := c.Categories[target]; !ok {
			return fmt.Errorf("alias %q points to unknown category %q", alias, target)
		}
	}
	return nil
}

func validateBrackets(slug string, brackets []PriceBracket) error {
	for i, b := range brackets {
		if b.Max != 0 && b.Max <= b.Min {
			return fmt.Errorf("category %s: bracket %s: max %.0f <= min %.0f", slug, b.Key, b.Max, b.Min)
		}
		if i > 0 && brackets[i-1].Max != b.Min {
			return fmt.Errorf("category %s: bracket %s does not start where %s ends", slug, b.Key, brackets[i-1].Key)
		}
		if b.Max == 0 && i != len(brackets)-1 {
			return fmt.Errorf("category %s: unbounded bracket %s must be last", slug, b.Key)
		}
	}
	return nil
}

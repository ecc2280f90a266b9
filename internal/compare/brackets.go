package compare

import (
	"github.com/rasmushax/eridehero/internal/catalog"
)

// Thresholds tunes the significance gates for single-product classification.
type Thresholds struct {
	AdvantagePercentile float64 // size of the top band, percent
	WeaknessPercentile  float64 // size of the bottom band, percent
	AverageThreshold    float64 // percent deviation from bracket average
	MinBracketSize      int     // below this, callers use category-wide stats
}

// DefaultThresholds returns the production defaults: top/bottom 20%,
// 15% average deviation, bracket floor of 5.
func DefaultThresholds() Thresholds {
	return Thresholds{
		AdvantagePercentile: 20,
		WeaknessPercentile:  20,
		AverageThreshold:    15,
		MinBracketSize:      5,
	}
}

// BracketClassifier buckets a product into its category's price bracket and
// judges whether a population statistic is significant enough to surface.
// It is bracket-size-agnostic; the stats layer handles small-bracket
// fallback before asking.
type BracketClassifier struct {
	brackets   []catalog.PriceBracket
	thresholds Thresholds
}

func NewBracketClassifier(brackets []catalog.PriceBracket, thresholds Thresholds) *BracketClassifier {
	return &BracketClassifier{brackets: brackets, thresholds: thresholds}
}

// Classify returns the first bracket containing the price. With correct band
// coverage every price matches; the highest band is the defensive fallback.
func (c *BracketClassifier) Classify(price float64) catalog.PriceBracket {
	for _, b := range c.brackets {
		if b.Contains(price) {
			return b
		}
	}
	return c.brackets[len(c.brackets)-1]
}

// IsAdvantage reports whether a spec value qualifies as a population-level
// advantage. Percentile is "% of peers beaten", already direction-adjusted;
// the deviation gate flips sign with higherBetter. The two criteria are
// OR-combined: relative rank alone or raw deviation alone can qualify.
func (c *BracketClassifier) IsAdvantage(percentile, pctVsAverage float64, higherBetter bool) bool {
	if percentile >= 100-c.thresholds.AdvantagePercentile {
		return true
	}
	if higherBetter {
		return pctVsAverage > c.thresholds.AverageThreshold
	}
	return pctVsAverage < -c.thresholds.AverageThreshold
}

// IsWeakness is the symmetric gate for the unfavorable direction.
func (c *BracketClassifier) IsWeakness(percentile, pctVsAverage float64, higherBetter bool) bool {
	if percentile <= c.thresholds.WeaknessPercentile {
		return true
	}
	if higherBetter {
		return pctVsAverage < -c.thresholds.AverageThreshold
	}
	return pctVsAverage > c.thresholds.AverageThreshold
}

// MinBracketSize exposes the small-bracket floor for the stats layer.
func (c *BracketClassifier) MinBracketSize() int {
	return c.thresholds.MinBracketSize
}

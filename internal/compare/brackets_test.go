package compare

import (
	"testing"

	"github.com/rasmushax/eridehero/internal/catalog"
)

func escooterClassifier() *BracketClassifier {
	cat := catalog.Default()
	return NewBracketClassifier(cat.BracketsFor("escooter"), DefaultThresholds())
}

func TestClassifyBoundaries(t *testing.T) {
	c := escooterClassifier()

	tests := []struct {
		name  string
		price float64
		want  string
	}{
		{"min is inclusive", 0, "budget"},
		{"inside budget", 499.99, "budget"},
		{"max is exclusive", 500, "mid"},
		{"inside mid", 999, "mid"},
		{"premium boundary", 1000, "premium"},
		{"unbounded top band", 4500, "performance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.price); got.Key != tt.want {
				t.Errorf("Classify(%v) = %s, want %s", tt.price, got.Key, tt.want)
			}
		})
	}
}

func TestClassifyFallbackToHighestBand(t *testing.T) {
	c := NewBracketClassifier([]catalog.PriceBracket{
		{Key: "low", Min: 100, Max: 500},
		{Key: "high", Min: 500, Max: 1000},
	}, DefaultThresholds())
	// A price below every band's min falls into the highest band.
	if got := c.Classify(50); got.Key != "high" {
		t.Errorf("expected defensive fallback to high, got %s", got.Key)
	}
}

func TestIsAdvantage(t *testing.T) {
	c := escooterClassifier()

	tests := []struct {
		name         string
		percentile   float64
		pctVsAvg     float64
		higherBetter bool
		want         bool
	}{
		{"percentile gate alone", 85, 5, true, true},
		{"deviation gate alone", 50, 20, true, true},
		{"neither gate", 50, 5, true, false},
		{"exact percentile threshold", 80, 0, true, true},
		{"deviation at threshold is not enough", 50, 15, true, false},
		{"lower better favorable deviation", 85, -20, false, true},
		{"lower better wrong direction deviation", 50, 20, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.IsAdvantage(tt.percentile, tt.pctVsAvg, tt.higherBetter)
			if got != tt.want {
				t.Errorf("IsAdvantage(%v, %v, %v) = %v, want %v",
					tt.percentile, tt.pctVsAvg, tt.higherBetter, got, tt.want)
			}
		})
	}
}

func TestIsWeakness(t *testing.T) {
	c := escooterClassifier()

	tests := []struct {
		name         string
		percentile   float64
		pctVsAvg     float64
		higherBetter bool
		want         bool
	}{
		{"bottom percentile", 15, 0, true, true},
		{"below-average deviation", 50, -20, true, true},
		{"middle of the pack", 50, -5, true, false},
		{"lower better unfavorable deviation", 50, 20, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.IsWeakness(tt.percentile, tt.pctVsAvg, tt.higherBetter)
			if got != tt.want {
				t.Errorf("IsWeakness(%v, %v, %v) = %v, want %v",
					tt.percentile, tt.pctVsAvg, tt.higherBetter, got, tt.want)
			}
		})
	}
}

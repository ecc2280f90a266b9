package compare

import (
	"testing"

	"github.com/rasmushax/eridehero/internal/catalog"
)

func boolPtr(b bool) *bool { return &b }

func TestCompareNumeric(t *testing.T) {
	tests := []struct {
		name         string
		a, b         any
		higherBetter *bool
		wantWinner   int
		wantOK       bool
	}{
		{"a wins", 28.0, 25.0, nil, WinnerA, true},
		{"b wins", 25.0, 28.0, nil, WinnerB, true},
		{"equal no winner", 25.0, 25.0, nil, 0, false},
		{"inverted a wins", 40.0, 52.0, boolPtr(false), WinnerA, true},
		{"inverted b wins", 52.0, 40.0, boolPtr(false), WinnerB, true},
		{"numeric strings", "30", "22", nil, WinnerA, true},
		{"int values", 500, 350, nil, WinnerA, true},
		{"non-numeric no winner", "fast", 25.0, nil, 0, false},
		{"bool is not numeric", true, 25.0, nil, 0, false},
		{"zero is a valid value", 0.0, 5.0, boolPtr(false), WinnerA, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := catalog.SpecDefinition{Key: "top_speed", Format: catalog.FormatNumeric, HigherBetter: tt.higherBetter}
			winner, ok := Compare(tt.a, tt.b, def, nil)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && winner != tt.wantWinner {
				t.Errorf("winner = %d, want %d", winner, tt.wantWinner)
			}
		})
	}
}

func TestCompareRanked(t *testing.T) {
	def := catalog.SpecDefinition{
		Key:     "suspension",
		Format:  catalog.FormatRanked,
		Ranking: []string{"none", "front", "rear", "dual"},
	}

	tests := []struct {
		name       string
		a, b       any
		wantWinner int
		wantOK     bool
	}{
		{"higher rank wins", "dual", "front", WinnerA, true},
		{"lower rank loses", "none", "rear", WinnerB, true},
		{"equal ranks", "front", "front", 0, false},
		{"value absent from ranking", "hydraulic", "front", 0, false},
		{"both absent", "air", "coil", 0, false},
		{"case insensitive", "Dual", "FRONT", WinnerA, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winner, ok := Compare(tt.a, tt.b, def, nil)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && winner != tt.wantWinner {
				t.Errorf("winner = %d, want %d", winner, tt.wantWinner)
			}
		})
	}
}

func TestCompareRankedIgnoresHigherBetter(t *testing.T) {
	// Ranking order encodes direction; higherBetter must not flip it.
	def := catalog.SpecDefinition{
		Key:          "suspension",
		Format:       catalog.FormatRanked,
		Ranking:      []string{"none", "front", "dual"},
		HigherBetter: boolPtr(false),
	}
	winner, ok := Compare("dual", "none", def, nil)
	if !ok || winner != WinnerA {
		t.Errorf("expected A to win regardless of higherBetter, got winner=%d ok=%v", winner, ok)
	}
}

func TestCompareMotorCount(t *testing.T) {
	def := catalog.SpecDefinition{Key: "motors", Format: catalog.FormatMotorCount}

	tests := []struct {
		name       string
		a, b       any
		wantWinner int
		wantOK     bool
	}{
		{"dual beats single", 2.0, 1.0, WinnerA, true},
		{"non-numeric counts as one", 2.0, "hub motor", WinnerA, true},
		{"both non-numeric tie", "front", "rear", 0, false},
		{"equal counts", 2, 2, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winner, ok := Compare(tt.a, tt.b, def, nil)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && winner != tt.wantWinner {
				t.Errorf("winner = %d, want %d", winner, tt.wantWinner)
			}
		})
	}
}

func TestCompareFeatureCountGate(t *testing.T) {
	def := catalog.SpecDefinition{Key: "safety_features", Format: catalog.FormatFeatureCount, MinDiff: 2}

	t.Run("diff meets gate", func(t *testing.T) {
		a := []any{"X", "Y", "Z"}
		b := []any{"X"}
		winner, ok := Compare(a, b, def, nil)
		if !ok || winner != WinnerA {
			t.Errorf("expected A to win with diff 2, got winner=%d ok=%v", winner, ok)
		}
	})

	t.Run("diff under gate", func(t *testing.T) {
		a := []any{"X", "Y", "Z"}
		b := []any{"X", "Y"}
		if _, ok := Compare(a, b, def, nil); ok {
			t.Error("diff 1 under minDiff 2 must not produce a winner")
		}
	})

	t.Run("non-list input", func(t *testing.T) {
		if _, ok := Compare("many", []any{"X"}, def, nil); ok {
			t.Error("non-countable value must not produce a winner")
		}
	})
}

func TestCompareBoolean(t *testing.T) {
	def := catalog.SpecDefinition{Key: "foldable_handlebars", Format: catalog.FormatBoolean}

	winner, ok := Compare(true, false, def, nil)
	if !ok || winner != WinnerA {
		t.Errorf("true should beat false, got winner=%d ok=%v", winner, ok)
	}
	if _, ok := Compare(true, true, def, nil); ok {
		t.Error("equal booleans must not produce a winner")
	}
	winner, ok = Compare("yes", "no", def, nil)
	if !ok || winner != WinnerA {
		t.Errorf("string booleans should compare, got winner=%d ok=%v", winner, ok)
	}
}

func TestCompareWithNormalizer(t *testing.T) {
	tr := catalog.DefaultTransforms()
	def := catalog.SpecDefinition{
		Key:        "tire_size",
		Format:     catalog.FormatNumeric,
		Normalizer: "strip_units",
	}
	winner, ok := Compare("10 inch", "8.5 inch", def, tr)
	if !ok || winner != WinnerA {
		t.Errorf("expected normalized strings to compare numerically, got winner=%d ok=%v", winner, ok)
	}
}

func TestCompareDisplayFormatUsesRanking(t *testing.T) {
	def := catalog.SpecDefinition{
		Key:     "water_resistance",
		Format:  catalog.FormatDisplay,
		Ranking: []string{"none", "ipx4", "ipx5"},
	}
	winner, ok := Compare("IPX5", "ipx4", def, nil)
	if !ok || winner != WinnerA {
		t.Errorf("expected rank comparison for display format, got winner=%d ok=%v", winner, ok)
	}
}

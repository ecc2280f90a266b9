package compare

import (
	"strconv"
	"strings"

	"github.com/rasmushax/eridehero/internal/catalog"
)

// Winner indices for pairwise comparisons.
const (
	WinnerA = 0
	WinnerB = 1
)

// Compare decides the winner between two raw spec values under a spec
// definition. The second return is false when there is no winner: equal
// values, values absent from a ranking list, non-numeric input to a numeric
// spec, or a feature-count difference under the significance gate.
// Pure function of its inputs; tr is a read-only transform registry.
func Compare(a, b any, def catalog.SpecDefinition, tr *catalog.Transforms) (int, bool) {
	if tr != nil && def.Normalizer != "" {
		a = tr.Normalize(def.Normalizer, a)
		b = tr.Normalize(def.Normalizer, b)
	}

	switch def.Format {
	case catalog.FormatRanked:
		return compareRanked(a, b, def.Ranking)
	case catalog.FormatDisplay:
		// Display specs with a ranking compare by rank; otherwise numerically.
		if len(def.Ranking) > 0 {
			return compareRanked(a, b, def.Ranking)
		}
		return compareNumeric(a, b, def.HigherIsBetter())
	case catalog.FormatBoolean:
		return compareBoolean(a, b, def.HigherIsBetter())
	case catalog.FormatMotorCount:
		return compareCount(motorCount(a), motorCount(b))
	case catalog.FormatFeatureCount:
		ca, oka := featureCount(a)
		cb, okb := featureCount(b)
		if !oka || !okb {
			return 0, false
		}
		if abs(ca-cb) < def.FeatureMinDiff() {
			return 0, false
		}
		return compareCount(ca, cb)
	default: // numeric, decimal
		return compareNumeric(a, b, def.HigherIsBetter())
	}
}

// Comparable reports whether a value is a valid input for the spec's
// comparison rule. Used by the multi-way calculator to exclude products
// whose value could never produce a winner.
func Comparable(v any, def catalog.SpecDefinition, tr *catalog.Transforms) bool {
	if tr != nil && def.Normalizer != "" {
		v = tr.Normalize(def.Normalizer, v)
	}
	switch def.Format {
	case catalog.FormatRanked:
		_, ok := rankIndex(v, def.Ranking)
		return ok
	case catalog.FormatDisplay:
		if len(def.Ranking) > 0 {
			_, ok := rankIndex(v, def.Ranking)
			return ok
		}
		_, ok := toFloat(v)
		return ok
	case catalog.FormatBoolean:
		_, ok := toBool(v)
		return ok
	case catalog.FormatMotorCount:
		return true // non-numeric means single motor
	case catalog.FormatFeatureCount:
		_, ok := featureCount(v)
		return ok
	default:
		_, ok := toFloat(v)
		return ok
	}
}

// NumericValue reduces a spec value to the number its comparison rule
// effectively orders by: rank index for ranked specs, counts for motor and
// feature specs, the parsed float otherwise. Used by the population-stats
// layer so percentiles order values the same way the comparator does.
func NumericValue(v any, def catalog.SpecDefinition, tr *catalog.Transforms) (float64, bool) {
	if tr != nil && def.Normalizer != "" {
		v = tr.Normalize(def.Normalizer, v)
	}
	switch def.Format {
	case catalog.FormatRanked:
		i, ok := rankIndex(v, def.Ranking)
		return float64(i), ok
	case catalog.FormatDisplay:
		if len(def.Ranking) > 0 {
			i, ok := rankIndex(v, def.Ranking)
			return float64(i), ok
		}
		return toFloat(v)
	case catalog.FormatBoolean:
		b, ok := toBool(v)
		if !ok {
			return 0, false
		}
		if b {
			return 1, true
		}
		return 0, true
	case catalog.FormatMotorCount:
		return float64(motorCount(v)), true
	case catalog.FormatFeatureCount:
		n, ok := featureCount(v)
		return float64(n), ok
	default:
		return toFloat(v)
	}
}

func compareRanked(a, b any, ranking []string) (int, bool) {
	ia, oka := rankIndex(a, ranking)
	ib, okb := rankIndex(b, ranking)
	if !oka || !okb || ia == ib {
		return 0, false
	}
	// Ranking order already encodes direction; higherBetter does not apply.
	if ia > ib {
		return WinnerA, true
	}
	return WinnerB, true
}

func compareNumeric(a, b any, higherBetter bool) (int, bool) {
	fa, oka := toFloat(a)
	fb, okb := toFloat(b)
	if !oka || !okb || fa == fb {
		return 0, false
	}
	if (fa > fb) == higherBetter {
		return WinnerA, true
	}
	return WinnerB, true
}

func compareBoolean(a, b any, higherBetter bool) (int, bool) {
	ba, oka := toBool(a)
	bb, okb := toBool(b)
	if !oka || !okb || ba == bb {
		return 0, false
	}
	if ba == higherBetter {
		return WinnerA, true
	}
	return WinnerB, true
}

func compareCount(a, b int) (int, bool) {
	if a == b {
		return 0, false
	}
	if a > b {
		return WinnerA, true
	}
	return WinnerB, true
}

// rankIndex finds a value's position in a low-to-high ranking list.
// Matching is case-insensitive on the string form of the value.
func rankIndex(v any, ranking []string) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(valueString(v)))
	if s == "" {
		return 0, false
	}
	for i, r := range ranking {
		if strings.ToLower(r) == s {
			return i, true
		}
	}
	return 0, false
}

// toFloat accepts the numeric shapes JSON decoding and content configs
// produce, including numeric strings. Booleans are not numeric.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "yes", "true", "1":
			return true, true
		case "no", "false", "0", "":
			return false, true
		}
		return false, false
	case float64:
		return b != 0, true
	case int:
		return b != 0, true
	}
	return false, false
}

// motorCount interprets a motor spec value; anything non-numeric counts as a
// single motor.
func motorCount(v any) int {
	if f, ok := toFloat(v); ok && f >= 1 {
		return int(f)
	}
	return 1
}

func featureCount(v any) (int, bool) {
	switch f := v.(type) {
	case []any:
		return len(f), true
	case []string:
		return len(f), true
	case map[string]any:
		return len(f), true
	}
	return 0, false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

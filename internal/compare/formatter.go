package compare

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rasmushax/eridehero/internal/catalog"
)

// AdvantageRecord is one concrete reason a product wins a comparison.
type AdvantageRecord struct {
	Text       string   `json:"text"`
	Comparison string   `json:"comparison,omitempty"`
	Winner     int      `json:"winner"`
	SpecKey    string   `json:"spec_key"`
	WinnerVal  any      `json:"winner_val"`
	LoserVal   any      `json:"loser_val"`
	Diff       *float64 `json:"diff,omitempty"`
	Tooltip    string   `json:"tooltip,omitempty"`
}

// Render converts a winner decision into an advantage record. Returns nil
// rather than a malformed record when a required piece of data is missing.
func Render(def catalog.SpecDefinition, winnerVal, loserVal any, winner int, tr *catalog.Transforms) *AdvantageRecord {
	rec := &AdvantageRecord{
		Winner:    winner,
		SpecKey:   def.Key,
		WinnerVal: winnerVal,
		LoserVal:  loserVal,
		Tooltip:   def.Tooltip,
	}

	switch def.Format {
	case catalog.FormatMotorCount:
		return renderMotorCount(rec, winnerVal, loserVal)
	case catalog.FormatFeatureCount:
		return renderFeatureCount(rec, def, winnerVal, loserVal)
	case catalog.FormatBoolean:
		return renderBoolean(rec, def)
	case catalog.FormatDisplay:
		return renderDisplay(rec, def, winnerVal, loserVal, tr)
	case catalog.FormatRanked:
		return renderRanked(rec, def, winnerVal, loserVal)
	default:
		return renderNumeric(rec, def, winnerVal, loserVal, tr)
	}
}

func renderNumeric(rec *AdvantageRecord, def catalog.SpecDefinition, winnerVal, loserVal any, tr *catalog.Transforms) *AdvantageRecord {
	if tr != nil && def.Normalizer != "" {
		winnerVal = tr.Normalize(def.Normalizer, winnerVal)
		loserVal = tr.Normalize(def.Normalizer, loserVal)
	}
	wf, okw := toFloat(winnerVal)
	lf, okl := toFloat(loserVal)
	if !okw || !okl {
		return nil
	}

	decimal := def.Format == catalog.FormatDecimal
	diff := math.Abs(wf - lf)
	diffStr := withUnit(formatNumber(diff, decimal), def.Unit)

	switch def.DiffFormat {
	case catalog.DiffFaster:
		rec.Text = fmt.Sprintf("%s faster %s", diffStr, def.Label)
	case catalog.DiffMore:
		rec.Text = fmt.Sprintf("%s more %s", diffStr, def.Label)
	case catalog.DiffHigher:
		rec.Text = fmt.Sprintf("%s higher %s", diffStr, def.Label)
	case catalog.DiffLarger:
		rec.Text = fmt.Sprintf("%s larger %s", diffStr, def.Label)
	case catalog.DiffLonger:
		rec.Text = fmt.Sprintf("%s longer %s", diffStr, def.Label)
	case catalog.DiffShorter:
		rec.Text = fmt.Sprintf("%s shorter %s", diffStr, def.Label)
	case catalog.DiffLower:
		rec.Text = fmt.Sprintf("%s lower %s", diffStr, def.Label)
	case catalog.DiffLighter:
		rec.Text = fmt.Sprintf("%s lighter", diffStr)
	case catalog.DiffLargerTires:
		rec.Text = fmt.Sprintf("%s larger tires", diffStr)
	case catalog.DiffBetter:
		rec.Text = fmt.Sprintf("Better %s", def.Label)
	default:
		// Generic fallback keeps unknown-but-validated tags readable.
		rec.Text = fmt.Sprintf("%s %s %s", diffStr, def.DiffFormat, def.Label)
	}

	rec.Comparison = fmt.Sprintf("%s vs %s",
		withUnit(formatNumber(wf, decimal), def.Unit),
		withUnit(formatNumber(lf, decimal), def.Unit))
	rec.Diff = &diff
	return rec
}

func renderRanked(rec *AdvantageRecord, def catalog.SpecDefinition, winnerVal, loserVal any) *AdvantageRecord {
	w := strings.ToLower(strings.TrimSpace(valueString(winnerVal)))
	l := strings.ToLower(strings.TrimSpace(valueString(loserVal)))
	if w == "" || l == "" {
		return nil
	}
	display := titleCase(w)

	switch def.DiffFormat {
	case catalog.DiffSuspension:
		if l == "none" {
			rec.Text = fmt.Sprintf("%s vs no suspension", display)
		} else {
			rec.Text = fmt.Sprintf("%s vs %s suspension", display, l)
		}
	case catalog.DiffTireType, catalog.DiffSaferTires:
		rec.Text = fmt.Sprintf("%s vs %s tires", display, l)
	default:
		rec.Text = fmt.Sprintf("%s vs %s %s", display, l, def.Label)
	}

	rec.Comparison = fmt.Sprintf("%s vs %s", w, l)
	return rec
}

func renderDisplay(rec *AdvantageRecord, def catalog.SpecDefinition, winnerVal, loserVal any, tr *catalog.Transforms) *AdvantageRecord {
	w := valueString(winnerVal)
	l := valueString(loserVal)
	if tr != nil {
		if s, ok := tr.Display(def.Display, winnerVal); ok {
			w = s
		}
		if s, ok := tr.Display(def.Display, loserVal); ok {
			l = s
		}
	}
	if w == "" {
		return nil
	}

	if def.DiffFormat == catalog.DiffWaterResist {
		rec.Text = fmt.Sprintf("Higher %s", def.Label)
		if l == "" || strings.EqualFold(l, "none") {
			rec.Comparison = fmt.Sprintf("%s vs none", strings.ToUpper(w))
		} else {
			rec.Comparison = fmt.Sprintf("%s vs %s", strings.ToUpper(w), strings.ToUpper(l))
		}
		return rec
	}

	rec.Text = fmt.Sprintf("Better %s", def.Label)
	if l == "" {
		rec.Comparison = fmt.Sprintf("%s vs none", w)
	} else {
		rec.Comparison = fmt.Sprintf("%s vs %s", w, l)
	}
	return rec
}

func renderMotorCount(rec *AdvantageRecord, winnerVal, loserVal any) *AdvantageRecord {
	w := motorCount(winnerVal)
	l := motorCount(loserVal)
	rec.Text = fmt.Sprintf("%s vs %s", motorLabel(w), strings.ToLower(motorLabel(l)))
	diff := math.Abs(float64(w - l))
	rec.Diff = &diff
	return rec
}

func renderFeatureCount(rec *AdvantageRecord, def catalog.SpecDefinition, winnerVal, loserVal any) *AdvantageRecord {
	w, okw := featureCount(winnerVal)
	l, okl := featureCount(loserVal)
	if !okw || !okl {
		return nil
	}
	diff := math.Abs(float64(w - l))
	rec.Text = fmt.Sprintf("%d more %s", w-l, def.Label)
	rec.Comparison = fmt.Sprintf("%d vs %d", w, l)
	rec.Diff = &diff
	return rec
}

func renderBoolean(rec *AdvantageRecord, def catalog.SpecDefinition) *AdvantageRecord {
	switch def.DiffFormat {
	case catalog.DiffFoldableBars:
		rec.Text = "Foldable handlebars"
	case catalog.DiffHasFeature:
		rec.Text = fmt.Sprintf("Has %s", def.Label)
	default:
		rec.Text = titleCase(def.Label)
	}
	rec.Comparison = "yes vs no"
	return rec
}

func motorLabel(n int) string {
	switch n {
	case 1:
		return "Single motor"
	case 2:
		return "Dual motor"
	case 3:
		return "Triple motor"
	default:
		return fmt.Sprintf("%d motors", n)
	}
}

// formatNumber renders a float for display. Decimal mode keeps exactly two
// places; the default mode shows whole numbers as integers and everything
// else with one decimal, trailing zero trimmed.
func formatNumber(v float64, decimal bool) string {
	if decimal {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	rounded := math.Round(v*10) / 10
	if rounded == math.Trunc(rounded) {
		return strconv.FormatFloat(rounded, 'f', 0, 64)
	}
	return strconv.FormatFloat(rounded, 'f', 1, 64)
}

// withUnit appends a unit, spaced unless the unit is a bare symbol.
func withUnit(s, unit string) string {
	if unit == "" {
		return s
	}
	if unit == "%" || unit == "\"" || unit == "″" {
		return s + unit
	}
	return s + " " + unit
}

func valueString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case bool:
		if s {
			return "yes"
		}
		return "no"
	}
	return ""
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

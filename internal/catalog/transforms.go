package catalog

import (
	"strconv"
	"strings"
)

// NormalizeFunc adjusts a raw spec value before comparison.
type NormalizeFunc func(v any) any

// DisplayFunc renders a raw spec value for human-readable output.
type DisplayFunc func(v any) string

// Transforms is the named-transform registry referenced by spec definitions.
// Names are validated at catalog load; runtime lookups still degrade to
// pass-through so a hand-built definition never breaks a comparison.
type Transforms struct {
	normalizers map[string]NormalizeFunc
	display     map[string]DisplayFunc
}

// DefaultTransforms returns the registry with the built-in transforms.
func DefaultTransforms() *Transforms {
	return &Transforms{
		normalizers: map[string]NormalizeFunc{
			"strip_units":      stripUnits,
			"minutes_to_hours": minutesToHours,
		},
		display: map[string]DisplayFunc{
			"water_resistance": displayUpper,
			"title":            displayTitle,
		},
	}
}

func (t *Transforms) HasNormalizer(name string) bool {
	_, ok := t.normalizers[name]
	return ok
}

func (t *Transforms) HasDisplay(name string) bool {
	_, ok := t.display[name]
	return ok
}

// Normalize applies the named normalizer, passing the value through
// unmodified when the name is empty or unknown.
func (t *Transforms) Normalize(name string, v any) any {
	if name == "" {
		return v
	}
	fn, ok := t.normalizers[name]
	if !ok {
		return v
	}
	return fn(v)
}

// Display applies the named display formatter. The second return is false
// when the name is unknown, letting callers fall back to default rendering.
func (t *Transforms) Display(name string, v any) (string, bool) {
	fn, ok := t.display[name]
	if !ok {
		return "", false
	}
	return fn(v), true
}

// stripUnits extracts the leading numeric portion of a string value, so
// "25 mph" compares as 25. Non-strings pass through.
func stripUnits(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.' || s[end] == '-' && end == 0) {
		end++
	}
	if end == 0 {
		return v
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return v
	}
	return f
}

func minutesToHours(v any) any {
	switch n := v.(type) {
	case float64:
		return n / 60
	case int:
		return float64(n) / 60
	}
	return v
}

func displayUpper(v any) string {
	return strings.ToUpper(strings.TrimSpace(toString(v)))
}

func displayTitle(v any) string {
	s := strings.TrimSpace(toString(v))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func toString(v any) string {
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
	case nil:
		return ""
	}
	return ""
}

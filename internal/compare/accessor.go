// Package compare implements the comparison and advantage engine: spec value
// resolution, winner determination, bracket-based significance classification
// and advantage-text rendering. Everything here is pure computation over the
// catalog configuration; there is no I/O and no retained state beyond the
// registry's memo cache.
package compare

import (
	"strings"

	"github.com/rasmushax/eridehero/internal/catalog"
)

// Accessor resolves spec values from a product's nested spec map for one
// category. Resolution order: direct key, category wrapper (with per-category
// path overrides), then raw dot-path traversal.
type Accessor struct {
	wrappers  []string // category's own wrapper first
	overrides map[string]string
}

// NewAccessor builds an accessor for the given category. Wrapper detection
// covers every configured category's wrapper key so a spec map wrapped under
// a sibling category still resolves, but the category's own wrapper is
// checked first.
func NewAccessor(cat *catalog.Catalog, category *catalog.Category) *Accessor {
	var wrappers []string
	if category.Wrapper != "" {
		wrappers = append(wrappers, category.Wrapper)
	}
	for _, w := range cat.Wrappers() {
		if w != category.Wrapper {
			wrappers = append(wrappers, w)
		}
	}
	return &Accessor{wrappers: wrappers, overrides: category.Overrides}
}

// Resolve returns the value for a logical spec key. The second return
// distinguishes absent from present-but-falsy: 0, false and "" are real
// values here, and it is the comparator's job to decide what to do with them.
func (a *Accessor) Resolve(specs map[string]any, key string) (any, bool) {
	if specs == nil {
		return nil, false
	}
	if v, ok := specs[key]; ok {
		return v, true
	}
	if wrapper := a.detectWrapper(specs); wrapper != "" {
		// Override paths win over the generic wrapper mapping.
		if path, ok := a.overrides[key]; ok {
			if v, ok := lookupPath(specs, wrapper+"."+path); ok {
				return v, true
			}
		}
		if v, ok := lookupPath(specs, wrapper+"."+key); ok {
			return v, true
		}
	}
	if strings.Contains(key, ".") {
		return lookupPath(specs, key)
	}
	return nil, false
}

func (a *Accessor) detectWrapper(specs map[string]any) string {
	for _, w := range a.wrappers {
		if _, ok := specs[w].(map[string]any); ok {
			return w
		}
	}
	return ""
}

// lookupPath walks a dot-separated path through nested string-keyed maps.
func lookupPath(specs map[string]any, path string) (any, bool) {
	segments := strings.Split(path, ".")
	current := any(specs)
	for i, seg := range segments {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := m[seg]
		if !ok {
			return nil, false
		}
		if i == len(segments)-1 {
			return v, true
		}
		current = v
	}
	return nil, false
}

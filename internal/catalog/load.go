package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type fileCatalog struct {
	Categories map[string]*Category `yaml:"categories"`
	Aliases    map[string]string    `yaml:"aliases"`
}

// Load returns the built-in catalog, optionally overlaid with a YAML file.
// File categories replace built-in ones wholesale; aliases merge. The result
// is validated before use, so a typo in the content config fails startup
// instead of degrading silently at comparison time.
func Load(path string) (*Catalog, error) {
	cat := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		var fc fileCatalog
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse catalog: %w", err)
		}
		for slug, c := range fc.Categories {
			c.Slug = slug
			cat.Categories[slug] = c
		}
		for alias, target := range fc.Aliases {
			cat.Aliases[NormalizeType(alias)] = target
		}
	}

	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	return cat, nil
}

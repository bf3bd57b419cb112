// Package assets maps menu items to a display emoji and a fallback image.
package assets

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed assets.yaml
var defaultCatalog []byte

// Asset is the display decoration for one menu item.
type Asset struct {
	Emoji string `yaml:"emoji"`
	Image string `yaml:"image"`
}

type rule struct {
	Keywords []string `yaml:"keywords"`
	Asset    `yaml:",inline"`
}

// Catalog resolves assets by keyword.
type Catalog struct {
	fallback Asset
	rules    []rule
}

type catalogFile struct {
	Default Asset  `yaml:"default"`
	Rules   []rule `yaml:"rules"`
}

// Parse decodes a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse asset catalog: %w", err)
	}
	if file.Default.Emoji == "" {
		return nil, fmt.Errorf("parse asset catalog: default emoji missing")
	}
	c := &Catalog{fallback: file.Default}
	for _, r := range file.Rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				kws = append(kws, kw)
			}
		}
		if len(kws) == 0 {
			continue
		}
		if r.Image == "" {
			r.Image = file.Default.Image
		}
		c.rules = append(c.rules, rule{Keywords: kws, Asset: r.Asset})
	}
	return c, nil
}

// Default returns the embedded catalog. It panics only if the embedded file
// is broken, which the package tests guard against.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

// Fallback returns the generic plate asset.
func (c *Catalog) Fallback() Asset {
	if c == nil {
		return Asset{Emoji: "🍽️"}
	}
	return c.fallback
}

// Lookup returns the asset for an item, checking name, then category, then
// cuisine.
func (c *Catalog) Lookup(name, cuisine, category string) Asset {
	if c == nil {
		return c.Fallback()
	}
	for _, field := range []string{name, category, cuisine} {
		field = strings.ToLower(field)
		if field == "" {
			continue
		}
		for _, r := range c.rules {
			for _, kw := range r.Keywords {
				if strings.Contains(field, kw) {
					return r.Asset
				}
			}
		}
	}
	return c.fallback
}

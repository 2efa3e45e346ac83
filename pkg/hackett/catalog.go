// Package hackett serves the static catalog of reusable methodology and
// template assets referenced by workflow phase and category.
package hackett

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed assets.yaml
var catalogYAML []byte

// Asset is one reusable IP item from the methodology library.
type Asset struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Category    string   `yaml:"category" json:"category"`
	Phase       int      `yaml:"phase" json:"phase"`
	Description string   `yaml:"description" json:"description"`
	Industries  []string `yaml:"industries" json:"industries"`
	Keywords    []string `yaml:"keywords" json:"keywords"`
}

// Catalog holds the loaded asset library and answers lookup queries.
type Catalog struct {
	assets []Asset
}

// Load parses the embedded asset library.
func Load() (*Catalog, error) {
	var doc struct {
		Assets []Asset `yaml:"assets"`
	}
	if err := yaml.Unmarshal(catalogYAML, &doc); err != nil {
		return nil, fmt.Errorf("parsing asset catalog: %w", err)
	}
	return &Catalog{assets: doc.Assets}, nil
}

// All returns every asset in the catalog.
func (c *Catalog) All() []Asset {
	out := make([]Asset, len(c.assets))
	copy(out, c.assets)
	return out
}

// Filter returns assets matching the given phase and category. A zero phase
// or empty category matches everything on that dimension.
func (c *Catalog) Filter(phase int, category string) []Asset {
	out := []Asset{}
	for _, a := range c.assets {
		if phase != 0 && a.Phase != phase {
			continue
		}
		if category != "" && !strings.EqualFold(a.Category, category) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// MatchCount estimates how many catalog assets apply to an engagement with
// the given industry and pain points. An asset matches when its industry
// list contains the industry (or is empty, meaning cross-industry) or any
// keyword appears in a pain point.
func (c *Catalog) MatchCount(industry string, painPoints []string) int {
	count := 0
	for _, a := range c.assets {
		if c.matches(a, industry, painPoints) {
			count++
		}
	}
	return count
}

func (c *Catalog) matches(a Asset, industry string, painPoints []string) bool {
	if len(a.Industries) == 0 {
		return true
	}
	for _, ind := range a.Industries {
		if strings.EqualFold(ind, industry) {
			return true
		}
	}
	for _, kw := range a.Keywords {
		for _, p := range painPoints {
			if strings.Contains(strings.ToLower(p), strings.ToLower(kw)) {
				return true
			}
		}
	}
	return false
}

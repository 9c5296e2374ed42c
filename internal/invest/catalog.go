// Package invest holds the static investment product catalog and the
// rule-based recommendation filter over it.
package invest

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Option is one investment product in the catalog.
type Option struct {
	Name      string `yaml:"name"`
	AgeMin    int    `yaml:"age_min"`
	AgeMax    int    `yaml:"age_max"`
	Horizon   string `yaml:"horizon"` // "short" | "long" | "both"
	MinPeriod int    `yaml:"min_period"`
	Type      string `yaml:"type"` // "lumpsum" | "recurring" | "both"
	Risk      string `yaml:"risk"` // display only, not used in filtering
}

// Catalog is the read-only set of investment options. It is loaded once at
// startup and never mutated afterwards.
type Catalog struct {
	options []Option
}

// LoadCatalog parses the embedded catalog definition.
func LoadCatalog() (*Catalog, error) {
	var doc struct {
		Options []Option `yaml:"options"`
	}
	if err := yaml.Unmarshal(catalogYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(doc.Options) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	for _, o := range doc.Options {
		if o.Name == "" {
			return nil, fmt.Errorf("catalog entry without a name")
		}
		if o.AgeMin > o.AgeMax {
			return nil, fmt.Errorf("catalog entry %q: age range [%d, %d] is inverted", o.Name, o.AgeMin, o.AgeMax)
		}
		if o.MinPeriod < 0 {
			return nil, fmt.Errorf("catalog entry %q: negative min_period", o.Name)
		}
	}
	return &Catalog{options: doc.Options}, nil
}

// Options returns a copy of the catalog entries in declaration order.
func (c *Catalog) Options() []Option {
	out := make([]Option, len(c.options))
	copy(out, c.options)
	return out
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int { return len(c.options) }

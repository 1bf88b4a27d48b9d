package constants

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okushigue/zetascan/residue"
)

type yamlConstant struct {
	Name       string    `yaml:"name"`
	Symbol     string    `yaml:"symbol"`
	Value      float64   `yaml:"value"`
	Category   string    `yaml:"category"`
	Tolerances []float64 `yaml:"tolerances"`
}

type yamlCatalog struct {
	Name             string         `yaml:"name"`
	Description      string         `yaml:"description"`
	Mode             string         `yaml:"mode"`
	Tolerances       []float64      `yaml:"tolerances"`
	DefaultTolerance float64        `yaml:"default_tolerance"`
	Constants        []yamlConstant `yaml:"constants"`
	Controls         []yamlConstant `yaml:"controls"`
}

// LoadCatalogFile reads a user-defined catalog from a YAML file.
//
// Minimal example:
//
//	name: my-constants
//	mode: absolute
//	tolerances: [1e-4, 1e-5, 1e-6]
//	default_tolerance: 1e-5
//	constants:
//	  - name: feigenbaum
//	    value: 4.669201609102990
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog parses YAML catalog bytes.
func ParseCatalog(data []byte) (*Catalog, error) {
	var yc yamlCatalog
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	var mode residue.Mode
	switch yc.Mode {
	case "", "absolute":
		mode = residue.Absolute
	case "relative":
		mode = residue.Relative
	default:
		return nil, fmt.Errorf("parse catalog: unknown mode %q", yc.Mode)
	}

	c := &Catalog{
		Name:             yc.Name,
		Description:      yc.Description,
		Mode:             mode,
		Tolerances:       yc.Tolerances,
		DefaultTolerance: yc.DefaultTolerance,
	}
	if len(c.Tolerances) == 0 {
		if mode == residue.Relative {
			c.Tolerances = residue.DefaultRelativeLevels()
		} else {
			c.Tolerances = residue.DefaultAbsoluteLevels()
		}
	}
	if c.DefaultTolerance == 0 && len(c.Tolerances) > 0 {
		c.DefaultTolerance = c.Tolerances[len(c.Tolerances)/2]
	}
	for _, k := range yc.Constants {
		c.Constants = append(c.Constants, yamlToConstant(k))
	}
	for _, k := range yc.Controls {
		ctl := yamlToConstant(k)
		if ctl.Category == "" {
			ctl.Category = CategoryControl
		}
		c.Controls = append(c.Controls, ctl)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func yamlToConstant(k yamlConstant) Constant {
	return Constant{
		Name:       k.Name,
		Symbol:     k.Symbol,
		Value:      k.Value,
		Category:   Category(k.Category),
		Tolerances: k.Tolerances,
	}
}

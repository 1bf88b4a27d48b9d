// Package constants defines the constant catalogs the scanner hunts
// against: named physical or mathematical values, the tolerance ladders
// matched to their magnitudes, and the control constants used to keep the
// statistics honest.
package constants

import (
	"fmt"
	"sort"
	"sync"

	"github.com/okushigue/zetascan/residue"
)

// Category groups constants for the Monte Carlo pattern analysis.
type Category string

const (
	CategoryForces       Category = "forces"
	CategoryElectroweak  Category = "electroweak"
	CategoryMasses       Category = "masses"
	CategoryCosmology    Category = "cosmology"
	CategoryMagnetic     Category = "magnetic"
	CategoryMathematical Category = "mathematical"
	CategoryThermo       Category = "thermodynamic"
	CategoryQuantum      Category = "quantum"
	CategoryRelativity   Category = "relativity"
	CategoryControl      Category = "control"
)

// Constant is a single named target value.
type Constant struct {
	Name     string
	Symbol   string
	Value    float64
	Category Category
	// Tolerances overrides the catalog-level ladder for this constant.
	// Used by the forces catalog, where magnitudes span 40 orders.
	Tolerances []float64
}

// Catalog is a named set of constants hunted together.
type Catalog struct {
	Name        string
	Description string
	// Mode selects absolute or relative tolerance comparison for every
	// constant in the catalog.
	Mode residue.Mode
	// Tolerances is the default ladder, widest first.
	Tolerances []float64
	// DefaultTolerance selects the level used for comparative tables and
	// best-resonance reporting.
	DefaultTolerance float64
	Constants        []Constant
	// Controls are scanned alongside Constants at the default tolerance to
	// expose coincidences that any value of similar magnitude would show.
	Controls []Constant
}

// Constant returns the named constant from the catalog.
func (c *Catalog) Constant(name string) (Constant, bool) {
	for _, k := range c.Constants {
		if k.Name == name {
			return k, true
		}
	}
	return Constant{}, false
}

// TolerancesFor returns the ladder for a constant, falling back to the
// catalog ladder.
func (c *Catalog) TolerancesFor(k Constant) []float64 {
	if len(k.Tolerances) > 0 {
		return k.Tolerances
	}
	return c.Tolerances
}

// Validate checks the catalog is scannable.
func (c *Catalog) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("catalog has no name")
	}
	if len(c.Constants) == 0 {
		return fmt.Errorf("catalog %q has no constants", c.Name)
	}
	if !residue.ValidTolerance(c.DefaultTolerance) {
		return fmt.Errorf("catalog %q: invalid default tolerance %v", c.Name, c.DefaultTolerance)
	}
	for _, k := range c.Constants {
		if !residue.ValidConstant(k.Value) {
			return fmt.Errorf("catalog %q: constant %q has invalid value %v", c.Name, k.Name, k.Value)
		}
		for _, tol := range c.TolerancesFor(k) {
			if !residue.ValidTolerance(tol) {
				return fmt.Errorf("catalog %q: constant %q has invalid tolerance %v", c.Name, k.Name, tol)
			}
		}
	}
	for _, k := range c.Controls {
		if !residue.ValidConstant(k.Value) {
			return fmt.Errorf("catalog %q: control %q has invalid value %v", c.Name, k.Name, k.Value)
		}
	}
	return nil
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() *Catalog{}
)

// Register makes a catalog constructor available under its name.
// Later registrations replace earlier ones.
func Register(name string, fn func() *Catalog) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// ByName returns a fresh copy of the named built-in catalog.
func ByName(name string) (*Catalog, bool) {
	registryMu.RLock()
	fn, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, false
	}
	return fn(), true
}

// Names lists the registered catalogs in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PhysicsCategories maps analysis categories to the constant names of the
// forces catalog. The Monte Carlo perturbation study uses this grouping to
// test whether category hierarchies survive perturbation.
func PhysicsCategories() map[Category][]string {
	return map[Category][]string{
		CategoryCosmology:    {"dark_energy", "dark_matter", "baryon_density", "hubble_reduced", "sigma8"},
		CategoryElectroweak:  {"weinberg_angle", "fermi_coupling"},
		CategoryForces:       {"electromagnetic", "strong", "weak", "gravitational"},
		CategoryMasses:       {"proton_electron", "muon_electron", "tau_electron", "neutron_proton"},
		CategoryMagnetic:     {"gyromagnetic_proton", "gyromagnetic_neutron", "magnetic_moment_ratio"},
		CategoryMathematical: {"euler_mascheroni"},
	}
}

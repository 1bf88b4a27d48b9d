package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okushigue/zetascan/residue"
)

func TestBuiltinCatalogsValidate(t *testing.T) {
	names := Names()
	require.NotEmpty(t, names)
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			cat, ok := ByName(name)
			require.True(t, ok)
			require.NoError(t, cat.Validate())
			assert.Equal(t, name, cat.Name)
			assert.NotEmpty(t, cat.Constants)
			assert.NotEmpty(t, cat.Tolerances)
		})
	}
}

func TestByNameUnknown(t *testing.T) {
	_, ok := ByName("does-not-exist")
	assert.False(t, ok)
}

func TestFineStructureValues(t *testing.T) {
	cat, ok := ByName("fine-structure")
	require.True(t, ok)

	alpha, ok := cat.Constant("fine_structure")
	require.True(t, ok)
	assert.InDelta(t, 0.0072973525693, alpha.Value, 1e-12)
	assert.Equal(t, residue.Absolute, cat.Mode)
	assert.Equal(t, 1e-5, cat.DefaultTolerance)
	assert.Len(t, cat.Controls, 7)
}

func TestForcesPerConstantLadders(t *testing.T) {
	cat, ok := ByName("forces")
	require.True(t, ok)
	assert.Len(t, cat.Constants, 19)

	grav, ok := cat.Constant("gravitational")
	require.True(t, ok)
	ladder := cat.TolerancesFor(grav)
	require.Len(t, ladder, 6)
	assert.InDelta(t, 1e-38, ladder[0], 1e-45)
	assert.InDelta(t, 1e-43, ladder[5], 1e-50)

	// Constants without their own ladder fall back to the catalog's.
	assert.Equal(t, cat.Tolerances, cat.TolerancesFor(Constant{Name: "x", Value: 1}))
}

func TestRelativeCatalogs(t *testing.T) {
	for _, name := range []string{"planck", "light-speed", "rydberg", "spacetime", "nuclear-cosmic", "alcubierre"} {
		cat, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, residue.Relative, cat.Mode, name)
		assert.Equal(t, 1e-8, cat.DefaultTolerance, name)
	}
}

func TestPlanckScaledValues(t *testing.T) {
	cat, _ := ByName("planck")
	h34, ok := cat.Constant("planck_34x")
	require.True(t, ok)
	assert.InDelta(t, 6.62607015, h34.Value, 1e-9)
}

func TestValidate(t *testing.T) {
	bad := &Catalog{Name: "bad", DefaultTolerance: 1e-5}
	assert.Error(t, bad.Validate()) // no constants

	bad = &Catalog{
		Name:             "bad",
		DefaultTolerance: 1e-5,
		Tolerances:       []float64{1e-5},
		Constants:        []Constant{{Name: "neg", Value: -1}},
	}
	assert.Error(t, bad.Validate())

	bad = &Catalog{
		Name:             "bad",
		DefaultTolerance: 0,
		Tolerances:       []float64{1e-5},
		Constants:        []Constant{{Name: "ok", Value: 1}},
	}
	assert.Error(t, bad.Validate())
}

func TestParseCatalog(t *testing.T) {
	data := []byte(`
name: custom
mode: relative
default_tolerance: 1e-7
constants:
  - name: feigenbaum
    symbol: delta
    value: 4.669201609102990
controls:
  - name: random_1
    value: 4.5
`)
	cat, err := ParseCatalog(data)
	require.NoError(t, err)
	assert.Equal(t, "custom", cat.Name)
	assert.Equal(t, residue.Relative, cat.Mode)
	assert.Equal(t, residue.DefaultRelativeLevels(), cat.Tolerances)
	require.Len(t, cat.Controls, 1)
	assert.Equal(t, CategoryControl, cat.Controls[0].Category)

	_, err = ParseCatalog([]byte("name: x\nmode: sideways\nconstants: [{name: a, value: 1}]"))
	assert.Error(t, err)

	_, err = ParseCatalog([]byte("::not yaml"))
	assert.Error(t, err)
}

func TestPhysicsCategories(t *testing.T) {
	cats := PhysicsCategories()
	forces, _ := ByName("forces")
	for cat, names := range cats {
		for _, name := range names {
			_, ok := forces.Constant(name)
			assert.True(t, ok, "category %s references unknown constant %s", cat, name)
		}
	}
}

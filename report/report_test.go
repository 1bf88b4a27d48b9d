package report

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okushigue/zetascan/blobstore"
	"github.com/okushigue/zetascan/constants"
	"github.com/okushigue/zetascan/montecarlo"
	"github.com/okushigue/zetascan/residue"
	"github.com/okushigue/zetascan/scan"
	"github.com/okushigue/zetascan/zeros"
)

func scanResult(t *testing.T) *scan.Result {
	t.Helper()

	cat := &constants.Catalog{
		Name:             "unit",
		Mode:             residue.Absolute,
		Tolerances:       []float64{0.2, 0.01},
		DefaultTolerance: 0.01,
		Constants: []constants.Constant{
			{Name: "one", Symbol: "1", Value: 1.0, Category: constants.CategoryMathematical},
		},
		Controls: []constants.Constant{
			{Name: "one_control", Symbol: "1c", Value: 1.0, Category: constants.CategoryControl},
		},
	}
	zs := make([]zeros.Zero, 2000)
	for i := range zs {
		idx := uint64(i + 1)
		offset := 0.3
		if idx%4 == 0 {
			offset = 0.001
		}
		zs[i] = zeros.Zero{Index: idx, Gamma: float64(idx) + offset}
	}

	res, err := scan.NewScanner().Scan(context.Background(), zs, cat)
	require.NoError(t, err)
	return res
}

func TestRenderScan(t *testing.T) {
	res := scanResult(t)
	out := RenderScan(res, time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC))

	assert.Contains(t, out, "ZETA RESONANCE COMPREHENSIVE REPORT")
	assert.Contains(t, out, "Catalog:       unit (absolute mode)")
	assert.Contains(t, out, "MULTI-TOLERANCE RESULTS")
	assert.Contains(t, out, "COMPARATIVE ANALYSIS")
	assert.Contains(t, out, "BEST RESONANCE")
	// Gamma printed to 15 decimal places.
	assert.Contains(t, out, "Gamma:            4.001000000000000")
	assert.Contains(t, out, "Predicted energy:")
	assert.Contains(t, out, "one_control")
}

func TestWriteScan(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	w := NewWriter(store)

	name, err := w.WriteScan(ctx, scanResult(t))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "comprehensive_report_unit_"))

	blob, err := store.Open(ctx, name)
	require.NoError(t, err)
	data, err := blobstore.ReadAll(blob)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEST RESONANCE")
}

func TestExportRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	w := NewWriter(store)
	res := scanResult(t)

	name, err := w.WriteJSON(ctx, res)
	require.NoError(t, err)

	blob, err := store.Open(ctx, name)
	require.NoError(t, err)
	data, err := blobstore.ReadAll(blob)
	require.NoError(t, err)

	env, err := DecodeExport(data)
	require.NoError(t, err)
	assert.Equal(t, "unit", env.Session.Catalog)
	assert.Len(t, env.Session.Cells, 2)
	require.NotNil(t, env.Session.Best)
	assert.Equal(t, "one", env.Session.Best.Constant)
	assert.InDelta(t, 0.001, env.Session.Best.Quality, 1e-12)
}

func TestDecodeExportUnknownCodec(t *testing.T) {
	_, err := DecodeExport([]byte(`{"codec":"msgpack"}`))
	assert.ErrorContains(t, err, "unknown export codec")
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSessionStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	res := scanResult(t)
	started := time.Now().Add(-time.Minute)
	id, err := store.RecordScan(ctx, res, started, "report.txt")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	sessions, err := store.Sessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, id, sessions[0].ID)
	assert.Equal(t, "unit", sessions[0].Catalog)
	assert.Equal(t, 2000, sessions[0].ScannedZeros)
	assert.Equal(t, "one", sessions[0].BestConstant)
	assert.Equal(t, "report.txt", sessions[0].Report)

	cells, err := store.Cells(ctx, id)
	require.NoError(t, err)
	require.Len(t, cells, 2)
	for _, c := range cells {
		assert.Equal(t, "one", c.Constant)
		assert.Equal(t, 500, c.Hits)
		require.NotNil(t, c.Significance)
	}
}

func TestRenderMonteCarloReports(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	random := &montecarlo.RandomResult{
		Simulations: 100, Constants: 20, SampleSize: 1000, Seed: 1,
		Percentiles: []montecarlo.Percentile{{P: 50, Value: 1e-4}},
	}
	out := RenderRandom(random, now)
	assert.Contains(t, out, "RANDOM CONSTANTS")
	assert.Contains(t, out, "p50")

	perturb := &montecarlo.PerturbationResult{
		Catalog: "forces",
		Levels: []montecarlo.LevelResult{
			{Level: 0.01, Simulations: 100, HierarchyRate: 0.9},
		},
	}
	out = RenderPerturbation(perturb, now)
	assert.Contains(t, out, "PERTURBED CONSTANTS")
	assert.Contains(t, out, "forces")
}

func TestWriteMonteCarloReports(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	w := NewWriter(store)

	name, err := w.WriteRandom(ctx, &montecarlo.RandomResult{Simulations: 1})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "montecarlo_random_"))

	name, err = w.WritePerturbation(ctx, &montecarlo.PerturbationResult{Catalog: "forces"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "montecarlo_perturb_forces_"))
}

package stats

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChiSquare(t *testing.T) {
	tests := []struct {
		name        string
		count       int
		expected    float64
		wantStat    float64
		significant bool
	}{
		{"Exact", 10, 10, 0, false},
		{"Double", 20, 10, 10, true},
		{"SlightExcess", 12, 10, 0.4, false},
		{"Deficit", 2, 10, 6.4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChiSquare(tt.count, tt.expected)
			assert.InDelta(t, tt.wantStat, got.Statistic, 1e-9)
			assert.Equal(t, tt.significant, got.Significant)
			assert.GreaterOrEqual(t, got.PValue, 0.0)
			assert.LessOrEqual(t, got.PValue, 1.0)
		})
	}
}

func TestChiSquarePValue(t *testing.T) {
	// chi2 sf(3.841, df=1) is 0.05 by construction of the critical value.
	got := ChiSquare(10, 5.0) // stat = 5
	assert.InDelta(t, 0.02535, got.PValue, 1e-3)
}

func TestBinomialTest(t *testing.T) {
	// Fair-coin sanity: 5 heads in 10 flips is as expected as it gets.
	r := BinomialTest(5, 10, 0.5)
	assert.InDelta(t, 1.0, r.PValue, 1e-9)
	assert.False(t, r.Significant)

	// 10 heads in 10 flips: p = 2 * (1/1024).
	r = BinomialTest(10, 10, 0.5)
	assert.InDelta(t, 2.0/1024.0, r.PValue, 1e-9)
	assert.True(t, r.Significant)

	// Degenerate probability.
	r = BinomialTest(3, 10, 0)
	assert.Equal(t, 1.0, r.PValue)
}

func TestPoissonTail(t *testing.T) {
	// P(X >= 1) with mean 1 is 1 - e^{-1}.
	r := PoissonTail(1, 1)
	assert.InDelta(t, 1-math.Exp(-1), r.PValue, 1e-9)

	// Far above the mean should be tiny.
	r = PoissonTail(50, 5)
	assert.Less(t, r.PValue, 1e-20)
	assert.True(t, r.Significant)

	// Zero count is never significant.
	r = PoissonTail(0, 5)
	assert.Equal(t, 1.0, r.PValue)
	assert.False(t, r.Significant)
}

func TestKSUniform(t *testing.T) {
	// Perfectly uniform grid on [0, 1) should not reject.
	n := 100
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = (float64(i) + 0.5) / float64(n)
	}
	r := KSUniform(xs, 1)
	assert.False(t, r.Significant)
	assert.InDelta(t, 0.005, r.Statistic, 1e-9)

	// Everything piled near zero should reject hard.
	for i := range xs {
		xs[i] = 1e-6 * float64(i+1)
	}
	r = KSUniform(xs, 1)
	assert.True(t, r.Significant)
	assert.Greater(t, r.Statistic, 0.9)
}

func TestAndersonDarlingNormal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	normal := make([]float64, 500)
	for i := range normal {
		normal[i] = rng.NormFloat64()
	}
	r := AndersonDarlingNormal(normal)
	require.NotNil(t, r)
	assert.True(t, r.Normal)

	// Strongly bimodal data is clearly not normal.
	bimodal := make([]float64, 500)
	for i := range bimodal {
		if i%2 == 0 {
			bimodal[i] = -10 + 0.01*rng.NormFloat64()
		} else {
			bimodal[i] = 10 + 0.01*rng.NormFloat64()
		}
	}
	r = AndersonDarlingNormal(bimodal)
	require.NotNil(t, r)
	assert.False(t, r.Normal)

	// Constant sample has no spread to test.
	assert.Nil(t, AndersonDarlingNormal([]float64{1, 1, 1, 1}))
}

func TestRunsTest(t *testing.T) {
	// Uniform gaps: all gaps equal the median, a single run, not random.
	uniform := make([]uint64, 40)
	for i := range uniform {
		uniform[i] = uint64(10 * (i + 1))
	}
	r := RunsTest(uniform)
	require.NotNil(t, r)
	// All gaps equal means n1 == 0; degenerate case treated as random.
	assert.True(t, r.Random)

	// Strictly alternating small/large gaps give the maximum run count.
	alternating := []uint64{0}
	for i := 0; i < 40; i++ {
		step := uint64(1)
		if i%2 == 1 {
			step = 100
		}
		alternating = append(alternating, alternating[len(alternating)-1]+step)
	}
	r = RunsTest(alternating)
	require.NotNil(t, r)
	assert.False(t, r.Random)
	assert.Greater(t, r.ZScore, 0.0)
}

func TestLag1Autocorr(t *testing.T) {
	// A constant positive signal has raw lag-1 autocorrelation near 1.
	xs := make([]float64, 100)
	for i := range xs {
		xs[i] = 5
	}
	r := Lag1Autocorr(xs)
	require.NotNil(t, r)
	assert.InDelta(t, 0.99, r.Lag1, 0.011)
	assert.True(t, r.Significant)

	assert.Nil(t, Lag1Autocorr([]float64{1, 2}))
}

func TestAnalyzeEmpty(t *testing.T) {
	a := Analyze(0, 0.01, nil, nil, 1e-5)
	assert.Equal(t, 0, a.Summary.Count)
	assert.Equal(t, 0.0, a.Summary.Significance)
	assert.Nil(t, a.ChiSquare)
	assert.Nil(t, a.Binomial)
}

func TestAnalyzeGates(t *testing.T) {
	// 8 hits in 1000 zeros at p=0.002: expected 2 (< 5), so no chi-squared,
	// and below the KS/runs/autocorr gates.
	distances := []float64{1e-6, 2e-6, 3e-6, 4e-6, 5e-6, 6e-6, 7e-6, 8e-6}
	indices := []uint64{10, 90, 200, 340, 410, 560, 720, 950}

	a := Analyze(1000, 0.002, distances, indices, 1e-5)
	assert.Nil(t, a.ChiSquare)
	require.NotNil(t, a.Binomial)
	require.NotNil(t, a.Poisson)
	assert.Nil(t, a.KSUniform)
	assert.Nil(t, a.Runs)
	assert.Nil(t, a.Autocorr)
	assert.InDelta(t, 4.0, a.Summary.Significance, 1e-9)
}

func TestAnalyzeFull(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n := 200
	distances := make([]float64, n)
	indices := make([]uint64, n)
	next := uint64(0)
	for i := range distances {
		distances[i] = rng.Float64() * 1e-5
		next += uint64(1 + rng.Intn(50))
		indices[i] = next
	}

	a := Analyze(10000, 0.01, distances, indices, 1e-5)
	require.NotNil(t, a.ChiSquare)
	require.NotNil(t, a.Binomial)
	require.NotNil(t, a.Poisson)
	require.NotNil(t, a.KSUniform)
	require.NotNil(t, a.AndersonDarling)
	require.NotNil(t, a.Runs)
	require.NotNil(t, a.Autocorr)
	assert.InDelta(t, 2.0, a.Summary.Significance, 1e-9)
	// Uniform distances should pass the KS uniformity check.
	assert.False(t, a.KSUniform.Significant)
}

func TestCriteria(t *testing.T) {
	crit := DefaultCriteria()

	ok, reason := crit.Evaluate(nil)
	assert.False(t, ok)
	assert.Equal(t, "too few resonances", reason)

	// Strong excess: 50 hits where 10 were expected.
	distances := make([]float64, 50)
	indices := make([]uint64, 50)
	for i := range distances {
		distances[i] = float64(i+1) * 1e-7
		indices[i] = uint64(i * 17)
	}
	a := Analyze(1000, 0.01, distances, indices, 1e-5)
	ok, reason = crit.Evaluate(a)
	assert.True(t, ok)
	assert.Contains(t, reason, "chi2")

	// As-expected count is not significant.
	a = Analyze(5000, 0.01, distances, indices, 1e-5)
	ok, _ = crit.Evaluate(a)
	assert.False(t, ok)
}

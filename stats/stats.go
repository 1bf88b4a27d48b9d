// Package stats scores resonance counts against a uniform-residue null
// model. Every test here answers the same question from a different angle:
// is the observed hit count (or the shape of the hit distances) compatible
// with residues that are uniformly distributed modulo the constant?
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// Summary holds the basic counting statistics for one (constant, tolerance)
// cell.
type Summary struct {
	TotalZeros int
	Count      int
	Expected   float64
	Rate       float64
	// Significance is the observed count divided by the expected count.
	// +Inf when hits were observed but none were expected.
	Significance float64
}

// ChiSquareResult is a one-cell goodness-of-fit test with df=1.
type ChiSquareResult struct {
	Statistic   float64
	PValue      float64
	Critical05  float64
	Significant bool
}

// BinomialResult is a two-sided exact binomial test.
type BinomialResult struct {
	PValue      float64
	Significant bool
}

// PoissonResult is the upper-tail probability P(X >= count) under the
// expected Poisson rate.
type PoissonResult struct {
	PValue      float64
	Significant bool
}

// KSResult is a one-sample Kolmogorov-Smirnov test of hit distances
// against Uniform(0, tol).
type KSResult struct {
	Statistic   float64
	PValue      float64
	Significant bool
}

// AndersonDarlingResult tests hit distances for normality with estimated
// parameters. CriticalValues correspond to SignificanceLevels (percent).
type AndersonDarlingResult struct {
	Statistic          float64
	CriticalValues     [5]float64
	SignificanceLevels [5]float64
	Normal             bool
}

// RunsResult is a Wald-Wolfowitz style runs test over index gaps.
type RunsResult struct {
	ZScore float64
	PValue float64
	Random bool
}

// AutocorrResult reports the lag-1 autocorrelation of hit distances in
// index order.
type AutocorrResult struct {
	Lag1        float64
	Threshold   float64
	Significant bool
}

// Analysis aggregates all tests for one cell. Tests that were not
// applicable (too few hits, expected count too small) are nil.
type Analysis struct {
	Summary         Summary
	ChiSquare       *ChiSquareResult
	Binomial        *BinomialResult
	Poisson         *PoissonResult
	KSUniform       *KSResult
	AndersonDarling *AndersonDarlingResult
	Runs            *RunsResult
	Autocorr        *AutocorrResult
}

// Minimum hit counts gating the shape tests.
const (
	minForKS      = 10
	minForRuns    = 20
	minForAutocor = 30

	// chi-squared requires an expected count of at least 5 to be meaningful
	minExpectedForChiSquare = 5
)

// Analyze runs the full suite for one (constant, tolerance) cell.
//
// totalZeros is the number of zeros scanned, hitProb the null-model hit
// probability, distances the circular distances of the hits in index order,
// indices the zero indices of the hits, and tolAbs the absolute distance
// bound the hits were collected under.
func Analyze(totalZeros int, hitProb float64, distances []float64, indices []uint64, tolAbs float64) *Analysis {
	count := len(distances)
	expected := float64(totalZeros) * hitProb

	a := &Analysis{
		Summary: Summary{
			TotalZeros:   totalZeros,
			Count:        count,
			Expected:     expected,
			Rate:         rate(count, totalZeros),
			Significance: significance(count, expected),
		},
	}
	if totalZeros == 0 || count == 0 {
		return a
	}

	if expected >= minExpectedForChiSquare {
		a.ChiSquare = ChiSquare(count, expected)
	}
	a.Binomial = BinomialTest(count, totalZeros, hitProb)
	a.Poisson = PoissonTail(count, expected)

	if count > minForKS {
		a.KSUniform = KSUniform(distances, tolAbs)
		a.AndersonDarling = AndersonDarlingNormal(distances)
	}
	if count > minForRuns {
		a.Runs = RunsTest(indices)
	}
	if count > minForAutocor {
		a.Autocorr = Lag1Autocorr(distances)
	}
	return a
}

func rate(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}

func significance(count int, expected float64) float64 {
	if expected > 0 {
		return float64(count) / expected
	}
	if count > 0 {
		return math.Inf(1)
	}
	return 0
}

// ChiSquare computes a one-cell chi-squared statistic with df=1 against the
// expected count. The caller is responsible for the expected >= 5 rule.
func ChiSquare(count int, expected float64) *ChiSquareResult {
	diff := float64(count) - expected
	stat := diff * diff / expected
	p := 1 - distuv.ChiSquared{K: 1}.CDF(stat)
	return &ChiSquareResult{
		Statistic:   stat,
		PValue:      p,
		Critical05:  3.841,
		Significant: stat > 3.841,
	}
}

// BinomialTest computes a two-sided binomial p-value for count hits in n
// trials at probability p, as 2*min(P(X<=k), P(X>=k)) capped at 1.
func BinomialTest(count, n int, p float64) *BinomialResult {
	if p <= 0 || p >= 1 || n == 0 {
		return &BinomialResult{PValue: 1}
	}
	b := distuv.Binomial{N: float64(n), P: p}
	lower := b.CDF(float64(count))
	upper := 1.0
	if count > 0 {
		upper = 1 - b.CDF(float64(count-1))
	}
	pv := 2 * math.Min(lower, upper)
	if pv > 1 {
		pv = 1
	}
	return &BinomialResult{PValue: pv, Significant: pv < 0.05}
}

// PoissonTail computes P(X >= count) for a Poisson variable with the given
// mean.
func PoissonTail(count int, mean float64) *PoissonResult {
	if count <= 0 || mean <= 0 {
		return &PoissonResult{PValue: 1}
	}
	p := 1 - distuv.Poisson{Lambda: mean}.CDF(float64(count-1))
	return &PoissonResult{PValue: p, Significant: p < 0.05}
}

// KSUniform runs a one-sample KS test of xs against Uniform(0, tol).
func KSUniform(xs []float64, tol float64) *KSResult {
	n := len(xs)
	if n == 0 || tol <= 0 {
		return &KSResult{PValue: 1}
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	var d float64
	for i, x := range sorted {
		f := x / tol
		if f > 1 {
			f = 1
		}
		if hi := float64(i+1)/float64(n) - f; hi > d {
			d = hi
		}
		if lo := f - float64(i)/float64(n); lo > d {
			d = lo
		}
	}

	p := kolmogorovQ((math.Sqrt(float64(n)) + 0.12 + 0.11/math.Sqrt(float64(n))) * d)
	return &KSResult{Statistic: d, PValue: p, Significant: p < 0.05}
}

// kolmogorovQ is the asymptotic survival function of the Kolmogorov
// distribution: Q(t) = 2 * sum_{k>=1} (-1)^{k-1} exp(-2 k^2 t^2).
func kolmogorovQ(t float64) float64 {
	if t <= 0 {
		return 1
	}
	var sum float64
	sign := 1.0
	for k := 1; k <= 100; k++ {
		term := math.Exp(-2 * float64(k*k) * t * t)
		sum += sign * term
		if term < 1e-12 {
			break
		}
		sign = -sign
	}
	q := 2 * sum
	if q < 0 {
		return 0
	}
	if q > 1 {
		return 1
	}
	return q
}

// Anderson-Darling critical values for the normal case with estimated
// parameters, at the 15/10/5/2.5/1 percent significance levels.
var adCriticalBase = [5]float64{0.576, 0.656, 0.787, 0.918, 1.092}
var adLevels = [5]float64{15, 10, 5, 2.5, 1}

// AndersonDarlingNormal tests xs for normality with mean and standard
// deviation estimated from the sample.
func AndersonDarlingNormal(xs []float64) *AndersonDarlingResult {
	n := len(xs)
	if n < 3 {
		return nil
	}
	mean, sd := meanStddev(xs)
	if sd == 0 {
		return nil
	}

	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	norm := distuv.Normal{Mu: 0, Sigma: 1}
	var s float64
	for i := 0; i < n; i++ {
		zi := (sorted[i] - mean) / sd
		zrev := (sorted[n-1-i] - mean) / sd
		cdf := clampProb(norm.CDF(zi))
		sf := clampProb(1 - norm.CDF(zrev))
		s += float64(2*i+1) * (math.Log(cdf) + math.Log(sf))
	}
	a2 := -float64(n) - s/float64(n)

	// Small-sample adjustment for estimated parameters.
	adj := 1 + 4/float64(n) - 25/float64(n*n)
	var crit [5]float64
	for i, c := range adCriticalBase {
		crit[i] = c / adj
	}
	return &AndersonDarlingResult{
		Statistic:          a2,
		CriticalValues:     crit,
		SignificanceLevels: adLevels,
		Normal:             a2 < crit[2],
	}
}

func clampProb(p float64) float64 {
	const eps = 1e-300
	if p < eps {
		return eps
	}
	if p > 1-1e-16 {
		return 1 - 1e-16
	}
	return p
}

// RunsTest converts sorted index gaps into an above/below-median binary
// sequence and applies the runs z-test.
func RunsTest(indices []uint64) *RunsResult {
	if len(indices) < 3 {
		return nil
	}
	sorted := append([]uint64(nil), indices...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	gaps := make([]float64, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps[i-1] = float64(sorted[i] - sorted[i-1])
	}
	med := median(gaps)

	seq := make([]bool, len(gaps))
	for i, g := range gaps {
		seq[i] = g > med
	}
	return runsFromSequence(seq)
}

func runsFromSequence(seq []bool) *RunsResult {
	var n1 int
	for _, v := range seq {
		if v {
			n1++
		}
	}
	n2 := len(seq) - n1
	if n1 == 0 || n2 == 0 {
		return &RunsResult{ZScore: 0, PValue: 1, Random: true}
	}

	runs := 1
	for i := 1; i < len(seq); i++ {
		if seq[i] != seq[i-1] {
			runs++
		}
	}

	f1, f2 := float64(n1), float64(n2)
	expected := 2*f1*f2/(f1+f2) + 1
	variance := (2 * f1 * f2 * (2*f1*f2 - f1 - f2)) / ((f1 + f2) * (f1 + f2) * (f1 + f2 - 1))
	if variance <= 0 {
		return &RunsResult{ZScore: 0, PValue: 1, Random: true}
	}
	z := (float64(runs) - expected) / math.Sqrt(variance)
	p := 2 * (1 - distuv.UnitNormal.CDF(math.Abs(z)))
	return &RunsResult{ZScore: z, PValue: p, Random: p > 0.05}
}

// Lag1Autocorr computes the raw (non-centered) lag-1 autocorrelation of xs,
// normalized by the lag-0 term.
func Lag1Autocorr(xs []float64) *AutocorrResult {
	n := len(xs)
	if n < 4 {
		return nil
	}
	var lag0, lag1 float64
	for i, x := range xs {
		lag0 += x * x
		if i+1 < n {
			lag1 += x * xs[i+1]
		}
	}
	var r1 float64
	if lag0 > 0 {
		r1 = lag1 / lag0
	}
	threshold := 1.96 / math.Sqrt(float64(n))
	return &AutocorrResult{
		Lag1:        r1,
		Threshold:   threshold,
		Significant: math.Abs(r1) > threshold,
	}
}

func meanStddev(xs []float64) (mean, sd float64) {
	n := float64(len(xs))
	for _, x := range xs {
		mean += x
	}
	mean /= n
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	if len(xs) > 1 {
		sd = math.Sqrt(ss / (n - 1))
	}
	return mean, sd
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Package montecarlo estimates how surprising observed resonances are by
// rerunning the hunt against random constants and against perturbed copies
// of the real catalog.
package montecarlo

import (
	"errors"
	"log/slog"
	"math"
	"runtime"
	"sort"

	"github.com/okushigue/zetascan/residue"
	"github.com/okushigue/zetascan/zeros"
)

var (
	// ErrNoZeros is returned when a study has no ordinates to sample.
	ErrNoZeros = errors.New("no zeros to sample")
	// ErrNoSimulations is returned when no simulation produced a usable
	// result.
	ErrNoSimulations = errors.New("no valid simulations")
)

// Defaults for study sizing.
const (
	DefaultSimulations = 1000
	DefaultSampleSize  = 100000
	DefaultSeed        = 1
)

// DefaultPercentiles summarize the null distribution of best qualities.
func DefaultPercentiles() []float64 {
	return []float64{1, 5, 10, 25, 50, 75, 90, 95, 99}
}

// DefaultPerturbationLevels are the relative noise levels applied to the
// real constants.
func DefaultPerturbationLevels() []float64 {
	return []float64{0.001, 0.01, 0.1, 1.0}
}

// Study runs Monte Carlo experiments over a zero sequence.
type Study struct {
	logger      *slog.Logger
	workers     int
	simulations int
	sampleSize  int
	seed        int64
	levels      []float64
	percentiles []float64
}

// Option configures a Study.
type Option func(*Study)

// WithLogger sets the study logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Study) { s.logger = l }
}

// WithWorkers bounds the simulation fan-out.
func WithWorkers(n int) Option {
	return func(s *Study) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithSimulations sets the number of simulations per study.
func WithSimulations(n int) Option {
	return func(s *Study) {
		if n > 0 {
			s.simulations = n
		}
	}
}

// WithSampleSize bounds how many of the most recent zeros are sampled.
func WithSampleSize(n int) Option {
	return func(s *Study) {
		if n > 0 {
			s.sampleSize = n
		}
	}
}

// WithSeed fixes the base random seed so studies are reproducible.
func WithSeed(seed int64) Option {
	return func(s *Study) { s.seed = seed }
}

// WithPerturbationLevels overrides the noise levels.
func WithPerturbationLevels(levels []float64) Option {
	return func(s *Study) {
		if len(levels) > 0 {
			s.levels = levels
		}
	}
}

// NewStudy creates a Study with default sizing.
func NewStudy(opts ...Option) *Study {
	s := &Study{
		logger:      slog.Default(),
		workers:     runtime.GOMAXPROCS(0),
		simulations: DefaultSimulations,
		sampleSize:  DefaultSampleSize,
		seed:        DefaultSeed,
		levels:      DefaultPerturbationLevels(),
		percentiles: DefaultPercentiles(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// sample returns the gammas of the last sampleSize zeros.
func (s *Study) sample(zs []zeros.Zero) []float64 {
	if len(zs) > s.sampleSize {
		zs = zs[len(zs)-s.sampleSize:]
	}
	return zeros.Gammas(zs)
}

// bestResonance finds the strongest alignment of c with the sample: the
// smallest relative error and the ordinate that produced it.
func bestResonance(sample []float64, c float64) (quality, gamma float64) {
	quality = math.Inf(1)
	for _, g := range sample {
		if rel := residue.RelativeError(g, c); rel < quality {
			quality = rel
			gamma = g
		}
	}
	return quality, gamma
}

// Percentile is one point of an empirical distribution summary.
type Percentile struct {
	P     float64
	Value float64
}

// percentileOf interpolates the p-th percentile of sorted values.
func percentileOf(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	pos := p / 100 * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func summarize(values []float64, ps []float64) []Percentile {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	out := make([]Percentile, len(ps))
	for i, p := range ps {
		out[i] = Percentile{P: p, Value: percentileOf(sorted, p)}
	}
	return out
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

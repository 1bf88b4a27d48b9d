package montecarlo

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/okushigue/zetascan/zeros"
)

// Log-uniform draw range for random constants, wide enough to cover every
// catalog from coupling constants to scaled Planck quantities.
const (
	randomLogMin = -50.0
	randomLogMax = 4.0
)

// RandomResult is the null distribution built from random constants.
type RandomResult struct {
	Simulations int
	Constants   int
	SampleSize  int
	Seed        int64
	// BestQualities holds each simulation's best (smallest) relative
	// error, sorted ascending.
	BestQualities []float64
	// MeanQualities holds each simulation's mean per-constant best.
	MeanQualities []float64
	Percentiles   []Percentile
}

// PValue is the empirical probability that random constants do at least as
// well as the observed quality.
func (r *RandomResult) PValue(observed float64) float64 {
	count := 0
	for _, q := range r.BestQualities {
		if q <= observed {
			count++
		}
	}
	return float64(count) / float64(len(r.BestQualities))
}

// Random runs the random-constant study: each simulation draws
// numConstants log-uniform values in [1e-50, 1e4] and records how well the
// best of them aligns with the zero sample.
func (s *Study) Random(ctx context.Context, zs []zeros.Zero, numConstants int) (*RandomResult, error) {
	if len(zs) == 0 {
		return nil, ErrNoZeros
	}
	if numConstants <= 0 || s.simulations <= 0 {
		return nil, ErrNoSimulations
	}
	sample := s.sample(zs)

	s.logger.Info("starting random-constant study",
		"simulations", s.simulations,
		"constants_per_sim", numConstants,
		"sample", len(sample),
		"seed", s.seed)

	best := make([]float64, s.simulations)
	means := make([]float64, s.simulations)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := 0; i < s.simulations; i++ {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			rng := rand.New(rand.NewSource(s.seed + int64(i)))
			simBest := math.Inf(1)
			var sum float64
			for k := 0; k < numConstants; k++ {
				c := math.Pow(10, randomLogMin+rng.Float64()*(randomLogMax-randomLogMin))
				q, _ := bestResonance(sample, c)
				sum += q
				if q < simBest {
					simBest = q
				}
			}
			best[i] = simBest
			means[i] = sum / float64(numConstants)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Float64s(best)
	res := &RandomResult{
		Simulations:   s.simulations,
		Constants:     numConstants,
		SampleSize:    len(sample),
		Seed:          s.seed,
		BestQualities: best,
		MeanQualities: means,
		Percentiles:   summarize(best, s.percentiles),
	}
	s.logger.Info("random-constant study complete",
		"median_best", percentileOf(best, 50))
	return res, nil
}

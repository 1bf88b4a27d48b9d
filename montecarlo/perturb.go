package montecarlo

import (
	"context"
	"math/rand"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/okushigue/zetascan/constants"
	"github.com/okushigue/zetascan/zeros"
)

// Energy concentration band in GeV for the gamma/10 mapping.
const (
	energyBandLowGeV  = 50e3
	energyBandHighGeV = 150e3
)

// Patterns are the structural features tested for robustness under
// perturbation.
type Patterns struct {
	// CosmologyDominates reports whether the cosmology category has the
	// lowest (strongest) median quality.
	CosmologyDominates bool
	// Unique reports whether the best quality is at least two orders of
	// magnitude below the mean.
	Unique bool
	// EnergyConcentrated reports whether more than half of the best hits
	// map into the energy band.
	EnergyConcentrated bool
	// MedianQualityByCategory is the per-category median best quality.
	MedianQualityByCategory map[constants.Category]float64
}

// LevelResult aggregates one perturbation level.
type LevelResult struct {
	Level       float64
	Simulations int
	// Rates are the fraction of simulations in which each observed
	// pattern survived the noise.
	HierarchyRate  float64
	UniquenessRate float64
	EnergyBandRate float64
	// MedianQualityByCategory pools best qualities across simulations.
	MedianQualityByCategory map[constants.Category]float64
}

// PerturbationResult is a completed perturbation study.
type PerturbationResult struct {
	Catalog  string
	Seed     int64
	Observed Patterns
	Levels   []LevelResult
}

type perturbEntry struct {
	category constants.Category
	quality  float64
	gamma    float64
}

// Perturbation runs the perturbation study: the catalog constants are
// multiplied by Normal(1, level) noise and the observed patterns are
// re-tested at each level.
func (s *Study) Perturbation(ctx context.Context, zs []zeros.Zero, cat *constants.Catalog) (*PerturbationResult, error) {
	if len(zs) == 0 {
		return nil, ErrNoZeros
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	if s.simulations <= 0 {
		return nil, ErrNoSimulations
	}
	sample := s.sample(zs)
	categories := categoryByName(cat)

	s.logger.Info("starting perturbation study",
		"catalog", cat.Name,
		"levels", s.levels,
		"simulations", s.simulations,
		"sample", len(sample),
		"seed", s.seed)

	observed := analyzePatterns(scanEntries(sample, cat, categories, nil))

	res := &PerturbationResult{
		Catalog:  cat.Name,
		Seed:     s.seed,
		Observed: observed,
	}

	for li, level := range s.levels {
		level := level

		var mu sync.Mutex
		var hierarchy, unique, energy, valid int
		pooled := make(map[constants.Category][]float64)

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

				rng := rand.New(rand.NewSource(s.seed + int64(li)*1_000_003 + int64(i)))
				entries := scanEntries(sample, cat, categories, func(v float64) float64 {
					return v * (1 + rng.NormFloat64()*level)
				})
				if len(entries) == 0 {
					return nil
				}
				p := analyzePatterns(entries)

				mu.Lock()
				valid++
				if p.CosmologyDominates {
					hierarchy++
				}
				if p.Unique {
					unique++
				}
				if p.EnergyConcentrated {
					energy++
				}
				for _, e := range entries {
					pooled[e.category] = append(pooled[e.category], e.quality)
				}
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if valid == 0 {
			return nil, ErrNoSimulations
		}

		lr := LevelResult{
			Level:                   level,
			Simulations:             valid,
			HierarchyRate:           float64(hierarchy) / float64(valid),
			UniquenessRate:          float64(unique) / float64(valid),
			EnergyBandRate:          float64(energy) / float64(valid),
			MedianQualityByCategory: make(map[constants.Category]float64, len(pooled)),
		}
		for category, qs := range pooled {
			lr.MedianQualityByCategory[category] = median(qs)
		}
		res.Levels = append(res.Levels, lr)

		s.logger.Info("perturbation level complete",
			"level", level,
			"hierarchy_rate", lr.HierarchyRate,
			"uniqueness_rate", lr.UniquenessRate,
			"energy_rate", lr.EnergyBandRate)
	}
	return res, nil
}

// categoryByName resolves the analysis category for each constant. The
// physics grouping takes precedence over the constant's own category so
// catalogs stay comparable across studies.
func categoryByName(cat *constants.Catalog) map[string]constants.Category {
	out := make(map[string]constants.Category, len(cat.Constants))
	byName := make(map[string]constants.Category)
	for category, names := range constants.PhysicsCategories() {
		for _, name := range names {
			byName[name] = category
		}
	}
	for _, c := range cat.Constants {
		if category, ok := byName[c.Name]; ok {
			out[c.Name] = category
		} else {
			out[c.Name] = c.Category
		}
	}
	return out
}

// scanEntries finds each constant's best resonance against the sample.
// perturb, when non-nil, maps the constant value before scanning; results
// with non-positive values are dropped.
func scanEntries(sample []float64, cat *constants.Catalog, categories map[string]constants.Category, perturb func(float64) float64) []perturbEntry {
	entries := make([]perturbEntry, 0, len(cat.Constants))
	for _, c := range cat.Constants {
		v := c.Value
		if perturb != nil {
			v = perturb(v)
		}
		if v <= 0 {
			continue
		}
		q, gamma := bestResonance(sample, v)
		entries = append(entries, perturbEntry{
			category: categories[c.Name],
			quality:  q,
			gamma:    gamma,
		})
	}
	return entries
}

func analyzePatterns(entries []perturbEntry) Patterns {
	p := Patterns{
		MedianQualityByCategory: make(map[constants.Category]float64),
	}
	if len(entries) == 0 {
		return p
	}

	byCategory := make(map[constants.Category][]float64)
	qualities := make([]float64, 0, len(entries))
	inBand := 0
	for _, e := range entries {
		byCategory[e.category] = append(byCategory[e.category], e.quality)
		qualities = append(qualities, e.quality)
		if energy := e.gamma / 10; energy >= energyBandLowGeV && energy <= energyBandHighGeV {
			inBand++
		}
	}
	for category, qs := range byCategory {
		p.MedianQualityByCategory[category] = median(qs)
	}

	if cosmo, ok := p.MedianQualityByCategory[constants.CategoryCosmology]; ok {
		dominates := true
		for category, m := range p.MedianQualityByCategory {
			if category != constants.CategoryCosmology && m <= cosmo {
				dominates = false
				break
			}
		}
		p.CosmologyDominates = dominates
	}

	best := qualities[0]
	for _, q := range qualities[1:] {
		if q < best {
			best = q
		}
	}
	p.Unique = best*100 < mean(qualities)
	p.EnergyConcentrated = float64(inBand) > 0.5*float64(len(entries))
	return p
}

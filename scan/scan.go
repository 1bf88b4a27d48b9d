// Package scan runs the batched multi-tolerance resonance search over a
// zero sequence and scores each (constant, tolerance) cell against the
// uniform-residue null model.
package scan

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"runtime"
	"sort"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/okushigue/zetascan/constants"
	"github.com/okushigue/zetascan/residue"
	"github.com/okushigue/zetascan/stats"
	"github.com/okushigue/zetascan/zeros"
)

var (
	// ErrNoZeros is returned when scanning an empty zero sequence.
	ErrNoZeros = errors.New("no zeros to scan")
)

// DefaultBatchSize is the window size for batch processing.
const DefaultBatchSize = 1000

// DefaultMinZerosForStats gates the statistical analysis: below this many
// scanned zeros the expected counts are too small to score.
const DefaultMinZerosForStats = 1000

// Scanner runs resonance scans. Safe for sequential reuse; a single Scan
// call fans out internally.
type Scanner struct {
	logger           *slog.Logger
	workers          int
	batchSize        int
	minZerosForStats int
	criteria         stats.Criteria
	limiter          *rate.Limiter
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the scan logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) { s.logger = l }
}

// WithWorkers bounds the per-batch constant fan-out.
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithBatchSize sets the zero window size.
func WithBatchSize(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithCriteria overrides the significance criteria.
func WithCriteria(c stats.Criteria) Option {
	return func(s *Scanner) { s.criteria = c }
}

// WithMinZerosForStats overrides the statistics gate.
func WithMinZerosForStats(n int) Option {
	return func(s *Scanner) { s.minZerosForStats = n }
}

// NewScanner creates a Scanner with default batching and criteria.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		logger:           slog.Default(),
		workers:          runtime.GOMAXPROCS(0),
		batchSize:        DefaultBatchSize,
		minZerosForStats: DefaultMinZerosForStats,
		criteria:         stats.DefaultCriteria(),
		limiter:          rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cell is one (constant, tolerance) result. Analysis is nil when the run
// had too few zeros for statistics.
type Cell struct {
	Set         *Set
	Analysis    *stats.Analysis
	Significant bool
	Reason      string
}

// Best is the strongest resonance of a run.
type Best struct {
	Constant  constants.Constant
	Tolerance float64
	Hit       Hit
	// Quality is the hit's distance in absolute mode, relative error in
	// relative mode. Smaller is stronger.
	Quality float64
}

// PredictedEnergyGeV maps the resonating ordinate onto the energy scale
// gamma/10 GeV.
func (b *Best) PredictedEnergyGeV() float64 { return b.Hit.Gamma / 10 }

// ComparativeRow is one line of the control-comparison table, taken at the
// tolerance level closest to the catalog default.
type ComparativeRow struct {
	Cell    *Cell
	Control bool
	// SharedWithTargets is, for control rows, how many of the control's
	// resonating zeros also resonate with at least one target constant.
	SharedWithTargets uint64
}

// Result is a completed (or gracefully stopped) catalog scan.
type Result struct {
	Catalog      string
	Mode         residue.Mode
	TotalZeros   int
	ScannedZeros int
	Batches      int
	Stopped      bool
	StatsSkipped bool
	// Cells maps target constant names to their per-tolerance cells,
	// widest tolerance first.
	Cells       map[string][]*Cell
	Comparative []*ComparativeRow
	Best        *Best
	Elapsed     time.Duration
}

type job struct {
	c       constants.Constant
	control bool
	sets    []*Set
}

// Scan processes the zero sequence in batch windows, accumulating hits for
// every target constant at every tolerance level and for every control at
// the catalog default. Cancellation stops at the next batch boundary and
// still yields a result for the completed batches.
func (s *Scanner) Scan(ctx context.Context, zs []zeros.Zero, cat *constants.Catalog) (*Result, error) {
	start := time.Now()
	if len(zs) == 0 {
		return nil, ErrNoZeros
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}

	jobs := make([]*job, 0, len(cat.Constants)+len(cat.Controls))
	for _, c := range cat.Constants {
		j := &job{c: c}
		for _, tol := range cat.TolerancesFor(c) {
			j.sets = append(j.sets, newSet(c, tol, cat.Mode))
		}
		jobs = append(jobs, j)
	}
	for _, c := range cat.Controls {
		jobs = append(jobs, &job{
			c:       c,
			control: true,
			sets:    []*Set{newSet(c, cat.DefaultTolerance, cat.Mode)},
		})
	}

	s.logger.Info("starting scan",
		"catalog", cat.Name,
		"mode", cat.Mode.String(),
		"zeros", len(zs),
		"constants", len(cat.Constants),
		"controls", len(cat.Controls),
		"batch_size", s.batchSize)

	res := &Result{
		Catalog:    cat.Name,
		Mode:       cat.Mode,
		TotalZeros: len(zs),
	}

scanLoop:
	for lo := 0; lo < len(zs); lo += s.batchSize {
		select {
		case <-ctx.Done():
			res.Stopped = true
			s.logger.Warn("scan stopped", "catalog", cat.Name, "scanned", res.ScannedZeros)
			break scanLoop
		default:
		}

		hi := lo + s.batchSize
		if hi > len(zs) {
			hi = len(zs)
		}
		batch := zs[lo:hi]

		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(s.workers)
		for _, j := range jobs {
			j := j
			g.Go(func() error {
				scanBatch(batch, j)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		res.ScannedZeros = hi
		res.Batches++
		if s.limiter.Allow() {
			s.logger.Info("scan progress",
				"catalog", cat.Name,
				"zeros", res.ScannedZeros,
				"total", len(zs),
				"batches", res.Batches)
		}
	}

	s.analyze(res, cat, jobs)
	res.Elapsed = time.Since(start)
	s.logger.Info("scan complete",
		"catalog", cat.Name,
		"zeros", res.ScannedZeros,
		"batches", res.Batches,
		"elapsed", res.Elapsed)
	return res, nil
}

// scanBatch tests one constant against one window. The circular distance is
// computed once per zero and reused across the tolerance ladder.
func scanBatch(batch []zeros.Zero, j *job) {
	for _, z := range batch {
		d := residue.CircularDistance(z.Gamma, j.c.Value)
		rel := d / j.c.Value
		for _, set := range j.sets {
			if d < set.tolAbs {
				set.add(Hit{Index: z.Index, Gamma: z.Gamma, Distance: d, RelError: rel})
			}
		}
	}
}

func (s *Scanner) analyze(res *Result, cat *constants.Catalog, jobs []*job) {
	res.StatsSkipped = res.ScannedZeros < s.minZerosForStats
	if res.StatsSkipped {
		s.logger.Warn("too few zeros for statistics",
			"catalog", cat.Name,
			"scanned", res.ScannedZeros,
			"minimum", s.minZerosForStats)
	}

	res.Cells = make(map[string][]*Cell, len(cat.Constants))
	cellsByJob := make(map[*job][]*Cell, len(jobs))
	for _, j := range jobs {
		cells := make([]*Cell, 0, len(j.sets))
		for _, set := range j.sets {
			cell := &Cell{Set: set}
			if !res.StatsSkipped {
				p := residue.HitProbability(set.Constant.Value, set.Tolerance, set.Mode)
				cell.Analysis = stats.Analyze(res.ScannedZeros, p, set.distances(), set.indexSlice(), set.tolAbs)
				cell.Significant, cell.Reason = s.criteria.Evaluate(cell.Analysis)
			} else {
				cell.Reason = "too few zeros"
			}
			cells = append(cells, cell)
		}
		cellsByJob[j] = cells
		if !j.control {
			res.Cells[j.c.Name] = cells
		}
	}

	res.Best = bestOf(jobs)
	res.Comparative = comparative(cat, jobs, cellsByJob)
}

// bestOf picks the strongest hit over all target cells.
func bestOf(jobs []*job) *Best {
	var best *Best
	for _, j := range jobs {
		if j.control {
			continue
		}
		for _, set := range j.sets {
			h, ok := set.Best()
			if !ok {
				continue
			}
			q := set.Quality(h)
			if best == nil || q < best.Quality {
				best = &Best{
					Constant:  set.Constant,
					Tolerance: set.Tolerance,
					Hit:       h,
					Quality:   q,
				}
			}
		}
	}
	return best
}

// comparative builds the target-vs-control table at the tolerance level
// closest to the catalog default, ordered strongest first.
func comparative(cat *constants.Catalog, jobs []*job, cellsByJob map[*job][]*Cell) []*ComparativeRow {
	var targetMaps []*roaring64.Bitmap
	var rows []*ComparativeRow

	for _, j := range jobs {
		cell := closestCell(cellsByJob[j], cat.DefaultTolerance)
		if cell == nil {
			continue
		}
		row := &ComparativeRow{Cell: cell, Control: j.control}
		rows = append(rows, row)
		if !j.control {
			targetMaps = append(targetMaps, cell.Set.Indices())
		}
	}

	if len(targetMaps) > 0 {
		union := roaring64.FastOr(targetMaps...)
		for _, row := range rows {
			if row.Control {
				row.SharedWithTargets = roaring64.And(row.Cell.Set.Indices(), union).GetCardinality()
			}
		}
	}

	sort.SliceStable(rows, func(i, k int) bool {
		return rowStrength(rows[i]) > rowStrength(rows[k])
	})
	return rows
}

func rowStrength(r *ComparativeRow) float64 {
	if r.Cell.Analysis != nil {
		sig := r.Cell.Analysis.Summary.Significance
		if !math.IsInf(sig, 1) {
			return sig
		}
		return math.MaxFloat64
	}
	return float64(r.Cell.Set.Count())
}

// closestCell picks the cell whose tolerance is nearest the requested level
// on a log scale. Per-constant ladders do not always contain the catalog
// default exactly.
func closestCell(cells []*Cell, tol float64) *Cell {
	var best *Cell
	bestDist := math.Inf(1)
	for _, cell := range cells {
		d := math.Abs(math.Log10(cell.Set.Tolerance) - math.Log10(tol))
		if d < bestDist {
			bestDist = d
			best = cell
		}
	}
	return best
}

// Package report renders scan and Monte Carlo results as plain-text
// reports, exports them as self-describing JSON, and records sessions in a
// SQLite store.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/okushigue/zetascan/blobstore"
	"github.com/okushigue/zetascan/montecarlo"
	"github.com/okushigue/zetascan/scan"
)

// Writer persists rendered reports into a blob store, one timestamped file
// per run.
type Writer struct {
	store  blobstore.BlobStore
	logger *slog.Logger
	now    func() time.Time
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithLogger sets the report logger.
func WithLogger(l *slog.Logger) WriterOption {
	return func(w *Writer) { w.logger = l }
}

// NewWriter creates a report writer over the given store.
func NewWriter(store blobstore.BlobStore, opts ...WriterOption) *Writer {
	w := &Writer{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteScan renders and stores a comprehensive scan report. It returns the
// blob name.
func (w *Writer) WriteScan(ctx context.Context, res *scan.Result) (string, error) {
	now := w.now()
	name := fmt.Sprintf("comprehensive_report_%s_%s.txt", res.Catalog, now.Format("20060102_150405"))
	if err := w.store.Put(ctx, name, []byte(RenderScan(res, now))); err != nil {
		return "", fmt.Errorf("write report %s: %w", name, err)
	}
	w.logger.Info("wrote report", "name", name, "catalog", res.Catalog)
	return name, nil
}

// WriteRandom renders and stores a random-constant study report.
func (w *Writer) WriteRandom(ctx context.Context, res *montecarlo.RandomResult) (string, error) {
	now := w.now()
	name := fmt.Sprintf("montecarlo_random_%s.txt", now.Format("20060102_150405"))
	if err := w.store.Put(ctx, name, []byte(RenderRandom(res, now))); err != nil {
		return "", fmt.Errorf("write report %s: %w", name, err)
	}
	w.logger.Info("wrote report", "name", name)
	return name, nil
}

// WritePerturbation renders and stores a perturbation study report.
func (w *Writer) WritePerturbation(ctx context.Context, res *montecarlo.PerturbationResult) (string, error) {
	now := w.now()
	name := fmt.Sprintf("montecarlo_perturb_%s_%s.txt", res.Catalog, now.Format("20060102_150405"))
	if err := w.store.Put(ctx, name, []byte(RenderPerturbation(res, now))); err != nil {
		return "", fmt.Errorf("write report %s: %w", name, err)
	}
	w.logger.Info("wrote report", "name", name, "catalog", res.Catalog)
	return name, nil
}

const rule = "================================================================================"
const thinRule = "--------------------------------------------------------------------------------"

// RenderScan produces the comprehensive plain-text report for a scan.
func RenderScan(res *scan.Result, now time.Time) string {
	var b strings.Builder

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "ZETA RESONANCE COMPREHENSIVE REPORT")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Generated:     %s\n", now.Format(time.RFC3339))
	fmt.Fprintf(&b, "Catalog:       %s (%s mode)\n", res.Catalog, res.Mode)
	fmt.Fprintf(&b, "Zeros scanned: %d of %d (%d batches)\n", res.ScannedZeros, res.TotalZeros, res.Batches)
	fmt.Fprintf(&b, "Elapsed:       %s\n", res.Elapsed.Round(time.Millisecond))
	if res.Stopped {
		fmt.Fprintln(&b, "NOTE: run was stopped early; results cover completed batches only.")
	}
	if res.StatsSkipped {
		fmt.Fprintln(&b, "NOTE: too few zeros for statistical analysis.")
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "MULTI-TOLERANCE RESULTS")
	fmt.Fprintln(&b, thinRule)
	fmt.Fprintf(&b, "%-24s %-10s %8s %12s %10s %10s %10s\n",
		"constant", "tolerance", "hits", "expected", "signif", "chi2", "binom_p")

	names := make([]string, 0, len(res.Cells))
	for name := range res.Cells {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, cell := range res.Cells[name] {
			writeCellRow(&b, name, cell)
		}
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "COMPARATIVE ANALYSIS (catalog default tolerance)")
	fmt.Fprintln(&b, thinRule)
	fmt.Fprintf(&b, "%-24s %-8s %8s %10s %8s\n", "constant", "type", "hits", "signif", "shared")
	for _, row := range res.Comparative {
		kind := "target"
		shared := "-"
		if row.Control {
			kind = "control"
			shared = fmt.Sprintf("%d", row.SharedWithTargets)
		}
		sig := "-"
		if row.Cell.Analysis != nil {
			sig = fmt.Sprintf("%.3f", row.Cell.Analysis.Summary.Significance)
		}
		fmt.Fprintf(&b, "%-24s %-8s %8d %10s %8s\n",
			row.Cell.Set.Constant.Name, kind, row.Cell.Set.Count(), sig, shared)
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "BEST RESONANCE")
	fmt.Fprintln(&b, thinRule)
	if res.Best != nil {
		fmt.Fprintf(&b, "Constant:         %s (%s = %.12g)\n",
			res.Best.Constant.Name, res.Best.Constant.Symbol, res.Best.Constant.Value)
		fmt.Fprintf(&b, "Zero index:       %d\n", res.Best.Hit.Index)
		fmt.Fprintf(&b, "Gamma:            %.15f\n", res.Best.Hit.Gamma)
		fmt.Fprintf(&b, "Distance:         %.6e\n", res.Best.Hit.Distance)
		fmt.Fprintf(&b, "Relative error:   %.6e\n", res.Best.Hit.RelError)
		fmt.Fprintf(&b, "Quality:          %.6e (tolerance %.1e)\n", res.Best.Quality, res.Best.Tolerance)
		fmt.Fprintf(&b, "Predicted energy: %.3f GeV\n", res.Best.PredictedEnergyGeV())
	} else {
		fmt.Fprintln(&b, "No resonances found.")
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "STATISTICAL SUMMARY")
	fmt.Fprintln(&b, thinRule)
	total, significant := 0, 0
	for _, cells := range res.Cells {
		for _, cell := range cells {
			total++
			if cell.Significant {
				significant++
			}
		}
	}
	fmt.Fprintf(&b, "Significant cells: %d of %d\n", significant, total)
	fmt.Fprintln(&b, rule)
	return b.String()
}

func writeCellRow(b *strings.Builder, name string, cell *scan.Cell) {
	sig, chi2, binom := "-", "-", "-"
	expected := "-"
	if a := cell.Analysis; a != nil {
		expected = fmt.Sprintf("%.3f", a.Summary.Expected)
		sig = fmt.Sprintf("%.3f", a.Summary.Significance)
		if a.ChiSquare != nil {
			chi2 = fmt.Sprintf("%.3f", a.ChiSquare.Statistic)
		}
		if a.Binomial != nil {
			binom = fmt.Sprintf("%.2e", a.Binomial.PValue)
		}
	}
	flag := ""
	if cell.Significant {
		flag = "  *"
	}
	fmt.Fprintf(b, "%-24s %-10.1e %8d %12s %10s %10s %10s%s\n",
		name, cell.Set.Tolerance, cell.Set.Count(), expected, sig, chi2, binom, flag)
}

// RenderRandom produces the random-constant study report.
func RenderRandom(res *montecarlo.RandomResult, now time.Time) string {
	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "MONTE CARLO: RANDOM CONSTANTS")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Generated:   %s\n", now.Format(time.RFC3339))
	fmt.Fprintf(&b, "Simulations: %d x %d constants, sample %d zeros, seed %d\n",
		res.Simulations, res.Constants, res.SampleSize, res.Seed)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "BEST-QUALITY PERCENTILES")
	fmt.Fprintln(&b, thinRule)
	for _, p := range res.Percentiles {
		fmt.Fprintf(&b, "p%-5.4g %.6e\n", p.P, p.Value)
	}
	fmt.Fprintln(&b, rule)
	return b.String()
}

// RenderPerturbation produces the perturbation study report.
func RenderPerturbation(res *montecarlo.PerturbationResult, now time.Time) string {
	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "MONTE CARLO: PERTURBED CONSTANTS")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Generated: %s\n", now.Format(time.RFC3339))
	fmt.Fprintf(&b, "Catalog:   %s, seed %d\n", res.Catalog, res.Seed)
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Observed: hierarchy=%v unique=%v energy_band=%v\n",
		res.Observed.CosmologyDominates, res.Observed.Unique, res.Observed.EnergyConcentrated)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "PATTERN SURVIVAL BY NOISE LEVEL")
	fmt.Fprintln(&b, thinRule)
	fmt.Fprintf(&b, "%-8s %6s %10s %10s %10s\n", "level", "sims", "hierarchy", "unique", "energy")
	for _, lr := range res.Levels {
		fmt.Fprintf(&b, "%-8.4g %6d %9.1f%% %9.1f%% %9.1f%%\n",
			lr.Level, lr.Simulations,
			lr.HierarchyRate*100, lr.UniquenessRate*100, lr.EnergyBandRate*100)
	}
	fmt.Fprintln(&b, rule)
	return b.String()
}

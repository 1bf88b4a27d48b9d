package zetascan

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/okushigue/zetascan/blobstore"
	"github.com/okushigue/zetascan/constants"
	"github.com/okushigue/zetascan/montecarlo"
	"github.com/okushigue/zetascan/report"
	"github.com/okushigue/zetascan/scan"
	"github.com/okushigue/zetascan/zeros"
)

// DefaultCacheName is the blob name of the binary zero cache.
const DefaultCacheName = "zeta_cache.bin"

// Hunter orchestrates a resonance hunt: load zeros (cache preferred), scan
// a catalog in batches, score the cells, write reports, and record the
// session.
type Hunter struct {
	store    blobstore.BlobStore
	results  blobstore.BlobStore
	sessions *report.SessionStore

	zerosFile string
	cache     *zeros.Cache
	scanner   *scan.Scanner
	writer    *report.Writer

	logger  *Logger
	metrics MetricsCollector

	workers     int
	sampleSize  int
	simulations int
	seed        int64
}

// New creates a Hunter reading the zeros file (and its cache) from the
// given store.
func New(store blobstore.BlobStore, zerosFile string, optFns ...Option) *Hunter {
	o := applyOptions(optFns)

	results := o.resultsStore
	if results == nil {
		results = store
	}

	scanOpts := []scan.Option{scan.WithLogger(o.logger.Logger)}
	if o.workers > 0 {
		scanOpts = append(scanOpts, scan.WithWorkers(o.workers))
	}
	if o.batchSize > 0 {
		scanOpts = append(scanOpts, scan.WithBatchSize(o.batchSize))
	}

	return &Hunter{
		store:    store,
		results:  results,
		sessions: o.sessionStore,

		zerosFile: zerosFile,
		cache: zeros.NewCache(store, o.cacheName,
			zeros.WithCompression(o.compression),
			zeros.WithLogger(o.logger.Logger)),
		scanner: scan.NewScanner(scanOpts...),
		writer:  report.NewWriter(results, report.WithLogger(o.logger.Logger)),

		logger:  o.logger,
		metrics: o.metricsCollector,

		workers:     o.workers,
		sampleSize:  o.sampleSize,
		simulations: o.simulations,
		seed:        o.seed,
	}
}

// LoadZeros returns the zero sequence, building the cache from the text
// source on first use.
func (h *Hunter) LoadZeros(ctx context.Context) ([]zeros.Zero, error) {
	start := time.Now()
	zs, err := h.cache.LoadOrBuild(ctx, h.zerosFile)
	h.metrics.RecordLoad(len(zs), time.Since(start), err)
	h.logger.LogLoad(ctx, h.zerosFile, len(zs), err)
	return zs, err
}

// RebuildCache re-parses the text source and overwrites the cache,
// rotating the previous one to a backup.
func (h *Hunter) RebuildCache(ctx context.Context) ([]zeros.Zero, error) {
	blob, err := h.store.Open(ctx, h.zerosFile)
	if err != nil {
		return nil, fmt.Errorf("open zeros source %s: %w", h.zerosFile, err)
	}
	defer blob.Close()

	data, err := blobstore.ReadAll(blob)
	if err != nil {
		return nil, err
	}
	zs, skipped, err := zeros.ParseText(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		h.logger.Warn("skipped unparseable lines", "source", h.zerosFile, "skipped", skipped)
	}
	if err := h.cache.Save(ctx, zs); err != nil {
		return nil, err
	}
	return zs, nil
}

// CacheInfo inspects the cache header.
func (h *Hunter) CacheInfo(ctx context.Context) (*zeros.CacheInfo, error) {
	return h.cache.Info(ctx)
}

// HuntOutcome bundles the artifacts of one catalog hunt.
type HuntOutcome struct {
	SessionID  string
	ReportName string
	ExportName string
	Result     *scan.Result
}

// Hunt runs a full hunt over the named built-in catalog.
func (h *Hunter) Hunt(ctx context.Context, catalogName string) (*HuntOutcome, error) {
	cat, ok := constants.ByName(catalogName)
	if !ok {
		return nil, &ErrUnknownCatalog{Name: catalogName}
	}
	return h.HuntCatalog(ctx, cat)
}

// HuntCatalog runs a full hunt over the given catalog. Custom catalogs
// loaded from YAML pass through here.
func (h *Hunter) HuntCatalog(ctx context.Context, cat *constants.Catalog) (*HuntOutcome, error) {
	started := time.Now()
	if err := cat.Validate(); err != nil {
		return nil, &ErrInvalidCatalog{Name: cat.Name, cause: err}
	}

	zs, err := h.LoadZeros(ctx)
	if err != nil {
		return nil, err
	}

	res, err := h.scanner.Scan(ctx, zs, cat)
	h.metrics.RecordHunt(len(zs), time.Since(started), err)
	h.logger.LogHunt(ctx, cat.Name, len(zs), time.Since(started), err)
	if err != nil {
		return nil, err
	}

	outcome := &HuntOutcome{Result: res}

	reportStart := time.Now()
	outcome.ReportName, err = h.writer.WriteScan(ctx, res)
	h.metrics.RecordReport(time.Since(reportStart), err)
	h.logger.LogReport(ctx, outcome.ReportName, err)
	if err != nil {
		return nil, err
	}

	outcome.ExportName, err = h.writer.WriteJSON(ctx, res)
	if err != nil {
		return nil, err
	}

	if h.sessions != nil {
		outcome.SessionID, err = h.sessions.RecordScan(ctx, res, started, outcome.ReportName)
		if err != nil {
			return nil, fmt.Errorf("record session: %w", err)
		}
		h.logger.WithSession(outcome.SessionID).WithCatalog(cat.Name).
			Info("session recorded")
	}
	return outcome, nil
}

// Sweep hunts every registered catalog in name order. A cancelled context
// stops between catalogs; completed outcomes are still returned.
func (h *Hunter) Sweep(ctx context.Context) ([]*HuntOutcome, error) {
	var outcomes []*HuntOutcome
	for _, name := range constants.Names() {
		select {
		case <-ctx.Done():
			return outcomes, ctx.Err()
		default:
		}
		outcome, err := h.Hunt(ctx, name)
		if err != nil {
			return outcomes, fmt.Errorf("hunt %s: %w", name, err)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func (h *Hunter) newStudy() *montecarlo.Study {
	opts := []montecarlo.Option{montecarlo.WithLogger(h.logger.Logger)}
	if h.workers > 0 {
		opts = append(opts, montecarlo.WithWorkers(h.workers))
	}
	if h.simulations > 0 {
		opts = append(opts, montecarlo.WithSimulations(h.simulations))
	}
	if h.sampleSize > 0 {
		opts = append(opts, montecarlo.WithSampleSize(h.sampleSize))
	}
	if h.seed != 0 {
		opts = append(opts, montecarlo.WithSeed(h.seed))
	}
	return montecarlo.NewStudy(opts...)
}

// RandomStudy runs the random-constant Monte Carlo study and writes its
// report.
func (h *Hunter) RandomStudy(ctx context.Context, numConstants int) (*montecarlo.RandomResult, string, error) {
	zs, err := h.LoadZeros(ctx)
	if err != nil {
		return nil, "", err
	}

	start := time.Now()
	res, err := h.newStudy().Random(ctx, zs, numConstants)
	if res != nil {
		h.metrics.RecordSimulation(res.Simulations, time.Since(start), err)
		h.logger.LogSimulation(ctx, "random", res.Simulations, err)
	} else {
		h.metrics.RecordSimulation(0, time.Since(start), err)
		h.logger.LogSimulation(ctx, "random", 0, err)
	}
	if err != nil {
		return nil, "", err
	}

	name, err := h.writer.WriteRandom(ctx, res)
	if err != nil {
		return nil, "", err
	}
	return res, name, nil
}

// PerturbationStudy runs the perturbation Monte Carlo study over the named
// catalog and writes its report.
func (h *Hunter) PerturbationStudy(ctx context.Context, catalogName string) (*montecarlo.PerturbationResult, string, error) {
	cat, ok := constants.ByName(catalogName)
	if !ok {
		return nil, "", &ErrUnknownCatalog{Name: catalogName}
	}

	zs, err := h.LoadZeros(ctx)
	if err != nil {
		return nil, "", err
	}

	start := time.Now()
	res, err := h.newStudy().Perturbation(ctx, zs, cat)
	sims := 0
	if res != nil && len(res.Levels) > 0 {
		sims = res.Levels[0].Simulations
	}
	h.metrics.RecordSimulation(sims, time.Since(start), err)
	h.logger.LogSimulation(ctx, "perturbation", sims, err)
	if err != nil {
		return nil, "", err
	}

	name, err := h.writer.WritePerturbation(ctx, res)
	if err != nil {
		return nil, "", err
	}
	return res, name, nil
}

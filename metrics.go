package zetascan

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordLoad is called after each zero-sequence load.
	// count is the number of zeros loaded, err is nil if successful.
	RecordLoad(count int, duration time.Duration, err error)

	// RecordHunt is called after each catalog hunt.
	// zeros is the number of zeros scanned, err is nil if successful.
	RecordHunt(zeros int, duration time.Duration, err error)

	// RecordSimulation is called after each Monte Carlo study.
	RecordSimulation(simulations int, duration time.Duration, err error)

	// RecordReport is called after each report write.
	RecordReport(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)       {}
func (NoopMetricsCollector) RecordHunt(int, time.Duration, error)       {}
func (NoopMetricsCollector) RecordSimulation(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordReport(time.Duration, error)          {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LoadCount            atomic.Int64
	LoadErrors           atomic.Int64
	LoadZeros            atomic.Int64
	HuntCount            atomic.Int64
	HuntErrors           atomic.Int64
	HuntTotalNanos       atomic.Int64
	SimulationCount      atomic.Int64
	SimulationErrors     atomic.Int64
	SimulationTotalNanos atomic.Int64
	ReportCount          atomic.Int64
	ReportErrors         atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(count int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadZeros.Add(int64(count))
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// RecordHunt implements MetricsCollector.
func (b *BasicMetricsCollector) RecordHunt(zeros int, duration time.Duration, err error) {
	b.HuntCount.Add(1)
	b.HuntTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.HuntErrors.Add(1)
	}
}

// RecordSimulation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSimulation(simulations int, duration time.Duration, err error) {
	b.SimulationCount.Add(1)
	b.SimulationTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SimulationErrors.Add(1)
	}
}

// RecordReport implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReport(duration time.Duration, err error) {
	b.ReportCount.Add(1)
	if err != nil {
		b.ReportErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LoadCount:        b.LoadCount.Load(),
		LoadErrors:       b.LoadErrors.Load(),
		LoadZeros:        b.LoadZeros.Load(),
		HuntCount:        b.HuntCount.Load(),
		HuntErrors:       b.HuntErrors.Load(),
		HuntAvgNanos:     b.getAvgHuntNanos(),
		SimulationCount:  b.SimulationCount.Load(),
		SimulationErrors: b.SimulationErrors.Load(),
		ReportCount:      b.ReportCount.Load(),
		ReportErrors:     b.ReportErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgHuntNanos() int64 {
	count := b.HuntCount.Load()
	if count == 0 {
		return 0
	}
	return b.HuntTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LoadCount        int64
	LoadErrors       int64
	LoadZeros        int64
	HuntCount        int64
	HuntErrors       int64
	HuntAvgNanos     int64
	SimulationCount  int64
	SimulationErrors int64
	ReportCount      int64
	ReportErrors     int64
}

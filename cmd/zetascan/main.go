// Command zetascan hunts for modular resonances between Riemann zeta zeros
// and catalogs of physical constants.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/okushigue/zetascan"
)

// config carries the settings shared by every subcommand. Environment
// variables (ZETASCAN_ prefix) provide defaults; flags override them.
type config struct {
	ZerosFile  string `env:"ZEROS_FILE" envDefault:"zero.txt"`
	DataDir    string `env:"DATA_DIR" envDefault:"."`
	ResultsDir string `env:"RESULTS_DIR" envDefault:"zeta_results"`
	CacheName  string `env:"CACHE" envDefault:"zeta_cache.bin"`
	SessionDB  string `env:"SESSION_DB" envDefault:"zeta_sessions.db"`

	BatchSize   int    `env:"BATCH_SIZE"`
	Workers     int    `env:"WORKERS"`
	Compression string `env:"COMPRESSION" envDefault:"zstd"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"LOG_JSON"`

	Simulations int   `env:"SIMULATIONS"`
	SampleSize  int   `env:"SAMPLE_SIZE"`
	Seed        int64 `env:"SEED"`

	MinioEndpoint  string `env:"MINIO_ENDPOINT"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioBucket    string `env:"MINIO_BUCKET"`
	MinioPrefix    string `env:"MINIO_PREFIX"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL"`
}

var cfg config

var rootCmd = &cobra.Command{
	Use:   "zetascan",
	Short: "Resonance hunter for Riemann zeta zeros",
	Long: `zetascan scans the non-trivial zeros of the Riemann zeta function for
modular resonances with physical constants, scores them against a
uniform-residue null model, and estimates their surprise with Monte Carlo
studies.`,
	SilenceUsage: true,
}

func init() {
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "ZETASCAN_"}); err != nil {
		fmt.Fprintf(os.Stderr, "zetascan: %v\n", err)
		os.Exit(1)
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.ZerosFile, "zeros-file", cfg.ZerosFile, "zeros text file (one ordinate per line)")
	pf.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "local data directory")
	pf.StringVar(&cfg.ResultsDir, "results-dir", cfg.ResultsDir, "report output directory")
	pf.StringVar(&cfg.CacheName, "cache", cfg.CacheName, "binary cache blob name")
	pf.StringVar(&cfg.SessionDB, "session-db", cfg.SessionDB, "SQLite session database path")
	pf.IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "zeros per batch window")
	pf.IntVar(&cfg.Workers, "workers", cfg.Workers, "parallel workers (default GOMAXPROCS)")
	pf.StringVar(&cfg.Compression, "compression", cfg.Compression, "cache compression: none, lz4, zstd")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	pf.BoolVar(&cfg.LogJSON, "log-json", cfg.LogJSON, "emit JSON logs")
	pf.StringVar(&cfg.MinioEndpoint, "minio-endpoint", cfg.MinioEndpoint, "S3-compatible endpoint for remote storage")
	pf.StringVar(&cfg.MinioBucket, "minio-bucket", cfg.MinioBucket, "remote storage bucket")
}

func newCLILogger() *zetascan.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	if cfg.LogJSON {
		return zetascan.NewJSONLogger(level)
	}
	return zetascan.NewTextLogger(level)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/okushigue/zetascan"
	"github.com/okushigue/zetascan/blobstore"
	zminio "github.com/okushigue/zetascan/blobstore/minio"
	"github.com/okushigue/zetascan/internal/block"
	"github.com/okushigue/zetascan/report"
)

// dataStore picks the zeros/cache store: a MinIO bucket when an endpoint is
// configured, the local data directory otherwise.
func dataStore() (blobstore.BlobStore, error) {
	if cfg.MinioEndpoint == "" {
		return blobstore.NewLocalStore(cfg.DataDir), nil
	}
	if cfg.MinioBucket == "" {
		return nil, fmt.Errorf("minio endpoint set but no bucket configured")
	}
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.MinioEndpoint, err)
	}
	return zminio.NewStore(client, cfg.MinioBucket, cfg.MinioPrefix), nil
}

// newHunter wires a Hunter from the CLI config. The returned close func
// releases the session store; it is a no-op when sessions are disabled.
func newHunter(withSessions bool) (*zetascan.Hunter, func() error, error) {
	store, err := dataStore()
	if err != nil {
		return nil, nil, err
	}

	comp, ok := block.ByName(cfg.Compression)
	if !ok {
		return nil, nil, fmt.Errorf("unknown compression %q", cfg.Compression)
	}

	opts := []zetascan.Option{
		zetascan.WithLogger(newCLILogger()),
		zetascan.WithCompression(comp),
		zetascan.WithCacheName(cfg.CacheName),
		zetascan.WithResultsStore(blobstore.NewLocalStore(cfg.ResultsDir)),
	}
	if cfg.BatchSize > 0 {
		opts = append(opts, zetascan.WithBatchSize(cfg.BatchSize))
	}
	if cfg.Workers > 0 {
		opts = append(opts, zetascan.WithWorkers(cfg.Workers))
	}
	if cfg.Simulations > 0 {
		opts = append(opts, zetascan.WithSimulations(cfg.Simulations))
	}
	if cfg.SampleSize > 0 {
		opts = append(opts, zetascan.WithSampleSize(cfg.SampleSize))
	}
	if cfg.Seed != 0 {
		opts = append(opts, zetascan.WithSeed(cfg.Seed))
	}

	closeFn := func() error { return nil }
	if withSessions {
		sessions, err := report.OpenSessionStore(cfg.SessionDB)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, zetascan.WithSessionStore(sessions))
		closeFn = sessions.Close
	}

	return zetascan.New(store, cfg.ZerosFile, opts...), closeFn, nil
}

// Package zetascan hunts for modular resonances between the non-trivial
// zeros of the Riemann zeta function and catalogs of physical constants.
//
// A zero ordinate gamma "resonates" with a constant c when gamma mod c
// lands within a tolerance of 0 or of c. Zetascan loads a zero sequence
// (text file or binary cache), scans it in batches against built-in or
// custom catalogs at several tolerance levels, and scores every cell
// against the uniform-residue null model with a suite of statistical
// tests. Monte Carlo studies with random and perturbed constants estimate
// how surprising the observed resonances are.
//
// # Quick Start
//
//	ctx := context.Background()
//	store := blobstore.NewLocalStore("./data")
//
//	hunter := zetascan.New(store, "zero.txt",
//	    zetascan.WithLogLevel(slog.LevelInfo),
//	    zetascan.WithBatchSize(10000),
//	)
//
//	outcome, _ := hunter.Hunt(ctx, "fine-structure")
//	fmt.Println(outcome.Result.Best)
//
// # Catalogs
//
// Built-in catalogs cover the fine-structure constant, the fundamental
// force couplings, and scaled Planck, light-speed, Rydberg, spacetime,
// nuclear/cosmological and warp-metric constants. Each carries its own
// tolerance ladder and a control group of arbitrary same-magnitude values
// that keeps the statistics honest. Custom catalogs load from YAML.
//
// # Storage
//
// Zeros files, caches, and reports live in a BlobStore: local filesystem
// (memory mapped reads, atomic writes), in-memory for tests, or any
// S3-compatible bucket via the minio store.
package zetascan

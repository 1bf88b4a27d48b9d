package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okushigue/zetascan"
	"github.com/okushigue/zetascan/constants"
)

var (
	huntCatalog     string
	huntCatalogFile string
	huntTolerance   float64
)

var huntCmd = &cobra.Command{
	Use:   "hunt",
	Short: "Hunt one catalog for resonances",
	Long: `Hunt scans the zero sequence in batches against one constant catalog,
writes a comprehensive report and a JSON export into the results
directory, and records the session in the SQLite store.

SIGINT/SIGTERM stop the hunt at the next batch boundary; the report still
covers completed batches.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		hunter, closeFn, err := newHunter(true)
		if err != nil {
			return err
		}
		defer closeFn()

		var cat *constants.Catalog
		if huntCatalogFile != "" {
			cat, err = constants.LoadCatalogFile(huntCatalogFile)
			if err != nil {
				return err
			}
		} else {
			var ok bool
			cat, ok = constants.ByName(huntCatalog)
			if !ok {
				return fmt.Errorf("unknown catalog %q", huntCatalog)
			}
		}
		if huntTolerance > 0 {
			cat.DefaultTolerance = huntTolerance
		}

		outcome, err := hunter.HuntCatalog(cmd.Context(), cat)
		if err != nil {
			return err
		}
		printOutcome(cmd, outcome)
		return nil
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Hunt every registered catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		hunter, closeFn, err := newHunter(true)
		if err != nil {
			return err
		}
		defer closeFn()

		outcomes, err := hunter.Sweep(cmd.Context())
		for _, outcome := range outcomes {
			printOutcome(cmd, outcome)
		}
		return err
	},
}

func printOutcome(cmd *cobra.Command, outcome *zetascan.HuntOutcome) {
	res := outcome.Result
	fmt.Fprintf(cmd.OutOrStdout(), "catalog %s: %d zeros, %d batches, report %s\n",
		res.Catalog, res.ScannedZeros, res.Batches, outcome.ReportName)
	if res.Best != nil {
		fmt.Fprintf(cmd.OutOrStdout(),
			"  best: %s gamma=%.15f quality=%.3e energy=%.3f GeV\n",
			res.Best.Constant.Name, res.Best.Hit.Gamma, res.Best.Quality,
			res.Best.PredictedEnergyGeV())
	}
}

func init() {
	huntCmd.Flags().StringVar(&huntCatalog, "catalog", "fine-structure", "built-in catalog name")
	huntCmd.Flags().StringVar(&huntCatalogFile, "catalog-file", "", "custom catalog YAML file (overrides --catalog)")
	huntCmd.Flags().Float64Var(&huntTolerance, "tolerance", 0, "override the catalog's default tolerance")
	rootCmd.AddCommand(huntCmd, sweepCmd)
}

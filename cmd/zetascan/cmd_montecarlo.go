package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mcConstants int
var mcCatalog string

var montecarloCmd = &cobra.Command{
	Use:   "montecarlo",
	Short: "Monte Carlo significance studies",
}

var mcRandomCmd = &cobra.Command{
	Use:   "random",
	Short: "Null distribution from random constants",
	Long: `Random draws log-uniform constants in [1e-50, 1e4] and records how well
the best of each simulated set aligns with the zero sample. The resulting
percentiles calibrate the empirical p-value of any observed resonance.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		hunter, closeFn, err := newHunter(false)
		if err != nil {
			return err
		}
		defer closeFn()

		res, name, err := hunter.RandomStudy(cmd.Context(), mcConstants)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d simulations, report %s\n", res.Simulations, name)
		for _, p := range res.Percentiles {
			fmt.Fprintf(cmd.OutOrStdout(), "  p%-4.4g %.6e\n", p.P, p.Value)
		}
		return nil
	},
}

var mcPerturbCmd = &cobra.Command{
	Use:   "perturb",
	Short: "Pattern robustness under perturbed constants",
	RunE: func(cmd *cobra.Command, args []string) error {
		hunter, closeFn, err := newHunter(false)
		if err != nil {
			return err
		}
		defer closeFn()

		res, name, err := hunter.PerturbationStudy(cmd.Context(), mcCatalog)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "catalog %s, report %s\n", res.Catalog, name)
		for _, lr := range res.Levels {
			fmt.Fprintf(cmd.OutOrStdout(),
				"  level %-6.4g hierarchy=%.0f%% unique=%.0f%% energy=%.0f%%\n",
				lr.Level, lr.HierarchyRate*100, lr.UniquenessRate*100, lr.EnergyBandRate*100)
		}
		return nil
	},
}

func init() {
	montecarloCmd.PersistentFlags().IntVar(&cfg.Simulations, "simulations", cfg.Simulations, "number of simulations")
	montecarloCmd.PersistentFlags().IntVar(&cfg.SampleSize, "sample", cfg.SampleSize, "zeros sampled (most recent)")
	montecarloCmd.PersistentFlags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	mcRandomCmd.Flags().IntVar(&mcConstants, "constants", 20, "random constants per simulation")
	mcPerturbCmd.Flags().StringVar(&mcCatalog, "catalog", "forces", "catalog to perturb")
	montecarloCmd.AddCommand(mcRandomCmd, mcPerturbCmd)
	rootCmd.AddCommand(montecarloCmd)
}

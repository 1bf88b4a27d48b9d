package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okushigue/zetascan/constants"
)

var catalogsVerbose bool

var catalogsCmd = &cobra.Command{
	Use:   "catalogs",
	Short: "List registered constant catalogs",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range constants.Names() {
			cat, ok := constants.ByName(name)
			if !ok {
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s mode, %d constants, %d controls, default tolerance %.0e\n",
				name, cat.Mode, len(cat.Constants), len(cat.Controls), cat.DefaultTolerance)
			if catalogsVerbose {
				for _, c := range cat.Constants {
					fmt.Fprintf(cmd.OutOrStdout(), "    %-28s %-14s %.12g (%s)\n",
						c.Name, c.Symbol, c.Value, c.Category)
				}
			}
		}
		return nil
	},
}

func init() {
	catalogsCmd.Flags().BoolVar(&catalogsVerbose, "constants", false, "list each catalog's constants")
	rootCmd.AddCommand(catalogsCmd)
}

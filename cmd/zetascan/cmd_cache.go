package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the binary zero cache",
}

var cacheBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "(Re)build the cache from the zeros text file",
	RunE: func(cmd *cobra.Command, args []string) error {
		hunter, closeFn, err := newHunter(false)
		if err != nil {
			return err
		}
		defer closeFn()

		zs, err := hunter.RebuildCache(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cached %d zeros from %s\n", len(zs), cfg.ZerosFile)
		return nil
	},
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Inspect the cache header",
	RunE: func(cmd *cobra.Command, args []string) error {
		hunter, closeFn, err := newHunter(false)
		if err != nil {
			return err
		}
		defer closeFn()

		info, err := hunter.CacheInfo(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d zeros, %s compression, %d bytes\n",
			cfg.CacheName, info.Count, info.Compression, info.SizeBytes)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheBuildCmd, cacheInfoCmd)
	rootCmd.AddCommand(cacheCmd)
}

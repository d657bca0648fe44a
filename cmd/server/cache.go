package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the SWAPI response cache",
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete expired cache entries (database backend)",
	Args:  cobra.NoArgs,
	RunE:  runCachePrune,
}

func init() {
	cacheCmd.AddCommand(cachePruneCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCachePrune(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	return pruneCache(cmd, a)
}

func pruneCache(cmd *cobra.Command, a *app) error {
	c := a.dbCache()
	if c == nil {
		// Redis 自行处理过期
		fmt.Fprintf(cmd.OutOrStdout(), "Cache backend %q expires entries itself, nothing to prune\n", a.cfg.Cache.Backend)
		return nil
	}

	n, err := c.Prune(cmd.Context())
	if err != nil {
		return fmt.Errorf("prune cache: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired cache entries\n", n)
	return nil
}

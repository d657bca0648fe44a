package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "swapi-films",
	Short: "Star Wars film catalog mirror with comments",
	Long: `swapi-films mirrors the SWAPI film catalog into a local database
and serves it over HTTP together with user comments.

Run 'swapi-films serve' to start the API server.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", envOr("CONFIG_PATH", "config.yaml"), "Path to config file")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("swapi-films {{.Version}}\n")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

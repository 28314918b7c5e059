package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath   string
	instanceName string
)

var rootCmd = &cobra.Command{
	Use:   "grabarr",
	Short: "Release evaluation and grab decision engine",
	Long: `grabarr - release evaluation and grab decision engine

Polls indexer feeds, matches releases against the managed collection,
scores them against quality profiles and custom formats, and submits
at most one winning grab per collection entry each cycle.

Run 'grabarr serve' to poll continuously, or 'grabarr run' for a
single cycle.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&instanceName, "instance", "", "Limit to a single named instance")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("grabarr {{.Version}}\n")
}

package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "variance-heatmap-cli",
		Short: "CLI tool for the temperature variance heat map",
	}

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newColorCmd())
	rootCmd.AddCommand(newLegendCmd())
	rootCmd.AddCommand(newStatsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

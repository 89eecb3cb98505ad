package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/egandro/variance-heatmap/pkg/dataset"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var flags dataFlags
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(&flags)
			if err != nil {
				return err
			}
			d, err := loadDataset(cmd.Context(), cfg, flags.quiet)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(os.Stdout, d.Summary())
			}
			return printSummary(os.Stdout, d.Summary())
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

func printSummary(out io.Writer, s dataset.Summary) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Observations:\t%d\n", s.Observations)
	_, _ = fmt.Fprintf(w, "Years:\t%d - %d\n", s.Years.Min, s.Years.Max)
	_, _ = fmt.Fprintf(w, "Base temperature:\t%.2f℃\n", s.BaseTemperature)
	_, _ = fmt.Fprintf(w, "Variance:\t%.3f .. %.3f\n", s.Variance.Min, s.Variance.Max)
	_, _ = fmt.Fprintf(w, "Mean variance:\t%.3f\n", s.MeanVariance)
	_, _ = fmt.Fprintf(w, "Temperature:\t%.2f℃ .. %.2f℃\n", s.MinTemperature, s.MaxTemperature)
	return w.Flush()
}

package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/egandro/variance-heatmap/pkg/colormap"
	"github.com/spf13/cobra"
)

// LegendEntry is one ramp stop. Variance is set when a range is known.
type LegendEntry struct {
	Percent  float64  `json:"percent"`
	Variance *float64 `json:"variance,omitempty"`
	Color    string   `json:"color"`
	Hex      string   `json:"hex"`
}

func newLegendCmd() *cobra.Command {
	var flags dataFlags
	var rf rangeFlags
	var withData bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "legend",
		Short: "Show the color ramp stops",
		Long:  "Show the color ramp stops. With --with-data or --min/--max each stop also shows the variance it stands for.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ramp, err := loadConfig(&flags)
			if err != nil {
				return err
			}
			r, ok, err := rf.explicit(cmd)
			if err != nil {
				return err
			}
			if !ok && withData {
				d, err := loadDataset(cmd.Context(), cfg, flags.quiet)
				if err != nil {
					return err
				}
				r, ok = d.VarianceRange(), true
			}

			var rp *colormap.Range
			if ok {
				rp = &r
			}
			entries := legendEntries(ramp, rp)
			if jsonOutput {
				return printJSON(os.Stdout, entries)
			}
			return printLegend(os.Stdout, entries)
		},
	}
	flags.register(cmd)
	rf.register(cmd)
	cmd.Flags().BoolVar(&withData, "with-data", false, "Use the dataset variance range")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

func legendEntries(ramp colormap.Ramp, r *colormap.Range) []LegendEntry {
	entries := make([]LegendEntry, 0, len(ramp))
	for _, stop := range ramp {
		e := LegendEntry{
			Percent: stop.Threshold,
			Color:   stop.Color.String(),
			Hex:     stop.Color.Hex(),
		}
		if r != nil {
			v := r.Min + stop.Threshold/100*(r.Max-r.Min)
			e.Variance = &v
		}
		entries = append(entries, e)
	}
	return entries
}

func printLegend(out io.Writer, entries []LegendEntry) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PERCENT\tVARIANCE\tHEX\tCOLOR")
	_, _ = fmt.Fprintln(w, "-------\t--------\t---\t-----")
	for _, e := range entries {
		variance := "-"
		if e.Variance != nil {
			variance = fmt.Sprintf("%.2f", *e.Variance)
		}
		_, _ = fmt.Fprintf(w, "%g\t%s\t%s\t%s\n", e.Percent, variance, e.Hex, e.Color)
	}
	return w.Flush()
}

package main

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/egandro/variance-heatmap/pkg/colormap"
	"github.com/spf13/cobra"
)

// ColorResult is one mapped variance.
type ColorResult struct {
	Variance float64        `json:"variance"`
	Range    colormap.Range `json:"range"`
	Percent  float64        `json:"percent"`
	Color    string         `json:"color"`
	Hex      string         `json:"hex"`
}

// rangeFlags select an explicit variance range instead of the dataset one.
type rangeFlags struct {
	min float64
	max float64
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.min, "min", 0, "Minimum variance (requires --max)")
	cmd.Flags().Float64Var(&f.max, "max", 0, "Maximum variance (requires --min)")
}

// explicit returns the flag range and whether it was given.
func (f *rangeFlags) explicit(cmd *cobra.Command) (colormap.Range, bool, error) {
	minSet, maxSet := cmd.Flags().Changed("min"), cmd.Flags().Changed("max")
	if minSet != maxSet {
		return colormap.Range{}, false, fmt.Errorf("--min and --max must be given together")
	}
	if !minSet {
		return colormap.Range{}, false, nil
	}
	if f.min > f.max {
		return colormap.Range{}, false, fmt.Errorf("--min %g is greater than --max %g", f.min, f.max)
	}
	return colormap.Range{Min: f.min, Max: f.max}, true, nil
}

func parseVariance(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid variance %q", s)
	}
	return v, nil
}

func newColorCmd() *cobra.Command {
	var flags dataFlags
	var rf rangeFlags
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "color <variance>...",
		Short: "Map variances to heat map colors",
		Long:  "Map variances to heat map colors. The range is the dataset variance range unless --min and --max are given.",
		Example: `  variance-heatmap-cli color 1.5
  variance-heatmap-cli color --min -5 --max 3 -- -1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]float64, 0, len(args))
			for _, a := range args {
				v, err := parseVariance(a)
				if err != nil {
					return err
				}
				values = append(values, v)
			}

			cfg, ramp, err := loadConfig(&flags)
			if err != nil {
				return err
			}
			r, ok, err := rf.explicit(cmd)
			if err != nil {
				return err
			}
			if !ok {
				d, err := loadDataset(cmd.Context(), cfg, flags.quiet)
				if err != nil {
					return err
				}
				r = d.VarianceRange()
			}

			results := mapColors(colormap.NewMapper(r, ramp), values)
			if jsonOutput {
				return printJSON(os.Stdout, results)
			}
			for _, res := range results {
				fmt.Printf("%g\t%.2f%%\t%s\t%s\n", res.Variance, res.Percent, res.Hex, res.Color)
			}
			return nil
		},
	}
	flags.register(cmd)
	rf.register(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

func mapColors(m colormap.Mapper, values []float64) []ColorResult {
	results := make([]ColorResult, 0, len(values))
	for _, v := range values {
		c := m.Color(v)
		results = append(results, ColorResult{
			Variance: v,
			Range:    m.Range,
			Percent:  m.Percent(v),
			Color:    c.String(),
			Hex:      c.Hex(),
		})
	}
	return results
}

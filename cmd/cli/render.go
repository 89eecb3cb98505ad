package main

import (
	"fmt"
	"io"

	"github.com/egandro/variance-heatmap/pkg/chart"
	"github.com/egandro/variance-heatmap/pkg/raster"
	"github.com/egandro/variance-heatmap/pkg/svg"
	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	var flags dataFlags
	var output string
	var format string
	var title string
	var subtitle string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the heat map as SVG or PNG",
		Example: `  variance-heatmap-cli render -o heatmap.svg
  variance-heatmap-cli render --file data.json --format png -o heatmap.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveFormat(format, output)
			if err != nil {
				return err
			}
			cfg, ramp, err := loadConfig(&flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("title") {
				cfg.Title = title
			}

			d, err := loadDataset(cmd.Context(), cfg, flags.quiet)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("subtitle") {
				subtitle = chart.Subtitle(d)
			}

			c, err := chart.New(d, chart.Options{Title: cfg.Title, Subtitle: subtitle, Ramp: ramp})
			if err != nil {
				return err
			}

			w, err := openOutput(output)
			if err != nil {
				return err
			}
			if err := writeChart(w, c, f); err != nil {
				_ = w.Close()
				return err
			}
			return w.Close()
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file, - for stdout")
	cmd.Flags().StringVar(&format, "format", "", "Image format: svg or png (default from output extension)")
	cmd.Flags().StringVar(&title, "title", "", "Chart title")
	cmd.Flags().StringVar(&subtitle, "subtitle", "", "Chart subtitle (default year range and base temperature)")
	return cmd
}

func writeChart(w io.Writer, c *chart.Chart, format string) error {
	switch format {
	case formatPNG:
		return raster.Encode(w, c)
	case formatSVG:
		out, err := svg.Render(c)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	}
	return fmt.Errorf("invalid format %q", format)
}

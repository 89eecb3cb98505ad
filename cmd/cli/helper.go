package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/egandro/variance-heatmap/pkg/colormap"
	"github.com/egandro/variance-heatmap/pkg/config"
	"github.com/egandro/variance-heatmap/pkg/dataset"
	"github.com/spf13/cobra"
)

const (
	formatSVG = "svg"
	formatPNG = "png"
)

// dataFlags are the flags shared by every command that reads the dataset.
type dataFlags struct {
	file  string
	url   string
	ramp  string
	quiet bool
}

func (f *dataFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.file, "file", "", "Read the dataset from a local JSON file")
	cmd.Flags().StringVar(&f.url, "url", "", "Fetch the dataset from this URL")
	cmd.Flags().StringVar(&f.ramp, "ramp", "", "Color ramp, e.g. 0:blue,50:whitesmoke,100:red")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "Disable progress spinner")
}

// resolve applies flags over the config file and environment.
func (f *dataFlags) resolve(cfg *config.Config) {
	if f.file != "" {
		cfg.DataFile = f.file
	}
	if f.url != "" {
		cfg.DataURL = f.url
		cfg.DataFile = ""
	}
	if f.ramp != "" {
		cfg.Ramp = f.ramp
	}
}

func loadConfig(f *dataFlags) (*config.Config, colormap.Ramp, error) {
	cfg := config.Load(config.ConstantConfigFilename)
	f.resolve(cfg)
	ramp, err := cfg.ColorRamp()
	if err != nil {
		return nil, nil, err
	}
	return cfg, ramp, nil
}

func loadDataset(ctx context.Context, cfg *config.Config, quiet bool) (*dataset.Dataset, error) {
	src := dataset.NewSource(cfg.DataFile, cfg.DataURL, 0, cfg.FetchTimeout)

	var s *spinner.Spinner
	if !quiet {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = fmt.Sprintf(" Loading dataset from %s...", origin(cfg))
		s.Start()
	}

	d, err := src.Dataset(ctx)

	if s != nil {
		s.Stop()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return d, nil
}

func origin(cfg *config.Config) string {
	if cfg.DataFile != "" {
		return cfg.DataFile
	}
	return cfg.DataURL
}

// resolveFormat picks the image format from the flag or, when empty, the
// output file extension. SVG is the default.
func resolveFormat(format, output string) (string, error) {
	if format == "" {
		if strings.EqualFold(filepath.Ext(output), ".png") {
			return formatPNG, nil
		}
		return formatSVG, nil
	}
	switch strings.ToLower(format) {
	case formatSVG:
		return formatSVG, nil
	case formatPNG:
		return formatPNG, nil
	}
	return "", fmt.Errorf("invalid format %q (allowed: svg, png)", format)
}

// openOutput returns stdout for "" and "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	// #nosec G304 -- path is supplied by the user on the command line
	return os.Create(filepath.Clean(path))
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/egandro/variance-heatmap/pkg/colormap"
	"github.com/egandro/variance-heatmap/pkg/config"
	"github.com/egandro/variance-heatmap/pkg/dataset"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePath = "../../pkg/dataset/testdata/sample.json"

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		format  string
		output  string
		want    string
		wantErr bool
	}{
		{"", "-", formatSVG, false},
		{"", "out.svg", formatSVG, false},
		{"", "out.PNG", formatPNG, false},
		{"png", "-", formatPNG, false},
		{"SVG", "out.png", formatSVG, false},
		{"gif", "out.gif", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format+"/"+tt.output, func(t *testing.T) {
			got, err := resolveFormat(tt.format, tt.output)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDataFlagsResolve(t *testing.T) {
	cfg := &config.Config{DataFile: "a.json", DataURL: "http://example.com/a.json"}
	(&dataFlags{ramp: "0:blue,100:red"}).resolve(cfg)
	assert.Equal(t, "a.json", cfg.DataFile)
	assert.Equal(t, "0:blue,100:red", cfg.Ramp)

	// An explicit URL wins over a configured file
	(&dataFlags{url: "http://example.com/b.json"}).resolve(cfg)
	assert.Empty(t, cfg.DataFile)
	assert.Equal(t, "http://example.com/b.json", cfg.DataURL)
	assert.Equal(t, "http://example.com/b.json", origin(cfg))
}

func TestRangeFlagsExplicit(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    colormap.Range
		ok      bool
		wantErr bool
	}{
		{"none", nil, colormap.Range{}, false, false},
		{"both", []string{"--min=-5", "--max=3"}, colormap.Range{Min: -5, Max: 3}, true, false},
		{"degenerate", []string{"--min=1", "--max=1"}, colormap.Range{Min: 1, Max: 1}, true, false},
		{"only min", []string{"--min=-5"}, colormap.Range{}, false, true},
		{"reversed", []string{"--min=3", "--max=-5"}, colormap.Range{}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rf rangeFlags
			cmd := &cobra.Command{Use: "test"}
			rf.register(cmd)
			require.NoError(t, cmd.ParseFlags(tt.args))

			got, ok, err := rf.explicit(cmd)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseVariance(t *testing.T) {
	v, err := parseVariance("-1.25")
	assert.NoError(t, err)
	assert.Equal(t, -1.25, v)

	for _, s := range []string{"", "abc", "NaN", "Inf", "-Inf"} {
		_, err := parseVariance(s)
		assert.Error(t, err, s)
	}
}

func TestMapColors(t *testing.T) {
	m := colormap.NewMapper(colormap.Range{Min: -5, Max: 3}, nil)
	results := mapColors(m, []float64{-5, -1, 3, 10})
	require.Len(t, results, 4)

	assert.Equal(t, "#0000ff", results[0].Hex)
	assert.Equal(t, 50.0, results[1].Percent)
	assert.Equal(t, "rgb(245, 245, 245)", results[1].Color)
	assert.Equal(t, "#ff0000", results[2].Hex)
	// Outside the range clamps to the top stop
	assert.Equal(t, 100.0, results[3].Percent)
	assert.Equal(t, "#ff0000", results[3].Hex)
}

func TestLegendEntries(t *testing.T) {
	ramp := colormap.DefaultRamp()

	entries := legendEntries(ramp, nil)
	require.Len(t, entries, 5)
	for _, e := range entries {
		assert.Nil(t, e.Variance)
	}

	entries = legendEntries(ramp, &colormap.Range{Min: -5, Max: 3})
	require.Len(t, entries, 5)
	assert.InDelta(t, -5.0, *entries[0].Variance, 1e-9)
	assert.InDelta(t, -1.0, *entries[2].Variance, 1e-9)
	assert.InDelta(t, 3.0, *entries[4].Variance, 1e-9)
	assert.Equal(t, "#f5f5f5", entries[2].Hex)

	var buf bytes.Buffer
	require.NoError(t, printLegend(&buf, entries))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[0], "PERCENT")
	assert.Contains(t, lines[4], "-1.00")
	assert.Contains(t, lines[4], "#f5f5f5")
}

func TestPrintSummary(t *testing.T) {
	d, err := dataset.LoadFile(samplePath)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printSummary(&buf, d.Summary()))
	out := buf.String()
	assert.Contains(t, out, "Observations:")
	assert.Contains(t, out, "1753 - 2015")
	assert.Contains(t, out, "8.66℃")
}

func TestRenderCmd(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"heatmap.svg", "heatmap.png"} {
		t.Run(name, func(t *testing.T) {
			out := filepath.Join(dir, name)
			cmd := newRenderCmd()
			cmd.SetArgs([]string{"--file", samplePath, "--quiet", "--title", "Sample", "-o", out})
			require.NoError(t, cmd.Execute())

			f, err := os.Open(out)
			require.NoError(t, err)
			defer func() {
				_ = f.Close()
			}()

			if filepath.Ext(name) == ".png" {
				_, err := png.Decode(f)
				assert.NoError(t, err)
				return
			}
			data, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(data), "<svg"))
			assert.Contains(t, string(data), "Sample")
			assert.Contains(t, string(data), "1753 - 2015")
		})
	}
}

func TestRenderCmd_MissingFile(t *testing.T) {
	cmd := newRenderCmd()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs([]string{"--file", filepath.Join(t.TempDir(), "missing.json"), "--quiet", "-o", filepath.Join(t.TempDir(), "out.svg")})
	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load dataset")
}

func TestRenderCmd_InvalidRamp(t *testing.T) {
	cmd := newRenderCmd()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs([]string{"--file", samplePath, "--quiet", "--ramp", "0:blue", "-o", filepath.Join(t.TempDir(), "out.svg")})
	assert.ErrorIs(t, cmd.Execute(), colormap.ErrInvalidRamp)
}

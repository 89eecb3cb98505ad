package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egandro/variance-heatmap/pkg/colormap"
)

const samplePath = "testdata/sample.json"

func TestLoadFile(t *testing.T) {
	d, err := LoadFile(samplePath)
	require.NoError(t, err)

	assert.Equal(t, 8.66, d.BaseTemperature)
	assert.Len(t, d.MonthlyVariance, 15)
	assert.Equal(t, Observation{Year: 1753, Month: 1, Variance: -1.366}, d.MonthlyVariance[0])
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", `{"baseTemperature": 8.66, "monthlyVariance": []}`, ErrEmpty},
		{"missing series", `{"baseTemperature": 8.66}`, ErrEmpty},
		{"month zero", `{"monthlyVariance": [{"year": 1800, "month": 0, "variance": 1}]}`, ErrInvalidMonth},
		{"month thirteen", `{"monthlyVariance": [{"year": 1800, "month": 13, "variance": 1}]}`, ErrInvalidMonth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"monthlyVariance": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode dataset")
}

func TestRanges(t *testing.T) {
	d, err := LoadFile(samplePath)
	require.NoError(t, err)

	assert.Equal(t, colormap.Range{Min: -6.976, Max: 5.228}, d.VarianceRange())
	assert.Equal(t, YearRange{Min: 1753, Max: 2015}, d.YearRange())
}

func TestRanges_Empty(t *testing.T) {
	d := &Dataset{}
	assert.Equal(t, colormap.Range{}, d.VarianceRange())
	assert.Equal(t, YearRange{}, d.YearRange())
	assert.Equal(t, 0, d.Summary().Observations)
}

func TestYearsNeedNotBeContiguous(t *testing.T) {
	d := &Dataset{MonthlyVariance: []Observation{
		{Year: 1900, Month: 5, Variance: 0.1},
		{Year: 1800, Month: 5, Variance: 0.2},
		{Year: 1900, Month: 5, Variance: 0.3},
	}}
	require.NoError(t, d.Validate())
	assert.Equal(t, YearRange{Min: 1800, Max: 1900}, d.YearRange())
}

func TestTemperatureAndSummary(t *testing.T) {
	d := &Dataset{
		BaseTemperature: 10,
		MonthlyVariance: []Observation{
			{Year: 2000, Month: 1, Variance: -5},
			{Year: 2000, Month: 2, Variance: 3},
			{Year: 2001, Month: 1, Variance: -1},
		},
	}
	assert.Equal(t, 5.0, d.Temperature(d.MonthlyVariance[0]))

	s := d.Summary()
	assert.Equal(t, 3, s.Observations)
	assert.Equal(t, YearRange{Min: 2000, Max: 2001}, s.Years)
	assert.Equal(t, colormap.Range{Min: -5, Max: 3}, s.Variance)
	assert.Equal(t, -1.0, s.MeanVariance)
	assert.Equal(t, 5.0, s.MinTemperature)
	assert.Equal(t, 13.0, s.MaxTemperature)
}

func TestMapper(t *testing.T) {
	d := &Dataset{MonthlyVariance: []Observation{
		{Year: 2000, Month: 1, Variance: -5},
		{Year: 2000, Month: 2, Variance: 3},
	}}
	m := d.Mapper(nil)
	assert.Equal(t, colormap.RGB{R: 245, G: 245, B: 245}, m.Color(-1))
	assert.Equal(t, colormap.RGB{R: 0, G: 0, B: 255}, m.Color(-5))
}

func TestMapper_Degenerate(t *testing.T) {
	d := &Dataset{MonthlyVariance: []Observation{
		{Year: 2000, Month: 1, Variance: 2},
		{Year: 2001, Month: 1, Variance: 2},
	}}
	m := d.Mapper(nil)
	assert.Equal(t, m.FallbackColor(), m.Color(2))
	assert.Equal(t, m.FallbackColor(), m.Color(-10))
}

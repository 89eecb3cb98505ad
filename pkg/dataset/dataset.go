// Package dataset holds the monthly temperature variance data and loads it
// from files or HTTP sources.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/egandro/variance-heatmap/pkg/colormap"
)

var (
	ErrEmpty           = errors.New("dataset has no observations")
	ErrInvalidMonth    = errors.New("month out of range [1,12]")
	ErrInvalidVariance = errors.New("variance is not a finite number")
)

// Observation is the variance of one month of one year.
type Observation struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	Variance float64 `json:"variance"`
}

// Dataset is a base temperature plus the per-month deviations from it.
type Dataset struct {
	BaseTemperature float64       `json:"baseTemperature"`
	MonthlyVariance []Observation `json:"monthlyVariance"`
}

// YearRange is the [Min, Max] of observed years.
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Summary describes a dataset.
type Summary struct {
	Observations    int            `json:"observations"`
	BaseTemperature float64        `json:"baseTemperature"`
	Years           YearRange      `json:"years"`
	Variance        colormap.Range `json:"variance"`
	MeanVariance    float64        `json:"meanVariance"`
	MinTemperature  float64        `json:"minTemperature"`
	MaxTemperature  float64        `json:"maxTemperature"`
}

// Decode reads and validates a JSON dataset.
func Decode(r io.Reader) (*Dataset, error) {
	var d Dataset
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadFile reads a dataset from a JSON file.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Decode(f)
}

// Validate checks that there is data and that every observation is usable.
func (d *Dataset) Validate() error {
	if len(d.MonthlyVariance) == 0 {
		return ErrEmpty
	}
	for i, o := range d.MonthlyVariance {
		if o.Month < 1 || o.Month > 12 {
			return fmt.Errorf("observation %d (year %d): %w: %d", i, o.Year, ErrInvalidMonth, o.Month)
		}
		if math.IsNaN(o.Variance) || math.IsInf(o.Variance, 0) {
			return fmt.Errorf("observation %d (year %d): %w", i, o.Year, ErrInvalidVariance)
		}
	}
	return nil
}

// VarianceRange returns the smallest and largest observed variance.
func (d *Dataset) VarianceRange() colormap.Range {
	if len(d.MonthlyVariance) == 0 {
		return colormap.Range{}
	}
	r := colormap.Range{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, o := range d.MonthlyVariance {
		r.Min = math.Min(r.Min, o.Variance)
		r.Max = math.Max(r.Max, o.Variance)
	}
	return r
}

func (d *Dataset) YearRange() YearRange {
	if len(d.MonthlyVariance) == 0 {
		return YearRange{}
	}
	r := YearRange{Min: d.MonthlyVariance[0].Year, Max: d.MonthlyVariance[0].Year}
	for _, o := range d.MonthlyVariance[1:] {
		r.Min = min(r.Min, o.Year)
		r.Max = max(r.Max, o.Year)
	}
	return r
}

// Temperature is the absolute temperature of an observation.
func (d *Dataset) Temperature(o Observation) float64 {
	return d.BaseTemperature + o.Variance
}

// Mapper returns a color mapper over the dataset's variance range.
func (d *Dataset) Mapper(ramp colormap.Ramp) colormap.Mapper {
	return colormap.NewMapper(d.VarianceRange(), ramp)
}

func (d *Dataset) Summary() Summary {
	vr := d.VarianceRange()
	s := Summary{
		Observations:    len(d.MonthlyVariance),
		BaseTemperature: d.BaseTemperature,
		Years:           d.YearRange(),
		Variance:        vr,
		MinTemperature:  d.BaseTemperature + vr.Min,
		MaxTemperature:  d.BaseTemperature + vr.Max,
	}
	if s.Observations > 0 {
		var sum float64
		for _, o := range d.MonthlyVariance {
			sum += o.Variance
		}
		s.MeanVariance = sum / float64(s.Observations)
	}
	return s
}

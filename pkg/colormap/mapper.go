// Package colormap maps variance values to display colors.
//
// Mapping is two chained linear interpolations: the variance is normalized
// from the observed [min, max] range to a percent in [0,100], and the percent
// is looked up in a piecewise-linear color ramp.
package colormap

import "math"

// MidPercent is returned by Normalize for a degenerate range or NaN input.
const MidPercent = 50.0

// Range is the observed [Min, Max] of a variance series.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Degenerate reports whether the range has no width.
func (r Range) Degenerate() bool {
	return r.Min == r.Max || math.IsNaN(r.Min) || math.IsNaN(r.Max)
}

// Normalize maps variance linearly from [min,max] to [0,100].
// Values outside the range clamp to 0 or 100. A degenerate range, or a NaN
// variance, yields MidPercent.
func Normalize(variance, min, max float64) float64 {
	if min == max || math.IsNaN(variance) || math.IsNaN(min) || math.IsNaN(max) {
		return MidPercent
	}
	p := (variance - min) / (max - min) * 100
	if math.IsNaN(p) {
		return MidPercent
	}
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Colorize looks percent up in the default ramp.
func Colorize(percent float64) RGB {
	return defaultRamp.At(percent)
}

// Map is Colorize(Normalize(variance, min, max)).
func Map(variance, min, max float64) RGB {
	return Colorize(Normalize(variance, min, max))
}

var defaultRamp = DefaultRamp()

// Mapper binds a range and a ramp. The zero Ramp means DefaultRamp.
type Mapper struct {
	Range Range
	Ramp  Ramp
}

func NewMapper(r Range, ramp Ramp) Mapper {
	if len(ramp) == 0 {
		ramp = DefaultRamp()
	}
	return Mapper{Range: r, Ramp: ramp}
}

func (m Mapper) Percent(variance float64) float64 {
	return Normalize(variance, m.Range.Min, m.Range.Max)
}

func (m Mapper) Color(variance float64) RGB {
	return m.ramp().At(m.Percent(variance))
}

// FallbackColor is the color every value maps to when the range is degenerate.
func (m Mapper) FallbackColor() RGB {
	return m.ramp().At(MidPercent)
}

func (m Mapper) ramp() Ramp {
	if len(m.Ramp) == 0 {
		return defaultRamp
	}
	return m.Ramp
}

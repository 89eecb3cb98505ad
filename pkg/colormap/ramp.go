package colormap

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidRamp = errors.New("invalid color ramp")

// Stop is a ramp control point. Threshold is a percent in [0,100].
type Stop struct {
	Threshold float64
	Color     RGB
}

// Ramp is a piecewise-linear color gradient over percent values.
// Stops are strictly increasing in threshold.
type Ramp []Stop

// DefaultRamp is blue -> lightblue -> whitesmoke -> orange -> red.
func DefaultRamp() Ramp {
	return Ramp{
		{0, mustParseColor("blue")},
		{30, mustParseColor("lightblue")},
		{50, mustParseColor("whitesmoke")},
		{70, mustParseColor("orange")},
		{100, mustParseColor("red")},
	}
}

// NewRamp checks the stops and returns them as a Ramp.
func NewRamp(stops ...Stop) (Ramp, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 stops, got %d", ErrInvalidRamp, len(stops))
	}
	for i, s := range stops {
		if math.IsNaN(s.Threshold) || s.Threshold < 0 || s.Threshold > 100 {
			return nil, fmt.Errorf("%w: threshold %v out of [0,100]", ErrInvalidRamp, s.Threshold)
		}
		if i > 0 && s.Threshold <= stops[i-1].Threshold {
			return nil, fmt.Errorf("%w: thresholds not strictly increasing at %v", ErrInvalidRamp, s.Threshold)
		}
	}
	r := make(Ramp, len(stops))
	copy(r, stops)
	return r, nil
}

// ParseRamp reads stops of the form "0:blue,30:#add8e6,100:red".
func ParseRamp(s string) (Ramp, error) {
	var stops []Stop
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		threshold, name, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("%w: stop %q is not threshold:color", ErrInvalidRamp, part)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(threshold), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: threshold %q: %v", ErrInvalidRamp, threshold, err)
		}
		c, err := ParseColor(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRamp, err)
		}
		stops = append(stops, Stop{Threshold: v, Color: c})
	}
	return NewRamp(stops...)
}

// String is the inverse of ParseRamp, with hex colors.
func (r Ramp) String() string {
	parts := make([]string, len(r))
	for i, s := range r {
		parts[i] = strconv.FormatFloat(s.Threshold, 'f', -1, 64) + ":" + s.Color.Hex()
	}
	return strings.Join(parts, ",")
}

// At returns the ramp color for percent. Values outside the first and last
// threshold hold the boundary color.
func (r Ramp) At(percent float64) RGB {
	if len(r) == 0 {
		return RGB{}
	}
	if math.IsNaN(percent) {
		percent = MidPercent
	}
	if percent <= r[0].Threshold {
		return r[0].Color
	}
	last := r[len(r)-1]
	if percent >= last.Threshold {
		return last.Color
	}

	// Find the segment percent falls into
	for i := 0; i < len(r)-1; i++ {
		lo, hi := r[i], r[i+1]
		if percent >= lo.Threshold && percent <= hi.Threshold {
			f := (percent - lo.Threshold) / (hi.Threshold - lo.Threshold)
			return fromColorful(lo.Color.colorful().BlendRgb(hi.Color.colorful(), f))
		}
	}
	return last.Color
}

// Swatches samples the ramp at n evenly spaced percents starting at 0,
// i.e. percent i*100/n for i in [0,n).
func (r Ramp) Swatches(n int) []RGB {
	out := make([]RGB, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, r.At(float64(i)*100/float64(n)))
	}
	return out
}

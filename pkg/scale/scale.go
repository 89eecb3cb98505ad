// Package scale provides linear scales and nice axis ticks.
package scale

import (
	"math"
	"strconv"
	"strings"
)

// Linear maps Domain onto Range. Without Clamp, values outside the domain
// extrapolate along the same line.
type Linear struct {
	Domain [2]float64
	Range  [2]float64
	Clamp  bool
}

func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{Domain: [2]float64{d0, d1}, Range: [2]float64{r0, r1}}
}

// Map returns the range value for v. A zero-width domain maps everything to
// the middle of the range.
func (s Linear) Map(v float64) float64 {
	d0, d1 := s.Domain[0], s.Domain[1]
	r0, r1 := s.Range[0], s.Range[1]
	if d0 == d1 {
		return (r0 + r1) / 2
	}
	t := (v - d0) / (d1 - d0)
	if s.Clamp {
		t = math.Max(0, math.Min(1, t))
	}
	return r0 + t*(r1-r0)
}

// Ticks returns the domain's nice ticks for about count intervals.
func (s Linear) Ticks(count int) []float64 {
	return Ticks(s.Domain[0], s.Domain[1], count)
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickIncrement returns a 1, 2 or 5 times a power of ten step. Steps below
// one come back negated and inverted (-10 means 0.1) so that tick values can be
// computed by division without accumulating float error.
func tickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / math.Max(0, float64(count))
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)
	mult := 1.0
	switch {
	case e >= e10:
		mult = 10
	case e >= e5:
		mult = 5
	case e >= e2:
		mult = 2
	}
	if power >= 0 {
		return mult * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / mult
}

// TickStep returns the distance between adjacent ticks of Ticks(start, stop, count).
func TickStep(start, stop float64, count int) float64 {
	if start > stop {
		start, stop = stop, start
	}
	inc := tickIncrement(start, stop, count)
	if inc < 0 {
		return -1 / inc
	}
	return inc
}

// Ticks returns about count+1 evenly spaced round values within [start, stop].
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) || math.IsInf(start, 0) || math.IsInf(stop, 0) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	inc := tickIncrement(start, stop, count)
	if inc == 0 || math.IsInf(inc, 0) || math.IsNaN(inc) {
		return nil
	}

	var ticks []float64
	if inc > 0 {
		lo, hi := math.Ceil(start/inc), math.Floor(stop/inc)
		for i := lo; i <= hi; i++ {
			ticks = append(ticks, i*inc)
		}
	} else {
		inc = -inc
		lo, hi := math.Ceil(start*inc), math.Floor(stop*inc)
		for i := lo; i <= hi; i++ {
			ticks = append(ticks, i/inc)
		}
	}

	if reverse {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

// Precision is the number of decimals needed to print ticks spaced step apart.
func Precision(step float64) int {
	step = math.Abs(step)
	if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return 0
	}
	p := -int(math.Floor(math.Log10(step) + 1e-9))
	if p < 0 {
		return 0
	}
	return p
}

// Format prints v with the precision required by step.
func Format(v, step float64) string {
	s := strconv.FormatFloat(v, 'f', Precision(step), 64)
	// no "-0"
	if strings.HasPrefix(s, "-") && isZero(s[1:]) {
		return s[1:]
	}
	return s
}

func isZero(s string) bool {
	for _, c := range s {
		if c != '0' && c != '.' {
			return false
		}
	}
	return true
}

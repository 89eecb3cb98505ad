package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinear_Map(t *testing.T) {
	s := NewLinear(-5, 3, 0, 100)
	assert.Equal(t, 0.0, s.Map(-5))
	assert.Equal(t, 50.0, s.Map(-1))
	assert.Equal(t, 100.0, s.Map(3))

	// Extrapolates by default.
	assert.Equal(t, 150.0, s.Map(7))
	assert.Equal(t, -50.0, s.Map(-9))

	s.Clamp = true
	assert.Equal(t, 100.0, s.Map(7))
	assert.Equal(t, 0.0, s.Map(-9))
}

func TestLinear_InvertedRange(t *testing.T) {
	// y axes grow upwards
	s := NewLinear(-0.5, 11, 396, 40)
	assert.Equal(t, 396.0, s.Map(-0.5))
	assert.Equal(t, 40.0, s.Map(11))
}

func TestLinear_DegenerateDomain(t *testing.T) {
	s := NewLinear(2, 2, 0, 250)
	assert.Equal(t, 125.0, s.Map(2))
	assert.Equal(t, 125.0, s.Map(-3))
}

func TestTicks(t *testing.T) {
	tests := []struct {
		name        string
		start, stop float64
		count       int
		want        []float64
	}{
		{"unit interval", 0, 1, 10, []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1}},
		{"years", 1753, 2015, 10, []float64{1760, 1780, 1800, 1820, 1840, 1860, 1880, 1900, 1920, 1940, 1960, 1980, 2000}},
		{"variance legend", -6.976, 5.228, 7, []float64{-6, -4, -2, 0, 2, 4}},
		{"reversed", 10, 0, 2, []float64{10, 5, 0}},
		{"single value", 3, 3, 5, []float64{3}},
		{"zero count", 0, 1, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Ticks(tt.start, tt.stop, tt.count))
		})
	}
}

func TestTickStep(t *testing.T) {
	assert.Equal(t, 0.1, TickStep(0, 1, 10))
	assert.Equal(t, 20.0, TickStep(1753, 2015, 10))
	assert.Equal(t, 2.0, TickStep(-6.976, 5.228, 7))
	assert.Equal(t, 0.5, TickStep(-1, 1, 4))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1760", Format(1760, 20))
	assert.Equal(t, "0.3", Format(0.30000000000000004, 0.1))
	assert.Equal(t, "-0.5", Format(-0.5, 0.5))
	assert.Equal(t, "0.05", Format(0.05, 0.05))
	assert.Equal(t, "0", Format(-0.0000001, 1))
}

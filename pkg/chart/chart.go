// Package chart lays out a variance heat map: one cell per observation, a
// year axis, a month axis and a color legend. Renderers only draw what the
// layout computed.
package chart

import (
	"fmt"
	"math"
	"time"

	"github.com/egandro/variance-heatmap/pkg/colormap"
	"github.com/egandro/variance-heatmap/pkg/dataset"
	"github.com/egandro/variance-heatmap/pkg/scale"
)

const (
	cellWidth    = 4
	cellHeight   = 31
	rowHeight    = 33
	paddingLeft  = 90
	paddingRight = 30
	paddingTop   = 40
	extraWidth   = 120
	footerHeight = 80
	titleHeight  = 60

	// cells start this far into their year
	yearOffset = 0.3

	legendSwatches    = 100
	legendSwatchWidth = 2.5
	legendHeight      = 20
	legendTicks       = 7
	yearTicks         = 10
)

// TickSize is the length of axis tick marks.
const TickSize = 6

// Options tune a layout.
type Options struct {
	Title    string
	Subtitle string
	Ramp     colormap.Ramp
}

// Cell is one observation.
type Cell struct {
	X, Y, Width, Height float64
	Fill                colormap.RGB
	Year                int
	Month               int // zero based
	Temperature         float64
	Variance            float64
	Tooltip             []string
}

// Tick is an axis tick at Pos along the axis.
type Tick struct {
	Pos   float64
	Label string
}

// Axis is a straight axis from (X1,Y1) to (X2,Y2).
type Axis struct {
	X1, Y1, X2, Y2 float64
	Ticks          []Tick
	Label          string
}

// Swatch is a legend rectangle.
type Swatch struct {
	X, Y, Width, Height float64
	Fill                colormap.RGB
}

// Legend is the color ramp sample plus its variance axis.
type Legend struct {
	X, Y     float64
	Width    float64
	Swatches []Swatch
	Axis     Axis
}

// Chart is the laid out heat map. All coordinates are absolute.
type Chart struct {
	Width, Height float64
	Title         string
	Subtitle      string
	OffsetY       float64

	Cells  []Cell
	XAxis  Axis
	YAxis  Axis
	Legend Legend

	Fallback colormap.RGB
	Range    colormap.Range
}

// New lays out d. d must be valid.
func New(d *dataset.Dataset, opts Options) (*Chart, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("cannot lay out chart: %w", err)
	}

	mapper := d.Mapper(opts.Ramp)
	years := d.YearRange()

	plotHeight := float64(rowHeight * 12)
	width := extraWidth + cellWidth*float64(len(d.MonthlyVariance))/12

	c := &Chart{
		Width:    math.Ceil(width),
		Title:    opts.Title,
		Subtitle: opts.Subtitle,
		Range:    mapper.Range,
		Fallback: mapper.FallbackColor(),
	}
	if c.Title != "" || c.Subtitle != "" {
		c.OffsetY = titleHeight
	}
	c.Height = c.OffsetY + plotHeight + footerHeight

	xScale := scale.NewLinear(float64(years.Min), float64(years.Max), paddingLeft, width-paddingRight)
	yScale := scale.NewLinear(-0.5, 11, c.OffsetY+plotHeight, c.OffsetY+paddingTop)

	for _, o := range d.MonthlyVariance {
		temp := d.Temperature(o)
		c.Cells = append(c.Cells, Cell{
			X:           xScale.Map(float64(o.Year) + yearOffset),
			Y:           yScale.Map(float64(o.Month) - 0.5),
			Width:       cellWidth,
			Height:      cellHeight,
			Fill:        mapper.Color(o.Variance),
			Year:        o.Year,
			Month:       o.Month - 1,
			Temperature: temp,
			Variance:    o.Variance,
			Tooltip:     tooltip(o, temp),
		})
	}

	baseline := c.OffsetY + plotHeight
	c.XAxis = Axis{
		X1: paddingLeft, Y1: baseline, X2: width - paddingRight, Y2: baseline,
		Label: "Years",
	}
	for _, v := range xScale.Ticks(yearTicks) {
		c.XAxis.Ticks = append(c.XAxis.Ticks, Tick{Pos: xScale.Map(v), Label: fmt.Sprintf("%d", int(v))})
	}

	c.YAxis = Axis{
		X1: paddingLeft, Y1: yScale.Map(-0.5), X2: paddingLeft, Y2: yScale.Map(11),
		Label: "Months",
	}
	for m := 0; m < 12; m++ {
		c.YAxis.Ticks = append(c.YAxis.Ticks, Tick{Pos: yScale.Map(float64(m)), Label: time.Month(m + 1).String()})
	}

	c.Legend = newLegend(mapper, c.Width/7, baseline+40)
	return c, nil
}

func newLegend(mapper colormap.Mapper, x, y float64) Legend {
	width := legendSwatches * legendSwatchWidth
	l := Legend{X: x, Y: y, Width: width}

	ramp := mapper.Ramp
	for i, fill := range ramp.Swatches(legendSwatches) {
		l.Swatches = append(l.Swatches, Swatch{
			X:      x + float64(i)*legendSwatchWidth,
			Y:      y,
			Width:  legendSwatchWidth,
			Height: legendHeight,
			Fill:   fill,
		})
	}

	axisY := y + legendHeight
	l.Axis = Axis{X1: x, Y1: axisY, X2: x + width, Y2: axisY}

	r := mapper.Range
	if r.Degenerate() {
		l.Axis.Ticks = []Tick{{Pos: x + width/2, Label: scale.Format(r.Min, 1)}}
		return l
	}
	s := scale.NewLinear(r.Min, r.Max, x, x+width)
	step := scale.TickStep(r.Min, r.Max, legendTicks)
	for _, v := range s.Ticks(legendTicks) {
		l.Axis.Ticks = append(l.Axis.Ticks, Tick{Pos: s.Map(v), Label: scale.Format(v, step)})
	}
	return l
}

// Subtitle describes the years covered and the base temperature of d.
func Subtitle(d *dataset.Dataset) string {
	years := d.YearRange()
	return fmt.Sprintf("%d - %d: base temperature %s℃", years.Min, years.Max, roundString(d.BaseTemperature))
}

func tooltip(o dataset.Observation, temp float64) []string {
	sign := ""
	if o.Variance > 0 {
		sign = "+"
	}
	return []string{
		fmt.Sprintf("%d - %s", o.Year, time.Month(o.Month)),
		fmt.Sprintf("%s℃", roundString(temp)),
		fmt.Sprintf("%s%s℃", sign, roundString(o.Variance)),
	}
}

// roundString rounds to at most two decimals and drops trailing zeros.
func roundString(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		// no "-0"
		r = 0
	}
	return fmt.Sprint(r)
}

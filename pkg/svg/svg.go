package svg

import (
	"bytes"
	_ "embed"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
	"text/template"

	"github.com/egandro/variance-heatmap/pkg/chart"
)

const (
	titleBaseline    = 30
	subtitleBaseline = 50
	tickLabelGap     = 3
	xAxisLabelGap    = 50
	yAxisLabelX      = 20
)

// Render returns c as a standalone SVG document.
func Render(c *chart.Chart) (string, error) {
	if c == nil || len(c.Cells) == 0 {
		return "", fmt.Errorf("no cells to render")
	}

	data := svgData{
		Width:     num(c.Width),
		Height:    num(c.Height),
		CenterX:   num(c.Width / 2),
		Title:     html.EscapeString(c.Title),
		Subtitle:  html.EscapeString(c.Subtitle),
		TitleY:    num(titleBaseline),
		SubtitleY: num(subtitleBaseline),
	}

	for _, cell := range c.Cells {
		data.Cells = append(data.Cells, svgCell{
			X:       num(cell.X),
			Y:       num(cell.Y),
			Width:   num(cell.Width),
			Height:  num(cell.Height),
			Fill:    cell.Fill.String(),
			Month:   cell.Month,
			Year:    cell.Year,
			Temp:    strconv.FormatFloat(cell.Temperature, 'f', -1, 64),
			Tooltip: html.EscapeString(strings.Join(cell.Tooltip, "\n")),
		})
	}

	data.XAxis = horizontalAxis("x-axis", c.XAxis)
	data.XAxis.Label = svgLabel{X: num(c.Width / 2), Y: num(c.XAxis.Y1 + xAxisLabelGap), Text: c.XAxis.Label}

	data.YAxis = verticalAxis("y-axis", c.YAxis)
	// rotated by -90 degrees, so x is the negated vertical center
	data.YAxis.Label = svgLabel{
		X:    num(-(c.YAxis.Y1 + c.YAxis.Y2) / 2),
		Y:    num(yAxisLabelX),
		Text: c.YAxis.Label,
	}

	for _, s := range c.Legend.Swatches {
		data.Legend = append(data.Legend, svgRect{
			X: num(s.X), Y: num(s.Y), Width: num(s.Width), Height: num(s.Height),
			Fill: s.Fill.String(),
		})
	}
	data.LegendAxis = horizontalAxis("legend-axis", c.Legend.Axis)

	tmpl, err := template.New("svg").Parse(svgTemplateStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse SVG template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute SVG template: %w", err)
	}

	return buf.String(), nil
}

func horizontalAxis(id string, a chart.Axis) svgAxis {
	ax := svgAxis{
		ID:   id,
		Line: svgLine{X1: num(a.X1), Y1: num(a.Y1), X2: num(a.X2), Y2: num(a.Y2)},
	}
	for _, t := range a.Ticks {
		ax.Ticks = append(ax.Ticks, svgTick{
			Line:  svgLine{X1: num(t.Pos), Y1: num(a.Y1), X2: num(t.Pos), Y2: num(a.Y1 + chart.TickSize)},
			Label: svgLabel{X: num(t.Pos), Y: num(a.Y1 + chart.TickSize + tickLabelGap), Text: html.EscapeString(t.Label)},
		})
	}
	return ax
}

func verticalAxis(id string, a chart.Axis) svgAxis {
	ax := svgAxis{
		ID:       id,
		Line:     svgLine{X1: num(a.X1), Y1: num(a.Y1), X2: num(a.X2), Y2: num(a.Y2)},
		Vertical: true,
	}
	for _, t := range a.Ticks {
		ax.Ticks = append(ax.Ticks, svgTick{
			Line:  svgLine{X1: num(a.X1 - chart.TickSize), Y1: num(t.Pos), X2: num(a.X1), Y2: num(t.Pos)},
			Label: svgLabel{X: num(a.X1 - chart.TickSize - tickLabelGap), Y: num(t.Pos), Text: html.EscapeString(t.Label)},
		})
	}
	return ax
}

// num prints a coordinate with at most two decimals.
func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

//go:embed templates/heatmap.svg.tmpl
var svgTemplateStr string

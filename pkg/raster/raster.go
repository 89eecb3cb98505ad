// Package raster draws a laid out heat map into a PNG image.
package raster

import (
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/egandro/variance-heatmap/pkg/chart"
)

const (
	tickFontSize  = 10
	labelFontSize = 14
	titleFontSize = 20
	subFontSize   = 14
)

var (
	fontOnce sync.Once
	regular  *truetype.Font
	fontErr  error
)

func loadFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		regular, fontErr = truetype.Parse(goregular.TTF)
	})
	return regular, fontErr
}

func face(size float64) (font.Face, error) {
	f, err := loadFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: size}), nil
}

// Draw renders c onto a new image.
func Draw(c *chart.Chart) (image.Image, error) {
	dc, err := draw(c)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// Encode renders c and writes it as PNG to w.
func Encode(w io.Writer, c *chart.Chart) error {
	dc, err := draw(c)
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

func draw(c *chart.Chart) (*gg.Context, error) {
	if c == nil || len(c.Cells) == 0 {
		return nil, fmt.Errorf("no cells to render")
	}

	dc := gg.NewContext(int(c.Width), int(c.Height))
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	if err := drawHeading(dc, c); err != nil {
		return nil, err
	}

	for _, cell := range c.Cells {
		dc.SetColor(cell.Fill)
		dc.DrawRectangle(cell.X, cell.Y, cell.Width, cell.Height)
		dc.Fill()
	}

	for _, s := range c.Legend.Swatches {
		dc.SetColor(s.Fill)
		dc.DrawRectangle(s.X, s.Y, s.Width, s.Height)
		dc.Fill()
	}

	if err := drawHorizontalAxis(dc, c.XAxis); err != nil {
		return nil, err
	}
	if err := drawVerticalAxis(dc, c.YAxis); err != nil {
		return nil, err
	}
	if err := drawHorizontalAxis(dc, c.Legend.Axis); err != nil {
		return nil, err
	}

	if err := drawAxisLabels(dc, c); err != nil {
		return nil, err
	}
	return dc, nil
}

func drawHeading(dc *gg.Context, c *chart.Chart) error {
	dc.SetHexColor("#000000")
	if c.Title != "" {
		f, err := face(titleFontSize)
		if err != nil {
			return err
		}
		dc.SetFontFace(f)
		dc.DrawStringAnchored(c.Title, c.Width/2, 30, 0.5, 0)
	}
	if c.Subtitle != "" {
		f, err := face(subFontSize)
		if err != nil {
			return err
		}
		dc.SetFontFace(f)
		dc.DrawStringAnchored(c.Subtitle, c.Width/2, 50, 0.5, 0)
	}
	return nil
}

func drawHorizontalAxis(dc *gg.Context, a chart.Axis) error {
	f, err := face(tickFontSize)
	if err != nil {
		return err
	}
	dc.SetFontFace(f)
	dc.SetHexColor("#000000")
	dc.SetLineWidth(1)

	dc.DrawLine(a.X1, a.Y1, a.X2, a.Y2)
	dc.Stroke()
	for _, t := range a.Ticks {
		dc.DrawLine(t.Pos, a.Y1, t.Pos, a.Y1+chart.TickSize)
		dc.Stroke()
		dc.DrawStringAnchored(t.Label, t.Pos, a.Y1+chart.TickSize+2, 0.5, 1)
	}
	return nil
}

func drawVerticalAxis(dc *gg.Context, a chart.Axis) error {
	f, err := face(tickFontSize)
	if err != nil {
		return err
	}
	dc.SetFontFace(f)
	dc.SetHexColor("#000000")
	dc.SetLineWidth(1)

	dc.DrawLine(a.X1, a.Y1, a.X2, a.Y2)
	dc.Stroke()
	for _, t := range a.Ticks {
		dc.DrawLine(a.X1-chart.TickSize, t.Pos, a.X1, t.Pos)
		dc.Stroke()
		dc.DrawStringAnchored(t.Label, a.X1-chart.TickSize-3, t.Pos, 1, 0.5)
	}
	return nil
}

func drawAxisLabels(dc *gg.Context, c *chart.Chart) error {
	f, err := face(labelFontSize)
	if err != nil {
		return err
	}
	dc.SetFontFace(f)
	dc.SetHexColor("#000000")

	if c.XAxis.Label != "" {
		dc.DrawStringAnchored(c.XAxis.Label, c.Width/2, c.XAxis.Y1+50, 0.5, 0)
	}
	if c.YAxis.Label != "" {
		cy := (c.YAxis.Y1 + c.YAxis.Y2) / 2
		dc.Push()
		dc.RotateAbout(gg.Radians(-90), 20, cy)
		dc.DrawStringAnchored(c.YAxis.Label, 20, cy, 0.5, 0)
		dc.Pop()
	}
	return nil
}

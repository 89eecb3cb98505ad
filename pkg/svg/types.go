package svg

type svgLabel struct {
	X, Y string
	Text string
}

type svgLine struct {
	X1, Y1, X2, Y2 string
}

type svgCell struct {
	X, Y, Width, Height string
	Fill                string
	Month, Year         int
	Temp                string
	Tooltip             string
}

type svgRect struct {
	X, Y, Width, Height string
	Fill                string
}

type svgAxis struct {
	ID    string
	Line  svgLine
	Ticks []svgTick
	Label svgLabel

	// Vertical axes carry their label rotated.
	Vertical bool
}

type svgTick struct {
	Line  svgLine
	Label svgLabel
}

type svgData struct {
	Width, Height, CenterX string
	Title, Subtitle        string
	TitleY, SubtitleY      string

	Cells      []svgCell
	XAxis      svgAxis
	YAxis      svgAxis
	Legend     []svgRect
	LegendAxis svgAxis
}

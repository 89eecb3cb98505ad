package colormap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrUnknownColor = errors.New("unknown color")

// cssColors is a subset of the CSS named colors.
var cssColors = map[string]string{
	"black":          "#000000",
	"blue":           "#0000ff",
	"brown":          "#a52a2a",
	"cornflowerblue": "#6495ed",
	"crimson":        "#dc143c",
	"cyan":           "#00ffff",
	"darkblue":       "#00008b",
	"darkorange":     "#ff8c00",
	"darkred":        "#8b0000",
	"deepskyblue":    "#00bfff",
	"gold":           "#ffd700",
	"gray":           "#808080",
	"green":          "#008000",
	"grey":           "#808080",
	"lightblue":      "#add8e6",
	"lightgray":      "#d3d3d3",
	"lightgrey":      "#d3d3d3",
	"lightsalmon":    "#ffa07a",
	"lightskyblue":   "#87cefa",
	"lightyellow":    "#ffffe0",
	"magenta":        "#ff00ff",
	"navy":           "#000080",
	"orange":         "#ffa500",
	"orangered":      "#ff4500",
	"purple":         "#800080",
	"red":            "#ff0000",
	"royalblue":      "#4169e1",
	"skyblue":        "#87ceeb",
	"steelblue":      "#4682b4",
	"teal":           "#008080",
	"tomato":         "#ff6347",
	"white":          "#ffffff",
	"whitesmoke":     "#f5f5f5",
	"yellow":         "#ffff00",
	"yellowgreen":    "#9acd32",
}

// ParseColor accepts a CSS color name or a "#rrggbb" / "#rgb" hex string.
func ParseColor(s string) (RGB, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if hex, ok := cssColors[name]; ok {
		name = hex
	}
	if !strings.HasPrefix(name, "#") {
		return RGB{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	c, err := colorful.Hex(name)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q: %v", ErrUnknownColor, s, err)
	}
	return fromColorful(c), nil
}

func mustParseColor(s string) RGB {
	c, err := ParseColor(s)
	if err != nil {
		panic("mustParseColor: " + err.Error())
	}
	return c
}

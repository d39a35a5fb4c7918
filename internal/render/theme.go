package render

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Default display constants.
const (
	DefaultForeground = "#F0F0EA"
	DefaultBackground = "#272822"
	DefaultFontFamily = "Consolas"
	DefaultFontSize   = 15.0

	// LeftMargin is the pixel gap before the first glyph of a line.
	LeftMargin = 6.0

	// CursorWidth is the stroke width of the caret line.
	CursorWidth = 1.0
)

// Theme holds the view's display parameters.
type Theme struct {
	Foreground colorful.Color
	Background colorful.Color
	FontFamily string
	FontSize   float64
}

// DefaultTheme returns the stock dark theme.
func DefaultTheme() Theme {
	fg, _ := colorful.Hex(DefaultForeground)
	bg, _ := colorful.Hex(DefaultBackground)
	return Theme{
		Foreground: fg,
		Background: bg,
		FontFamily: DefaultFontFamily,
		FontSize:   DefaultFontSize,
	}
}

// ParseColor parses a "#rrggbb" hex color.
func ParseColor(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("render: bad color %q: %w", hex, err)
	}
	return c, nil
}

// Font returns the theme's font selector.
func (t Theme) Font() Font {
	return Font{Family: t.FontFamily, Size: t.FontSize}
}

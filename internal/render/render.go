// Package render defines the paint interfaces the view consumes from
// the platform renderer, plus the theme and the lazily built resource
// bundle. Implementations live elsewhere; the view only sees these
// types.
package render

import "github.com/lucasb-eyer/go-colorful"

// Point is a position in pixels.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Font selects a text format.
type Font struct {
	Family string
	Size   float64
}

// TextLayout is a laid-out line of text.
type TextLayout interface {
	// HitTestPosition returns the pixel position and height of the
	// glyph at the byte offset. ok is false when the offset does not
	// hit a position in the layout.
	HitTestPosition(offset int) (pos Point, height float64, ok bool)
}

// LayoutFactory creates text layouts.
type LayoutFactory interface {
	CreateTextLayout(text string, font Font, width, height float64) TextLayout
}

// Target is the surface the view paints onto.
type Target interface {
	FillRect(r Rect, c colorful.Color)
	DrawTextLayout(origin Point, layout TextLayout, c colorful.Color)
	DrawLine(from, to Point, c colorful.Color, width float64)
}

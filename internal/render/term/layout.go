// Package term implements the paint interfaces on a tcell terminal
// screen. Pixel geometry is synthesized over the cell grid: one
// column is CellWidth pixels wide and one row is one line advance
// tall, so the view's pixel arithmetic carries over unchanged.
package term

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/viewkit/internal/render"
	"github.com/dshills/viewkit/internal/viewport"
)

// CellWidth is the synthesized pixel width of one terminal column.
const CellWidth = 8.0

// cluster is one grapheme cluster of a laid-out line.
type cluster struct {
	str    string
	offset int // byte offset in the source text
	col    int // column position
	width  int // columns occupied
}

// MonoLayout is a monospaced text layout measured in grapheme
// clusters, so wide characters and combining marks hit-test
// correctly.
type MonoLayout struct {
	text     string
	clusters []cluster
	cols     int
}

// NewMonoLayout lays out one line of text.
func NewMonoLayout(text string) *MonoLayout {
	l := &MonoLayout{text: text}

	state := -1
	rest := text
	offset := 0
	for len(rest) > 0 {
		var c string
		var width int
		c, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)
		l.clusters = append(l.clusters, cluster{
			str:    c,
			offset: offset,
			col:    l.cols,
			width:  width,
		})
		offset += len(c)
		l.cols += width
	}
	return l
}

// Cols returns the total column count of the line.
func (l *MonoLayout) Cols() int {
	return l.cols
}

// OffsetForCol returns the byte offset of the cluster occupying a
// column. Columns past the end of the line map to the text length.
func (l *MonoLayout) OffsetForCol(col int) int {
	if col < 0 {
		return 0
	}
	for _, c := range l.clusters {
		if col < c.col+c.width {
			return c.offset
		}
	}
	return len(l.text)
}

// HitTestPosition returns the synthesized pixel position of the glyph
// at the byte offset. An offset equal to the text length hits the end
// of the line; offsets inside a cluster resolve to the cluster start.
func (l *MonoLayout) HitTestPosition(offset int) (render.Point, float64, bool) {
	if offset < 0 || offset > len(l.text) {
		return render.Point{}, 0, false
	}
	if offset == len(l.text) {
		return render.Point{X: float64(l.cols) * CellWidth}, viewport.LineSpace, true
	}
	for _, c := range l.clusters {
		if offset < c.offset+len(c.str) {
			return render.Point{X: float64(c.col) * CellWidth}, viewport.LineSpace, true
		}
	}
	return render.Point{}, 0, false
}

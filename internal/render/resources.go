package render

import "github.com/lucasb-eyer/go-colorful"

// layoutBounds gives layouts effectively unbounded wrap space; the
// view clips by painting only visible lines.
const layoutBounds = 1e6

// Resources is the scoped bundle of paint state the view retains
// across paints: brushes and the text format. It is rebuilt from the
// theme after a render-target loss. Ownership is exclusive to the
// view.
type Resources struct {
	FG   colorful.Color
	BG   colorful.Color
	Font Font
}

// NewResources builds the bundle from a theme.
func NewResources(theme Theme) *Resources {
	return &Resources{
		FG:   theme.Foreground,
		BG:   theme.Background,
		Font: theme.Font(),
	}
}

// CreateTextLayout lays out one line of text in the bundle's font.
func (r *Resources) CreateTextLayout(f LayoutFactory, text string) TextLayout {
	return f.CreateTextLayout(text, r.Font, layoutBounds, layoutBounds)
}

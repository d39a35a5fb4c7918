// Package view binds one engine document to a windowed, scrollable,
// cursor-aware display: a line cache fed by engine patches, a
// viewport manager owning scroll state, and a paint routine.
//
// A view is single-threaded cooperative: updates, input, and paint
// all run on the UI event loop goroutine. The engine handle and the
// platform invalidation hook are fire-and-forget.
package view

import (
	"github.com/charmbracelet/log"

	"github.com/dshills/viewkit/internal/linecache"
	"github.com/dshills/viewkit/internal/render"
	"github.com/dshills/viewkit/internal/viewport"
)

// View is the state and behavior of one editor view.
type View struct {
	id       string
	filename string

	cache *linecache.Cache
	vp    *viewport.Manager

	theme     render.Theme
	resources *render.Resources

	log *log.Logger
}

// Option configures a View.
type Option func(*View)

// WithTheme overrides the default theme.
func WithTheme(theme render.Theme) Option {
	return func(v *View) {
		v.theme = theme
	}
}

// WithLogger sets the view logger.
func WithLogger(logger *log.Logger) Option {
	return func(v *View) {
		v.log = logger
	}
}

// New creates an empty view with no identity and zero size.
func New(opts ...Option) *View {
	v := &View{
		cache: linecache.New(),
		vp:    viewport.New(),
		theme: render.DefaultTheme(),
		log:   log.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SetViewID records the engine-assigned view identity.
func (v *View) SetViewID(id string) {
	v.id = id
}

// ViewID returns the engine-assigned view identity.
func (v *View) ViewID() string {
	return v.id
}

// SetFilename records the display filename.
func (v *View) SetFilename(name string) {
	v.filename = name
}

// Filename returns the display filename, empty for a scratch view.
func (v *View) Filename() string {
	return v.filename
}

// Cache returns the view's line cache.
func (v *View) Cache() *linecache.Cache {
	return v.cache
}

// Viewport returns the view's viewport manager.
func (v *View) Viewport() *viewport.Manager {
	return v.vp
}

// Resize records a new pixel size and re-clamps scroll.
func (v *View) Resize(w, h float64) {
	v.vp.SetSize(w, h)
}

// ApplyUpdate applies an engine update patch. A malformed patch is
// logged and dropped; the cache stays unchanged and no command is
// issued. On success the viewport's document height follows the
// cache and the scroll offset is re-clamped.
func (v *View) ApplyUpdate(raw []byte) error {
	if err := v.cache.ApplyJSON(raw); err != nil {
		v.log.Error("dropping malformed update", "view_id", v.id, "err", err)
		return err
	}
	v.vp.SetDocHeight(v.cache.Height())
	return nil
}

// ScrollTo reveals a document position pushed by the engine. The
// column is ignored: the view scrolls vertically only.
func (v *View) ScrollTo(line, _ int) {
	v.vp.ScrollToLine(line)
}

// ClearLineCache drops all cached lines, e.g. when the engine
// restarts the view.
func (v *View) ClearLineCache() {
	v.cache.Reset()
	v.vp.SetDocHeight(0)
}

// SetTheme swaps the theme and drops resources so the next paint
// rebuilds them.
func (v *View) SetTheme(theme render.Theme) {
	v.theme = theme
	v.resources = nil
}

// RebuildResources drops the paint resource bundle. The next paint
// recreates it; called on render-target loss.
func (v *View) RebuildResources() {
	v.resources = nil
}

// Render paints the visible lines onto the target. Resources are
// acquired lazily on first paint and retained across paints.
func (v *View) Render(target render.Target, factory render.LayoutFactory) {
	if v.resources == nil {
		v.resources = render.NewResources(v.theme)
	}
	res := v.resources

	w, h := v.vp.Size()
	target.FillRect(render.Rect{Left: 0, Top: 0, Right: w, Bottom: h}, res.BG)

	first := v.vp.YToLine(0)
	last := v.vp.YToLine(h) + 1
	if height := v.cache.Height(); last > height {
		last = height
	}

	x0 := render.LeftMargin
	y := v.vp.ContentY(first) - v.vp.Scroll()
	for n := first; n < last; n++ {
		if line := v.cache.GetLine(n); line != nil {
			layout := res.CreateTextLayout(factory, line.Text)
			target.DrawTextLayout(render.Point{X: x0, Y: y}, layout, res.FG)

			for _, offset := range line.Cursors {
				pos, _, ok := layout.HitTestPosition(offset)
				if !ok {
					continue
				}
				x := x0 + pos.X
				target.DrawLine(
					render.Point{X: x, Y: y},
					render.Point{X: x, Y: y + viewport.LineSpace},
					res.FG, render.CursorWidth)
			}
		}
		y += viewport.LineSpace
	}
}

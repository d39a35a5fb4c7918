// Package viewport maps screen pixels to document lines, constrains
// scrolling, and reports visible-range changes to the engine.
package viewport

import (
	"math"
	"sync"
)

// Pixel geometry shared by the viewport and the renderer.
const (
	// TopPad is the padding in pixels above line 0.
	TopPad = 6.0

	// LineSpace is the per-line vertical advance in pixels.
	LineSpace = 17.0

	// BottomSlop keeps a revealed line this many pixels clear of the
	// bottom edge.
	BottomSlop = 20.0
)

// Range is a half-open line range [First, Last). Last is not clamped
// to the document height; it is the range the view wants streamed,
// and the engine treats the excess as a prefetch hint.
type Range struct {
	First int
	Last  int
}

// Notifier receives visible-range changes addressed to the engine.
type Notifier interface {
	// ScrollTo reports that the view now wants lines [first, last).
	ScrollTo(first, last int)
}

// Manager owns the scroll state of one view.
type Manager struct {
	mu sync.RWMutex

	// Size in pixels
	width  float64
	height float64

	// Scroll offset in pixels, always within [0, maxScroll]
	scroll float64

	// Document height in lines, as claimed by the engine
	docHeight int

	// Last range reported to the engine
	notified Range
}

// New creates a manager with zero size and scroll.
func New() *Manager {
	return &Manager{}
}

// SetSize records a new pixel size and re-clamps the scroll offset.
func (m *Manager) SetSize(w, h float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.width = w
	m.height = h
	m.constrainScroll()
}

// Size returns the current pixel size.
func (m *Manager) Size() (w, h float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.width, m.height
}

// SetDocHeight records the engine-reported line count and re-clamps.
func (m *Manager) SetDocHeight(lines int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if lines < 0 {
		lines = 0
	}
	m.docHeight = lines
	m.constrainScroll()
}

// DocHeight returns the engine-reported line count.
func (m *Manager) DocHeight() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.docHeight
}

// Scroll returns the current scroll offset in pixels.
func (m *Manager) Scroll() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scroll
}

// SetScroll sets the scroll offset, clamped to the legal range.
func (m *Manager) SetScroll(y float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scroll = y
	m.constrainScroll()
}

// NudgeScroll adds delta to the scroll offset, clamped.
func (m *Manager) NudgeScroll(delta float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scroll += delta
	m.constrainScroll()
}

// ScrollToLine scrolls minimally so that the line is visible, keeping
// it BottomSlop pixels clear of the bottom edge. Lines already in
// view leave the offset unchanged.
func (m *Manager) ScrollToLine(line int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	y := contentY(line)
	if y < m.scroll {
		m.scroll = y
	} else if y > m.scroll+m.height-BottomSlop {
		m.scroll = y - (m.height - BottomSlop)
	}
	m.constrainScroll()
}

// ContentY returns the content-space y coordinate of a line.
func (m *Manager) ContentY(line int) float64 {
	return contentY(line)
}

// YToLine converts a screen-space y coordinate to a document line,
// clamped to [0, docHeight].
func (m *Manager) YToLine(yScreen float64) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.yToLine(yScreen)
}

func (m *Manager) yToLine(yScreen float64) int {
	line := math.Floor((yScreen + m.scroll - TopPad) / LineSpace)
	if line < 0 {
		return 0
	}
	if int(line) > m.docHeight {
		return m.docHeight
	}
	return int(line)
}

// VisibleRange returns the half-open line range the view wants
// rendered and streamed. Last is deliberately unclamped.
func (m *Manager) VisibleRange() Range {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.visibleRange()
}

func (m *Manager) visibleRange() Range {
	first := m.yToLine(0)
	last := first + int(math.Floor(m.height/LineSpace)) + 1
	return Range{First: first, Last: last}
}

// MaybeNotify reports the current visible range to the notifier if it
// differs from the last reported one. Consecutive calls without an
// intervening state change emit at most one notification.
func (m *Manager) MaybeNotify(n Notifier) bool {
	m.mu.Lock()
	vr := m.visibleRange()
	if vr == m.notified {
		m.mu.Unlock()
		return false
	}
	m.notified = vr
	m.mu.Unlock()

	n.ScrollTo(vr.First, vr.Last)
	return true
}

// MaxScroll returns the largest legal scroll offset.
func (m *Manager) MaxScroll() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.maxScroll()
}

func (m *Manager) maxScroll() float64 {
	lines := m.docHeight - 1
	if lines < 0 {
		lines = 0
	}
	return TopPad + LineSpace*float64(lines)
}

// constrainScroll clamps the offset to [0, maxScroll]. Callers hold
// the write lock.
func (m *Manager) constrainScroll() {
	if m.scroll < 0 {
		m.scroll = 0
	} else if max := m.maxScroll(); m.scroll > max {
		m.scroll = max
	}
}

func contentY(line int) float64 {
	return TopPad + float64(line)*LineSpace
}

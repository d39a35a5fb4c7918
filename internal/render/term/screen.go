package term

import (
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/viewkit/internal/render"
	"github.com/dshills/viewkit/internal/viewport"
)

// Screen wraps a tcell screen as a render target and layout factory.
// Pixel coordinates from the view are quantized onto the cell grid:
// CellWidth pixels per column, one line advance per row.
type Screen struct {
	mu     sync.Mutex
	screen tcell.Screen
	bg     tcell.Color
}

// NewScreen allocates a screen for the current terminal. Init must be
// called before use.
func NewScreen() (*Screen, error) {
	ts, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Screen{screen: ts, bg: tcell.ColorBlack}, nil
}

// Init takes over the terminal and enables mouse reporting.
func (s *Screen) Init() error {
	if err := s.screen.Init(); err != nil {
		return err
	}
	s.screen.EnableMouse()
	return nil
}

// Fini restores the terminal.
func (s *Screen) Fini() {
	s.screen.Fini()
}

// Show flushes pending draws to the terminal.
func (s *Screen) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen.Show()
}

// PollEvent blocks for the next terminal event.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Interrupt wakes a blocked PollEvent with a nil-ish interrupt event.
func (s *Screen) Interrupt() {
	s.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// SizePx returns the terminal size in synthesized pixels.
func (s *Screen) SizePx() (float64, float64) {
	cols, rows := s.screen.Size()
	return SizeToPx(cols, rows)
}

// SizeToPx converts a cell-grid size to synthesized pixels.
func SizeToPx(cols, rows int) (float64, float64) {
	return float64(cols) * CellWidth, float64(rows) * viewport.LineSpace
}

// rowOf maps a content pixel y to a screen row. The top pad shifts
// line pixel origins below the row boundary, so rounding after
// removing it lands each line on its own row.
func rowOf(y float64) int {
	return int(math.Round((y - viewport.TopPad) / viewport.LineSpace))
}

func colOf(x float64) int {
	return int(math.Round(x / CellWidth))
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// CreateTextLayout implements render.LayoutFactory. The font and
// bounds are ignored: terminal cells have one size.
func (s *Screen) CreateTextLayout(text string, _ render.Font, _, _ float64) render.TextLayout {
	return NewMonoLayout(text)
}

// FillRect fills the covered cells with the color. The screen
// remembers the color as the background for subsequent text.
func (s *Screen) FillRect(r render.Rect, c colorful.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bg = toTcell(c)
	style := tcell.StyleDefault.Background(s.bg)

	cols, rows := s.screen.Size()
	x0 := max(0, int(math.Floor(r.Left/CellWidth)))
	x1 := min(cols, int(math.Ceil(r.Right/CellWidth)))
	y0 := max(0, int(math.Floor(r.Top/viewport.LineSpace)))
	y1 := min(rows, int(math.Ceil(r.Bottom/viewport.LineSpace)))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// DrawTextLayout paints a laid-out line at the origin. Layouts not
// produced by this screen are ignored.
func (s *Screen) DrawTextLayout(origin render.Point, layout render.TextLayout, c colorful.Color) {
	ml, ok := layout.(*MonoLayout)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row := rowOf(origin.Y)
	_, rows := s.screen.Size()
	if row < 0 || row >= rows {
		return
	}

	style := tcell.StyleDefault.Foreground(toTcell(c)).Background(s.bg)
	col0 := colOf(origin.X)
	for _, cl := range ml.clusters {
		runes := []rune(cl.str)
		if len(runes) == 0 {
			continue
		}
		s.screen.SetContent(col0+cl.col, row, runes[0], runes[1:], style)
	}
}

// DrawLine paints a caret. Only vertical one-cell strokes are
// meaningful on a cell grid; the covered cell is shown reversed.
func (s *Screen) DrawLine(from, _ render.Point, _ colorful.Color, _ float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, row := colOf(from.X), rowOf(from.Y)
	cols, rows := s.screen.Size()
	if col < 0 || col >= cols || row < 0 || row >= rows {
		return
	}
	mainc, combc, style, _ := s.screen.GetContent(col, row)
	s.screen.SetContent(col, row, mainc, combc, style.Reverse(true))
}

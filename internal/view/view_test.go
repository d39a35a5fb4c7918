package view

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/viewkit/internal/render"
	"github.com/dshills/viewkit/internal/viewport"
)

// stubLayout positions each byte at a fixed 8px advance.
type stubLayout struct {
	text string
}

func (l stubLayout) HitTestPosition(offset int) (render.Point, float64, bool) {
	if offset < 0 || offset > len(l.text) {
		return render.Point{}, 0, false
	}
	return render.Point{X: float64(offset) * 8}, viewport.LineSpace, true
}

type stubFactory struct{}

func (stubFactory) CreateTextLayout(text string, _ render.Font, _, _ float64) render.TextLayout {
	return stubLayout{text: text}
}

type drawnText struct {
	origin render.Point
	text   string
}

type drawnLine struct {
	from, to render.Point
}

// paintRecorder records draw calls in order.
type paintRecorder struct {
	fills []render.Rect
	bg    []colorful.Color
	texts []drawnText
	lines []drawnLine
}

func (p *paintRecorder) FillRect(r render.Rect, c colorful.Color) {
	p.fills = append(p.fills, r)
	p.bg = append(p.bg, c)
}

func (p *paintRecorder) DrawTextLayout(origin render.Point, layout render.TextLayout, _ colorful.Color) {
	p.texts = append(p.texts, drawnText{origin: origin, text: layout.(stubLayout).text})
}

func (p *paintRecorder) DrawLine(from, to render.Point, _ colorful.Color, _ float64) {
	p.lines = append(p.lines, drawnLine{from: from, to: to})
}

func applyLines(t *testing.T, v *View, raw string) {
	t.Helper()
	if err := v.ApplyUpdate([]byte(raw)); err != nil {
		t.Fatalf("ApplyUpdate failed: %v", err)
	}
}

func TestRenderBackgroundAndLines(t *testing.T) {
	v := New()
	v.Resize(800, 600)
	applyLines(t, v, `{"ops":[{"op":"ins","n":2,"lines":[{"text":"hello"},{"text":"world"}]}]}`)

	rec := &paintRecorder{}
	v.Render(rec, stubFactory{})

	if len(rec.fills) != 1 {
		t.Fatalf("fills = %d, want 1", len(rec.fills))
	}
	if rec.fills[0] != (render.Rect{Right: 800, Bottom: 600}) {
		t.Errorf("background rect = %v", rec.fills[0])
	}
	if rec.bg[0].Hex() != "#272822" {
		t.Errorf("background color = %s", rec.bg[0].Hex())
	}

	if len(rec.texts) != 2 {
		t.Fatalf("drew %d lines, want 2", len(rec.texts))
	}
	if rec.texts[0].text != "hello" || rec.texts[1].text != "world" {
		t.Errorf("texts = %v", rec.texts)
	}
	// Line 0 paints at the top pad, line 1 one advance below, both at
	// the left margin.
	if rec.texts[0].origin != (render.Point{X: 6, Y: 6}) {
		t.Errorf("line 0 origin = %v", rec.texts[0].origin)
	}
	if rec.texts[1].origin != (render.Point{X: 6, Y: 6 + viewport.LineSpace}) {
		t.Errorf("line 1 origin = %v", rec.texts[1].origin)
	}
}

func TestRenderDrawsCursors(t *testing.T) {
	v := New()
	v.Resize(800, 600)
	applyLines(t, v, `{"ops":[{"op":"ins","n":1,"lines":[{"text":"hello","cursors":[2]}]}]}`)

	rec := &paintRecorder{}
	v.Render(rec, stubFactory{})

	if len(rec.lines) != 1 {
		t.Fatalf("cursor lines = %d, want 1", len(rec.lines))
	}
	got := rec.lines[0]
	wantX := 6 + 2*8.0
	if got.from.X != wantX || got.to.X != wantX {
		t.Errorf("cursor x = %v, want %v", got.from.X, wantX)
	}
	if got.to.Y-got.from.Y != viewport.LineSpace {
		t.Errorf("cursor height = %v, want %v", got.to.Y-got.from.Y, viewport.LineSpace)
	}
}

func TestRenderSkipsInvalidSlots(t *testing.T) {
	v := New()
	v.Resize(800, 600)
	applyLines(t, v, `{"ops":[
		{"op":"invalidate","n":1},
		{"op":"ins","n":1,"lines":[{"text":"visible"}]}
	]}`)

	rec := &paintRecorder{}
	v.Render(rec, stubFactory{})

	if len(rec.texts) != 1 || rec.texts[0].text != "visible" {
		t.Fatalf("texts = %v", rec.texts)
	}
	// The present line is slot 1, so it paints one advance down.
	if rec.texts[0].origin.Y != 6+viewport.LineSpace {
		t.Errorf("origin = %v", rec.texts[0].origin)
	}
}

func TestRenderScrolled(t *testing.T) {
	v := New()
	v.Resize(800, 100)
	applyLines(t, v, `{"ops":[{"op":"ins","n":50,"lines":[
		{"text":"l0"},{"text":"l1"},{"text":"l2"},{"text":"l3"},{"text":"l4"},
		{"text":"l5"},{"text":"l6"},{"text":"l7"},{"text":"l8"},{"text":"l9"},
		{"text":"l10"},{"text":"l11"},{"text":"l12"},{"text":"l13"},{"text":"l14"},
		{"text":"l15"},{"text":"l16"},{"text":"l17"},{"text":"l18"},{"text":"l19"},
		{"text":"l20"},{"text":"l21"},{"text":"l22"},{"text":"l23"},{"text":"l24"},
		{"text":"l25"},{"text":"l26"},{"text":"l27"},{"text":"l28"},{"text":"l29"},
		{"text":"l30"},{"text":"l31"},{"text":"l32"},{"text":"l33"},{"text":"l34"},
		{"text":"l35"},{"text":"l36"},{"text":"l37"},{"text":"l38"},{"text":"l39"},
		{"text":"l40"},{"text":"l41"},{"text":"l42"},{"text":"l43"},{"text":"l44"},
		{"text":"l45"},{"text":"l46"},{"text":"l47"},{"text":"l48"},{"text":"l49"}
	]}]}`)

	v.Viewport().SetScroll(viewport.TopPad + viewport.LineSpace*10)

	rec := &paintRecorder{}
	v.Render(rec, stubFactory{})

	if len(rec.texts) == 0 {
		t.Fatal("nothing drawn")
	}
	if rec.texts[0].text != "l10" {
		t.Errorf("first drawn line = %q, want l10", rec.texts[0].text)
	}
	// The first visible line paints at y = 0 for this exact scroll.
	if rec.texts[0].origin.Y != 0 {
		t.Errorf("first line y = %v, want 0", rec.texts[0].origin.Y)
	}
}

func TestApplyUpdateSyncsDocHeightAndClamp(t *testing.T) {
	v := New()
	v.Resize(800, 600)
	applyLines(t, v, `{"ops":[{"op":"ins","n":2,"lines":[{"text":"a"},{"text":"b"}]}]}`)

	if got := v.Viewport().DocHeight(); got != 2 {
		t.Errorf("doc height = %d, want 2", got)
	}

	v.Viewport().SetScroll(1e9)
	if got := v.Viewport().Scroll(); got != 23 {
		t.Errorf("scroll = %v, want 23", got)
	}
}

func TestApplyUpdateMalformedLeavesState(t *testing.T) {
	v := New()
	v.Resize(800, 600)
	applyLines(t, v, `{"ops":[{"op":"ins","n":1,"lines":[{"text":"keep"}]}]}`)

	if err := v.ApplyUpdate([]byte(`{"ops":[{"op":"copy","n":42}]}`)); err == nil {
		t.Fatal("expected error")
	}
	if v.Cache().Height() != 1 {
		t.Errorf("height = %d, want 1", v.Cache().Height())
	}
	if got := v.Cache().GetLine(0); got == nil || got.Text != "keep" {
		t.Errorf("line 0 = %v", got)
	}
}

func TestClearLineCache(t *testing.T) {
	v := New()
	v.Resize(800, 600)
	applyLines(t, v, `{"ops":[{"op":"ins","n":1,"lines":[{"text":"x"}]}]}`)

	v.ClearLineCache()
	if v.Cache().Height() != 0 || v.Viewport().DocHeight() != 0 {
		t.Error("cache not cleared")
	}
}

func TestSetThemeRebuildsResources(t *testing.T) {
	v := New()
	v.Resize(100, 100)

	rec := &paintRecorder{}
	v.Render(rec, stubFactory{})

	light := render.DefaultTheme()
	white, _ := render.ParseColor("#ffffff")
	light.Background = white
	v.SetTheme(light)

	rec2 := &paintRecorder{}
	v.Render(rec2, stubFactory{})
	if rec2.bg[0].Hex() != "#ffffff" {
		t.Errorf("background after theme swap = %s", rec2.bg[0].Hex())
	}
}

func TestScrollToDelegates(t *testing.T) {
	v := New()
	v.Resize(800, 600)
	v.Viewport().SetDocHeight(1000)
	v.Viewport().SetScroll(viewport.LineSpace * 100)

	v.ScrollTo(10, 4)
	if got := v.Viewport().Scroll(); got != v.Viewport().ContentY(10) {
		t.Errorf("scroll = %v, want %v", got, v.Viewport().ContentY(10))
	}
}

func TestIdentity(t *testing.T) {
	v := New()
	v.SetViewID("view-7")
	v.SetFilename("notes.txt")

	if v.ViewID() != "view-7" || v.Filename() != "notes.txt" {
		t.Errorf("identity = %q %q", v.ViewID(), v.Filename())
	}
}

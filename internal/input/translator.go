// Package input translates keyboard, mouse, and menu events into
// abstract edit commands for the text engine, or into local scroll
// mutations when the event only moves the view.
package input

import (
	"github.com/dshills/viewkit/internal/input/key"
	"github.com/dshills/viewkit/internal/viewport"
)

// DefaultScrollScaling converts wheel delta units to pixels.
// Platforms that expose a lines-per-notch hint should override it.
const DefaultScrollScaling = 0.5

// Sink is the narrow capability the translator needs from its host:
// sending commands to the engine and requesting a repaint. It is a
// back-reference passed in at construction, never owned.
type Sink interface {
	// SendEdit dispatches an edit command addressed to the view.
	// A nil params value encodes as an empty argument list.
	SendEdit(method string, params any)

	// Invalidate requests a repaint of the view.
	Invalidate()
}

// InsertParams carries the characters of an insert command.
type InsertParams struct {
	Chars string `json:"chars"`
}

// Translator maps input events to engine commands for one view.
type Translator struct {
	sink          Sink
	vp            *viewport.Manager
	scrollScaling float64
}

// New creates a translator bound to a sink and a viewport manager.
func New(sink Sink, vp *viewport.Manager) *Translator {
	return &Translator{
		sink:          sink,
		vp:            vp,
		scrollScaling: DefaultScrollScaling,
	}
}

// SetScrollScaling overrides the wheel delta-to-pixel factor.
// Non-positive values are ignored.
func (t *Translator) SetScrollScaling(scale float64) {
	if scale > 0 {
		t.scrollScaling = scale
	}
}

// Char handles a Unicode scalar from the platform's character path.
// Control characters below U+0020 are dropped; they arrive again as
// key codes. Returns true if a command was sent.
func (t *Translator) Char(r rune) bool {
	if r < 0x20 {
		return false
	}
	t.sink.SendEdit("insert", InsertParams{Chars: string(r)})
	return true
}

// KeyDown handles a key-code event. It returns true if the event was
// consumed, either by emitting an engine command or by mutating local
// scroll state; false lets the platform route the event elsewhere.
func (t *Translator) KeyDown(ev key.Event) bool {
	mods := ev.Modifiers

	switch ev.Key {
	case key.KeyEnter:
		t.action("insert_newline")

	case key.KeyTab:
		t.action("insert_tab")

	case key.KeyUp:
		switch {
		case mods == key.ModCtrl:
			t.scrollBy(-viewport.LineSpace)
		case mods == key.ModCtrl.With(key.ModAlt):
			t.action("add_selection_above")
		default:
			t.action(s(mods, "move_up", "move_up_and_modify_selection"))
		}

	case key.KeyDown:
		switch {
		case mods == key.ModCtrl:
			t.scrollBy(viewport.LineSpace)
		case mods == key.ModCtrl.With(key.ModAlt):
			t.action("add_selection_below")
		default:
			t.action(s(mods, "move_down", "move_down_and_modify_selection"))
		}

	case key.KeyLeft:
		if mods.Has(key.ModAlt | key.ModCtrl) {
			t.action(s(mods, "move_word_left", "move_word_left_and_modify_selection"))
		} else {
			t.action(s(mods, "move_left", "move_left_and_modify_selection"))
		}

	case key.KeyRight:
		if mods.Has(key.ModAlt | key.ModCtrl) {
			t.action(s(mods, "move_word_right", "move_word_right_and_modify_selection"))
		} else {
			t.action(s(mods, "move_right", "move_right_and_modify_selection"))
		}

	case key.KeyPageUp:
		t.action(s(mods, "scroll_page_up", "page_up_and_modify_selection"))

	case key.KeyPageDown:
		t.action(s(mods, "scroll_page_down", "page_down_and_modify_selection"))

	case key.KeyHome:
		if mods.HasCtrl() {
			t.action(s(mods, "move_to_beginning_of_document",
				"move_to_beginning_of_document_and_modify_selection"))
		} else {
			t.action(s(mods, "move_to_left_end_of_line",
				"move_to_left_end_of_line_and_modify_selection"))
		}

	case key.KeyEnd:
		if mods.HasCtrl() {
			t.action(s(mods, "move_to_end_of_document",
				"move_to_end_of_document_and_modify_selection"))
		} else {
			t.action(s(mods, "move_to_right_end_of_line",
				"move_to_right_end_of_line_and_modify_selection"))
		}

	case key.KeyEscape:
		t.action("cancel_operation")

	case key.KeyBackspace:
		if mods.HasCtrl() {
			t.action(s(mods, "delete_word_backward", "delete_to_beginning_of_line"))
		} else {
			t.action("delete_backward")
		}

	case key.KeyDelete:
		if mods.HasCtrl() {
			t.action(s(mods, "delete_word_forward", "delete_to_end_of_paragraph"))
		} else {
			t.action("delete_forward")
		}

	case key.KeyRune:
		// Bracket keys carry indent commands under bare Ctrl.
		switch {
		case ev.Rune == '[' && mods == key.ModCtrl:
			t.action("outdent")
		case ev.Rune == ']' && mods == key.ModCtrl:
			t.action("indent")
		default:
			return false
		}

	default:
		return false
	}
	return true
}

// Wheel handles a mouse wheel event. Positive delta scrolls toward
// the top of the document.
func (t *Translator) Wheel(delta float64, _ key.Modifier) {
	t.scrollBy(-delta * t.scrollScaling)
}

// SyncViewport reports the current visible range to the engine if it
// changed since the last report, e.g. after a resize.
func (t *Translator) SyncViewport() {
	t.vp.MaybeNotify(scrollNotifier{t.sink})
}

// scrollBy mutates local scroll state: nudge, clamp, notify the
// engine of the new viewport, request repaint.
func (t *Translator) scrollBy(deltaPx float64) {
	t.vp.NudgeScroll(deltaPx)
	t.vp.MaybeNotify(scrollNotifier{t.sink})
	t.sink.Invalidate()
}

// action sends a simple command with no parameters.
func (t *Translator) action(method string) {
	t.sink.SendEdit(method, nil)
}

// scrollNotifier adapts the sink to the viewport's Notifier.
type scrollNotifier struct {
	sink Sink
}

func (n scrollNotifier) ScrollTo(first, last int) {
	n.sink.SendEdit("scroll", []int{first, last})
}

// s picks between the normal and the selection-modifying variant of
// an action based on the Shift modifier.
func s(mods key.Modifier, normal, shifted string) string {
	if mods.HasShift() {
		return shifted
	}
	return normal
}

package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/viewkit/internal/input/key"
	"github.com/dshills/viewkit/internal/viewport"
)

// WheelNotch is the synthesized pixel delta of one wheel notch. Two
// line advances, so the default scroll scaling of 0.5 moves exactly
// one line per notch.
const WheelNotch = 2 * viewport.LineSpace

// ConvertModifiers maps a tcell modifier mask to a key modifier mask.
func ConvertModifiers(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}

// ConvertKey maps a tcell key event to a key event. Control-letter
// chords arrive from the terminal as C0 codes and are unfolded back
// to Ctrl plus the lowercase letter. Ctrl+[ is indistinguishable from
// Escape on a terminal and converts as Escape. Returns false for keys
// with no mapping.
func ConvertKey(ev *tcell.EventKey) (key.Event, bool) {
	mods := ConvertModifiers(ev.Modifiers())

	switch ev.Key() {
	case tcell.KeyRune:
		return key.NewRuneEvent(ev.Rune(), mods), true
	case tcell.KeyUp:
		return key.NewSpecialEvent(key.KeyUp, mods), true
	case tcell.KeyDown:
		return key.NewSpecialEvent(key.KeyDown, mods), true
	case tcell.KeyLeft:
		return key.NewSpecialEvent(key.KeyLeft, mods), true
	case tcell.KeyRight:
		return key.NewSpecialEvent(key.KeyRight, mods), true
	case tcell.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter, mods), true
	case tcell.KeyTab:
		return key.NewSpecialEvent(key.KeyTab, mods), true
	case tcell.KeyBacktab:
		return key.NewSpecialEvent(key.KeyTab, mods.With(key.ModShift)), true
	case tcell.KeyEsc:
		return key.NewSpecialEvent(key.KeyEscape, mods), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NewSpecialEvent(key.KeyBackspace, mods), true
	case tcell.KeyDelete:
		return key.NewSpecialEvent(key.KeyDelete, mods), true
	case tcell.KeyInsert:
		return key.NewSpecialEvent(key.KeyInsert, mods), true
	case tcell.KeyHome:
		return key.NewSpecialEvent(key.KeyHome, mods), true
	case tcell.KeyEnd:
		return key.NewSpecialEvent(key.KeyEnd, mods), true
	case tcell.KeyPgUp:
		return key.NewSpecialEvent(key.KeyPageUp, mods), true
	case tcell.KeyPgDn:
		return key.NewSpecialEvent(key.KeyPageDown, mods), true
	case tcell.KeyCtrlRightSq:
		return key.NewRuneEvent(']', mods.With(key.ModCtrl)), true
	}

	if k := ev.Key(); k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return key.NewSpecialEvent(key.KeyF1+key.Key(k-tcell.KeyF1), mods), true
	}
	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		r := 'a' + rune(k-tcell.KeyCtrlA)
		return key.NewRuneEvent(r, mods.With(key.ModCtrl)), true
	}
	return key.Event{}, false
}

// ConvertWheel maps a mouse event to a wheel scroll delta in
// synthesized pixels. Positive deltas scroll content up (wheel away
// from the user). Returns false for non-wheel mouse events.
func ConvertWheel(ev *tcell.EventMouse) (float64, key.Modifier, bool) {
	mods := ConvertModifiers(ev.Modifiers())
	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		return WheelNotch, mods, true
	case ev.Buttons()&tcell.WheelDown != 0:
		return -WheelNotch, mods, true
	}
	return 0, 0, false
}

// ConvertClick maps a primary-button mouse event to a synthesized
// pixel position in window coordinates. Returns false when the
// primary button is not held.
func ConvertClick(ev *tcell.EventMouse) (x, y float64, mods key.Modifier, ok bool) {
	if ev.Buttons()&tcell.Button1 == 0 {
		return 0, 0, 0, false
	}
	cx, cy := ev.Position()
	x = float64(cx) * CellWidth
	y = viewport.TopPad + float64(cy)*viewport.LineSpace
	return x, y, ConvertModifiers(ev.Modifiers()), true
}

// ConvertResize maps a resize event to a pixel size.
func ConvertResize(ev *tcell.EventResize) (float64, float64) {
	cols, rows := ev.Size()
	return SizeToPx(cols, rows)
}

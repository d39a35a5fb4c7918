package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/viewkit/internal/input/key"
)

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want key.Event
	}{
		{
			name: "plain rune",
			ev:   tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone),
			want: key.NewRuneEvent('a', 0),
		},
		{
			name: "arrow",
			ev:   tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone),
			want: key.NewSpecialEvent(key.KeyUp, 0),
		},
		{
			name: "ctrl arrow",
			ev:   tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModCtrl),
			want: key.NewSpecialEvent(key.KeyUp, key.ModCtrl),
		},
		{
			name: "ctrl alt arrow",
			ev:   tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModCtrl|tcell.ModAlt),
			want: key.NewSpecialEvent(key.KeyDown, key.ModCtrl|key.ModAlt),
		},
		{
			name: "enter",
			ev:   tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
			want: key.NewSpecialEvent(key.KeyEnter, 0),
		},
		{
			name: "backtab is shift tab",
			ev:   tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone),
			want: key.NewSpecialEvent(key.KeyTab, key.ModShift),
		},
		{
			name: "both backspace codes",
			ev:   tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone),
			want: key.NewSpecialEvent(key.KeyBackspace, 0),
		},
		{
			name: "ctrl letter unfolds",
			ev:   tcell.NewEventKey(tcell.KeyCtrlA, 0, tcell.ModCtrl),
			want: key.NewRuneEvent('a', key.ModCtrl),
		},
		{
			name: "ctrl right bracket",
			ev:   tcell.NewEventKey(tcell.KeyCtrlRightSq, 0, tcell.ModCtrl),
			want: key.NewRuneEvent(']', key.ModCtrl),
		},
		{
			name: "escape not ctrl bracket",
			ev:   tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone),
			want: key.NewSpecialEvent(key.KeyEscape, 0),
		},
		{
			name: "function key",
			ev:   tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone),
			want: key.NewSpecialEvent(key.KeyF5, 0),
		},
		{
			name: "paging",
			ev:   tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone),
			want: key.NewSpecialEvent(key.KeyPageDown, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ConvertKey(tt.ev)
			if !ok {
				t.Fatal("ConvertKey returned false")
			}
			if !got.Equals(tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestConvertModifiers(t *testing.T) {
	got := ConvertModifiers(tcell.ModShift | tcell.ModCtrl | tcell.ModAlt | tcell.ModMeta)
	want := key.ModShift | key.ModCtrl | key.ModAlt | key.ModMeta
	if got != want {
		t.Errorf("mods = %v, want %v", got, want)
	}
	if ConvertModifiers(tcell.ModNone) != 0 {
		t.Error("ModNone should convert to empty mask")
	}
}

func TestConvertWheel(t *testing.T) {
	delta, mods, ok := ConvertWheel(tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone))
	if !ok || delta != WheelNotch || mods != 0 {
		t.Errorf("wheel up = %v %v %v", delta, mods, ok)
	}

	delta, _, ok = ConvertWheel(tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModShift))
	if !ok || delta != -WheelNotch {
		t.Errorf("wheel down delta = %v", delta)
	}

	if _, _, ok := ConvertWheel(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone)); ok {
		t.Error("button click should not be a wheel event")
	}
}

func TestConvertClick(t *testing.T) {
	x, y, mods, ok := ConvertClick(tcell.NewEventMouse(3, 2, tcell.Button1, tcell.ModShift))
	if !ok {
		t.Fatal("Button1 press should convert")
	}
	if x != 3*CellWidth {
		t.Errorf("x = %v, want %v", x, 3*CellWidth)
	}
	if y != 6+2*17.0 {
		t.Errorf("y = %v, want %v", y, 6+2*17.0)
	}
	if mods != key.ModShift {
		t.Errorf("mods = %v", mods)
	}

	if _, _, _, ok := ConvertClick(tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone)); ok {
		t.Error("wheel should not convert as click")
	}
	if _, _, _, ok := ConvertClick(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone)); ok {
		t.Error("release should not convert as click")
	}
}

func TestConvertResize(t *testing.T) {
	w, h := ConvertResize(tcell.NewEventResize(100, 40))
	if w != 100*CellWidth {
		t.Errorf("width = %v, want %v", w, 100*CellWidth)
	}
	if h != 40*17.0 {
		t.Errorf("height = %v, want %v", h, 40*17.0)
	}
}

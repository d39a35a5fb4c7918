package key

import "testing"

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyEscape, "Escape"},
		{KeyEnter, "Enter"},
		{KeyPageDown, "PageDown"},
		{KeyUp, "Up"},
		{KeyF5, "F5"},
		{KeyRune, "Rune"},
		{KeyNone, "None"},
	}

	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestKeyFromName(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"enter", KeyEnter},
		{"Return", KeyEnter},
		{"ESC", KeyEscape},
		{"pgdn", KeyPageDown},
		{" home ", KeyHome},
		{"f12", KeyF12},
		{"bogus", KeyNone},
	}

	for _, tt := range tests {
		if got := KeyFromName(tt.name); got != tt.want {
			t.Errorf("KeyFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestKeyClassifiers(t *testing.T) {
	if !KeyLeft.IsArrowKey() || KeyHome.IsArrowKey() {
		t.Error("arrow key classification wrong")
	}
	if !KeyHome.IsNavigationKey() || !KeyPageUp.IsNavigationKey() || KeyTab.IsNavigationKey() {
		t.Error("navigation key classification wrong")
	}
	if !KeyF1.IsFunctionKey() || !KeyF12.IsFunctionKey() || KeyUp.IsFunctionKey() {
		t.Error("function key classification wrong")
	}
}

func TestModifierMask(t *testing.T) {
	m := ModCtrl.With(ModShift)

	if !m.HasCtrl() || !m.HasShift() {
		t.Error("expected Ctrl and Shift set")
	}
	if m.HasAlt() || m.HasMeta() {
		t.Error("unexpected Alt or Meta")
	}
	if got := m.Without(ModShift); got != ModCtrl {
		t.Errorf("Without(Shift) = %v, want Ctrl", got)
	}
	if got := m.String(); got != "Ctrl+Shift" {
		t.Errorf("String() = %q", got)
	}
	if !ModNone.IsEmpty() || m.IsEmpty() {
		t.Error("IsEmpty wrong")
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{NewRuneEvent('a', ModNone), "a"},
		{NewRuneEvent(' ', ModNone), "Space"},
		{NewSpecialEvent(KeyUp, ModCtrl), "Ctrl+Up"},
		{NewSpecialEvent(KeyRight, ModCtrl.With(ModShift)), "Ctrl+Shift+Right"},
		// Shift on a rune is part of the character.
		{NewRuneEvent('A', ModShift), "A"},
	}

	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"a", NewRuneEvent('a', ModNone)},
		{"A", NewRuneEvent('A', ModShift)},
		{"[", NewRuneEvent('[', ModNone)},
		{"Enter", NewSpecialEvent(KeyEnter, ModNone)},
		{"Ctrl+Up", NewSpecialEvent(KeyUp, ModCtrl)},
		{"ctrl+shift+right", NewSpecialEvent(KeyRight, ModCtrl.With(ModShift))},
		{"Alt+Left", NewSpecialEvent(KeyLeft, ModAlt)},
		{"Ctrl+[", NewRuneEvent('[', ModCtrl)},
		{"Ctrl+U", NewRuneEvent('u', ModCtrl)},
		{"Space", NewRuneEvent(' ', ModNone)},
		{"Ctrl++", NewRuneEvent('+', ModCtrl)},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.spec, err)
			}
			if !got.Equals(tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, spec := range []string{"", "   ", "Ctrl+Bogus+x", "notakey"} {
		if _, err := Parse(spec); err == nil {
			t.Errorf("Parse(%q) should fail", spec)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	specs := []string{"Ctrl+Up", "Alt+Left", "Ctrl+Shift+Right", "Enter", "Escape"}
	for _, spec := range specs {
		ev := MustParse(spec)
		again, err := Parse(ev.String())
		if err != nil {
			t.Fatalf("re-parse of %q failed: %v", ev.String(), err)
		}
		if !again.Equals(ev) {
			t.Errorf("round trip of %q: %#v != %#v", spec, again, ev)
		}
	}
}

func TestMatches(t *testing.T) {
	ev := NewSpecialEvent(KeyUp, ModCtrl)
	if !ev.Matches("Ctrl+Up") {
		t.Error("expected match for Ctrl+Up")
	}
	if ev.Matches("Up") || ev.Matches("garbage spec") {
		t.Error("unexpected match")
	}
}

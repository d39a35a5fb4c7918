package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "A", "[", "]"
//   - Special keys: "Enter", "Escape", "Tab", "PageUp", "Space"
//   - With modifiers: "Ctrl+Up", "Ctrl+Shift+Right", "Alt+Left"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	// "+" alone is the plus character, not a separator.
	if !strings.Contains(spec, "+") || spec == "+" {
		return parseKeyPart(spec, ModNone)
	}

	parts := strings.Split(spec, "+")

	// A trailing empty part means the key itself is "+", as in "Ctrl++".
	keyPart := parts[len(parts)-1]
	modParts := parts[:len(parts)-1]
	if keyPart == "" && len(modParts) > 0 {
		keyPart = "+"
		modParts = modParts[:len(modParts)-1]
	}

	var mods Modifier
	for _, p := range modParts {
		mod := ModifierFromName(strings.TrimSpace(p))
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}
	return parseKeyPart(keyPart, mods)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}

func parseKeyPart(part string, mods Modifier) (Event, error) {
	part = strings.TrimSpace(part)
	if part == "" {
		return Event{}, ErrInvalidSpec
	}

	if strings.EqualFold(part, "space") {
		return NewRuneEvent(' ', mods), nil
	}
	if k := KeyFromName(part); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}

	runes := []rune(part)
	if len(runes) == 1 {
		r := runes[0]
		if unicode.IsUpper(r) && !mods.HasCtrl() {
			mods = mods.With(ModShift)
		}
		if mods.HasCtrl() {
			r = unicode.ToLower(r)
		}
		return NewRuneEvent(r, mods), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, part)
}

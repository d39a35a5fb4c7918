package input

import "github.com/dshills/viewkit/internal/input/key"

// Gesture modifier flags as the engine expects them on click and drag
// commands.
const (
	gestureAlt   = 1
	gestureShift = 2
	gestureCtrl  = 4
	gestureMeta  = 8
)

// Click sends a pointer-down gesture at a document position. The
// count distinguishes single, double, and triple clicks for word and
// line selection.
func (t *Translator) Click(line, col int, mods key.Modifier, count int) {
	t.sink.SendEdit("click", []int{line, col, gestureFlags(mods), count})
}

// Drag extends the selection started by Click to a new position.
func (t *Translator) Drag(line, col int, mods key.Modifier) {
	t.sink.SendEdit("drag", []int{line, col, gestureFlags(mods)})
}

func gestureFlags(mods key.Modifier) int {
	flags := 0
	if mods.HasAlt() {
		flags |= gestureAlt
	}
	if mods.HasShift() {
		flags |= gestureShift
	}
	if mods.HasCtrl() {
		flags |= gestureCtrl
	}
	if mods.HasMeta() {
		flags |= gestureMeta
	}
	return flags
}

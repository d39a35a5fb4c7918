package input

import (
	"reflect"
	"testing"

	"github.com/dshills/viewkit/internal/input/key"
)

func TestClick(t *testing.T) {
	tr, rec, _ := newTranslator()

	tr.Click(10, 4, 0, 1)

	if len(rec.cmds) != 1 || rec.cmds[0].method != "click" {
		t.Fatalf("commands = %v", rec.methods())
	}
	if got := rec.cmds[0].params; !reflect.DeepEqual(got, []int{10, 4, 0, 1}) {
		t.Errorf("params = %v", got)
	}
}

func TestClickModifierFlags(t *testing.T) {
	tests := []struct {
		mods key.Modifier
		want int
	}{
		{0, 0},
		{key.ModAlt, 1},
		{key.ModShift, 2},
		{key.ModCtrl, 4},
		{key.ModMeta, 8},
		{key.ModShift | key.ModCtrl, 6},
	}
	for _, tt := range tests {
		tr, rec, _ := newTranslator()
		tr.Click(0, 0, tt.mods, 1)
		params := rec.cmds[0].params.([]int)
		if params[2] != tt.want {
			t.Errorf("flags for %v = %d, want %d", tt.mods, params[2], tt.want)
		}
	}
}

func TestDrag(t *testing.T) {
	tr, rec, _ := newTranslator()

	tr.Drag(12, 7, key.ModShift)

	if len(rec.cmds) != 1 || rec.cmds[0].method != "drag" {
		t.Fatalf("commands = %v", rec.methods())
	}
	if got := rec.cmds[0].params; !reflect.DeepEqual(got, []int{12, 7, 2}) {
		t.Errorf("params = %v", got)
	}
}

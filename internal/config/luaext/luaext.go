// Package luaext runs a user init.lua that can register key bindings
// programmatically. The script runs in a restricted interpreter: the
// io, os, and debug libraries are not loaded, so a binding script
// cannot touch the filesystem or environment.
package luaext

import (
	"errors"
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/viewkit/internal/input/key"
)

// ErrScript indicates the init script failed to run.
var ErrScript = errors.New("init script failed")

// Bindings is the result of running an init script: chord specs
// mapped to command names, in registration order for diagnostics.
type Bindings struct {
	byChord map[string]string
	order   []string
}

// Get returns the command bound to a chord spec.
func (b *Bindings) Get(chord string) (string, bool) {
	cmd, ok := b.byChord[chord]
	return cmd, ok
}

// Len returns the number of bindings.
func (b *Bindings) Len() int {
	return len(b.byChord)
}

// Chords returns chord specs in registration order. Rebinding a chord
// keeps its original position.
func (b *Bindings) Chords() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Merge folds the bindings into a keymap, overriding existing
// entries.
func (b *Bindings) Merge(keymap map[string]string) map[string]string {
	if keymap == nil {
		keymap = make(map[string]string, len(b.byChord))
	}
	for chord, cmd := range b.byChord {
		keymap[chord] = cmd
	}
	return keymap
}

// RunFile runs an init script from disk. A missing file yields empty
// bindings.
func RunFile(path string) (*Bindings, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Bindings{byChord: map[string]string{}}, nil
		}
		return nil, err
	}
	return Run(string(src))
}

// Run runs an init script and collects its bind() calls. A bind with
// an unparseable chord raises a Lua error so the script author sees
// the mistake.
func Run(src string) (*Bindings, error) {
	b := &Bindings{byChord: map[string]string{}}

	ls := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer ls.Close()

	// Base libraries only, no io/os/debug.
	for _, open := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		ls.Push(ls.NewFunction(open.fn))
		ls.Push(lua.LString(open.name))
		ls.Call(1, 0)
	}

	ls.SetGlobal("bind", ls.NewFunction(func(l *lua.LState) int {
		chord := l.CheckString(1)
		command := l.CheckString(2)
		if _, err := key.Parse(chord); err != nil {
			l.RaiseError("bad chord %q: %s", chord, err)
			return 0
		}
		if _, seen := b.byChord[chord]; !seen {
			b.order = append(b.order, chord)
		}
		b.byChord[chord] = command
		return 0
	}))

	if err := ls.DoString(src); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScript, err)
	}
	return b, nil
}

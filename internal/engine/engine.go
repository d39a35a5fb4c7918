// Package engine is the view's handle to the out-of-process text
// engine: it emits edit commands over a newline-delimited JSON
// transport and routes inbound notifications back to the view.
//
// The engine owns the authoritative document. The view never waits
// for a reply synchronously; commands are fire-and-forget and the
// engine answers with update notifications in its own time.
package engine

import "fmt"

// Command is an edit command addressed to a view.
type Command struct {
	// Method is the engine operation, e.g. "insert" or "move_up".
	Method string

	// Params is the argument value: nil (empty list), an integer
	// sequence, or a parameter struct.
	Params any

	// ViewID identifies the target view.
	ViewID string
}

// String returns a compact representation for logs.
func (c Command) String() string {
	return fmt.Sprintf("%s(%v)@%s", c.Method, c.Params, c.ViewID)
}

// Recorder is a test double that captures commands in order.
type Recorder struct {
	Commands []Command
}

// SendEdit records the command.
func (r *Recorder) SendEdit(method string, params any, viewID string) error {
	r.Commands = append(r.Commands, Command{Method: method, Params: params, ViewID: viewID})
	return nil
}

// Methods returns the recorded method names in order.
func (r *Recorder) Methods() []string {
	out := make([]string, len(r.Commands))
	for i, c := range r.Commands {
		out[i] = c.Method
	}
	return out
}

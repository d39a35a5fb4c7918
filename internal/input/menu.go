package input

// menuCommands maps menu command names to engine methods.
var menuCommands = map[string]string{
	"undo":             "undo",
	"redo":             "redo",
	"uppercase":        "uppercase",
	"lowercase":        "lowercase",
	"transpose":        "transpose",
	"add_cursor_above": "add_selection_above",
	"add_cursor_below": "add_selection_below",
	"single_selection": "cancel_operation",
	"select_all":       "select_all",
}

// Menu dispatches a named menu command. Returns false for unknown
// names so callers can surface a configuration error.
func (t *Translator) Menu(name string) bool {
	method, ok := menuCommands[name]
	if !ok {
		return false
	}
	t.action(method)
	return true
}

// MenuCommands returns the names Menu accepts.
func MenuCommands() []string {
	names := make([]string, 0, len(menuCommands))
	for name := range menuCommands {
		names = append(names, name)
	}
	return names
}

// Undo requests the engine undo the last edit.
func (t *Translator) Undo() { t.action("undo") }

// Redo requests the engine redo the last undone edit.
func (t *Translator) Redo() { t.action("redo") }

// UpperCase uppercases the current selection.
func (t *Translator) UpperCase() { t.action("uppercase") }

// LowerCase lowercases the current selection.
func (t *Translator) LowerCase() { t.action("lowercase") }

// Transpose swaps the characters around the caret.
func (t *Translator) Transpose() { t.action("transpose") }

// AddCursorAbove adds a selection caret on the line above.
func (t *Translator) AddCursorAbove() { t.action("add_selection_above") }

// AddCursorBelow adds a selection caret on the line below.
func (t *Translator) AddCursorBelow() { t.action("add_selection_below") }

// SingleSelection collapses to a single selection.
func (t *Translator) SingleSelection() { t.action("cancel_operation") }

// SelectAll selects the whole document.
func (t *Translator) SelectAll() { t.action("select_all") }

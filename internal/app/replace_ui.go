package app

import (
	"fmt"
	"strconv"
)

// runReplacePrompt asks for a literal pattern and its replacement, then
// replaces every occurrence as one undoable step.
func (r *Runner) runReplacePrompt() {
	var pattern, replacement string
	if !r.runPrompt("Replace: ", r.lastQuery, func(s string) error {
		pattern = s
		return nil
	}) {
		return
	}
	if !r.runPrompt("Replace "+strconv.Quote(pattern)+" with: ", "", func(s string) error {
		replacement = s
		return nil
	}) {
		return
	}
	r.lastQuery = pattern

	n, err := r.Session.ReplaceAll(pattern, replacement)
	r.currentMatch = -1
	r.clampCursor()
	if err != nil {
		r.Logger.Error("replace.error", err, map[string]any{"count": n})
		r.showDialog("Replace failed: " + err.Error())
		return
	}
	r.Logger.Event("action", map[string]any{"name": "replace", "count": n})
	r.showDialog(fmt.Sprintf("Replaced %d occurrence(s)", n))
}

package app

import (
	"errors"

	"example.com/quill/pkg/editor"
)

var errPathRequired = errors.New("path required")

// OpenFile loads path into the session and resets the view.
func (r *Runner) OpenFile(path string) error {
	r.Logger.Event("open.attempt", map[string]any{"file": path})
	if err := r.Session.Open(path); err != nil {
		r.Logger.Error("open.error", err, map[string]any{"file": path})
		return err
	}
	r.resetView()
	r.retarget()
	r.Logger.Event("open.success", map[string]any{"file": path, "runes": r.Session.Buf.Len()})
	return nil
}

// runOpenPrompt prompts for a file path and loads it. Esc cancels; a failed
// load keeps the prompt open with the error shown.
func (r *Runner) runOpenPrompt() {
	if r.Session.Dirty && !r.confirm("Unsaved changes. Discard them? (y/n)") {
		return
	}
	r.runPrompt("Open: ", "", func(path string) error {
		if path == "" {
			return errPathRequired
		}
		err := r.OpenFile(path)
		if errors.Is(err, editor.ErrFileNotFound) {
			return errors.New("file not found")
		}
		return err
	})
}

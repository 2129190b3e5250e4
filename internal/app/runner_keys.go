package app

import (
	"errors"

	"example.com/quill/pkg/history"
	"github.com/gdamore/tcell/v2"
)

// handleKeyEvent processes a key event. It returns true if the event signals
// the runner should quit.
func (r *Runner) handleKeyEvent(ev *tcell.EventKey) bool {
	switch {
	case r.matchCommand(ev, "quit"):
		return r.requestQuit()
	case r.matchCommand(ev, "menu"):
		return r.runCommandMenu()
	case r.matchCommand(ev, "new"):
		r.newDocument()
	case r.matchCommand(ev, "open"):
		r.runOpenPrompt()
	case r.matchCommand(ev, "save"):
		r.save()
	case r.matchCommand(ev, "saveas"):
		r.runSaveAsPrompt()
	case r.matchCommand(ev, "find"):
		r.runFindPrompt()
	case r.matchCommand(ev, "replace"):
		r.runReplacePrompt()
	case r.matchCommand(ev, "undo"):
		r.performUndo()
	case r.matchCommand(ev, "redo"):
		r.performRedo()
	case r.matchCommand(ev, "font"):
		r.runFontPrompt()
	case r.matchCommand(ev, "help"):
		r.ShowHelp = true
		r.Logger.Event("action", map[string]any{"name": "help.show"})
	default:
		r.handleEditKey(ev)
	}
	r.draw()
	return false
}

func (r *Runner) matchCommand(ev *tcell.EventKey, name string) bool {
	kb, ok := r.Keymap[name]
	if !ok {
		return false
	}
	return kb.Matches(ev)
}

// handleEditKey handles typing and cursor movement.
func (r *Runner) handleEditKey(ev *tcell.EventKey) {
	buf := r.Session.Buf
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0
	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Modifiers()&^tcell.ModShift != 0 {
			return
		}
		r.insertText(string(ev.Rune()))
	case tcell.KeyEnter:
		r.insertText("\n")
	case tcell.KeyTab:
		r.insertText(tabText)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if r.Cursor > 0 {
			r.deleteRange(r.Cursor-1, r.Cursor)
		}
	case tcell.KeyDelete:
		if r.Cursor < buf.Len() {
			r.deleteRange(r.Cursor, r.Cursor+1)
		}
	case tcell.KeyLeft:
		if ctrl {
			r.moveWordLeft()
		} else if r.Cursor > 0 {
			r.Cursor--
		}
	case tcell.KeyRight:
		if ctrl {
			r.moveWordRight()
		} else if r.Cursor < buf.Len() {
			r.Cursor++
		}
	case tcell.KeyUp:
		r.moveCursorVertical(-1)
	case tcell.KeyDown:
		r.moveCursorVertical(1)
	case tcell.KeyPgUp:
		r.moveCursorVertical(-r.pageSize())
	case tcell.KeyPgDn:
		r.moveCursorVertical(r.pageSize())
	case tcell.KeyHome:
		if ctrl {
			r.Cursor = 0
		} else {
			r.Cursor, _ = r.currentLineBounds()
		}
	case tcell.KeyEnd:
		if ctrl {
			r.Cursor = buf.Len()
		} else {
			_, r.Cursor = r.currentLineBounds()
		}
	}
}

func (r *Runner) pageSize() int {
	if h := r.textHeight(); h > 1 {
		return h - 1
	}
	return 1
}

func (r *Runner) performUndo() {
	c, err := r.Session.Undo()
	if errors.Is(err, history.ErrNothingToUndo) {
		return
	}
	r.afterHistory("undo", c, err)
}

func (r *Runner) performRedo() {
	c, err := r.Session.Redo()
	if errors.Is(err, history.ErrNothingToRedo) {
		return
	}
	r.afterHistory("redo", c, err)
}

func (r *Runner) afterHistory(action string, cursor int, err error) {
	if err != nil {
		r.Logger.Error(action+".error", err, nil)
	}
	r.Cursor = cursor
	r.clampCursor()
	r.afterEdit()
	r.Logger.Event("action", map[string]any{"name": action, "cursor": r.Cursor, "buffer_len": r.Session.Buf.Len()})
}

// newDocument discards the buffer after confirmation when it has unsaved
// changes.
func (r *Runner) newDocument() {
	if r.Session.Dirty && !r.confirm("Unsaved changes. Discard them? (y/n)") {
		return
	}
	r.Session.NewDocument()
	r.resetView()
	r.retarget()
	r.Logger.Event("action", map[string]any{"name": "new"})
}

func (r *Runner) resetView() {
	r.Cursor, r.TopLine, r.LeftCol = 0, 0, 0
	r.currentMatch = -1
	r.rehighlight()
}

// save writes to the current path, or asks for one.
func (r *Runner) save() {
	if r.Session.FilePath == "" {
		r.runSaveAsPrompt()
		return
	}
	if err := r.Session.Save(); err != nil {
		r.Logger.Error("save.error", err, map[string]any{"file": r.Session.FilePath})
		r.showDialog("Save failed: " + err.Error())
		return
	}
	r.Logger.Event("save.success", map[string]any{"file": r.Session.FilePath})
}

// requestQuit returns true when the runner may exit.
func (r *Runner) requestQuit() bool {
	if !r.Session.Dirty {
		return true
	}
	return r.confirm("Unsaved changes. Quit without saving? (y/n)")
}

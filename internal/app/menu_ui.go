package app

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// menuRows is the number of choices listed at once.
const menuRows = 10

type command struct {
	name   string
	action func() bool
}

func (r *Runner) commandList() []command {
	return []command{
		{name: "File: New", action: func() bool { r.newDocument(); return false }},
		{name: "File: Open", action: func() bool { r.runOpenPrompt(); return false }},
		{name: "File: Save", action: func() bool { r.save(); return false }},
		{name: "File: Save As", action: func() bool { r.runSaveAsPrompt(); return false }},
		{name: "File: Exit", action: r.requestQuit},
		{name: "Edit: Find", action: func() bool { r.runFindPrompt(); return false }},
		{name: "Edit: Replace", action: func() bool { r.runReplacePrompt(); return false }},
		{name: "Edit: Undo", action: func() bool { r.performUndo(); return false }},
		{name: "Edit: Redo", action: func() bool { r.performRedo(); return false }},
		{name: "Format: Font", action: func() bool { r.runFontPrompt(); return false }},
		{name: "Help", action: func() bool { r.ShowHelp = true; return false }},
	}
}

// runCommandMenu lists the commands in the mini-buffer and runs the chosen
// one. It returns true if the command requests to quit.
func (r *Runner) runCommandMenu() bool {
	cmds := r.commandList()
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.name
	}
	i, ok := r.runChooser("Command: ", names, 0)
	if !ok {
		return false
	}
	r.Logger.Event("action", map[string]any{"name": "menu", "command": cmds[i].name})
	return cmds[i].action()
}

// runChooser shows items in the mini-buffer with case-insensitive filtering
// by typing and navigation with Up/Down or Ctrl+P/Ctrl+N. It returns the
// index in items of the chosen entry.
func (r *Runner) runChooser(label string, items []string, initial int) (int, bool) {
	if r.Screen == nil {
		return 0, false
	}
	defer func() {
		r.clearMiniBuffer()
		r.draw()
	}()
	query := ""
	sel := initial
	for {
		var filtered []int
		for i, item := range items {
			if strings.Contains(strings.ToLower(item), strings.ToLower(query)) {
				filtered = append(filtered, i)
			}
		}
		sel = min(sel, len(filtered)-1)
		sel = max(sel, 0)

		lines := []string{label + query}
		first := max(0, min(sel-menuRows/2, len(filtered)-menuRows))
		for i := first; i < len(filtered) && i < first+menuRows; i++ {
			prefix := "  "
			if i == sel {
				prefix = "> "
			}
			lines = append(lines, prefix+items[filtered[i]])
		}
		r.setMiniBuffer(lines)
		r.draw()

		ev := r.waitEvent()
		if ev == nil {
			return 0, false
		}
		kev, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		switch {
		case r.isCancelKey(kev):
			return 0, false
		case kev.Key() == tcell.KeyEnter:
			if len(filtered) > 0 {
				return filtered[sel], true
			}
		case kev.Key() == tcell.KeyBackspace || kev.Key() == tcell.KeyBackspace2:
			if q := []rune(query); len(q) > 0 {
				query = string(q[:len(q)-1])
				sel = 0
			}
		case kev.Key() == tcell.KeyUp || kev.Key() == tcell.KeyCtrlP:
			if sel > 0 {
				sel--
			}
		case kev.Key() == tcell.KeyDown || kev.Key() == tcell.KeyCtrlN:
			if sel < len(filtered)-1 {
				sel++
			}
		case kev.Key() == tcell.KeyRune && kev.Modifiers()&^tcell.ModShift == 0:
			query += string(kev.Rune())
			sel = 0
		}
	}
}

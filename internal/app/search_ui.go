package app

import (
	"fmt"
	"strings"

	"example.com/quill/pkg/search"
	"github.com/gdamore/tcell/v2"
)

// maxListedMatches bounds the match list under the find prompt.
const maxListedMatches = 5

// runFindPrompt searches as the user types. Ctrl+E toggles regular
// expressions, Ctrl+A toggles case folding, Up/Down pick the current match.
// Enter moves the cursor to the current match and leaves all matches
// highlighted; Esc clears them.
func (r *Runner) runFindPrompt() {
	opts := search.Options{}
	query := []rune(r.lastQuery)
	var ranges []search.Range
	var findErr error
	changed := true
	sel := -1
	defer func() {
		r.lastQuery = string(query)
		r.currentMatch = -1
		r.clearMiniBuffer()
		r.draw()
	}()
	for {
		if changed {
			changed = false
			ranges, findErr = nil, nil
			if len(query) > 0 {
				ranges, findErr = r.Session.Find(string(query), opts)
			} else {
				r.Session.ClearMatches()
			}
			sel = search.SearchNext(ranges, r.Cursor)
		}
		r.currentMatch = sel
		r.setMiniBuffer(r.findLines(string(query), opts, ranges, sel))
		r.MiniErr = ""
		if findErr != nil {
			r.MiniErr = "invalid pattern"
		}
		if sel >= 0 {
			r.revealMatch(ranges[sel])
		}
		r.draw()

		ev := r.waitEvent()
		if ev == nil {
			return
		}
		kev, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		switch {
		case r.isCancelKey(kev):
			r.Session.ClearMatches()
			return
		case kev.Key() == tcell.KeyEnter:
			if sel >= 0 {
				r.Cursor = ranges[sel].Start
			}
			r.Logger.Event("action", map[string]any{"name": "find", "matches": len(ranges), "regex": opts.Regex})
			return
		case kev.Key() == tcell.KeyUp || kev.Key() == tcell.KeyCtrlP:
			if len(ranges) > 0 {
				sel = (sel - 1 + len(ranges)) % len(ranges)
			}
		case kev.Key() == tcell.KeyDown || kev.Key() == tcell.KeyCtrlN:
			if len(ranges) > 0 {
				sel = (sel + 1) % len(ranges)
			}
		case kev.Key() == tcell.KeyCtrlE:
			opts.Regex = !opts.Regex
			changed = true
		case kev.Key() == tcell.KeyCtrlA:
			opts.IgnoreCase = !opts.IgnoreCase
			changed = true
		case kev.Key() == tcell.KeyBackspace || kev.Key() == tcell.KeyBackspace2:
			if len(query) > 0 {
				query = query[:len(query)-1]
				changed = true
			}
		case kev.Key() == tcell.KeyRune && kev.Modifiers()&^tcell.ModShift == 0:
			query = append(query, kev.Rune())
			changed = true
		}
	}
}

// findLines builds the mini-buffer contents for the find prompt.
func (r *Runner) findLines(query string, opts search.Options, ranges []search.Range, sel int) []string {
	var flags []string
	if opts.Regex {
		flags = append(flags, "regex")
	}
	if opts.IgnoreCase {
		flags = append(flags, "ignore case")
	}
	label := "Find: "
	if len(flags) > 0 {
		label = "Find (" + strings.Join(flags, ", ") + "): "
	}
	lines := []string{label + query}
	if query == "" {
		return append(lines, "Ctrl+E regex, Ctrl+A ignore case")
	}
	if len(ranges) == 0 {
		return append(lines, "No matches")
	}
	lines = append(lines, fmt.Sprintf("Match %d of %d; Up/Down to move", sel+1, len(ranges)))
	first := max(0, min(sel-maxListedMatches/2, len(ranges)-maxListedMatches))
	for i := first; i < len(ranges) && i < first+maxListedMatches; i++ {
		lines = append(lines, r.matchLine(ranges[i], i == sel))
	}
	return lines
}

func (r *Runner) matchLine(m search.Range, selected bool) string {
	prefix := "  "
	if selected {
		prefix = "> "
	}
	buf := r.Session.Buf
	return fmt.Sprintf("%s%d: %q", prefix, buf.LineOf(m.Start)+1, string(buf.Slice(m.Start, m.End)))
}

// revealMatch scrolls the view so m is visible without moving the cursor.
func (r *Runner) revealMatch(m search.Range) {
	line := r.Session.Buf.LineOf(m.Start)
	h := r.textHeight()
	if line < r.TopLine || (h > 0 && line >= r.TopLine+h) {
		r.TopLine = max(0, line-h/2)
	}
}

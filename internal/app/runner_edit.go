package app

import "example.com/quill/pkg/buffer"

// tabText is inserted for the Tab key.
const tabText = "    "

// insertText inserts text at the cursor through the session so it is
// recorded for undo, then moves the cursor past it.
func (r *Runner) insertText(text string) {
	if text == "" {
		return
	}
	if err := r.Session.Insert(r.Cursor, text); err != nil {
		r.Logger.Error("edit.error", err, map[string]any{"cursor": r.Cursor})
		return
	}
	r.Cursor += len([]rune(text))
	r.afterEdit()
}

// deleteRange deletes [start,end) and keeps the cursor on the same text.
func (r *Runner) deleteRange(start, end int) {
	buf := r.Session.Buf
	if start < 0 {
		start = 0
	}
	if end > buf.Len() {
		end = buf.Len()
	}
	if start >= end {
		return
	}
	if err := r.Session.Delete(start, end); err != nil {
		r.Logger.Error("edit.error", err, map[string]any{"start": start, "end": end})
		return
	}
	if r.Cursor > end {
		r.Cursor -= end - start
	} else if r.Cursor > start {
		r.Cursor = start
	}
	r.afterEdit()
}

// afterEdit drops stale search matches and recomputes highlighting.
func (r *Runner) afterEdit() {
	r.Session.ClearMatches()
	r.currentMatch = -1
	r.rehighlight()
}

// rehighlight recomputes highlighting. A failure is shown once as a notice
// until highlighting succeeds again or the error changes.
func (r *Runner) rehighlight() {
	err := r.Session.Highlight()
	if err == nil {
		r.highlightErr = ""
		return
	}
	r.Logger.Error("highlight.error", err, nil)
	if msg := err.Error(); msg != r.highlightErr {
		r.highlightErr = msg
		r.notice = "Highlighting failed: " + msg
	}
}

func (r *Runner) clampCursor() {
	if r.Cursor < 0 {
		r.Cursor = 0
	}
	if n := r.Session.Buf.Len(); r.Cursor > n {
		r.Cursor = n
	}
}

// currentLineBounds returns the rune start of the cursor's line and its end,
// excluding the newline.
func (r *Runner) currentLineBounds() (start, end int) {
	buf := r.Session.Buf
	start, end = buf.LineAt(buf.LineOf(r.Cursor))
	if end > start && buf.RuneAt(end-1) == '\n' {
		end--
	}
	return start, end
}

// moveCursorVertical moves the cursor up or down by delta lines, preserving
// the column when possible.
func (r *Runner) moveCursorVertical(delta int) {
	buf := r.Session.Buf
	line := buf.LineOf(r.Cursor)
	lineStart, _ := buf.LineAt(line)
	col := r.Cursor - lineStart

	target := line + delta
	if target < 0 {
		target = 0
	}
	if last := buf.LineOf(buf.Len()); target > last {
		target = last
	}
	start, end := buf.LineAt(target)
	if end > start && buf.RuneAt(end-1) == '\n' {
		end--
	}
	if col > end-start {
		col = end - start
	}
	r.Cursor = start + col
}

func (r *Runner) moveWordLeft() {
	r.Cursor = buffer.PrevWordStart(r.Session.Buf, r.Cursor)
}

func (r *Runner) moveWordRight() {
	r.Cursor = buffer.NextWordStart(r.Session.Buf, r.Cursor)
}

// textHeight is the number of buffer rows visible above the mini-buffer and
// status line.
func (r *Runner) textHeight() int {
	if r.Screen == nil {
		return 0
	}
	_, h := r.Screen.Size()
	n := h - 1 - len(r.MiniBuf)
	if n < 0 {
		return 0
	}
	return n
}

// ensureCursorVisible scrolls so the cursor row and column are on screen.
func (r *Runner) ensureCursorVisible() {
	if r.Screen == nil {
		return
	}
	r.clampCursor()
	line := r.Session.Buf.LineOf(r.Cursor)
	h := r.textHeight()
	if line < r.TopLine {
		r.TopLine = line
	} else if h > 0 && line >= r.TopLine+h {
		r.TopLine = line - h + 1
	}

	w, _ := r.Screen.Size()
	start, _ := r.Session.Buf.LineAt(line)
	col := displayWidth(r.Session.Buf.Slice(start, r.Cursor))
	if col < r.LeftCol {
		r.LeftCol = col
	} else if w > 0 && col >= r.LeftCol+w {
		r.LeftCol = col - w + 1
	}
}

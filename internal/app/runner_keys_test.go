package app

import (
	"strings"
	"testing"

	"example.com/quill/pkg/highlight"
	"github.com/gdamore/tcell/v2"
)

func TestTypingInsertsAndHighlights(t *testing.T) {
	r, _ := newTestRunner(t, "")
	for _, ev := range typed("import os") {
		if r.handleKeyEvent(ev.(*tcell.EventKey)) {
			t.Fatalf("typing requested quit")
		}
	}
	if got := r.Session.Text(); got != "import os" {
		t.Fatalf("expected %q, got %q", "import os", got)
	}
	if r.Cursor != 9 {
		t.Fatalf("expected cursor 9, got %d", r.Cursor)
	}
	if !r.Session.Dirty {
		t.Fatalf("expected Dirty after typing")
	}
	kw := r.Session.Tags.Spans(highlight.Keyword)
	if len(kw) != 1 || kw[0].Start != 0 || kw[0].End != 6 {
		t.Fatalf("expected one keyword span [0,6), got %v", kw)
	}
}

func TestTabInsertsFourSpaces(t *testing.T) {
	r, _ := newTestRunner(t, "x")
	r.handleKeyEvent(key(tcell.KeyTab))
	if got := r.Session.Text(); got != "    x" {
		t.Fatalf("expected four spaces before x, got %q", got)
	}
	if r.Cursor != 4 {
		t.Fatalf("expected cursor 4, got %d", r.Cursor)
	}
}

func TestEnterBackspaceDelete(t *testing.T) {
	r, _ := newTestRunner(t, "abc")
	r.Cursor = 1
	r.handleKeyEvent(key(tcell.KeyEnter))
	if got := r.Session.Text(); got != "a\nbc" {
		t.Fatalf("after Enter got %q", got)
	}
	r.handleKeyEvent(key(tcell.KeyBackspace2))
	if got := r.Session.Text(); got != "abc" || r.Cursor != 1 {
		t.Fatalf("after Backspace got %q cursor %d", got, r.Cursor)
	}
	r.handleKeyEvent(key(tcell.KeyDelete))
	if got := r.Session.Text(); got != "ac" || r.Cursor != 1 {
		t.Fatalf("after Delete got %q cursor %d", got, r.Cursor)
	}
}

func TestUndoRedoKeys(t *testing.T) {
	r, _ := newTestRunner(t, "abc")
	r.Cursor = 3
	r.handleKeyEvent(key(tcell.KeyBackspace))
	if got := r.Session.Text(); got != "ab" {
		t.Fatalf("expected ab, got %q", got)
	}
	r.handleKeyEvent(ctrl('z'))
	if got := r.Session.Text(); got != "abc" || r.Cursor != 3 {
		t.Fatalf("after undo got %q cursor %d", got, r.Cursor)
	}
	r.handleKeyEvent(ctrl('y'))
	if got := r.Session.Text(); got != "ab" || r.Cursor != 2 {
		t.Fatalf("after redo got %q cursor %d", got, r.Cursor)
	}
	// Nothing left to redo.
	r.handleKeyEvent(ctrl('y'))
	if got := r.Session.Text(); got != "ab" {
		t.Fatalf("extra redo changed text to %q", got)
	}
}

func TestCursorMovement(t *testing.T) {
	r, _ := newTestRunner(t, "hello world\nab\nlast line")
	r.Cursor = 8
	r.handleKeyEvent(key(tcell.KeyDown))
	if r.Cursor != 14 {
		t.Fatalf("down should clamp to end of short line, got %d", r.Cursor)
	}
	r.handleKeyEvent(key(tcell.KeyDown))
	if r.Cursor != 17 {
		t.Fatalf("down should keep column 2, got %d", r.Cursor)
	}
	r.handleKeyEvent(key(tcell.KeyHome))
	if r.Cursor != 15 {
		t.Fatalf("home should go to line start, got %d", r.Cursor)
	}
	r.handleKeyEvent(key(tcell.KeyEnd))
	if r.Cursor != 24 {
		t.Fatalf("end should go to line end, got %d", r.Cursor)
	}
	r.handleKeyEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModCtrl))
	if r.Cursor != 20 {
		t.Fatalf("ctrl+left should go to word start, got %d", r.Cursor)
	}
	r.handleKeyEvent(tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModCtrl))
	if r.Cursor != 0 {
		t.Fatalf("ctrl+home should go to start, got %d", r.Cursor)
	}
	r.handleKeyEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModCtrl))
	if r.Cursor != 6 {
		t.Fatalf("ctrl+right should go to next word, got %d", r.Cursor)
	}
	r.handleKeyEvent(key(tcell.KeyUp))
	if r.Cursor != 6 {
		t.Fatalf("up on first line should stay, got %d", r.Cursor)
	}
}

func TestQuitConfirmation(t *testing.T) {
	r, _ := newTestRunner(t, "")
	if !r.handleKeyEvent(ctrl('q')) {
		t.Fatalf("clean buffer should quit immediately")
	}

	r.handleKeyEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	feed(r, tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone))
	if r.handleKeyEvent(ctrl('q')) {
		t.Fatalf("answering n should keep the editor open")
	}
	feed(r, tcell.NewEventKey(tcell.KeyRune, 'y', tcell.ModNone))
	if !r.handleKeyEvent(ctrl('q')) {
		t.Fatalf("answering y should quit")
	}
}

func TestNewDocumentAsksWhenDirty(t *testing.T) {
	r, _ := newTestRunner(t, "keep")
	r.Session.Dirty = true
	feed(r, key(tcell.KeyEsc))
	r.handleKeyEvent(ctrl('n'))
	if got := r.Session.Text(); got != "keep" {
		t.Fatalf("cancelled new should keep text, got %q", got)
	}
	feed(r, tcell.NewEventKey(tcell.KeyRune, 'y', tcell.ModNone))
	r.handleKeyEvent(ctrl('n'))
	if got := r.Session.Text(); got != "" {
		t.Fatalf("confirmed new should clear text, got %q", got)
	}
}

func TestHelpScreen(t *testing.T) {
	r, s := newTestRunner(t, "")
	r.handleKeyEvent(key(tcell.KeyF1))
	if !r.ShowHelp {
		t.Fatalf("expected help to be shown")
	}
	found := false
	_, h := s.Size()
	for y := 0; y < h; y++ {
		if strings.Contains(rowText(s, y), "Ctrl+Q: Quit") {
			found = true
		}
	}
	if !found {
		t.Fatalf("help screen should list the quit binding")
	}
}

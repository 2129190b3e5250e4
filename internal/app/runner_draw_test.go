package app

import (
	"fmt"
	"strings"
	"testing"

	"example.com/quill/pkg/config"
	"example.com/quill/pkg/search"
	"github.com/gdamore/tcell/v2"
)

func TestDrawSyntaxAndMatchLayers(t *testing.T) {
	r, s := newTestRunner(t, `x = "foo" # c`)
	r.Cursor = 0
	r.draw()

	_, _, style, _ := s.GetContent(5, 0)
	fg, _, _ := style.Decompose()
	if want := r.Theme.SyntaxColors["string"]; fg != want {
		t.Fatalf("expected string color %v at (5,0), got %v", want, fg)
	}
	_, _, style, _ = s.GetContent(11, 0)
	fg, _, attr := style.Decompose()
	if want := r.Theme.SyntaxColors["comment"]; fg != want || attr&tcell.AttrItalic == 0 {
		t.Fatalf("expected italic comment color %v at (11,0), got %v attr %v", want, fg, attr)
	}

	if _, err := r.Session.Find("foo", search.Options{}); err != nil {
		t.Fatalf("find: %v", err)
	}
	r.draw()
	_, _, style, _ = s.GetContent(5, 0)
	fg, bg, _ := style.Decompose()
	if bg != r.Theme.MatchBackground || fg != r.Theme.MatchForeground {
		t.Fatalf("match should draw over string, got fg %v bg %v", fg, bg)
	}

	r.currentMatch = 0
	r.draw()
	_, _, style, _ = s.GetContent(5, 0)
	_, bg, _ = style.Decompose()
	if bg != r.Theme.MatchCurrentBackground {
		t.Fatalf("expected current match background, got %v", bg)
	}
}

func TestDrawCursor(t *testing.T) {
	r, s := newTestRunner(t, "ab")
	r.Cursor = 2
	r.draw()
	_, _, style, _ := s.GetContent(2, 0)
	_, bg, _ := style.Decompose()
	if bg != r.Theme.CursorBackground {
		t.Fatalf("expected cursor placeholder at end of line, got bg %v", bg)
	}
}

func TestDrawStatusLine(t *testing.T) {
	r, s := newTestRunner(t, "ab\ncd")
	r.Session.Dirty = true
	r.draw()
	_, h := s.Size()
	row := rowText(s, h-1)
	if !strings.HasPrefix(row, "[No File] [+]") {
		t.Fatalf("unexpected status left part %q", row)
	}
	if !strings.HasSuffix(row, "Line: 2, Chars: 5 | Courier New 12") {
		t.Fatalf("unexpected status right part %q", row)
	}
}

func TestDrawMiniBufferAndError(t *testing.T) {
	r, s := newTestRunner(t, "hello")
	r.setMiniBuffer([]string{"Open: x"})
	r.MiniErr = "file not found"
	r.draw()
	_, h := s.Size()
	row := rowText(s, h-2)
	if !strings.HasPrefix(row, "Open: x") || !strings.HasSuffix(row, "file not found") {
		t.Fatalf("unexpected mini-buffer row %q", row)
	}
	w, _ := s.Size()
	_, _, style, _ := s.GetContent(w-1, h-2)
	fg, _, _ := style.Decompose()
	if fg != r.Theme.ErrorForeground {
		t.Fatalf("expected error color, got %v", fg)
	}
}

func TestDrawWideRunesAndTabs(t *testing.T) {
	r, s := newTestRunner(t, "日本x\n\ty")
	r.Cursor = 0
	r.draw()
	if c, _, _, _ := s.GetContent(2, 0); c != '本' {
		t.Fatalf("expected second wide rune at column 2, got %q", c)
	}
	if c, _, _, _ := s.GetContent(4, 0); c != 'x' {
		t.Fatalf("expected x at column 4, got %q", c)
	}
	if c, _, _, _ := s.GetContent(4, 1); c != 'y' {
		t.Fatalf("expected y after tab stop, got %q", c)
	}
}

func TestDrawScrollsToCursor(t *testing.T) {
	var lines []string
	for i := 0; i < 30; i++ {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}
	r, s := newTestRunner(t, strings.Join(lines, "\n"))
	r.Cursor = r.Session.Buf.Len()
	r.draw()
	if r.TopLine != 7 {
		t.Fatalf("expected TopLine 7, got %d", r.TopLine)
	}
	if row := rowText(s, 0); row != "line 7" {
		t.Fatalf("expected first row %q, got %q", "line 7", row)
	}

	r.Cursor = 0
	r.draw()
	if r.TopLine != 0 {
		t.Fatalf("expected TopLine 0 after moving to start, got %d", r.TopLine)
	}
}

func TestDrawScrollsHorizontally(t *testing.T) {
	r, s := newTestRunner(t, strings.Repeat("a", 100)+"b")
	r.Cursor = 100
	r.draw()
	if r.LeftCol != 21 {
		t.Fatalf("expected LeftCol 21, got %d", r.LeftCol)
	}
	if c, _, _, _ := s.GetContent(79, 0); c != 'b' {
		t.Fatalf("expected b in last column, got %q", c)
	}
}

func TestKeyLabel(t *testing.T) {
	km := config.DefaultKeymap()
	if got := keyLabel(km["menu"]); got != "F10" {
		t.Fatalf("expected F10, got %q", got)
	}
	if got := keyLabel(km["quit"]); got != "Ctrl+Q" {
		t.Fatalf("expected Ctrl+Q, got %q", got)
	}
}

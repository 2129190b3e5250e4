package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"example.com/quill/pkg/config"
	"example.com/quill/pkg/highlight"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const tabWidth = 4

// advance returns the display column after drawing ch at col.
func advance(col int, ch rune) int {
	if ch == '\t' {
		return col + tabWidth - col%tabWidth
	}
	w := runewidth.RuneWidth(ch)
	if w < 1 {
		w = 1
	}
	return col + w
}

func displayWidth(runes []rune) int {
	col := 0
	for _, ch := range runes {
		col = advance(col, ch)
	}
	return col
}

func (r *Runner) baseStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(r.Theme.UIForeground).Background(r.Theme.UIBackground)
}

// draw renders the buffer, mini-buffer and status line.
func (r *Runner) draw() {
	s := r.Screen
	if s == nil {
		return
	}
	s.SetTitle(r.Session.Title())
	if r.ShowHelp {
		r.drawHelp()
		return
	}
	r.ensureCursorVisible()
	s.Clear()
	s.Fill(' ', r.baseStyle())
	r.drawText()
	r.drawMiniBuffer()
	r.drawStatus()
	s.Show()
}

// spanStyles returns the style of every rune in [from,to), applying the tag
// layers in order so later layers win.
func (r *Runner) spanStyles(from, to int) []tcell.Style {
	base := r.baseStyle()
	styles := make([]tcell.Style, to-from)
	for i := range styles {
		styles[i] = base
	}
	tags := &r.Session.Tags
	var current struct{ start, end int }
	current.start = -1
	if m := tags.Spans(highlight.Match); r.currentMatch >= 0 && r.currentMatch < len(m) {
		current.start, current.end = m[r.currentMatch].Start, m[r.currentMatch].End
	}
	for _, span := range tags.Layers() {
		if span.End <= from || span.Start >= to {
			continue
		}
		start, end := max(span.Start, from), min(span.End, to)
		for i := start; i < end; i++ {
			st := styles[i-from]
			switch {
			case span.Group == highlight.Match.String() && span.Start == current.start && span.End == current.end:
				st = st.Background(r.Theme.MatchCurrentBackground).Foreground(r.Theme.MatchCurrentForeground)
			case span.Group == highlight.Match.String():
				st = st.Background(r.Theme.MatchBackground).Foreground(r.Theme.MatchForeground)
			default:
				if col, ok := r.Theme.SyntaxColors[span.Group]; ok {
					st = st.Foreground(col)
				}
				if span.Group == highlight.Comment.String() {
					st = st.Italic(true)
				}
			}
			styles[i-from] = st
		}
	}
	return styles
}

func (r *Runner) drawText() {
	s := r.Screen
	width, _ := s.Size()
	height := r.textHeight()
	buf := r.Session.Buf
	lines := buf.Lines()
	if height == 0 || r.TopLine >= len(lines) {
		return
	}
	from, _ := buf.LineAt(r.TopLine)
	last := min(r.TopLine+height, len(lines)) - 1
	_, to := buf.LineAt(last)
	styles := r.spanStyles(from, to)
	cursorStyle := tcell.StyleDefault.Foreground(r.Theme.CursorText).Background(r.Theme.CursorBackground)

	offset := from
	for row := 0; row < height && r.TopLine+row < len(lines); row++ {
		col := 0
		for _, ch := range lines[r.TopLine+row] {
			next := advance(col, ch)
			st := styles[offset-from]
			if offset == r.Cursor {
				st = cursorStyle
			}
			if col >= r.LeftCol && next-r.LeftCol <= width {
				if ch == '\t' {
					for x := col; x < next; x++ {
						s.SetContent(x-r.LeftCol, row, ' ', nil, st)
					}
				} else {
					s.SetContent(col-r.LeftCol, row, ch, nil, st)
				}
			}
			col = next
			offset++
		}
		if offset == r.Cursor && col >= r.LeftCol && col-r.LeftCol < width {
			s.SetContent(col-r.LeftCol, row, ' ', nil, cursorStyle)
		}
		offset++ // newline
	}
}

func (r *Runner) drawMiniBuffer() {
	s := r.Screen
	width, height := s.Size()
	style := tcell.StyleDefault.Foreground(r.Theme.MiniForeground).Background(r.Theme.MiniBackground)
	top := height - 1 - len(r.MiniBuf)
	for i, line := range r.MiniBuf {
		drawLine(s, top+i, width, line, style)
	}
	if r.MiniErr != "" && len(r.MiniBuf) > 0 {
		errStyle := style.Foreground(r.Theme.ErrorForeground)
		used := runewidth.StringWidth(r.MiniBuf[0]) + 1
		x := max(width-runewidth.StringWidth(r.MiniErr), used)
		for _, ch := range r.MiniErr {
			if x >= width {
				break
			}
			s.SetContent(x, top, ch, nil, errStyle)
			x += max(runewidth.RuneWidth(ch), 1)
		}
	}
}

// statusText returns the left and right parts of the status line.
func (r *Runner) statusText() (string, string) {
	name := "[No File]"
	if r.Session.FilePath != "" {
		name = filepath.Base(r.Session.FilePath)
	}
	if r.Session.Dirty {
		name += " [+]"
	}
	lines, chars := r.Session.Stats()
	font := r.Session.Settings.Font
	return name, fmt.Sprintf("Line: %d, Chars: %d | %s %d", lines, chars, font.Family, font.Size)
}

func (r *Runner) drawStatus() {
	s := r.Screen
	width, height := s.Size()
	style := tcell.StyleDefault.Foreground(r.Theme.StatusForeground).Background(r.Theme.StatusBackground)
	left, right := r.statusText()
	pad := width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if pad < 1 {
		pad = 1
	}
	drawLine(s, height-1, width, left+strings.Repeat(" ", pad)+right, style)
}

// drawLine fills row y with text, truncated to width.
func drawLine(s tcell.Screen, y, width int, text string, style tcell.Style) {
	x := 0
	for _, ch := range text {
		w := max(runewidth.RuneWidth(ch), 1)
		if x+w > width {
			break
		}
		s.SetContent(x, y, ch, nil, style)
		x += w
	}
	for ; x < width; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

// helpCommands lists the commands shown by the help screen, in order.
var helpCommands = []struct{ name, label string }{
	{"new", "New document"},
	{"open", "Open file"},
	{"save", "Save"},
	{"saveas", "Save as"},
	{"find", "Find"},
	{"replace", "Replace all"},
	{"undo", "Undo"},
	{"redo", "Redo"},
	{"font", "Choose font"},
	{"menu", "Command menu"},
	{"help", "Show this help"},
	{"quit", "Quit"},
}

func (r *Runner) drawHelp() {
	s := r.Screen
	width, height := s.Size()
	s.Clear()
	s.Fill(' ', r.baseStyle())
	lines := []string{"Help:"}
	for _, c := range helpCommands {
		kb, ok := r.Keymap[c.name]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", keyLabel(kb), c.label))
	}
	lines = append(lines,
		"- Arrows, Home/End, PgUp/PgDn: Move cursor",
		"- Ctrl+Left/Right: Move by word",
		"- Tab: Insert four spaces",
		"- Press any key to close",
	)
	y := max((height-len(lines))/2, 0)
	for i, line := range lines {
		x := max((width-runewidth.StringWidth(line))/2, 0)
		for _, ch := range line {
			s.SetContent(x, y+i, ch, nil, r.baseStyle())
			x += max(runewidth.RuneWidth(ch), 1)
		}
	}
	s.Show()
}

// keyLabel renders a binding the way it is written in the config file.
func keyLabel(kb config.Keybinding) string {
	if kb.Key >= tcell.KeyF1 && kb.Key <= tcell.KeyF12 {
		return fmt.Sprintf("F%d", int(kb.Key-tcell.KeyF1)+1)
	}
	if kb.Mod == tcell.ModCtrl && kb.Rune != 0 {
		return "Ctrl+" + strings.ToUpper(string(kb.Rune))
	}
	return tcell.NewEventKey(kb.Key, kb.Rune, kb.Mod).Name()
}

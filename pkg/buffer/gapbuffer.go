package buffer

import (
	"errors"
	"strings"
)

// ErrRange is returned when an edit addresses runes outside the buffer.
var ErrRange = errors.New("buffer: position out of range")

const defaultGap = 128

// GapBuffer holds the document as runes with a movable gap at the edit point.
// The logical text is buf[:gapStart] followed by buf[gapEnd:].
type GapBuffer struct {
	buf      []rune
	gapStart int
	gapEnd   int

	cacheString string
	cacheLines  []string
	cacheValid  bool
}

// NewGapBuffer creates an empty GapBuffer with an initial capacity.
func NewGapBuffer(capacity int) *GapBuffer {
	if capacity < 1 {
		capacity = defaultGap
	}
	return &GapBuffer{buf: make([]rune, capacity), gapEnd: capacity}
}

// NewGapBufferFromString initializes a GapBuffer with the provided text.
func NewGapBufferFromString(s string) *GapBuffer {
	runes := []rune(s)
	g := NewGapBuffer(len(runes) + defaultGap)
	copy(g.buf, runes)
	g.gapStart = len(runes)
	return g
}

// Len returns the number of runes in the buffer.
func (g *GapBuffer) Len() int {
	return len(g.buf) - (g.gapEnd - g.gapStart)
}

func (g *GapBuffer) gapLen() int { return g.gapEnd - g.gapStart }

func (g *GapBuffer) grow(n int) {
	if g.gapLen() >= n {
		return
	}
	newCap := len(g.buf)*2 + n
	next := make([]rune, newCap)
	copy(next, g.buf[:g.gapStart])
	tail := len(g.buf) - g.gapEnd
	copy(next[newCap-tail:], g.buf[g.gapEnd:])
	g.gapEnd = newCap - tail
	g.buf = next
}

// moveGap places the gap so that it starts at pos.
func (g *GapBuffer) moveGap(pos int) {
	switch {
	case pos < g.gapStart:
		n := g.gapStart - pos
		copy(g.buf[g.gapEnd-n:g.gapEnd], g.buf[pos:g.gapStart])
		g.gapStart -= n
		g.gapEnd -= n
	case pos > g.gapStart:
		n := pos - g.gapStart
		copy(g.buf[g.gapStart:g.gapStart+n], g.buf[g.gapEnd:g.gapEnd+n])
		g.gapStart += n
		g.gapEnd += n
	}
}

// Insert inserts runes at position pos (0..Len()).
func (g *GapBuffer) Insert(pos int, s []rune) error {
	if pos < 0 || pos > g.Len() {
		return ErrRange
	}
	if len(s) == 0 {
		return nil
	}
	g.moveGap(pos)
	g.grow(len(s))
	copy(g.buf[g.gapStart:], s)
	g.gapStart += len(s)
	g.cacheValid = false
	return nil
}

// Delete removes runes in [start,end).
func (g *GapBuffer) Delete(start, end int) error {
	if start < 0 || end < start || end > g.Len() {
		return ErrRange
	}
	if start == end {
		return nil
	}
	g.moveGap(start)
	g.gapEnd += end - start
	g.cacheValid = false
	return nil
}

// Replace swaps the runes in [start,end) for text.
func (g *GapBuffer) Replace(start, end int, text []rune) error {
	if err := g.Delete(start, end); err != nil {
		return err
	}
	return g.Insert(start, text)
}

// Slice returns a copy of the runes in [start,end), clamped to the buffer.
func (g *GapBuffer) Slice(start, end int) []rune {
	if start < 0 {
		start = 0
	}
	if end > g.Len() {
		end = g.Len()
	}
	if start >= end {
		return []rune{}
	}
	out := make([]rune, 0, end-start)
	if start < g.gapStart {
		stop := min(end, g.gapStart)
		out = append(out, g.buf[start:stop]...)
		start = stop
	}
	if start < end {
		off := g.gapLen()
		out = append(out, g.buf[start+off:end+off]...)
	}
	return out
}

// RuneAt returns the rune at index i, or 0 when i is out of bounds.
func (g *GapBuffer) RuneAt(i int) rune {
	if i < 0 || i >= g.Len() {
		return 0
	}
	if i < g.gapStart {
		return g.buf[i]
	}
	return g.buf[i+g.gapLen()]
}

// LineAt returns the rune bounds of line idx (0-based). The end index
// includes the terminating '\n' when present. Past the last line it returns
// the last line's bounds.
func (g *GapBuffer) LineAt(idx int) (start, end int) {
	if idx < 0 {
		idx = 0
	}
	n := g.Len()
	line := 0
	for i := 0; i < n; i++ {
		if g.RuneAt(i) != '\n' {
			continue
		}
		if line == idx {
			return start, i + 1
		}
		line++
		start = i + 1
	}
	return start, n
}

// LineOf returns the 0-based line containing rune offset pos.
func (g *GapBuffer) LineOf(pos int) int {
	if pos > g.Len() {
		pos = g.Len()
	}
	line := 0
	for i := 0; i < pos; i++ {
		if g.RuneAt(i) == '\n' {
			line++
		}
	}
	return line
}

// Stats reports the line count (newlines + 1) and the character count.
func (g *GapBuffer) Stats() (lines, chars int) {
	chars = g.Len()
	lines = 1
	for i := 0; i < chars; i++ {
		if g.RuneAt(i) == '\n' {
			lines++
		}
	}
	return lines, chars
}

// String returns the buffer contents. The result is cached until the next edit.
func (g *GapBuffer) String() string {
	if g.cacheValid {
		return g.cacheString
	}
	var sb strings.Builder
	sb.Grow(g.Len())
	for _, r := range g.buf[:g.gapStart] {
		sb.WriteRune(r)
	}
	for _, r := range g.buf[g.gapEnd:] {
		sb.WriteRune(r)
	}
	g.cacheString = sb.String()
	g.cacheLines = strings.Split(g.cacheString, "\n")
	g.cacheValid = true
	return g.cacheString
}

// Lines returns the buffer split into lines. The result is cached until the
// buffer is modified.
func (g *GapBuffer) Lines() []string {
	if !g.cacheValid {
		_ = g.String()
	}
	return g.cacheLines
}

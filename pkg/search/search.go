// Package search finds literal or regular-expression matches in document
// text and performs literal replace-all over an editable buffer.
//
// All offsets exchanged with callers are rune offsets.
package search

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrPattern reports a query that cannot be compiled.
var ErrPattern = errors.New("search: invalid pattern")

// Range represents a rune-offset half-open interval [Start, End).
// Group names the display category; empty means a plain match highlight.
type Range struct {
	Start int
	End   int
	Group string
}

// Len returns the number of runes covered by the range.
func (r Range) Len() int { return r.End - r.Start }

// Options selects how a query is interpreted.
type Options struct {
	Regex      bool
	IgnoreCase bool
}

// Matcher finds the next occurrence of a compiled query in a string.
type Matcher struct {
	literal string
	fold    bool
	re      *regexp.Regexp
}

// Compile prepares pattern for repeated searches.
func Compile(pattern string, opts Options) (*Matcher, error) {
	if !opts.Regex {
		m := &Matcher{literal: pattern, fold: opts.IgnoreCase}
		if m.fold {
			m.literal = strings.ToLower(pattern)
		}
		return m, nil
	}
	expr := pattern
	if opts.IgnoreCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPattern, err)
	}
	return &Matcher{re: re}, nil
}

// indexFrom returns the byte span of the first match in text at or after
// byte offset off.
func (m *Matcher) indexFrom(text string, off int) (int, int, bool) {
	if m.re != nil {
		loc := m.re.FindStringIndex(text[off:])
		if loc == nil {
			return 0, 0, false
		}
		return off + loc[0], off + loc[1], true
	}
	if m.literal == "" {
		return 0, 0, false
	}
	hay := text[off:]
	if m.fold {
		// Lowering can change byte lengths; search rune by rune instead.
		return foldIndex(text, off, m.literal)
	}
	i := strings.Index(hay, m.literal)
	if i < 0 {
		return 0, 0, false
	}
	return off + i, off + i + len(m.literal), true
}

func foldIndex(text string, off int, lower string) (int, int, bool) {
	want := []rune(lower)
	for i := off; i < len(text); {
		j, k := i, 0
		for k < len(want) && j < len(text) {
			r, size := utf8.DecodeRuneInString(text[j:])
			if strings.ToLower(string(r)) != string(want[k]) {
				break
			}
			j += size
			k++
		}
		if k == len(want) {
			return i, j, true
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return 0, 0, false
}

// Find scans text forward from rune offset start and returns the first match
// of pattern. The boolean is false when nothing matches before the end of
// text. An empty pattern never matches.
func Find(text, pattern string, start int, opts Options) (Range, bool, error) {
	if pattern == "" {
		return Range{}, false, nil
	}
	m, err := Compile(pattern, opts)
	if err != nil {
		return Range{}, false, err
	}
	off := runeToByte(text, start)
	bs, be, ok := m.indexFrom(text, off)
	if !ok {
		return Range{}, false, nil
	}
	rs := start + utf8.RuneCountInString(text[off:bs])
	return Range{Start: rs, End: rs + utf8.RuneCountInString(text[bs:be])}, true, nil
}

// FindAll returns every non-overlapping match of pattern, left to right.
// An empty regex match advances the scan by one rune.
func FindAll(text, pattern string, opts Options) ([]Range, error) {
	if pattern == "" {
		return nil, nil
	}
	m, err := Compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	var res []Range
	off, pos := 0, 0
	for off <= len(text) {
		bs, be, ok := m.indexFrom(text, off)
		if !ok {
			break
		}
		start := pos + utf8.RuneCountInString(text[off:bs])
		end := start + utf8.RuneCountInString(text[bs:be])
		res = append(res, Range{Start: start, End: end})
		off, pos = be, end
		if bs == be {
			if be >= len(text) {
				break
			}
			_, size := utf8.DecodeRuneInString(text[be:])
			off += size
			pos++
		}
	}
	return res, nil
}

// SearchNext returns the index in ranges of the next match at or after pos.
// If pos is past all matches, it wraps and returns 0. Returns -1 if no ranges.
func SearchNext(ranges []Range, pos int) int {
	if len(ranges) == 0 {
		return -1
	}
	for i, r := range ranges {
		if pos < r.End {
			return i
		}
	}
	return 0
}

// runeToByte converts a rune offset into a byte offset in s, clamped to
// [0, len(s)].
func runeToByte(s string, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	n := 0
	for i := range s {
		if n == runeIndex {
			return i
		}
		n++
	}
	return len(s)
}

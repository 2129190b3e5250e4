package search

import "unicode/utf8"

// Editable is the buffer surface replace-all needs. Offsets are runes.
type Editable interface {
	Len() int
	Slice(start, end int) []rune
	Replace(start, end int, text []rune) error
}

// ReplaceAll replaces every literal occurrence of pattern in buf with
// replacement, scanning left to right. After each replacement the scan
// resumes at the end of the inserted text, so occurrences produced by the
// replacement itself are not replaced again. It returns the number of
// replacements made. An empty pattern is a no-op.
//
// If an edit fails, the replacements already made stay in place.
func ReplaceAll(buf Editable, pattern, replacement string) (int, error) {
	if pattern == "" {
		return 0, nil
	}
	m := &Matcher{literal: pattern}
	repl := []rune(replacement)
	patLen := utf8.RuneCountInString(pattern)

	count := 0
	cursor := 0
	for {
		text := string(buf.Slice(cursor, buf.Len()))
		bs, _, ok := m.indexFrom(text, 0)
		if !ok {
			return count, nil
		}
		start := cursor + utf8.RuneCountInString(text[:bs])
		if err := buf.Replace(start, start+patLen, repl); err != nil {
			return count, err
		}
		count++
		cursor = start + len(repl)
	}
}

package buffer

import (
	"unicode"
	"unicode/utf8"
)

// IsWordRune reports whether r is considered part of a word.
// Words consist of letters, digits, or underscore characters.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// WholeWordAt reports whether text[start:end] (byte offsets) is bounded on
// both sides by a non-word rune or the edge of text.
func WholeWordAt(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if IsWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if IsWordRune(r) {
			return false
		}
	}
	return true
}

// PrevWordStart returns the start of the word before pos, skipping any
// non-word runes first.
func PrevWordStart(g *GapBuffer, pos int) int {
	if pos > g.Len() {
		pos = g.Len()
	}
	for pos > 0 && !IsWordRune(g.RuneAt(pos-1)) {
		pos--
	}
	for pos > 0 && IsWordRune(g.RuneAt(pos-1)) {
		pos--
	}
	return pos
}

// NextWordStart returns the index of the start of the next word after pos.
func NextWordStart(g *GapBuffer, pos int) int {
	n := g.Len()
	if pos >= n {
		return n
	}
	for pos < n && IsWordRune(g.RuneAt(pos)) {
		pos++
	}
	for pos < n && !IsWordRune(g.RuneAt(pos)) {
		pos++
	}
	return pos
}

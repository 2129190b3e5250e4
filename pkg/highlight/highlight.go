// Package highlight tags reserved words, quoted strings and line comments
// in a document. Every call recomputes the full span set from scratch.
package highlight

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"example.com/quill/pkg/buffer"
)

// ErrHighlight marks a failed highlighting pass. Spans applied before the
// failure stay in place.
var ErrHighlight = errors.New("highlight: pass aborted")

var (
	stringRe  = regexp.MustCompile(`"[^"\n]*"|'[^'\n]*'`)
	commentRe = regexp.MustCompile(`#.*`)
)

// PythonKeywords is the default reserved-word set.
var PythonKeywords = []string{
	"False", "None", "True", "and", "as", "assert", "async", "await",
	"break", "class", "continue", "def", "del", "elif", "else", "except",
	"finally", "for", "from", "global", "if", "import", "in", "is",
	"lambda", "nonlocal", "not", "or", "pass", "raise", "return", "try",
	"while", "with", "yield",
}

// Highlighter holds the reserved words tagged as keywords.
type Highlighter struct {
	Keywords []string
}

// New returns a Highlighter for keywords; nil selects PythonKeywords.
func New(keywords []string) *Highlighter {
	if keywords == nil {
		keywords = PythonKeywords
	}
	return &Highlighter{Keywords: keywords}
}

// Recompute clears the keyword, string and comment spans in tags and tags
// text again: keywords first, then strings, then comments. Match spans are
// not touched.
func (h *Highlighter) Recompute(tags *Tags, text string) error {
	tags.Remove(Keyword)
	tags.Remove(String)
	tags.Remove(Comment)

	conv := offsets{text: text}
	for _, kw := range h.Keywords {
		if err := validKeyword(kw); err != nil {
			return err
		}
		off := 0
		for {
			i := strings.Index(text[off:], kw)
			if i < 0 {
				break
			}
			start := off + i
			end := start + len(kw)
			if buffer.WholeWordAt(text, start, end) {
				tags.Add(Keyword, conv.rune(start), conv.rune(end))
				off = end
				continue
			}
			_, size := utf8.DecodeRuneInString(text[start:])
			off = start + size
		}
		conv.reset()
	}

	tagAll(tags, String, stringRe, text, &conv)
	conv.reset()
	tagAll(tags, Comment, commentRe, text, &conv)
	return nil
}

func tagAll(tags *Tags, cat Category, re *regexp.Regexp, text string, conv *offsets) {
	off := 0
	for off < len(text) {
		loc := re.FindStringIndex(text[off:])
		if loc == nil {
			return
		}
		start, end := off+loc[0], off+loc[1]
		tags.Add(cat, conv.rune(start), conv.rune(end))
		off = end
	}
}

func validKeyword(kw string) error {
	if kw == "" {
		return fmt.Errorf("%w: empty reserved word", ErrHighlight)
	}
	for _, r := range kw {
		if !buffer.IsWordRune(r) {
			return fmt.Errorf("%w: reserved word %q contains %q", ErrHighlight, kw, r)
		}
	}
	return nil
}

// offsets converts increasing byte offsets of text into rune offsets
// without rescanning from the start each time.
type offsets struct {
	text  string
	bytes int
	runes int
}

func (o *offsets) rune(b int) int {
	if b < o.bytes {
		o.reset()
	}
	o.runes += utf8.RuneCountInString(o.text[o.bytes:b])
	o.bytes = b
	return o.runes
}

func (o *offsets) reset() {
	o.bytes, o.runes = 0, 0
}

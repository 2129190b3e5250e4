package highlight

import "example.com/quill/pkg/search"

// Category is the display class of a tagged span.
type Category int

const (
	Keyword Category = iota
	String
	Comment
	Match
)

var categoryNames = [...]string{
	Keyword: "keyword",
	String:  "string",
	Comment: "comment",
	Match:   "match",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// Categories lists every category in application order. Later categories
// are drawn over earlier ones.
var Categories = []Category{Keyword, String, Comment, Match}

// Tags is the set of styled spans currently applied to a buffer.
// The zero value is ready to use.
type Tags struct {
	spans [len(categoryNames)][]search.Range
}

// Add tags [start,end) with cat. Empty ranges are ignored.
func (t *Tags) Add(cat Category, start, end int) {
	if end <= start {
		return
	}
	t.spans[cat] = append(t.spans[cat], search.Range{Start: start, End: end, Group: cat.String()})
}

// Remove clears every span of cat.
func (t *Tags) Remove(cat Category) {
	t.spans[cat] = nil
}

// Spans returns the spans tagged with cat in the order they were added.
func (t *Tags) Spans(cat Category) []search.Range {
	return t.spans[cat]
}

// Len returns the total number of spans across categories.
func (t *Tags) Len() int {
	n := 0
	for _, s := range t.spans {
		n += len(s)
	}
	return n
}

// Layers returns all spans, lowest layer first, for rendering.
func (t *Tags) Layers() []search.Range {
	out := make([]search.Range, 0, t.Len())
	for _, cat := range Categories {
		out = append(out, t.spans[cat]...)
	}
	return out
}

package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runes is a minimal Editable for tests.
type runes struct {
	text []rune
	fail int
}

func (r *runes) Len() int { return len(r.text) }

func (r *runes) Slice(start, end int) []rune {
	return append([]rune(nil), r.text[start:end]...)
}

func (r *runes) Replace(start, end int, text []rune) error {
	if r.fail == 1 {
		return errors.New("boom")
	}
	r.fail--
	out := append([]rune(nil), r.text[:start]...)
	out = append(out, text...)
	r.text = append(out, r.text[end:]...)
	return nil
}

func TestReplaceAll_DoesNotRevisitInsertedText(t *testing.T) {
	buf := &runes{text: []rune("foofoo")}
	n, err := ReplaceAll(buf, "foo", "barfoo")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "barfoobarfoo", string(buf.text))
}

func TestReplaceAll_EmptyPattern(t *testing.T) {
	buf := &runes{text: []rune("abc")}
	n, err := ReplaceAll(buf, "", "x")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "abc", string(buf.text))
}

func TestReplaceAll_Shrink(t *testing.T) {
	buf := &runes{text: []rune("ñaa-ñaa-ñ")}
	n, err := ReplaceAll(buf, "ñaa", "")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "--ñ", string(buf.text))
}

func TestReplaceAll_NonOverlapping(t *testing.T) {
	buf := &runes{text: []rune("aaa")}
	n, err := ReplaceAll(buf, "aa", "b")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "ba", string(buf.text))
}

func TestReplaceAll_StopsOnError(t *testing.T) {
	buf := &runes{text: []rune("x.x.x"), fail: 2}
	n, err := ReplaceAll(buf, "x", "y")
	require.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "y.x.x", string(buf.text))
}

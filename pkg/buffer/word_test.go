package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWholeWordAt(t *testing.T) {
	text := "import important _import"
	assert.True(t, WholeWordAt(text, 0, 6))
	assert.False(t, WholeWordAt(text, 7, 13))
	assert.False(t, WholeWordAt(text, 18, 24))
	assert.True(t, WholeWordAt("(if)", 1, 3))
	assert.False(t, WholeWordAt("éif", 2, 4))
}

func TestWordMotions(t *testing.T) {
	g := NewGapBufferFromString("one two  three")
	assert.Equal(t, 4, NextWordStart(g, 0))
	assert.Equal(t, 9, NextWordStart(g, 4))
	assert.Equal(t, g.Len(), NextWordStart(g, 9))
	assert.Equal(t, 4, PrevWordStart(g, 9))
	assert.Equal(t, 0, PrevWordStart(g, 3))
	assert.Equal(t, 9, PrevWordStart(g, 99))
}

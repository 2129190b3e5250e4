package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	hits := make(chan string, 16)
	w, err := New(func(p string) { hits <- p }, nil)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Watch(path))

	require.NoError(t, os.WriteFile(path, []byte("b"), 0o644))
	select {
	case got := <-hits:
		want, _ := filepath.Abs(path)
		assert.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	hits := make(chan string, 16)
	w, err := New(func(p string) { hits <- p }, nil)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Watch(path))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	select {
	case got := <-hits:
		t.Fatalf("unexpected change for %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRetargetAndStop(t *testing.T) {
	w, err := New(func(string) {}, nil)
	require.NoError(t, err)
	first := filepath.Join(t.TempDir(), "a.txt")
	second := filepath.Join(t.TempDir(), "b.txt")

	require.NoError(t, w.Watch(first))
	require.NoError(t, w.Watch(second))
	want, _ := filepath.Abs(second)
	assert.Equal(t, want, w.Path())

	require.NoError(t, w.Watch(""))
	assert.Empty(t, w.Path())

	assert.Error(t, w.Watch(filepath.Join(t.TempDir(), "missing", "c.txt")))
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

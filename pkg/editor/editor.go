// Package editor holds the state of one editing session: the open document,
// its highlighting, undo history and the persisted settings record.
package editor

import (
	"bytes"
	"errors"
	"fmt"
	"hash/fnv"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"example.com/quill/pkg/buffer"
	"example.com/quill/pkg/config"
	"example.com/quill/pkg/highlight"
	"example.com/quill/pkg/history"
	"example.com/quill/pkg/search"
)

// Error kinds surfaced to the presentation layer.
var (
	ErrFileNotFound = errors.New("file not found")
	ErrIO           = errors.New("i/o failure")
	ErrNoPath       = errors.New("no file path set")
)

// AppName is shown in window titles.
const AppName = "quill"

// Session manages the single open document.
type Session struct {
	FilePath string
	Buf      *buffer.GapBuffer
	Dirty    bool
	History  *history.History
	Tags     highlight.Tags

	Settings     config.Settings
	SettingsPath string

	hl       *highlight.Highlighter
	diskHash uint64
}

// New creates a session with an empty document. keywords selects the
// highlighted reserved words; nil means the default set.
func New(settings config.Settings, settingsPath string, keywords []string) *Session {
	return &Session{
		Buf:          buffer.NewGapBuffer(0),
		History:      history.New(),
		Settings:     settings,
		SettingsPath: settingsPath,
		hl:           highlight.New(keywords),
	}
}

// Title returns "<name> - quill", or just the application name when no
// file is associated.
func (s *Session) Title() string {
	if s.FilePath == "" {
		return AppName
	}
	return filepath.Base(s.FilePath) + " - " + AppName
}

// Stats returns the line and character counts of the document.
func (s *Session) Stats() (lines, chars int) {
	return s.Buf.Stats()
}

// Text returns the document contents.
func (s *Session) Text() string { return s.Buf.String() }

// NewDocument discards the buffer and the associated path.
func (s *Session) NewDocument() {
	s.Buf = buffer.NewGapBuffer(0)
	s.FilePath = ""
	s.Dirty = false
	s.diskHash = 0
	s.History.Reset()
	s.Tags = highlight.Tags{}
}

// Open replaces the document with the UTF-8 contents of path. On failure the
// current document and path are left as they were.
func (s *Session) Open(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return classify(path, err)
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("%w: %s is not valid UTF-8", ErrIO, path)
	}
	normalized := strings.ReplaceAll(string(data), "\r\n", "\n")
	s.Buf = buffer.NewGapBufferFromString(normalized)
	s.FilePath = path
	s.Dirty = false
	s.diskHash = hashOf(data)
	s.History.Reset()
	s.Tags = highlight.Tags{}
	return nil
}

// Save writes the document to the associated path.
func (s *Session) Save() error {
	if s.FilePath == "" {
		return ErrNoPath
	}
	return s.writeTo(s.FilePath)
}

// SaveAs writes the document to path and associates the session with it.
// The association only changes when the write succeeds.
func (s *Session) SaveAs(path string) error {
	if path == "" {
		return ErrNoPath
	}
	if err := s.writeTo(path); err != nil {
		return err
	}
	s.FilePath = path
	return nil
}

// Autosave writes the document when a path is set, whether or not it is
// dirty. The boolean reports whether a write was attempted.
func (s *Session) Autosave() (bool, error) {
	if s.FilePath == "" {
		return false, nil
	}
	return true, s.writeTo(s.FilePath)
}

func (s *Session) writeTo(path string) error {
	data := []byte(s.Buf.String())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	s.Dirty = false
	s.diskHash = hashOf(data)
	return nil
}

// ChangedOnDisk reports whether the associated file no longer holds the
// content last read or written by this session.
func (s *Session) ChangedOnDisk() bool {
	if s.FilePath == "" {
		return false
	}
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		return errors.Is(err, fs.ErrNotExist)
	}
	return hashOf(data) != s.diskHash
}

// Highlight recomputes keyword, string and comment spans over the whole
// document.
func (s *Session) Highlight() error {
	return s.hl.Recompute(&s.Tags, s.Buf.String())
}

// Find tags every match of pattern as a search match, replacing earlier
// matches, and returns them.
func (s *Session) Find(pattern string, opts search.Options) ([]search.Range, error) {
	s.Tags.Remove(highlight.Match)
	ranges, err := search.FindAll(s.Buf.String(), pattern, opts)
	if err != nil {
		return nil, err
	}
	for _, r := range ranges {
		s.Tags.Add(highlight.Match, r.Start, r.End)
	}
	return ranges, nil
}

// ClearMatches drops the search-match spans.
func (s *Session) ClearMatches() {
	s.Tags.Remove(highlight.Match)
}

// ReplaceAll replaces every literal occurrence of pattern as one undo step
// and returns the number of replacements. Highlighting is recomputed.
func (s *Session) ReplaceAll(pattern, replacement string) (int, error) {
	s.Tags.Remove(highlight.Match)
	rec := &recorder{s: s}
	n, err := search.ReplaceAll(rec, pattern, replacement)
	if rec.grouped {
		s.History.End()
	}
	if n == 0 && err == nil {
		return 0, nil
	}
	return n, errors.Join(err, s.Highlight())
}

// Insert inserts text at pos and records it for undo.
func (s *Session) Insert(pos int, text string) error {
	if text == "" {
		return nil
	}
	if err := s.Buf.Insert(pos, []rune(text)); err != nil {
		return err
	}
	s.History.RecordInsert(pos, text)
	s.Dirty = true
	return nil
}

// Delete removes [start,end) and records it for undo.
func (s *Session) Delete(start, end int) error {
	if start >= end {
		return nil
	}
	text := string(s.Buf.Slice(start, end))
	if err := s.Buf.Delete(start, end); err != nil {
		return err
	}
	s.History.RecordDelete(start, text)
	s.Dirty = true
	return nil
}

// Undo reverts the last edit step and returns the new cursor position.
func (s *Session) Undo() (int, error) {
	c, err := s.History.Undo(s.Buf)
	if err == nil {
		s.Dirty = true
	}
	return c, err
}

// Redo reapplies the last undone step and returns the new cursor position.
func (s *Session) Redo() (int, error) {
	c, err := s.History.Redo(s.Buf)
	if err == nil {
		s.Dirty = true
	}
	return c, err
}

// SetFont updates the font record and persists the settings.
func (s *Session) SetFont(family string, size int) error {
	next := s.Settings
	next.Font = config.Font{Family: family, Size: size}
	if err := next.Validate(); err != nil {
		return err
	}
	s.Settings = next
	return s.SaveSettings()
}

// SaveSettings writes the settings record wholesale.
func (s *Session) SaveSettings() error {
	if s.SettingsPath == "" {
		return nil
	}
	return config.SaveSettings(s.SettingsPath, s.Settings)
}

// Close persists the settings on exit.
func (s *Session) Close() error {
	return s.SaveSettings()
}

// recorder applies replace-all edits to the buffer and the undo history.
// The undo group opens on the first replacement.
type recorder struct {
	s       *Session
	grouped bool
}

func (r *recorder) Len() int                    { return r.s.Buf.Len() }
func (r *recorder) Slice(start, end int) []rune { return r.s.Buf.Slice(start, end) }

func (r *recorder) Replace(start, end int, text []rune) error {
	if !r.grouped {
		r.s.History.Begin()
		r.grouped = true
	}
	if err := r.s.Delete(start, end); err != nil {
		return err
	}
	return r.s.Insert(start, string(text))
}

func classify(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	return fmt.Errorf("%w: %v", ErrIO, err)
}

func hashOf(data []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n")))
	return h.Sum64()
}

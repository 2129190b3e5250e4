package history

import (
	"errors"
	"fmt"
)

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Storage is the buffer surface history replays operations against.
// Positions are rune indices.
type Storage interface {
	Insert(pos int, s []rune) error
	Delete(start, end int) error
}

// OpType represents the type of an edit operation.
type OpType int

const (
	InsertOp OpType = iota
	DeleteOp
)

// Operation captures a single edit for undo/redo.
// Pos is a rune index; Text is the inserted/deleted text. Operations that
// share a non-zero Group are undone and redone together.
type Operation struct {
	Type  OpType
	Pos   int
	Text  string
	Group int
}

// History keeps stacks of past/future operations for undo/redo.
type History struct {
	past      []Operation
	future    []Operation
	group     int
	nextGroup int
}

// New creates an empty History.
func New() *History { return &History{} }

// Begin starts a group: every operation recorded until End forms one undo step.
func (h *History) Begin() {
	h.nextGroup++
	h.group = h.nextGroup
}

// End closes the current group.
func (h *History) End() { h.group = 0 }

// Reset drops all recorded operations.
func (h *History) Reset() {
	h.past, h.future, h.group = nil, nil, 0
}

// RecordInsert records an insertion at pos.
func (h *History) RecordInsert(pos int, text string) {
	h.record(InsertOp, pos, text)
}

// RecordDelete records a deletion at pos of the given text.
func (h *History) RecordDelete(pos int, text string) {
	h.record(DeleteOp, pos, text)
}

func (h *History) record(t OpType, pos int, text string) {
	if text == "" {
		return
	}
	h.past = append(h.past, Operation{Type: t, Pos: pos, Text: text, Group: h.group})
	h.future = nil
}

// CanUndo reports whether there is an operation to undo.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether there is an operation to redo.
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Undo reverts the last step and returns the cursor position after it.
func (h *History) Undo(buf Storage) (int, error) {
	if !h.CanUndo() {
		return 0, ErrNothingToUndo
	}
	var cursor int
	group := h.past[len(h.past)-1].Group
	for h.CanUndo() {
		op := h.past[len(h.past)-1]
		if op.Group != group {
			break
		}
		h.past = h.past[:len(h.past)-1]
		c, err := apply(buf, op, true)
		if err != nil {
			return c, err
		}
		cursor = c
		h.future = append(h.future, op)
		if group == 0 {
			break
		}
	}
	return cursor, nil
}

// Redo reapplies the next step and returns the cursor position after it.
func (h *History) Redo(buf Storage) (int, error) {
	if !h.CanRedo() {
		return 0, ErrNothingToRedo
	}
	var cursor int
	group := h.future[len(h.future)-1].Group
	for h.CanRedo() {
		op := h.future[len(h.future)-1]
		if op.Group != group {
			break
		}
		h.future = h.future[:len(h.future)-1]
		c, err := apply(buf, op, false)
		if err != nil {
			return c, err
		}
		cursor = c
		h.past = append(h.past, op)
		if group == 0 {
			break
		}
	}
	return cursor, nil
}

// apply replays op, or its inverse when undo is set, and returns where the
// cursor lands.
func apply(buf Storage, op Operation, undo bool) (int, error) {
	insert := op.Type == InsertOp
	if undo {
		insert = !insert
	}
	n := len([]rune(op.Text))
	if insert {
		if err := buf.Insert(op.Pos, []rune(op.Text)); err != nil {
			return op.Pos, fmt.Errorf("replay insert at %d: %w", op.Pos, err)
		}
		return op.Pos + n, nil
	}
	if err := buf.Delete(op.Pos, op.Pos+n); err != nil {
		return op.Pos, fmt.Errorf("replay delete at %d: %w", op.Pos, err)
	}
	return op.Pos, nil
}

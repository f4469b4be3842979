package controller

import "github.com/rjsamson/tbuffer/buffer"

// UndoErr is Undo, but reports ErrNoop instead of a bare bool when the
// undo stack was empty.
func (c *Controller) UndoErr() error {
	if !c.Undo() {
		return buffer.ErrNoop
	}
	return nil
}

// RedoErr is Redo, but reports ErrNoop instead of a bare bool when the
// redo stack was empty.
func (c *Controller) RedoErr() error {
	if !c.Redo() {
		return buffer.ErrNoop
	}
	return nil
}

// ReplaceRangeErr is ReplaceRange, but reports ErrInvalidRange instead of
// a bare bool when the range failed validation.
func (c *Controller) ReplaceRangeErr(startRow, startCol, endRow, endCol int, text string) error {
	if !c.ReplaceRange(startRow, startCol, endRow, endCol, text) {
		return buffer.ErrInvalidRange
	}
	return nil
}

// SetText replaces the entire buffer content, pushing one undo step.
func (c *Controller) SetText(text string) { c.apply(buffer.SetTextAction(text, true)) }

// Insert types text at the cursor, first running it through drag-and-drop
// path inference.
func (c *Controller) Insert(text string) {
	text = c.maybeInferPath(text)
	c.apply(buffer.ApplyOperationsAction([]buffer.Op{buffer.InsertOp(text)}))
}

// Newline inserts a line break at the cursor.
func (c *Controller) Newline() {
	c.apply(buffer.ApplyOperationsAction([]buffer.Op{buffer.InsertOp("\n")}))
}

// Backspace deletes the code point left of the cursor.
func (c *Controller) Backspace() {
	c.apply(buffer.ApplyOperationsAction([]buffer.Op{buffer.BackspaceOp()}))
}

// ApplyOperations runs an arbitrary batch of insert/backspace primitives
// as a single undo step, the way a paste or an IME commit would.
func (c *Controller) ApplyOperations(ops []buffer.Op) {
	c.apply(buffer.ApplyOperationsAction(ops))
}

// Delete deletes the code point at the cursor (forward delete).
func (c *Controller) Delete() { c.apply(buffer.DeleteAction()) }

// DeleteWordLeft deletes the word run left of the cursor.
func (c *Controller) DeleteWordLeft() { c.apply(buffer.DeleteWordLeftAction()) }

// DeleteWordRight deletes the word run right of the cursor.
func (c *Controller) DeleteWordRight() { c.apply(buffer.DeleteWordRightAction()) }

// KillLineRight deletes from the cursor to the end of the logical line.
func (c *Controller) KillLineRight() { c.apply(buffer.KillLineRightAction()) }

// KillLineLeft deletes from the start of the logical line to the cursor.
func (c *Controller) KillLineLeft() { c.apply(buffer.KillLineLeftAction()) }

// Move moves the cursor one step in visual space.
func (c *Controller) Move(dir buffer.Direction) bool {
	return c.apply(buffer.MoveAction(dir, c.layout)).Changed
}

// MoveToOffset places the cursor at the logical position corresponding
// to a code-point offset into the buffer's text.
func (c *Controller) MoveToOffset(offset int) { c.apply(buffer.MoveToOffsetAction(offset)) }

// Undo pops the most recent undo snapshot, if any, and reports whether
// it did.
func (c *Controller) Undo() bool { return c.apply(buffer.UndoAction()).Ok }

// Redo pops the most recent redo snapshot, if any, and reports whether
// it did.
func (c *Controller) Redo() bool { return c.apply(buffer.RedoAction()).Ok }

// ReplaceRange replaces the logical span [start, end) with text and
// reports whether the range was valid.
func (c *Controller) ReplaceRange(startRow, startCol, endRow, endCol int, text string) bool {
	r := buffer.Range{StartRow: startRow, StartCol: startCol, EndRow: endRow, EndCol: endCol}
	return c.apply(buffer.ReplaceRangeAction(r, text)).Ok
}

// ReplaceRangeByOffset is ReplaceRange expressed in code-point offsets
// rather than logical (row, col) pairs.
func (c *Controller) ReplaceRangeByOffset(startOffset, endOffset int, text string) bool {
	text0 := c.state.Text()
	start := buffer.OffsetToLogical(text0, startOffset)
	end := buffer.OffsetToLogical(text0, endOffset)
	return c.ReplaceRange(start.Row, start.Col, end.Row, end.Col, text)
}

// StartSelection anchors a new selection at the current cursor.
func (c *Controller) StartSelection() { c.apply(buffer.StartSelectionAction()) }

// Copy copies the active selection's text to the internal clipboard and
// returns it, or nil if there is no active selection.
func (c *Controller) Copy() *string {
	res := c.apply(buffer.CopyAction())
	if !res.Ok {
		return nil
	}
	cp := res.Copied
	return &cp
}

// Paste inserts the internal clipboard's contents at the cursor and
// reports whether anything was pasted.
func (c *Controller) Paste() bool { return c.apply(buffer.PasteAction()).Ok }

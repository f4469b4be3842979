package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func apply(t *testing.T, s State, a Action) (State, Result) {
	t.Helper()
	ns, res := Apply(s, a)
	return ns, res
}

func TestApplyOperationsInsertSplitsAcrossLines(t *testing.T) {
	s := NewState("ab", 1)
	ns, res := apply(t, s, ApplyOperationsAction([]Op{InsertOp("X\nY")}))
	assert.True(t, res.Changed)
	assert.Equal(t, []string{"aX", "Yb"}, ns.Lines)
	assert.Equal(t, Position{Row: 1, Col: 1}, ns.Cursor)
}

func TestApplyOperationsExpandsDELIntoBackspace(t *testing.T) {
	s := NewState("ab", 2)
	// "c\x7f" types a 'c' then deletes it again via an embedded DEL byte.
	ns, res := apply(t, s, ApplyOperationsAction([]Op{InsertOp("c\x7f")}))
	assert.True(t, res.Changed)
	assert.Equal(t, []string{"ab"}, ns.Lines)
	assert.Equal(t, Position{Row: 0, Col: 2}, ns.Cursor)
}

func TestApplyOperationsIsSingleUndoStep(t *testing.T) {
	s := NewState("", 0)
	ns, _ := apply(t, s, ApplyOperationsAction([]Op{InsertOp("a"), InsertOp("b"), InsertOp("c")}))
	assert.Equal(t, []string{"abc"}, ns.Lines)
	assert.Len(t, ns.UndoStack, 1)
	undone, _ := apply(t, ns, UndoAction())
	assert.Equal(t, []string{""}, undone.Lines)
}

func TestBackspaceAtStartOfBufferIsNoop(t *testing.T) {
	s := NewState("abc", 0)
	ns, res := apply(t, s, ApplyOperationsAction([]Op{BackspaceOp()}))
	assert.False(t, res.Changed)
	assert.Equal(t, s.Lines, ns.Lines)
}

func TestBackspaceAtColumnZeroMergesWithPreviousLine(t *testing.T) {
	s := NewState("foo\nbar", 4) // cursor at row1,col0
	ns, res := apply(t, s, ApplyOperationsAction([]Op{BackspaceOp()}))
	assert.True(t, res.Changed)
	assert.Equal(t, []string{"foobar"}, ns.Lines)
	assert.Equal(t, Position{Row: 0, Col: 3}, ns.Cursor)
}

func TestDeleteAtEndOfBufferIsNoop(t *testing.T) {
	s := NewState("abc", 3)
	ns, res := apply(t, s, DeleteAction())
	assert.False(t, res.Changed)
	assert.Equal(t, s.Lines, ns.Lines)
}

func TestDeleteAtEndOfNonLastLineJoinsNextLine(t *testing.T) {
	s := NewState("foo\nbar", 3)
	ns, res := apply(t, s, DeleteAction())
	assert.True(t, res.Changed)
	assert.Equal(t, []string{"foobar"}, ns.Lines)
}

func TestDeleteWordLeftSkipsNonWordThenWordRun(t *testing.T) {
	s := NewState("foo, bar", 8) // cursor at end
	ns, res := apply(t, s, DeleteWordLeftAction())
	assert.True(t, res.Changed)
	assert.Equal(t, []string{"foo, "}, ns.Lines)
	assert.Equal(t, Position{Row: 0, Col: 5}, ns.Cursor)
}

func TestDeleteWordLeftWhenEntirePrefixIsPunctuationDeletesOneCodePoint(t *testing.T) {
	s := NewState(" ,.;!?x", 6) // cursor right before 'x', prefix is all whitespace/punct
	ns, res := apply(t, s, DeleteWordLeftAction())
	assert.True(t, res.Changed)
	assert.Equal(t, Position{Row: 0, Col: 5}, ns.Cursor)
	assert.Equal(t, []string{" ,.;!x"}, ns.Lines)
}

func TestDeleteWordLeftAtBufferStartIsNoop(t *testing.T) {
	s := NewState("abc", 0)
	ns, res := apply(t, s, DeleteWordLeftAction())
	assert.False(t, res.Changed)
	assert.Equal(t, s.Lines, ns.Lines)
}

func TestDeleteWordRightSkipsNonWordThenWordRun(t *testing.T) {
	s := NewState("foo, bar", 0)
	ns, res := apply(t, s, DeleteWordRightAction())
	assert.True(t, res.Changed)
	assert.Equal(t, []string{", bar"}, ns.Lines)
	assert.Equal(t, Position{Row: 0, Col: 0}, ns.Cursor)
}

func TestDeleteWordRightAtEndOfLastLineIsNoop(t *testing.T) {
	s := NewState("abc", 3)
	ns, res := apply(t, s, DeleteWordRightAction())
	assert.False(t, res.Changed)
	assert.Equal(t, s.Lines, ns.Lines)
}

func TestKillLineRightDeletesToEndOfLine(t *testing.T) {
	s := NewState("hello world", 5)
	ns, res := apply(t, s, KillLineRightAction())
	assert.True(t, res.Changed)
	assert.Equal(t, []string{"hello"}, ns.Lines)
	assert.Equal(t, Position{Row: 0, Col: 5}, ns.Cursor)
}

func TestKillLineLeftDeletesToStartOfLineAndMovesCursor(t *testing.T) {
	s := NewState("hello world", 5)
	ns, res := apply(t, s, KillLineLeftAction())
	assert.True(t, res.Changed)
	assert.Equal(t, []string{" world"}, ns.Lines)
	assert.Equal(t, Position{Row: 0, Col: 0}, ns.Cursor)
}

func TestKillLineLeftAtColumnZeroIsNoop(t *testing.T) {
	s := NewState("hello", 0)
	ns, res := apply(t, s, KillLineLeftAction())
	assert.False(t, res.Changed)
	assert.Equal(t, s.Lines, ns.Lines)
}

func TestMoveUpDownPreservesPreferredColumnAcrossShortLine(t *testing.T) {
	s := NewState("hello\nhi\nworld", 0)
	s.Cursor = Position{Row: 0, Col: 4}
	layout := ComputeLayout(s.Lines, s.Cursor, 80)
	ns, _ := apply(t, s, MoveAction(DirDown, layout))
	assert.Equal(t, Position{Row: 1, Col: 2}, ns.Cursor) // clamped to "hi"'s length
	require_ := ns.PreferredCol
	assert.NotNil(t, require_)
	assert.Equal(t, 4, *require_)

	layout2 := ComputeLayout(ns.Lines, ns.Cursor, 80)
	ns2, _ := apply(t, ns, MoveAction(DirDown, layout2))
	assert.Equal(t, Position{Row: 2, Col: 4}, ns2.Cursor) // preferred col restored on longer line
}

func TestMoveLeftClearsPreferredColumn(t *testing.T) {
	s := NewState("hello", 3)
	p := 9
	s.PreferredCol = &p
	layout := ComputeLayout(s.Lines, s.Cursor, 80)
	ns, res := apply(t, s, MoveAction(DirLeft, layout))
	assert.True(t, res.Changed)
	assert.Nil(t, ns.PreferredCol)
	assert.Equal(t, Position{Row: 0, Col: 2}, ns.Cursor)
}

func TestMoveRightAtEndOfLineWrapsToNextLine(t *testing.T) {
	s := NewState("ab\ncd", 2)
	layout := ComputeLayout(s.Lines, s.Cursor, 80)
	ns, res := apply(t, s, MoveAction(DirRight, layout))
	assert.True(t, res.Changed)
	assert.Equal(t, Position{Row: 1, Col: 0}, ns.Cursor)
}

func TestMoveHomeAndEnd(t *testing.T) {
	s := NewState("hello world", 5)
	layout := ComputeLayout(s.Lines, s.Cursor, 80)
	home, _ := apply(t, s, MoveAction(DirHome, layout))
	assert.Equal(t, Position{Row: 0, Col: 0}, home.Cursor)
	end, _ := apply(t, s, MoveAction(DirEnd, layout))
	assert.Equal(t, Position{Row: 0, Col: 11}, end.Cursor)
}

func TestMoveToOffsetConvertsOffsetToPosition(t *testing.T) {
	s := NewState("hello\nworld", 0)
	ns, res := apply(t, s, MoveToOffsetAction(8))
	assert.True(t, res.Changed)
	assert.Equal(t, Position{Row: 1, Col: 2}, ns.Cursor)
}

func TestReplaceRangeReplacesSpanAndPlacesCursorAtEnd(t *testing.T) {
	s := NewState("hello world", 0)
	ns, res := apply(t, s, ReplaceRangeAction(Range{StartRow: 0, StartCol: 6, EndRow: 0, EndCol: 11}, "there"))
	assert.True(t, res.Ok)
	assert.Equal(t, []string{"hello there"}, ns.Lines)
	assert.Equal(t, Position{Row: 0, Col: 11}, ns.Cursor)
}

func TestReplaceRangeRejectsInvertedRange(t *testing.T) {
	s := NewState("hello world", 0)
	ns, res := apply(t, s, ReplaceRangeAction(Range{StartRow: 0, StartCol: 5, EndRow: 0, EndCol: 2}, "x"))
	assert.False(t, res.Ok)
	assert.Equal(t, s.Lines, ns.Lines)
}

func TestReplaceRangeRejectsOutOfBoundsRow(t *testing.T) {
	s := NewState("hello", 0)
	ns, res := apply(t, s, ReplaceRangeAction(Range{StartRow: 0, StartCol: 0, EndRow: 5, EndCol: 0}, "x"))
	assert.False(t, res.Ok)
	assert.Equal(t, s.Lines, ns.Lines)
}

func TestUndoRestoresExactPriorStateAfterSingleMutatingAction(t *testing.T) {
	s := NewState("hello", 5)
	ns, _ := apply(t, s, ApplyOperationsAction([]Op{InsertOp(" world")}))
	undone, res := apply(t, ns, UndoAction())
	assert.True(t, res.Ok)
	assert.Equal(t, s.Lines, undone.Lines)
	assert.Equal(t, s.Cursor, undone.Cursor)
}

func TestUndoThenRedoRestoresPostEditState(t *testing.T) {
	s := NewState("hello", 5)
	ns, _ := apply(t, s, ApplyOperationsAction([]Op{InsertOp(" world")}))
	undone, _ := apply(t, ns, UndoAction())
	redone, res := apply(t, undone, RedoAction())
	assert.True(t, res.Ok)
	assert.Equal(t, ns.Lines, redone.Lines)
	assert.Equal(t, ns.Cursor, redone.Cursor)
}

func TestUndoOnEmptyStackIsNoop(t *testing.T) {
	s := NewState("hello", 0)
	ns, res := apply(t, s, UndoAction())
	assert.False(t, res.Ok)
	assert.Equal(t, s.Lines, ns.Lines)
}

func TestMutatingActionClearsRedoStack(t *testing.T) {
	s := NewState("hello", 5)
	ns, _ := apply(t, s, ApplyOperationsAction([]Op{InsertOp(" world")}))
	undone, _ := apply(t, ns, UndoAction())
	assert.NotEmpty(t, undone.RedoStack)
	typed, _ := apply(t, undone, ApplyOperationsAction([]Op{InsertOp("!")}))
	assert.Empty(t, typed.RedoStack)
}

func TestCopyRequiresActiveSelection(t *testing.T) {
	s := NewState("hello world", 0)
	ns, res := apply(t, s, CopyAction())
	assert.False(t, res.Ok)
	assert.Equal(t, "", res.Copied)
	assert.Equal(t, s, ns)
}

func TestStartSelectionThenCopyExtractsSpan(t *testing.T) {
	s := NewState("hello world", 0)
	s, _ = apply(t, s, StartSelectionAction())
	s.Cursor = Position{Row: 0, Col: 5}
	ns, res := apply(t, s, CopyAction())
	assert.True(t, res.Ok)
	assert.Equal(t, "hello", res.Copied)
	assert.Equal(t, "hello", ns.Clipboard)
	assert.NotNil(t, ns.SelectionAnchor) // COPY never clears the selection
}

func TestPasteInsertsClipboardContent(t *testing.T) {
	s := NewState("hello world", 0)
	s, _ = apply(t, s, StartSelectionAction())
	s.Cursor = Position{Row: 0, Col: 5}
	s, _ = apply(t, s, CopyAction())
	s.Cursor = Position{Row: 0, Col: 11}
	ns, res := apply(t, s, PasteAction())
	assert.True(t, res.Ok)
	assert.Equal(t, []string{"hello worldhello"}, ns.Lines)
}

func TestPasteWithEmptyClipboardIsNoop(t *testing.T) {
	s := NewState("hello", 0)
	ns, res := apply(t, s, PasteAction())
	assert.False(t, res.Ok)
	assert.Equal(t, s.Lines, ns.Lines)
}

func TestStructuralEditInvalidatesSelectionAnchor(t *testing.T) {
	s := NewState("hello world", 0)
	s, _ = apply(t, s, StartSelectionAction())
	s.Cursor = Position{Row: 0, Col: 5}
	ns, _ := apply(t, s, ApplyOperationsAction([]Op{InsertOp("X")}))
	assert.Nil(t, ns.SelectionAnchor)
}

func TestCursorInvariantStaysWithinBounds(t *testing.T) {
	s := NewState("abc", 0)
	ns, _ := apply(t, s, ApplyOperationsAction([]Op{BackspaceOp(), BackspaceOp(), BackspaceOp(), BackspaceOp()}))
	assert.GreaterOrEqual(t, ns.Cursor.Row, 0)
	assert.Less(t, ns.Cursor.Row, len(ns.Lines))
	assert.GreaterOrEqual(t, ns.Cursor.Col, 0)
	assert.LessOrEqual(t, ns.Cursor.Col, CPLen(ns.Lines[ns.Cursor.Row]))
}

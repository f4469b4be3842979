package buffer

import "strings"

// Position is a logical (row, col) cursor location, both code-point
// indexed. Mirrors the teacher's core.Position (core/key_events.go).
type Position struct {
	Row int
	Col int
}

// Less reports whether p sorts strictly before o in reading order.
func (p Position) Less(o Position) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

// Snapshot is one undo/redo stack entry: a full copy of the buffer's
// lines and cursor at the moment it was recorded.
type Snapshot struct {
	Lines     []string
	CursorRow int
	CursorCol int
}

// MaxUndo bounds the undo stack; the oldest entry is evicted once the
// limit is exceeded. Grounded on the teacher's editor.maxHistory
// (core/state.go), generalised from a configurable field to a fixed cap.
const MaxUndo = 100

// State is the engine's complete, immutable-by-convention buffer state.
// Every buffer.Apply call returns a new State rather than mutating its
// receiver; callers must treat a State passed into Apply as consumed.
type State struct {
	Lines           []string
	Cursor          Position
	PreferredCol    *int
	SelectionAnchor *Position
	Clipboard       string
	UndoStack       []Snapshot
	RedoStack       []Snapshot
}

// NewState builds the initial state from raw text (normalising line
// endings) and places the cursor at the logical position corresponding
// to initialCursorOffset code points into that text.
func NewState(initialText string, initialCursorOffset int) State {
	normalized := normalizeNewlines(initialText)
	lines := splitLines(normalized)
	s := State{Lines: lines}
	s.Cursor = OffsetToLogical(strings.Join(lines, "\n"), initialCursorOffset)
	s = clampState(s)
	return s
}

// Text joins the buffer's lines back into a single "\n"-delimited string.
func (s State) Text() string {
	return strings.Join(s.Lines, "\n")
}

func splitLines(text string) []string {
	if text == "" {
		return []string{""}
	}
	return strings.Split(text, "\n")
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

// replaceLine returns a copy of lines with row replaced by newLine,
// never mutating the input slice. All element-level edits go through
// this helper (or spliceLines) so that a State handed to Apply is never
// mutated in place, keeping Apply a pure function as the engine's
// copy-on-write design note requires.
func replaceLine(lines []string, row int, newLine string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	out[row] = newLine
	return out
}

// spliceLines returns a copy of lines with [start, end) replaced by
// replacement.
func spliceLines(lines []string, start, end int, replacement []string) []string {
	out := make([]string, 0, len(lines)-(end-start)+len(replacement))
	out = append(out, lines[:start]...)
	out = append(out, replacement...)
	out = append(out, lines[end:]...)
	return out
}

func snapshotOf(s State) Snapshot {
	lines := make([]string, len(s.Lines))
	copy(lines, s.Lines)
	return Snapshot{Lines: lines, CursorRow: s.Cursor.Row, CursorCol: s.Cursor.Col}
}

// pushUndo records s on its own undo stack and clears the redo stack.
// Grounded on the teacher's editor.SaveHistory (core/state.go), which
// appends the pre-edit buffer content to a history slice and evicts the
// oldest entry once maxHistory is exceeded.
func pushUndo(s State) State {
	stack := make([]Snapshot, len(s.UndoStack), len(s.UndoStack)+1)
	copy(stack, s.UndoStack)
	stack = append(stack, snapshotOf(s))
	if len(stack) > MaxUndo {
		stack = stack[len(stack)-MaxUndo:]
	}
	s.UndoStack = stack
	s.RedoStack = nil
	return s
}

// PushSnapshot records s on its own undo stack without otherwise
// changing it. Exported for hosts that need an undo checkpoint around an
// out-of-band content replacement that isn't expressed as a single
// Action, such as the external-editor round trip.
func PushSnapshot(s State) State {
	return pushUndo(s)
}

func clampState(s State) State {
	if len(s.Lines) == 0 {
		s.Lines = []string{""}
	}
	if s.Cursor.Row < 0 {
		s.Cursor.Row = 0
	}
	if s.Cursor.Row >= len(s.Lines) {
		s.Cursor.Row = len(s.Lines) - 1
	}
	lineLen := CPLen(s.Lines[s.Cursor.Row])
	if s.Cursor.Col < 0 {
		s.Cursor.Col = 0
	}
	if s.Cursor.Col > lineLen {
		s.Cursor.Col = lineLen
	}
	if len(s.UndoStack) > MaxUndo {
		s.UndoStack = s.UndoStack[len(s.UndoStack)-MaxUndo:]
	}
	return s
}

package buffer

import "strings"

// Direction is a MOVE action's visual-space travel direction.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
	DirHome
	DirEnd
)

// OpKind distinguishes the two primitive edit operations an
// APPLY_OPERATIONS action batches together.
type OpKind int

const (
	OpInsert OpKind = iota
	OpBackspace
)

// Op is one primitive edit operation within an APPLY_OPERATIONS batch.
type Op struct {
	Kind OpKind
	Text string // payload for OpInsert; unused for OpBackspace
}

func InsertOp(text string) Op { return Op{Kind: OpInsert, Text: text} }
func BackspaceOp() Op         { return Op{Kind: OpBackspace} }

// ActionKind discriminates the engine's Action variants.
type ActionKind int

const (
	ActionSetText ActionKind = iota
	ActionApplyOperations
	ActionDelete
	ActionDeleteWordLeft
	ActionDeleteWordRight
	ActionKillLineRight
	ActionKillLineLeft
	ActionMove
	ActionMoveToOffset
	ActionReplaceRange
	ActionUndo
	ActionRedo
	ActionCopy
	ActionPaste
	ActionStartSelection
)

// Range is a REPLACE_RANGE action's logical span, inclusive of start,
// exclusive of end, both endpoints code-point indexed.
type Range struct {
	StartRow, StartCol int
	EndRow, EndCol     int
}

// Action is a single tagged edit or navigation request fed to Apply. Only
// the fields relevant to Kind are meaningful.
type Action struct {
	Kind ActionKind

	Text       string // SET_TEXT, REPLACE_RANGE
	PushToUndo bool   // SET_TEXT

	Ops []Op // APPLY_OPERATIONS

	Dir    Direction // MOVE
	Layout *Layout   // MOVE; nil falls back to an unwrapped layout

	Offset int // MOVE_TO_OFFSET

	Range Range // REPLACE_RANGE
}

func SetTextAction(text string, pushToUndo bool) Action {
	return Action{Kind: ActionSetText, Text: text, PushToUndo: pushToUndo}
}
func ApplyOperationsAction(ops []Op) Action {
	return Action{Kind: ActionApplyOperations, Ops: ops}
}
func DeleteAction() Action          { return Action{Kind: ActionDelete} }
func DeleteWordLeftAction() Action  { return Action{Kind: ActionDeleteWordLeft} }
func DeleteWordRightAction() Action { return Action{Kind: ActionDeleteWordRight} }
func KillLineRightAction() Action   { return Action{Kind: ActionKillLineRight} }
func KillLineLeftAction() Action    { return Action{Kind: ActionKillLineLeft} }
func MoveAction(dir Direction, layout Layout) Action {
	return Action{Kind: ActionMove, Dir: dir, Layout: &layout}
}
func MoveToOffsetAction(offset int) Action { return Action{Kind: ActionMoveToOffset, Offset: offset} }
func ReplaceRangeAction(r Range, text string) Action {
	return Action{Kind: ActionReplaceRange, Range: r, Text: text}
}
func UndoAction() Action           { return Action{Kind: ActionUndo} }
func RedoAction() Action           { return Action{Kind: ActionRedo} }
func CopyAction() Action           { return Action{Kind: ActionCopy} }
func PasteAction() Action          { return Action{Kind: ActionPaste} }
func StartSelectionAction() Action { return Action{Kind: ActionStartSelection} }

// Result reports what an Apply call actually did: whether the visible
// buffer (lines or cursor) changed, whether the action succeeded on its
// own terms (a valid REPLACE_RANGE, a non-empty UNDO/REDO/PASTE stack),
// and, for COPY, the text that was copied.
type Result struct {
	Changed bool
	Ok      bool
	Copied  string
}

// noWrapWidth is used when a MOVE action arrives without a precomputed
// Layout; it is wide enough that wrapLineChunks never breaks a line,
// degrading MOVE to plain logical-line navigation.
const noWrapWidth = 1 << 30

// Apply is the engine's sole entry point: a pure function from a State
// and an Action to the next State, with no possible error return.
// Actions with ill-formed parameters (an out-of-range REPLACE_RANGE, an
// UNDO with an empty stack) are coerced into no-ops reported through
// Result.Ok rather than failing the call.
func Apply(s State, a Action) (State, Result) {
	ns, res := dispatch(s, a)
	return clampState(ns), res
}

func dispatch(s State, a Action) (State, Result) {
	switch a.Kind {
	case ActionSetText:
		return applySetText(s, a)
	case ActionApplyOperations:
		return applyOperations(s, a)
	case ActionDelete:
		return applyDelete(s)
	case ActionDeleteWordLeft:
		return applyDeleteWordLeft(s)
	case ActionDeleteWordRight:
		return applyDeleteWordRight(s)
	case ActionKillLineRight:
		return applyKillLineRight(s)
	case ActionKillLineLeft:
		return applyKillLineLeft(s)
	case ActionMove:
		return applyMove(s, a)
	case ActionMoveToOffset:
		return applyMoveToOffset(s, a)
	case ActionReplaceRange:
		return applyReplaceRange(s, a)
	case ActionUndo:
		return applyUndo(s)
	case ActionRedo:
		return applyRedo(s)
	case ActionCopy:
		return applyCopy(s)
	case ActionPaste:
		return applyPaste(s)
	case ActionStartSelection:
		return applyStartSelection(s)
	}
	return s, Result{}
}

func applySetText(s State, a Action) (State, Result) {
	if a.PushToUndo {
		s = pushUndo(s)
	}
	text := normalizeNewlines(a.Text)
	lines := splitLines(text)
	s.Lines = lines
	last := len(lines) - 1
	s.Cursor = Position{Row: last, Col: CPLen(lines[last])}
	s.PreferredCol = nil
	s.SelectionAnchor = nil
	return s, Result{Changed: true, Ok: true}
}

// expandOps splits any 0x7F code point found inside an insert payload
// out into an explicit backspace operation, so that pasted text carrying
// literal DEL bytes behaves as a mix of typed characters and backspaces
// rather than inserting the DEL byte itself.
func expandOps(ops []Op) []Op {
	var out []Op
	for _, op := range ops {
		if op.Kind != OpInsert {
			out = append(out, op)
			continue
		}
		var buf strings.Builder
		for _, r := range op.Text {
			if r == 0x7F {
				if buf.Len() > 0 {
					out = append(out, Op{Kind: OpInsert, Text: buf.String()})
					buf.Reset()
				}
				out = append(out, Op{Kind: OpBackspace})
				continue
			}
			buf.WriteRune(r)
		}
		if buf.Len() > 0 {
			out = append(out, Op{Kind: OpInsert, Text: buf.String()})
		}
	}
	return out
}

func applyOperations(s State, a Action) (State, Result) {
	s = pushUndo(s)
	changed := false
	for _, op := range expandOps(a.Ops) {
		switch op.Kind {
		case OpInsert:
			if insertText(&s, op.Text) {
				changed = true
			}
		case OpBackspace:
			if backspaceOnce(&s) {
				changed = true
			}
		}
	}
	s.PreferredCol = nil
	s.SelectionAnchor = nil
	return s, Result{Changed: changed, Ok: true}
}

// insertText inserts payload (after stripping unsafe code points and
// normalising line endings) at s.Cursor, splitting across lines as
// needed, and reports whether anything was actually inserted.
func insertText(s *State, payload string) bool {
	clean := normalizeNewlines(StripUnsafe(payload))
	if clean == "" {
		return false
	}
	fragments := strings.Split(clean, "\n")
	row, col := s.Cursor.Row, s.Cursor.Col
	lineRunes := []rune(s.Lines[row])
	before := string(lineRunes[:col])
	after := string(lineRunes[col:])

	if len(fragments) == 1 {
		s.Lines = replaceLine(s.Lines, row, before+fragments[0]+after)
		s.Cursor = Position{Row: row, Col: CPLen(before) + CPLen(fragments[0])}
		return true
	}

	replacement := make([]string, 0, len(fragments))
	replacement = append(replacement, before+fragments[0])
	replacement = append(replacement, fragments[1:len(fragments)-1]...)
	replacement = append(replacement, fragments[len(fragments)-1]+after)
	s.Lines = spliceLines(s.Lines, row, row+1, replacement)
	s.Cursor = Position{Row: row + len(fragments) - 1, Col: CPLen(fragments[len(fragments)-1])}
	return true
}

// backspaceOnce deletes the code point immediately left of the cursor,
// merging with the previous line at column 0, and reports whether
// anything was deleted (false only at the very start of the buffer).
func backspaceOnce(s *State) bool {
	row, col := s.Cursor.Row, s.Cursor.Col
	if row == 0 && col == 0 {
		return false
	}
	if col > 0 {
		lineRunes := []rune(s.Lines[row])
		newLine := string(lineRunes[:col-1]) + string(lineRunes[col:])
		s.Lines = replaceLine(s.Lines, row, newLine)
		s.Cursor = Position{Row: row, Col: col - 1}
		return true
	}
	prevLen := CPLen(s.Lines[row-1])
	merged := s.Lines[row-1] + s.Lines[row]
	s.Lines = spliceLines(s.Lines, row-1, row+1, []string{merged})
	s.Cursor = Position{Row: row - 1, Col: prevLen}
	return true
}

func applyDelete(s State) (State, Result) {
	row, col := s.Cursor.Row, s.Cursor.Col
	lineLen := CPLen(s.Lines[row])
	if col < lineLen {
		s = pushUndo(s)
		lineRunes := []rune(s.Lines[row])
		newLine := string(lineRunes[:col]) + string(lineRunes[col+1:])
		s.Lines = replaceLine(s.Lines, row, newLine)
		s.SelectionAnchor = nil
		s.PreferredCol = nil
		return s, Result{Changed: true, Ok: true}
	}
	if row == len(s.Lines)-1 {
		return s, Result{Changed: false, Ok: true}
	}
	s = pushUndo(s)
	merged := s.Lines[row] + s.Lines[row+1]
	s.Lines = spliceLines(s.Lines, row, row+2, []string{merged})
	s.SelectionAnchor = nil
	s.PreferredCol = nil
	return s, Result{Changed: true, Ok: true}
}

func applyDeleteWordLeft(s State) (State, Result) {
	row, col := s.Cursor.Row, s.Cursor.Col
	if row == 0 && col == 0 {
		return s, Result{Changed: false, Ok: true}
	}
	if col == 0 {
		s = pushUndo(s)
		prevLen := CPLen(s.Lines[row-1])
		merged := s.Lines[row-1] + s.Lines[row]
		s.Lines = spliceLines(s.Lines, row-1, row+1, []string{merged})
		s.Cursor = Position{Row: row - 1, Col: prevLen}
		s.SelectionAnchor = nil
		s.PreferredCol = nil
		return s, Result{Changed: true, Ok: true}
	}

	runes := []rune(s.Lines[row])
	i := col
	for i > 0 && isNonWordRune(runes[i-1]) {
		i--
	}
	if i == 0 {
		// Every character to the left is whitespace/punctuation: delete
		// exactly one code point rather than running to the line start.
		i = col - 1
	} else {
		for i > 0 && !isNonWordRune(runes[i-1]) {
			i--
		}
	}

	s = pushUndo(s)
	newLine := string(runes[:i]) + string(runes[col:])
	s.Lines = replaceLine(s.Lines, row, newLine)
	s.Cursor = Position{Row: row, Col: i}
	s.SelectionAnchor = nil
	s.PreferredCol = nil
	return s, Result{Changed: true, Ok: true}
}

func applyDeleteWordRight(s State) (State, Result) {
	row, col := s.Cursor.Row, s.Cursor.Col
	lineLen := CPLen(s.Lines[row])
	isLastLine := row == len(s.Lines)-1

	if col >= lineLen {
		if isLastLine {
			return s, Result{Changed: false, Ok: true}
		}
		s = pushUndo(s)
		merged := s.Lines[row] + s.Lines[row+1]
		s.Lines = spliceLines(s.Lines, row, row+2, []string{merged})
		s.SelectionAnchor = nil
		s.PreferredCol = nil
		return s, Result{Changed: true, Ok: true}
	}

	runes := []rune(s.Lines[row])
	i := col
	for i < lineLen && isNonWordRune(runes[i]) {
		i++
	}
	if i == lineLen {
		i = col + 1
	} else {
		for i < lineLen && !isNonWordRune(runes[i]) {
			i++
		}
	}

	s = pushUndo(s)
	newLine := string(runes[:col]) + string(runes[i:])
	s.Lines = replaceLine(s.Lines, row, newLine)
	s.SelectionAnchor = nil
	s.PreferredCol = nil
	return s, Result{Changed: true, Ok: true}
}

func applyKillLineRight(s State) (State, Result) {
	row, col := s.Cursor.Row, s.Cursor.Col
	lineLen := CPLen(s.Lines[row])
	if col >= lineLen {
		if row == len(s.Lines)-1 {
			return s, Result{Changed: false, Ok: true}
		}
		s = pushUndo(s)
		merged := s.Lines[row] + s.Lines[row+1]
		s.Lines = spliceLines(s.Lines, row, row+2, []string{merged})
		s.SelectionAnchor = nil
		s.PreferredCol = nil
		return s, Result{Changed: true, Ok: true}
	}
	s = pushUndo(s)
	runes := []rune(s.Lines[row])
	s.Lines = replaceLine(s.Lines, row, string(runes[:col]))
	s.SelectionAnchor = nil
	s.PreferredCol = nil
	return s, Result{Changed: true, Ok: true}
}

func applyKillLineLeft(s State) (State, Result) {
	row, col := s.Cursor.Row, s.Cursor.Col
	if col == 0 {
		return s, Result{Changed: false, Ok: true}
	}
	s = pushUndo(s)
	runes := []rune(s.Lines[row])
	s.Lines = replaceLine(s.Lines, row, string(runes[col:]))
	s.Cursor = Position{Row: row, Col: 0}
	s.SelectionAnchor = nil
	s.PreferredCol = nil
	return s, Result{Changed: true, Ok: true}
}

func applyMove(s State, a Action) (State, Result) {
	layout := a.Layout
	if layout == nil {
		l := ComputeLayout(s.Lines, s.Cursor, noWrapWidth)
		layout = &l
	}
	switch a.Dir {
	case DirLeft:
		return moveVisualLeft(s, *layout)
	case DirRight:
		return moveVisualRight(s, *layout)
	case DirUp:
		return moveVisualVertical(s, *layout, -1)
	case DirDown:
		return moveVisualVertical(s, *layout, 1)
	case DirHome:
		return moveVisualHome(s, *layout)
	case DirEnd:
		return moveVisualEnd(s, *layout)
	}
	return s, Result{Ok: true}
}

func moveVisualLeft(s State, layout Layout) (State, Result) {
	vr, vc := layout.VisualCursor.Row, layout.VisualCursor.Col
	if vc > 0 {
		vc--
	} else if vr > 0 {
		vr--
		vc = CPLen(layout.VisualLines[vr])
	}
	s.PreferredCol = nil
	newPos := visualToLogicalPos(layout, vr, vc)
	changed := newPos != s.Cursor
	s.Cursor = newPos
	return s, Result{Changed: changed, Ok: true}
}

func moveVisualRight(s State, layout Layout) (State, Result) {
	vr, vc := layout.VisualCursor.Row, layout.VisualCursor.Col
	lineLen := CPLen(layout.VisualLines[vr])
	if vc < lineLen {
		vc++
	} else if vr < len(layout.VisualLines)-1 {
		vr++
		vc = 0
	}
	s.PreferredCol = nil
	newPos := visualToLogicalPos(layout, vr, vc)
	changed := newPos != s.Cursor
	s.Cursor = newPos
	return s, Result{Changed: changed, Ok: true}
}

// moveVisualVertical moves the cursor one visual row up (delta -1) or
// down (delta 1), tracking the preferred column across rows shorter than
// it the way the teacher's Cursor.MoveUp/MoveDown do (core/cursor.go).
func moveVisualVertical(s State, layout Layout, delta int) (State, Result) {
	vr := layout.VisualCursor.Row
	target := vr + delta
	if target < 0 || target >= len(layout.VisualLines) {
		return s, Result{Changed: false, Ok: true}
	}

	pref := layout.VisualCursor.Col
	if s.PreferredCol != nil {
		pref = *s.PreferredCol
	}
	targetLen := CPLen(layout.VisualLines[target])
	col := pref
	if col > targetLen {
		col = targetLen
	}
	if s.PreferredCol == nil {
		p := pref
		s.PreferredCol = &p
	}

	newPos := visualToLogicalPos(layout, target, col)
	changed := newPos != s.Cursor
	s.Cursor = newPos
	return s, Result{Changed: changed, Ok: true}
}

func moveVisualHome(s State, layout Layout) (State, Result) {
	vr := layout.VisualCursor.Row
	newPos := visualToLogicalPos(layout, vr, 0)
	s.PreferredCol = nil
	changed := newPos != s.Cursor
	s.Cursor = newPos
	return s, Result{Changed: changed, Ok: true}
}

func moveVisualEnd(s State, layout Layout) (State, Result) {
	vr := layout.VisualCursor.Row
	lineLen := CPLen(layout.VisualLines[vr])
	newPos := visualToLogicalPos(layout, vr, lineLen)
	s.PreferredCol = nil
	changed := newPos != s.Cursor
	s.Cursor = newPos
	return s, Result{Changed: changed, Ok: true}
}

func applyMoveToOffset(s State, a Action) (State, Result) {
	pos := OffsetToLogical(s.Text(), a.Offset)
	if pos.Row >= len(s.Lines) {
		pos.Row = len(s.Lines) - 1
	}
	lineLen := CPLen(s.Lines[pos.Row])
	if pos.Col > lineLen {
		pos.Col = lineLen
	}
	changed := pos != s.Cursor
	s.Cursor = pos
	s.PreferredCol = nil
	return s, Result{Changed: changed, Ok: true}
}

func applyReplaceRange(s State, a Action) (State, Result) {
	r := a.Range
	if r.StartRow < 0 || r.StartRow >= len(s.Lines) || r.EndRow < 0 || r.EndRow >= len(s.Lines) {
		return s, Result{Changed: false, Ok: false}
	}
	start := Position{Row: r.StartRow, Col: r.StartCol}
	end := Position{Row: r.EndRow, Col: r.EndCol}
	if end.Less(start) {
		return s, Result{Changed: false, Ok: false}
	}
	startLineLen := CPLen(s.Lines[r.StartRow])
	endLineLen := CPLen(s.Lines[r.EndRow])
	if r.StartCol < 0 || r.StartCol > startLineLen || r.EndCol < 0 || r.EndCol > endLineLen {
		return s, Result{Changed: false, Ok: false}
	}

	s = pushUndo(s)
	startRunes := []rune(s.Lines[r.StartRow])
	before := string(startRunes[:r.StartCol])
	endRunes := []rune(s.Lines[r.EndRow])
	after := string(endRunes[r.EndCol:])

	fragments := strings.Split(normalizeNewlines(a.Text), "\n")
	var replacement []string
	if len(fragments) == 1 {
		replacement = []string{before + fragments[0] + after}
		s.Cursor = Position{Row: r.StartRow, Col: CPLen(before) + CPLen(fragments[0])}
	} else {
		replacement = make([]string, 0, len(fragments))
		replacement = append(replacement, before+fragments[0])
		replacement = append(replacement, fragments[1:len(fragments)-1]...)
		replacement = append(replacement, fragments[len(fragments)-1]+after)
		s.Cursor = Position{Row: r.StartRow + len(fragments) - 1, Col: CPLen(fragments[len(fragments)-1])}
	}
	s.Lines = spliceLines(s.Lines, r.StartRow, r.EndRow+1, replacement)
	s.SelectionAnchor = nil
	s.PreferredCol = nil
	return s, Result{Changed: true, Ok: true}
}

// applyUndo and applyRedo pop a snapshot from one stack and push the
// current state onto the other, mirroring the teacher's editor.Undo/Redo
// (core/state.go) rather than the generic "push undo, clear redo" rule
// that governs every other mutating action.
func applyUndo(s State) (State, Result) {
	n := len(s.UndoStack)
	if n == 0 {
		return s, Result{Changed: false, Ok: false}
	}
	snap := s.UndoStack[n-1]
	newUndo := make([]Snapshot, n-1)
	copy(newUndo, s.UndoStack[:n-1])
	newRedo := make([]Snapshot, len(s.RedoStack), len(s.RedoStack)+1)
	copy(newRedo, s.RedoStack)
	newRedo = append(newRedo, snapshotOf(s))

	s.Lines = append([]string(nil), snap.Lines...)
	s.Cursor = Position{Row: snap.CursorRow, Col: snap.CursorCol}
	s.UndoStack = newUndo
	s.RedoStack = newRedo
	s.SelectionAnchor = nil
	s.PreferredCol = nil
	return s, Result{Changed: true, Ok: true}
}

func applyRedo(s State) (State, Result) {
	n := len(s.RedoStack)
	if n == 0 {
		return s, Result{Changed: false, Ok: false}
	}
	snap := s.RedoStack[n-1]
	newRedo := make([]Snapshot, n-1)
	copy(newRedo, s.RedoStack[:n-1])
	newUndo := make([]Snapshot, len(s.UndoStack), len(s.UndoStack)+1)
	copy(newUndo, s.UndoStack)
	newUndo = append(newUndo, snapshotOf(s))

	s.Lines = append([]string(nil), snap.Lines...)
	s.Cursor = Position{Row: snap.CursorRow, Col: snap.CursorCol}
	s.UndoStack = newUndo
	s.RedoStack = newRedo
	s.SelectionAnchor = nil
	s.PreferredCol = nil
	return s, Result{Changed: true, Ok: true}
}

func normalizeSelectionRange(a, b Position) (Position, Position) {
	if b.Less(a) {
		return b, a
	}
	return a, b
}

func extractRange(lines []string, start, end Position) string {
	if start.Row == end.Row {
		runes := []rune(lines[start.Row])
		sc, ec := clampIdx(start.Col, len(runes)), clampIdx(end.Col, len(runes))
		if ec < sc {
			ec = sc
		}
		return string(runes[sc:ec])
	}
	var b strings.Builder
	firstRunes := []rune(lines[start.Row])
	sc := clampIdx(start.Col, len(firstRunes))
	b.WriteString(string(firstRunes[sc:]))
	for r := start.Row + 1; r < end.Row; r++ {
		b.WriteString("\n")
		b.WriteString(lines[r])
	}
	b.WriteString("\n")
	lastRunes := []rune(lines[end.Row])
	ec := clampIdx(end.Col, len(lastRunes))
	b.WriteString(string(lastRunes[:ec]))
	return b.String()
}

func clampIdx(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// applyCopy extracts the text spanned by the selection anchor and the
// cursor into the internal clipboard. A missing or empty selection is a
// no-op; the selection itself is left untouched (COPY never clears it).
func applyCopy(s State) (State, Result) {
	if s.SelectionAnchor == nil || *s.SelectionAnchor == s.Cursor {
		return s, Result{Changed: false, Ok: false}
	}
	start, end := normalizeSelectionRange(*s.SelectionAnchor, s.Cursor)
	text := extractRange(s.Lines, start, end)
	s.Clipboard = text
	return s, Result{Changed: false, Ok: true, Copied: text}
}

// applyPaste inserts the internal clipboard's contents at the cursor, as
// APPLY_OPERATIONS would for a single insert. An empty clipboard is a
// no-op.
func applyPaste(s State) (State, Result) {
	if s.Clipboard == "" {
		return s, Result{Changed: false, Ok: false}
	}
	s = pushUndo(s)
	changed := insertText(&s, s.Clipboard)
	s.PreferredCol = nil
	s.SelectionAnchor = nil
	return s, Result{Changed: changed, Ok: true}
}

// applyStartSelection anchors a new selection at the current cursor. It
// is not a mutating action: it neither pushes undo nor clears redo.
func applyStartSelection(s State) (State, Result) {
	pos := s.Cursor
	s.SelectionAnchor = &pos
	return s, Result{Changed: false, Ok: true}
}

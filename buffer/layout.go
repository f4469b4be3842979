package buffer

// ChunkRef is one endpoint of the bidirectional visual/logical map: a
// row index (visual or logical, depending on which map it sits in) and
// the code-point column within the other coordinate space where the
// referenced chunk starts.
type ChunkRef struct {
	Row      int
	StartCol int
}

// Layout is the result of wrapping a buffer's lines to a fixed visual
// width. It is a pure value recomputed on demand; nothing caches it
// across edits.
type Layout struct {
	VisualLines     []string
	VisualCursor    Position
	LogicalToVisual [][]ChunkRef // indexed by logical row; StartCol is the logical column each chunk starts at
	VisualToLogical []ChunkRef   // indexed by visual row; Row is the logical row that visual row wraps from
}

type chunkInfo struct {
	Text     string
	StartCol int
}

// wrapLineChunks wraps a single logical line into visual segments no
// wider than width terminal cells. It greedily packs code points onto a
// segment, preferring to break at the last space seen within the segment
// (consuming that space as the wrap delimiter) and falling back to a hard
// break at the overflow boundary when no such space exists; if the code
// point at that boundary is itself a space, it is consumed as the
// delimiter. A single code point wider than width is emitted alone
// rather than looping forever.
//
// Generalised from the teacher's grapheme-based wrapLine in
// adapter-bubbletea/visual_layout.go to operate on code points, per the
// layouter's code-point indexing contract.
func wrapLineChunks(line string, width int) []chunkInfo {
	if width < 1 {
		width = 1
	}
	runes := []rune(line)
	if len(runes) == 0 {
		return []chunkInfo{{Text: "", StartCol: 0}}
	}

	var chunks []chunkInfo
	start := 0
	for start < len(runes) {
		curWidth := 0
		i := start
		lastSpace := -1
		for i < len(runes) {
			w := runeWidth(runes[i])
			if curWidth+w > width {
				break
			}
			if runes[i] == ' ' {
				lastSpace = i
			}
			curWidth += w
			i++
		}

		switch {
		case i == start:
			// Even the first code point overflows width; emit it alone.
			chunks = append(chunks, chunkInfo{Text: string(runes[start]), StartCol: start})
			start++
		case i >= len(runes):
			chunks = append(chunks, chunkInfo{Text: string(runes[start:i]), StartCol: start})
			start = i
		case lastSpace > start:
			chunks = append(chunks, chunkInfo{Text: string(runes[start:lastSpace]), StartCol: start})
			start = lastSpace + 1 // consume exactly one delimiter space
		default:
			chunks = append(chunks, chunkInfo{Text: string(runes[start:i]), StartCol: start})
			start = i
			if runes[i] == ' ' {
				start++ // the overflowing space is the wrap delimiter
			}
		}
	}
	return chunks
}

// ComputeLayout wraps every logical line to width visual columns and maps
// the given logical cursor into visual space. When the cursor sits
// exactly at a chunk boundary that is not the end of the logical line,
// it is placed at the trailing end of the earlier chunk rather than the
// head of the next one.
func ComputeLayout(lines []string, cursor Position, width int) Layout {
	if width < 1 {
		width = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}

	row := cursor.Row
	if row < 0 {
		row = 0
	}
	if row >= len(lines) {
		row = len(lines) - 1
	}
	col := cursor.Col
	lineLen := CPLen(lines[row])
	if col < 0 {
		col = 0
	}
	if col > lineLen {
		col = lineLen
	}

	logicalToVisual := make([][]ChunkRef, len(lines))
	var visualLines []string
	var visualToLogical []ChunkRef
	var visualCursor Position

	for r, line := range lines {
		chunks := wrapLineChunks(line, width)
		foundForRow := false
		for _, c := range chunks {
			vRow := len(visualLines)
			chunkLen := CPLen(c.Text)

			logicalToVisual[r] = append(logicalToVisual[r], ChunkRef{Row: vRow, StartCol: c.StartCol})
			visualToLogical = append(visualToLogical, ChunkRef{Row: r, StartCol: c.StartCol})
			visualLines = append(visualLines, c.Text)

			if r == row && !foundForRow && col >= c.StartCol && col <= c.StartCol+chunkLen {
				visualCursor = Position{Row: vRow, Col: col - c.StartCol}
				foundForRow = true
			}
		}
	}

	return Layout{
		VisualLines:     visualLines,
		VisualCursor:    visualCursor,
		LogicalToVisual: logicalToVisual,
		VisualToLogical: visualToLogical,
	}
}

func visualToLogicalPos(layout Layout, visualRow, visualCol int) Position {
	ref := layout.VisualToLogical[visualRow]
	return Position{Row: ref.Row, Col: ref.StartCol + visualCol}
}

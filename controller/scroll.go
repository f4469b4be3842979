package controller

// snapScrollToCursor adjusts scrollRow by the minimum amount needed to
// bring the cursor's visual row back into the viewport, then clamps it
// so the view never scrolls past the last page of content.
//
// Grounded on the teacher's editor.ScrollViewport (core/state.go), which
// nudges a top-line offset up or down just far enough to keep the
// cursor row within the viewport height, and its adapter-bubbletea
// updateVisualTopLine counterpart for the wrapped-visual-line case.
func (c *Controller) snapScrollToCursor() {
	h := c.viewport.Height
	row := c.layout.VisualCursor.Row

	if row < c.scrollRow {
		c.scrollRow = row
	} else if row >= c.scrollRow+h {
		c.scrollRow = row - h + 1
	}

	maxTop := len(c.layout.VisualLines) - h
	if maxTop < 0 {
		maxTop = 0
	}
	if c.scrollRow > maxTop {
		c.scrollRow = maxTop
	}
	if c.scrollRow < 0 {
		c.scrollRow = 0
	}
}

package controller

import (
	"github.com/rjsamson/tbuffer/buffer"
)

// Viewport is the visible rectangle the controller wraps and scrolls
// lines against.
type Viewport struct {
	Width  int
	Height int
}

func clampViewport(v Viewport) Viewport {
	if v.Width < 1 {
		v.Width = 1
	}
	if v.Height < 1 {
		v.Height = 1
	}
	return v
}

// Controller is the stateful wrapper a host embeds to drive a
// multi-line text input field. It owns a buffer.State plus the viewport
// and scroll position the pure engine knows nothing about, and
// translates host-facing commands into buffer.Apply calls.
type Controller struct {
	state     buffer.State
	viewport  Viewport
	layout    buffer.Layout
	scrollRow int
	caps      HostCapabilities
}

// New builds a Controller over initialText, with the logical cursor
// placed at initialCursorOffset code points into it.
func New(initialText string, initialCursorOffset int, caps HostCapabilities) *Controller {
	c := &Controller{
		state:    buffer.NewState(initialText, initialCursorOffset),
		viewport: Viewport{Width: 80, Height: 24},
		caps:     caps,
	}
	c.recomputeLayout()
	return c
}

// SetViewport resizes the wrap width/visible height and re-derives the
// layout and scroll position against the new size.
func (c *Controller) SetViewport(v Viewport) {
	c.viewport = clampViewport(v)
	c.recomputeLayout()
	c.snapScrollToCursor()
}

// apply runs a buffer.Action through the pure engine, swaps in the
// resulting state, and re-derives everything the engine itself has no
// notion of: the wrapped layout, the scroll position, and the host's
// change notification.
func (c *Controller) apply(a buffer.Action) buffer.Result {
	before := c.state.Text()
	ns, res := buffer.Apply(c.state, a)
	c.state = ns
	c.recomputeLayout()
	c.snapScrollToCursor()
	if c.caps.OnChange != nil {
		if after := c.state.Text(); after != before {
			c.caps.OnChange(after)
		}
	}
	return res
}

func (c *Controller) recomputeLayout() {
	c.layout = buffer.ComputeLayout(c.state.Lines, c.state.Cursor, c.viewport.Width)
}

// Observable surface.

// Lines returns a copy of the buffer's logical lines.
func (c *Controller) Lines() []string { return append([]string(nil), c.state.Lines...) }

// Text returns the buffer's full text.
func (c *Controller) Text() string { return c.state.Text() }

// Cursor returns the current logical cursor position.
func (c *Controller) Cursor() buffer.Position { return c.state.Cursor }

// PreferredCol returns the sticky visual column used by vertical
// movement, or nil if no vertical move has happened since the last
// horizontal motion or edit.
func (c *Controller) PreferredCol() *int { return c.state.PreferredCol }

// SelectionAnchor returns the active selection's anchor, or nil if there
// is no selection.
func (c *Controller) SelectionAnchor() *buffer.Position { return c.state.SelectionAnchor }

// VisualLines returns every wrapped visual line across the whole buffer.
func (c *Controller) VisualLines() []string { return c.layout.VisualLines }

// ViewportLines returns the slice of wrapped visual lines currently
// scrolled into view.
func (c *Controller) ViewportLines() []string {
	start := c.scrollRow
	end := start + c.viewport.Height
	if end > len(c.layout.VisualLines) {
		end = len(c.layout.VisualLines)
	}
	if start > end {
		start = end
	}
	return c.layout.VisualLines[start:end]
}

// VisualCursor returns the cursor's position in wrapped visual space.
func (c *Controller) VisualCursor() buffer.Position { return c.layout.VisualCursor }

// ScrollRow returns the index of the topmost visual row currently in
// view.
func (c *Controller) ScrollRow() int { return c.scrollRow }

// CanUndo reports whether Undo would do anything.
func (c *Controller) CanUndo() bool { return len(c.state.UndoStack) > 0 }

// CanRedo reports whether Redo would do anything.
func (c *Controller) CanRedo() bool { return len(c.state.RedoStack) > 0 }

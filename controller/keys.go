package controller

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rjsamson/tbuffer/buffer"
)

// HandleInput translates a single bubbletea key event into the matching
// buffer command and reports whether it changed the visible buffer (its
// text or its cursor). A key with no defined mapping, or a movement key
// (arrows, Home/End and their Ctrl-A/Ctrl-E aliases) or printable runes
// held with Alt, is rejected (returns false) rather than mapped to an
// unsupported action, matching the default key table's intentionally
// small scope. The other mapped keys act the same with or without Alt.
func (c *Controller) HandleInput(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyEsc:
		return false
	case tea.KeyEnter:
		return c.apply(buffer.ApplyOperationsAction([]buffer.Op{buffer.InsertOp("\n")})).Changed
	case tea.KeyBackspace:
		return c.apply(buffer.ApplyOperationsAction([]buffer.Op{buffer.BackspaceOp()})).Changed
	case tea.KeyDelete, tea.KeyCtrlD:
		return c.apply(buffer.DeleteAction()).Changed
	case tea.KeyLeft:
		if msg.Alt {
			return false
		}
		return c.applyMove(buffer.DirLeft)
	case tea.KeyRight:
		if msg.Alt {
			return false
		}
		return c.applyMove(buffer.DirRight)
	case tea.KeyUp:
		if msg.Alt {
			return false
		}
		return c.applyMove(buffer.DirUp)
	case tea.KeyDown:
		if msg.Alt {
			return false
		}
		return c.applyMove(buffer.DirDown)
	case tea.KeyHome, tea.KeyCtrlA:
		if msg.Alt {
			return false
		}
		return c.applyMove(buffer.DirHome)
	case tea.KeyEnd, tea.KeyCtrlE:
		if msg.Alt {
			return false
		}
		return c.applyMove(buffer.DirEnd)
	case tea.KeyCtrlW:
		return c.apply(buffer.DeleteWordLeftAction()).Changed
	case tea.KeyCtrlK:
		return c.apply(buffer.KillLineRightAction()).Changed
	case tea.KeyCtrlU:
		return c.apply(buffer.KillLineLeftAction()).Changed
	case tea.KeyCtrlZ:
		return c.Undo()
	case tea.KeyCtrlY:
		return c.Redo()
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		text := c.maybeInferPath(string(msg.Runes))
		return c.apply(buffer.ApplyOperationsAction([]buffer.Op{buffer.InsertOp(text)})).Changed
	default:
		return false
	}
}

func (c *Controller) applyMove(dir buffer.Direction) bool {
	return c.apply(buffer.MoveAction(dir, c.layout)).Changed
}

// HandleInputErr is HandleInput, but distinguishes a key with no defined
// mapping (ErrUnsupportedKey: Esc, a held Alt modifier on a movement key
// or printable runes, or a key outside the table) from a mapped key that
// simply produced no change (ErrNoop: e.g. an arrow key already at the
// buffer's edge).
func (c *Controller) HandleInputErr(msg tea.KeyMsg) error {
	switch msg.Type {
	case tea.KeyEsc:
		return buffer.ErrUnsupportedKey
	case tea.KeyLeft, tea.KeyRight, tea.KeyUp, tea.KeyDown, tea.KeyRunes,
		tea.KeyHome, tea.KeyCtrlA, tea.KeyEnd, tea.KeyCtrlE:
		if msg.Alt {
			return buffer.ErrUnsupportedKey
		}
	default:
		if _, ok := mappedKeyTypes[msg.Type]; !ok {
			return buffer.ErrUnsupportedKey
		}
	}
	if !c.HandleInput(msg) {
		return buffer.ErrNoop
	}
	return nil
}

var mappedKeyTypes = map[tea.KeyType]struct{}{
	tea.KeyEnter:     {},
	tea.KeyBackspace: {},
	tea.KeyDelete:    {},
	tea.KeyCtrlD:     {},
	tea.KeyLeft:      {},
	tea.KeyRight:     {},
	tea.KeyUp:        {},
	tea.KeyDown:      {},
	tea.KeyHome:      {},
	tea.KeyCtrlA:     {},
	tea.KeyEnd:       {},
	tea.KeyCtrlE:     {},
	tea.KeyCtrlW:     {},
	tea.KeyCtrlK:     {},
	tea.KeyCtrlU:     {},
	tea.KeyCtrlZ:     {},
	tea.KeyCtrlY:     {},
	tea.KeyRunes:     {},
}

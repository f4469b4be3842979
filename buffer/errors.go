package buffer

import "errors"

// Sentinel errors returned by host-facing callers of the controller
// package; the engine itself never returns an error from Apply (invalid
// or impossible actions are coerced to no-ops, see Result.Ok).
var (
	// ErrInvalidRange is returned by hosts wrapping REPLACE_RANGE when the
	// requested range fails validation.
	ErrInvalidRange = errors.New("buffer: invalid range")

	// ErrUnsupportedKey is returned by hosts wrapping key translation for
	// an input event with no defined mapping.
	ErrUnsupportedKey = errors.New("buffer: unsupported key")

	// ErrNoop is returned by hosts wrapping an action that reached Apply
	// but left the state unchanged, e.g. Undo with an empty undo stack.
	ErrNoop = errors.New("buffer: no-op")
)

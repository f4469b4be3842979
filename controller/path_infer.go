package controller

import (
	"strings"

	"github.com/rjsamson/tbuffer/buffer"
)

// maybeInferPath implements drag-and-drop path inference: an inserted
// chunk of at least 3 code points has a single surrounding quote pair
// stripped and is whitespace-trimmed, and if the result names a path the
// host recognises as valid (after unescaping), the final inserted text
// is that stripped path, as typed rather than unescaped, prefixed with
// "@". Otherwise the
// chunk is inserted unchanged. Applied once per Insert call, never
// recursively.
func (c *Controller) maybeInferPath(text string) string {
	if c.caps.IsValidPath == nil || c.caps.UnescapePath == nil {
		return text
	}
	if buffer.CPLen(text) < 3 {
		return text
	}

	candidate := strings.TrimSpace(text)
	if len(candidate) >= 2 && strings.HasPrefix(candidate, "'") && strings.HasSuffix(candidate, "'") {
		candidate = candidate[1 : len(candidate)-1]
	}
	candidate = strings.TrimSpace(candidate)

	unescaped := c.caps.UnescapePath(candidate)
	if c.caps.IsValidPath(unescaped) {
		return "@" + candidate
	}
	return text
}

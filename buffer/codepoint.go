// Package buffer implements the pure text-buffer engine: code-point aware
// string utilities, a code-point offset <-> logical position mapper, a visual
// word-wrap layouter, and a functional edit engine with undo/redo.
package buffer

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"
)

// CPLen returns the number of Unicode code points in s.
func CPLen(s string) int {
	return utf8.RuneCountInString(s)
}

// CodePoints splits s into its individual code points, each returned as a
// single-rune string.
func CodePoints(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// CPSlice returns the code points of s in [start, end), clamped to the
// valid range. A missing end slices to the end of s.
func CPSlice(s string, start int, end ...int) string {
	runes := []rune(s)
	n := len(runes)
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	e := n
	if len(end) > 0 {
		e = end[0]
	}
	if e > n {
		e = n
	}
	if e < start {
		e = start
	}
	return string(runes[start:e])
}

// runeWidth returns the terminal cell width of a single code point.
// Combining marks, variation selectors and the zero-width joiner report
// zero width so that grapheme clusters built from them measure correctly
// when their component widths are summed.
func runeWidth(r rune) int {
	switch {
	case r == 0x200D:
		return 0
	case r >= 0x0300 && r <= 0x036F: // combining diacriticals
		return 0
	case r >= 0xFE00 && r <= 0xFE0F: // variation selectors
		return 0
	case r >= 0xE0100 && r <= 0xE01EF: // variation selectors supplement
		return 0
	}
	return uniseg.StringWidth(string(r))
}

// VisualWidth returns the sum of per-code-point terminal cell widths of s,
// matching the width convention the layouter wraps against.
func VisualWidth(s string) int {
	width := 0
	for _, r := range s {
		width += runeWidth(r)
	}
	return width
}

// StripUnsafe strips ANSI escape sequences, DEL, and C0 control characters
// other than \n and \r, and drops any malformed byte sequence that does
// not decode to a single valid code point.
func StripUnsafe(s string) string {
	s = ansi.Strip(s)
	var b strings.Builder
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r == utf8.RuneError && size <= 1 {
			continue
		}
		if r == 0x7F {
			continue
		}
		if r <= 0x1F && r != '\n' && r != '\r' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

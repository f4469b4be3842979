// Package controller wraps the pure buffer engine with the observable,
// host-facing surface a terminal input field actually drives: viewport
// tracking, scroll-to-cursor, key translation, drag-and-drop path
// inference, the external-editor round trip, and a change callback.
package controller

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// HostCapabilities makes the handful of host-provided closures the
// controller needs explicit fields rather than an interface the host
// must implement in full. A zero-value HostCapabilities disables the
// capability it leaves nil (no path inference, no raw-mode toggling, no
// change notifications).
type HostCapabilities struct {
	// IsValidPath reports whether a string names a file the host
	// considers a valid drag-and-drop target.
	IsValidPath func(path string) bool

	// UnescapePath undoes a host's shell-style path escaping (e.g.
	// "\\ " -> " ") before IsValidPath is consulted.
	UnescapePath func(path string) string

	// SetRawMode toggles the host terminal in or out of raw mode; used
	// around the external-editor subprocess.
	SetRawMode func(raw bool) error

	// OnChange is invoked with the buffer's full text whenever a command
	// changes it.
	OnChange func(text string)
}

// DefaultHostCapabilities wires HostCapabilities against the real
// terminal and filesystem: SetRawMode toggles golang.org/x/term around
// os.Stdin's file descriptor, the way mikeb26-gptcli and
// framegrace-texelation juggle raw mode around a subprocess, and
// IsValidPath/UnescapePath perform a plain stat and backslash-space
// unescape.
func DefaultHostCapabilities() HostCapabilities {
	var saved *term.State
	return HostCapabilities{
		IsValidPath: func(path string) bool {
			if path == "" {
				return false
			}
			_, err := os.Stat(path)
			return err == nil
		},
		UnescapePath: func(path string) string {
			return strings.ReplaceAll(path, "\\ ", " ")
		},
		SetRawMode: func(raw bool) error {
			fd := int(os.Stdin.Fd())
			if raw {
				st, err := term.MakeRaw(fd)
				if err != nil {
					return err
				}
				saved = st
				return nil
			}
			if saved == nil {
				return nil
			}
			err := term.Restore(fd, saved)
			saved = nil
			return err
		},
	}
}

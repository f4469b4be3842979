package controller

import (
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rjsamson/tbuffer/buffer"
)

// debugEnvVar, when set to "1" or "true", turns on diagnostic logging
// for conditions the controller otherwise swallows (a failed external
// editor launch, a temp file that couldn't be written or read back).
const debugEnvVar = "TBUFFER_DEBUG"

func debugEnabled() bool {
	v := os.Getenv(debugEnvVar)
	return v == "1" || strings.EqualFold(v, "true")
}

func debugf(format string, args ...any) {
	if debugEnabled() {
		log.Printf(format, args...)
	}
}

func resolveEditor(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	return "vi"
}

// OpenInExternalEditor writes the buffer's current text to a temp file,
// records a single undo snapshot, drops the host out of raw mode, and
// runs editor (or $VISUAL, then $EDITOR, then a platform default)
// synchronously against the file. On success the file's contents become
// the new buffer as a single SetText call that does not push a second
// undo step, so one Undo returns to the pre-launch buffer. On any
// failure — a temp file error, a non-zero exit, an unreadable result —
// the pre-launch buffer is left untouched and the failure is logged
// under TBUFFER_DEBUG.
//
// Grounded on subbaan-notes' openInExternalEditor (tea.ExecProcess over
// exec.Command) and mikeb26-gptcli's os.CreateTemp/os.MkdirTemp usage
// for scratch files handed to a subprocess.
func (c *Controller) OpenInExternalEditor(editor string) {
	chosen := resolveEditor(editor)

	dir, err := os.MkdirTemp("", "tbuffer-*")
	if err != nil {
		debugf("tbuffer: failed to create temp dir: %v", err)
		return
	}
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "buffer.txt")
	if err := os.WriteFile(file, []byte(c.state.Text()), 0o600); err != nil {
		debugf("tbuffer: failed to write temp file: %v", err)
		return
	}

	c.state = buffer.PushSnapshot(c.state)

	rawModeWasOn := c.caps.SetRawMode != nil
	if rawModeWasOn {
		if err := c.caps.SetRawMode(false); err != nil {
			debugf("tbuffer: failed to leave raw mode: %v", err)
		}
	}

	cmd := exec.Command(chosen, file)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	runErr := cmd.Run()

	if rawModeWasOn {
		if err := c.caps.SetRawMode(true); err != nil {
			debugf("tbuffer: failed to restore raw mode: %v", err)
		}
	}

	if runErr != nil {
		debugf("tbuffer: external editor %q failed: %v", chosen, runErr)
		return
	}

	content, err := os.ReadFile(file)
	if err != nil {
		debugf("tbuffer: failed to read back temp file: %v", err)
		return
	}

	c.apply(buffer.SetTextAction(string(content), false))
}

// Package terminal detects whether the current environment can host the
// interactive filter widgets.
package terminal

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Env is the part of the process environment the check looks at
type Env struct {
	Term   string
	Stdout uintptr
}

// Current returns the environment of this process
func Current() Env {
	return Env{
		Term:   os.Getenv("TERM"),
		Stdout: os.Stdout.Fd(),
	}
}

// Supported reports whether the process runs on an interactive terminal
func Supported() bool {
	return Current().Supported()
}

// Supported reports whether e describes an interactive terminal. Dumb
// terminals cannot draw popups or move the cursor, so they are rejected.
func (e Env) Supported() bool {
	if strings.EqualFold(strings.TrimSpace(e.Term), "dumb") {
		return false
	}
	return isatty.IsTerminal(e.Stdout) || isatty.IsCygwinTerminal(e.Stdout)
}

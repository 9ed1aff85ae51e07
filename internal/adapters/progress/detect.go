package progress

import (
	"io"
	"os"

	"golang.org/x/term"
)

type fdWriter interface {
	Fd() uintptr
}

// IsInteractive reports whether w is a terminal outside of CI.
func IsInteractive(w io.Writer) bool {
	ci := os.Getenv("CI")
	if ci == "true" || ci == "1" {
		return false
	}
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

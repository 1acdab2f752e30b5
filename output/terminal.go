package output

import (
	"io"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

type fdWriter interface {
	Fd() uintptr
}

// IsTerminal reports whether w is a terminal. Writers wrapped by
// ObservedWriter are unwrapped first.
func IsTerminal(w io.Writer) bool {
	if observed, ok := w.(*ObservedWriter); ok {
		w = observed.Unwrap()
	}
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	fd := f.Fd()
	if term.IsTerminal(int(fd)) {
		return true
	}
	return isatty.IsCygwinTerminal(fd)
}

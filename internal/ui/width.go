package ui

import (
	"os"

	"golang.org/x/term"
)

// TerminalWidth returns the column count of stdout when it is a
// terminal, and 0 otherwise (e.g. when invoked from a scheduler with
// output redirected).
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

// ColumnWidth computes the width of one dashboard column: a third of the
// terminal, minus the two " | " separators and a trailing space, but
// never narrower than the configured width. A zero terminal width (no
// terminal) falls back to the configured width unchanged.
func ColumnWidth(termWidth, configured int) int {
	if termWidth <= 0 {
		return configured
	}
	w := (termWidth - 1 - 6) / 3
	if w < configured {
		return configured
	}
	return w
}

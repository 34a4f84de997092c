package ui

import "golang.org/x/term"

// fallbackWidth is assumed whenever the output is not a terminal or its
// size cannot be queried.
const fallbackWidth = 80

// IsTTY reports whether fd is attached to a terminal.
func IsTTY(fd uintptr) bool { return term.IsTerminal(int(fd)) }

// TermWidth returns the column count of the terminal on fd, or
// fallbackWidth when there is no terminal to measure.
func TermWidth(fd uintptr) int {
	cols, _, err := term.GetSize(int(fd))
	if err != nil || cols <= 0 {
		return fallbackWidth
	}
	return cols
}

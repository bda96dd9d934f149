// Package format provides shared text formatting utilities for terminal output.
package format

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DisplayWidth returns the visible width of a string in terminal
// columns, accounting for wide characters that occupy two columns.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most maxWidth display columns, appending
// "..." when a cut was necessary. maxWidth below 4 returns a bare cut
// since there is no room for the ellipsis.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if DisplayWidth(s) <= maxWidth {
		return s
	}
	if maxWidth < 4 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// PadRight pads s with spaces up to width display columns. Strings
// already at or past the target are returned unchanged.
func PadRight(s string, width int) string {
	gap := width - DisplayWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

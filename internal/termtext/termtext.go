// Package termtext makes text received from the simulation service safe to
// write to a terminal.
package termtext

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Clean strips ANSI escape sequences and control characters from s. Line
// breaks become spaces and trailing spaces are trimmed, so the result always
// occupies a single line.
func Clean(s string) string {
	s = ansi.Strip(s)

	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r':
			sb.WriteByte(' ')
		case r == ' ' || !unicode.IsControl(r):
			sb.WriteRune(r)
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

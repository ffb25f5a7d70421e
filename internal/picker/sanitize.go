package picker

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ansiRE matches CSI and OSC escape sequences that could corrupt list
// rendering if they leak into display text.
var ansiRE = regexp.MustCompile(`\x1b(?:\[[0-9;]*[A-Za-z]|\].*?(?:\x1b\\|\x07))`)

// stripANSI removes terminal escape sequences from display text.
func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

// oneLine collapses newlines; the list renderer assumes single-line items.
func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

// truncate shortens s to at most maxWidth display columns, appending an
// ellipsis when anything was cut. Display-width aware, so CJK characters
// and emoji count as two columns.
func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	const ellipsis = "…"
	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > maxWidth-1 {
			return s[:i] + ellipsis
		}
		w += rw
	}
	return s
}

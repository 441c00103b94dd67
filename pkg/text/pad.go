package text

import (
	runewidth "github.com/mattn/go-runewidth"
)

// PadRight fills s with spaces up to width terminal cells
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

package text

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Price renders an amount in minor currency units as dollars. Whole dollar
// amounts drop the cents unless round is false.
func Price(cents int, round bool) string {
	if round {
		return printer.Sprintf("$%d", (cents+50)/100)
	}
	return printer.Sprintf("$%.2f", float64(cents)/100)
}

// Guests pluralizes a guest count
func Guests(n int) string {
	if n == 1 {
		return "1 guest"
	}
	return humanize.Comma(int64(n)) + " guests"
}

// Nights pluralizes a night count
func Nights(n int) string {
	if n == 1 {
		return "1 night"
	}
	return humanize.Comma(int64(n)) + " nights"
}

func TruncateWithTail(txt string, width uint, ellipsis string) string {
	return truncate.StringWithTail(txt, width, ellipsis)
}

// Title truncates a single line of text to width with an ellipsis
func Title(txt string, width int) string {
	if width <= 0 {
		return ""
	}
	return TruncateWithTail(strings.TrimSpace(txt), uint(width), Ellipsis)
}

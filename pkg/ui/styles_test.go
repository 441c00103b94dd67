package ui

import (
	"testing"

	"github.com/muesli/reflow/ansi"
)

func TestGradientKeepsText(t *testing.T) {
	out := Gradient("Premium Listings", InstaOrangeHex, InstaMagentaHex)
	if w := ansi.PrintableRuneWidth(out); w != len("Premium Listings") {
		t.Fatalf("expected 16 printable cells but got %d in %q", w, out)
	}
	if Gradient("x", "not a color", InstaMagentaHex) != "x" {
		t.Fatal("a bad color should leave the text alone")
	}
}

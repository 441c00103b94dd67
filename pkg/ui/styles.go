package ui

import (
	"strings"

	lib "github.com/charmbracelet/charm/ui/common"
	"github.com/lucasb-eyer/go-colorful"
	te "github.com/muesli/termenv"
)

type StyleFunc func(string) string

const (
	DarkGrayHex     = "#333333"
	InstaOrangeHex  = "#fa7e1e"
	InstaMagentaHex = "#d62976"
)

var (
	// Card colors
	CardTitleFocused    = FuchsiaFg
	CardDetailFocused   = DullFuchsiaFg
	CardTitleUnfocused  = NormalFg
	CardDetailUnfocused = BrightGrayFg
	CardPriceFg         = GreenFg
	CardSkeletonFg      = DarkGrayFg
	HeaderViewerFg      = IndigoFg
	HeaderRouteFg       = GrayFg
	BannerErrorTextFg   = FaintRedFg
	BannerSuccessTextFg = SemiDimGreenFg
	BannerInfoTextFg    = SubtleIndigoFg
	FormLabelFocused    = FuchsiaFg
	FormLabelUnfocused  = BrightGrayFg
	FormHintFg          = DimBrightGrayFg
	PremiumHeadingFg    = InstaOrange
	EmptyStateFg        = DimNormalFg

	NormalFg    = NewFgStyle(lib.NewColorPair("#dddddd", "#1a1a1a"))
	DimNormalFg = NewFgStyle(lib.NewColorPair("#777777", "#A49FA5"))

	BrightGrayFg    = NewFgStyle(lib.NewColorPair("#979797", "#847A85"))
	DimBrightGrayFg = NewFgStyle(lib.NewColorPair("#4D4D4D", "#C2B8C2"))

	GrayFg     = NewFgStyle(lib.NewColorPair("#626262", "#909090"))
	DarkGrayFg = NewFgStyle(lib.NewColorPair("#3C3C3C", "#DDDADA"))

	GreenFg        = NewFgStyle(lib.NewColorPair("#04B575", "#04B575"))
	SemiDimGreenFg = NewFgStyle(lib.NewColorPair("#036B46", "#35D79C"))

	FuchsiaFg     = NewFgStyle(lib.Fuschia)
	DullFuchsiaFg = NewFgStyle(lib.NewColorPair("#AD58B4", "#F793FF"))

	IndigoFg       = NewFgStyle(lib.Indigo)
	SubtleIndigoFg = NewFgStyle(lib.NewColorPair("#514DC1", "#7D79F6"))

	RedFg      = NewFgStyle(lib.Red)
	FaintRedFg = NewFgStyle(lib.FaintRed)

	// instagram color palette
	// https://www.color-hex.com/color-palette/44340
	InstaOrange  = NewFgStyle(lib.NewColorPair(InstaOrangeHex, InstaOrangeHex))
	InstaMagenta = NewFgStyle(lib.NewColorPair(InstaMagentaHex, InstaMagentaHex))
)

// Returns a termenv style with foreground and background options.
func NewStyle(fg, bg lib.ColorPair, bold bool) StyleFunc {
	s := te.Style{}.Foreground(fg.Color()).Background(bg.Color())
	if bold {
		s = s.Bold()
	}
	return s.Styled
}

// Returns a new termenv style with foreground options only.
func NewFgStyle(c lib.ColorPair) StyleFunc {
	return te.Style{}.Foreground(c.Color()).Styled
}

// Pill renders s as a bold label on a colored background
func Pill(s string, fg, bg lib.ColorPair) string {
	return NewStyle(fg, bg, true)(" " + s + " ")
}

// ErrorPill and SuccessPill prefix banners
func ErrorPill(s string) string   { return Pill(s, lib.Cream, lib.Red) }
func SuccessPill(s string) string { return Pill(s, lib.Cream, lib.Green) }
func InfoPill(s string) string    { return Pill(s, lib.Cream, lib.Indigo) }

// Gradient colors each rune of s along a blend between two hex colors. Plain
// text is returned when the terminal has no color.
func Gradient(s, from, to string) string {
	profile := te.ColorProfile()
	if profile == te.Ascii {
		return s
	}
	start, err := colorful.Hex(from)
	if err != nil {
		return s
	}
	end, err := colorful.Hex(to)
	if err != nil {
		return s
	}

	runes := []rune(s)
	b := strings.Builder{}
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := profile.Color(start.BlendLuv(end, t).Hex())
		b.WriteString(te.String(string(r)).Foreground(c).String())
	}
	return b.String()
}

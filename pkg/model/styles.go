package model

import (
	"fmt"
	"strings"

	"github.com/byxorna/tinyhouse/pkg/text"
	v1 "github.com/byxorna/tinyhouse/pkg/types/v1"
	"github.com/byxorna/tinyhouse/pkg/ui"
	lib "github.com/charmbracelet/charm/ui/common"
	"github.com/charmbracelet/lipgloss"
	te "github.com/muesli/termenv"
)

const (
	cardWidth = 60
)

var (
	// General.

	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	divider = lipgloss.NewStyle().
		SetString("•").
		Padding(0, 1).
		Foreground(subtle).
		String()

	// Header.

	logoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF7DB")).
			Background(lipgloss.Color("#F25D94")).
			Bold(true).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(subtle).
			MarginBottom(1)

	// Titles.

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlight).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"})

	// Dialog.

	dialogBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2).
			BorderTop(true).
			BorderLeft(true).
			BorderRight(true).
			BorderBottom(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF7DB")).
			Background(lipgloss.Color("#888B7E")).
			Padding(0, 3).
			MarginTop(1)

	activeButtonStyle = buttonStyle.Copy().
				Foreground(lipgloss.Color("#FFF7DB")).
				Background(lipgloss.Color("#F25D94")).
				Underline(true)

	// Cards.

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(subtle).
			PaddingLeft(1).
			MarginBottom(1)

	activeCardStyle = cardStyle.Copy().
			BorderForeground(special)

	// Page.

	docStyle = lipgloss.NewStyle().Padding(1, 2, 1, 2)
)

// errorView renders a fatal error that ends the program
func errorView(err error) string {
	s := fmt.Sprintf("%s\n\n%v\n\n%s",
		te.String(" ERROR ").
			Foreground(lib.Cream.Color()).
			Background(lib.Red.Color()).
			String(),
		err,
		lib.Subtle("press any key to exit"),
	)
	return dialogBoxStyle.Copy().Align(lipgloss.Center).Render(s)
}

// errorBanner is the non-blocking error shown above a page
func errorBanner(description string) string {
	return ui.ErrorPill("Uh oh! Something went wrong :(") + " " + ui.BannerErrorTextFg(description)
}

func successBanner(message string) string {
	return ui.SuccessPill(text.EmojiCheck) + " " + ui.BannerSuccessTextFg(message)
}

func infoBanner(message string) string {
	return ui.InfoPill("i") + " " + ui.BannerInfoTextFg(message)
}

// skeleton renders n placeholder cards while a page is loading or has failed
func skeleton(n int) string {
	line := ui.CardSkeletonFg(strings.Repeat("░", cardWidth/2))
	short := ui.CardSkeletonFg(strings.Repeat("░", cardWidth/3))
	cards := make([]string, n)
	for i := range cards {
		cards[i] = cardStyle.Render(line + "\n" + short)
	}
	return strings.Join(cards, "\n")
}

// listingCard renders the summary of a listing
func listingCard(l v1.ListingSummary, focused bool) string {
	titleFn, detailFn, style := ui.CardTitleUnfocused, ui.CardDetailUnfocused, cardStyle
	if focused {
		titleFn, detailFn, style = ui.CardTitleFocused, ui.CardDetailFocused, activeCardStyle
	}

	title := text.Title(l.Title, cardWidth)
	price := ui.CardPriceFg(text.Price(l.Price, true)) + detailFn("/day")
	details := detailFn(text.Title(l.Address, cardWidth-2)) + "\n" +
		price + divider + detailFn(text.EmojiGuests+" "+text.Guests(l.NumOfGuests))

	return style.Render(titleFn(title) + "\n" + details)
}

func button(label string, focused bool) string {
	if focused {
		return activeButtonStyle.Render(label)
	}
	return buttonStyle.Render(label)
}

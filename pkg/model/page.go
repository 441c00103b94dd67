package model

import (
	"github.com/byxorna/tinyhouse/pkg/route"
	tea "github.com/charmbracelet/bubbletea"
)

// page is a routable view. Pages own their state and only change it in
// update.
type page interface {
	init() tea.Cmd
	update(msg tea.Msg) (page, tea.Cmd)
	view() string
	// capturing reports whether keystrokes are going to a focused text field
	capturing() bool
}

// newPage builds the page for r. The listings page is the only one that
// survives a route change, see Model.goTo.
func newPage(common *commonModel, r route.Route) page {
	switch r.Kind {
	case route.HomeKind:
		return newHomeModel(common)
	case route.ListingsKind:
		return newListingsModel(common, r.Param)
	case route.ListingKind:
		return newListingModel(common, r.Param)
	case route.UserKind:
		return newUserModel(common, r.Param, r.StripeError())
	case route.LoginKind:
		return newLoginModel(common, r.Code())
	case route.HostKind:
		return newHostModel(common)
	case route.StripeKind:
		return newStripeModel(common, r.Code())
	}
	return notFoundModel{}
}

type notFoundModel struct{}

func (notFoundModel) init() tea.Cmd                    { return nil }
func (m notFoundModel) update(tea.Msg) (page, tea.Cmd) { return m, nil }
func (notFoundModel) capturing() bool                  { return false }
func (notFoundModel) view() string {
	return titleStyle.Render("Uh oh! Something went wrong :(") + "\n" +
		subtitleStyle.Render("The page you're looking for can't be found. Press esc to head home.")
}

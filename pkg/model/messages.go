package model

import (
	"time"

	"github.com/byxorna/tinyhouse/pkg/route"
	v1 "github.com/byxorna/tinyhouse/pkg/types/v1"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	statusMessageTimeoutDefault = time.Second * 4
)

// how long to show status messages like "booked!"
var statusMessageTimeout = statusMessageTimeoutDefault

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// navigateMsg asks the app to show route. notice, when set, is shown as a
// success message once the new page is up.
type navigateMsg struct {
	route  route.Route
	notice string
}

// viewerChangedMsg is sent when the session changes outside of Update, for
// example when the session file is removed by another process
type viewerChangedMsg v1.Viewer

type bootstrapMsg struct {
	viewer v1.Viewer
	err    error
}

type loggedOutMsg struct {
	viewer v1.Viewer
	err    error
}

type statusMessageTimeoutMsg struct{ id int }

// noticeMsg asks the app to flash a status message
type noticeMsg struct {
	message string
	isError bool
}

type premiumListingsMsg struct {
	page v1.ListingsPage
	err  error
}

type listingsLoadedMsg struct {
	gen  int
	page v1.ListingsPage
	err  error
}

type authURLMsg struct {
	url string
	err error
}

type browserOpenedMsg struct {
	url string
	err error
}

type loggedInMsg struct {
	code   string
	viewer v1.Viewer
	err    error
}

type imageEncodedMsg struct {
	gen  int
	path string
	data string
	size int64
	err  error
}

type listingHostedMsg struct {
	id  string
	err error
}

type listingLoadedMsg struct {
	gen         int
	listing     v1.Listing
	description string
	err         error
}

type bookingCreatedMsg struct {
	id  string
	err error
}

type stripeConnectedMsg struct {
	code      string
	hasWallet bool
	err       error
}

type walletDisconnectedMsg struct {
	hasWallet bool
	err       error
}

type userLoadedMsg struct {
	gen  int
	user v1.User
	err  error
}

func navigate(r route.Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: r} }
}

func navigateWithNotice(r route.Route, notice string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: r, notice: notice} }
}

func notify(message string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{message: message} }
}

func notifyError(message string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{message: message, isError: true} }
}

func waitForStatusMessageTimeout(id int, t *time.Timer) tea.Cmd {
	return func() tea.Msg {
		<-t.C
		return statusMessageTimeoutMsg{id: id}
	}
}

func waitForViewer(ch <-chan v1.Viewer) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return nil
		}
		return viewerChangedMsg(v)
	}
}

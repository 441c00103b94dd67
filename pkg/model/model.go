package model

import (
	"context"
	"strings"
	"time"

	"github.com/byxorna/tinyhouse/pkg/gateway"
	"github.com/byxorna/tinyhouse/pkg/payment"
	"github.com/byxorna/tinyhouse/pkg/route"
	"github.com/byxorna/tinyhouse/pkg/session"
	"github.com/byxorna/tinyhouse/pkg/text"
	v1 "github.com/byxorna/tinyhouse/pkg/types/v1"
	"github.com/byxorna/tinyhouse/pkg/ui"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

const (
	bootstrapErrorDescription = "We weren't able to verify that you were logged in. Please try again later!"
	logoutErrorDescription    = "Sorry! We weren't able to log you out. Please try again later!"
	logoutNotice              = "You've successfully logged out!"
)

// Options are the collaborators the application is wired to
type Options struct {
	Gateway        gateway.Executor
	Session        *session.Session
	Payment        payment.Widget
	Open           func(url string) error
	StripeClientID string
	Log            logrus.FieldLogger
	ViewerUpdates  <-chan v1.Viewer
	Start          route.Route
}

// Model is the top level application. It owns the router and the session
// bootstrap, and hands every other message to the current page.
type Model struct {
	common  *commonModel
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	route route.Route
	page  page

	viewerUpdates <-chan v1.Viewer
	// identity the cached query results belong to
	cacheOwner string

	bootstrapRequested bool
	bootstrapFailed    bool
	ready              bool

	statusMessage      string
	statusIsError      bool
	statusID           int
	statusMessageTimer *time.Timer

	fatalErr error
}

func New(ctx context.Context, opts Options) *Model {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	sp := spinner.NewModel()
	sp.Spinner = spinner.Dot
	sp.HideFor = time.Millisecond * 50
	sp.MinimumLifetime = time.Millisecond * 180

	m := Model{
		common: &commonModel{
			ctx:            ctx,
			gateway:        opts.Gateway,
			session:        opts.Session,
			payment:        opts.Payment,
			open:           opts.Open,
			stripeClientID: opts.StripeClientID,
			log:            log,
			now:            time.Now,
			exchanged:      map[string]struct{}{},
			connected:      map[string]struct{}{},
		},
		keys:          defaultKeyMap(),
		help:          help.NewModel(),
		spinner:       sp,
		route:         opts.Start,
		viewerUpdates: opts.ViewerUpdates,
	}
	m.common.spinner = &m.spinner
	return &m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(spinner.Tick, m.bootstrap(), waitForViewer(m.viewerUpdates))
}

// bootstrap resumes the session named by the stored token. It is issued at
// most once per process.
func (m *Model) bootstrap() tea.Cmd {
	if m.bootstrapRequested {
		return nil
	}
	m.bootstrapRequested = true

	ctx, gw := m.common.requestContext(), m.common.gateway
	return func() tea.Msg {
		v, err := gateway.LogIn(ctx, gw, "")
		return bootstrapMsg{viewer: v, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// If there's been an error, any key exits
	if m.fatalErr != nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, tea.Quit
		}
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case errMsg:
		m.fatalErr = msg.err
		return m, nil

	// Window size is received when starting up and on every resize
	case tea.WindowSizeMsg:
		m.common.width = msg.Width
		m.common.height = msg.Height
		m.help.Width = msg.Width

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case bootstrapMsg:
		if msg.err != nil {
			m.common.log.WithError(msg.err).Warn("unable to resume session")
			m.bootstrapFailed = true
			m.common.session.Fail()
		} else if err := m.common.session.Apply(msg.viewer); err != nil {
			m.common.log.WithError(err).Error("unable to persist session")
		}
		m.ready = true
		return m, m.goTo(m.route)

	case viewerChangedMsg:
		m.common.log.WithField("viewer", msg.ID).Debug("viewer changed")
		if id := m.common.viewer().ID; id != m.cacheOwner {
			m.cacheOwner = id
			m.common.resetCache()
		}
		cmds = append(cmds, waitForViewer(m.viewerUpdates))

	case loggedOutMsg:
		if msg.err != nil {
			m.common.log.WithError(msg.err).Warn("unable to log out")
			return m, m.showStatusMessage(logoutErrorDescription, true)
		}
		if err := m.common.session.Apply(msg.viewer); err != nil {
			m.common.log.WithError(err).Error("unable to clear session")
		}
		m.common.resetCache()
		return m, m.showStatusMessage(logoutNotice, false)

	case navigateMsg:
		if msg.notice != "" {
			cmds = append(cmds, m.showStatusMessage(msg.notice, false))
		}
		if !m.ready {
			m.route = msg.route
			return m, tea.Batch(cmds...)
		}
		if m.page == nil || !msg.route.Equal(m.route) {
			cmds = append(cmds, m.goTo(msg.route))
		}
		return m, tea.Batch(cmds...)

	case noticeMsg:
		return m, m.showStatusMessage(msg.message, msg.isError)

	case statusMessageTimeoutMsg:
		if msg.id == m.statusID {
			m.statusMessage = ""
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if !m.ready {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Home):
			if e, ok := m.page.(escaper); ok && e.escape() {
				return m, nil
			}
			return m, navigate(route.Home())

		case key.Matches(msg, m.keys.Login):
			return m, navigate(route.Login())

		case key.Matches(msg, m.keys.Logout):
			return m, m.logout()

		case key.Matches(msg, m.keys.Host):
			return m, navigate(route.Host())

		case key.Matches(msg, m.keys.Profile):
			if v := m.common.viewer(); v.LoggedIn() {
				return m, navigate(route.User(v.ID))
			}
			return m, navigate(route.Login())

		case key.Matches(msg, m.keys.Quit) && !m.page.capturing():
			return m, tea.Quit
		}
	}

	if m.ready && m.page != nil {
		var cmd tea.Cmd
		m.page, cmd = m.page.update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// goTo shows r. Moving between two listings searches keeps the listings page
// so that its filter survives and the page number is reset for the new
// location.
func (m *Model) goTo(r route.Route) tea.Cmd {
	m.common.log.WithField("route", r.String()).Info("navigate")
	prev := m.route
	m.route = r

	if lm, ok := m.page.(*listingsModel); ok && prev.Kind == route.ListingsKind && r.Kind == route.ListingsKind {
		return lm.setLocation(r.Param)
	}

	m.page = newPage(m.common, r)
	return m.page.init()
}

func (m *Model) logout() tea.Cmd {
	if !m.common.viewer().LoggedIn() {
		return nil
	}
	ctx, gw := m.common.requestContext(), m.common.gateway
	return func() tea.Msg {
		v, err := gateway.LogOut(ctx, gw)
		return loggedOutMsg{viewer: v, err: err}
	}
}

func (m *Model) showStatusMessage(message string, isError bool) tea.Cmd {
	m.statusMessage = message
	m.statusIsError = isError
	m.statusID++
	if m.statusMessageTimer != nil {
		m.statusMessageTimer.Stop()
	}
	m.statusMessageTimer = time.NewTimer(statusMessageTimeout)
	return waitForStatusMessageTimeout(m.statusID, m.statusMessageTimer)
}

func (m *Model) View() string {
	if m.fatalErr != nil {
		return errorView(m.fatalErr)
	}

	if !m.ready {
		return docStyle.Render(logoStyle.Render("tinyhouse") + "\n\n" +
			m.spinner.View() + " Launching Tinyhouse")
	}

	b := strings.Builder{}
	b.WriteString(m.headerView())
	b.WriteString("\n")
	if m.bootstrapFailed {
		b.WriteString(errorBanner(bootstrapErrorDescription) + "\n\n")
	}
	if m.statusMessage != "" {
		if m.statusIsError {
			b.WriteString(errorBanner(m.statusMessage) + "\n\n")
		} else {
			b.WriteString(successBanner(m.statusMessage) + "\n\n")
		}
	}
	b.WriteString(m.page.view())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return docStyle.Render(b.String())
}

func (m *Model) headerView() string {
	v := m.common.viewer()
	var who string
	if v.LoggedIn() {
		who = ui.HeaderViewerFg("signed in as " + v.ID)
		if v.HasWallet {
			who += divider + ui.HeaderViewerFg(text.EmojiCard+" connected")
		}
	} else {
		who = ui.HeaderRouteFg("not signed in")
	}
	left := logoStyle.Render("tinyhouse") + divider + ui.HeaderRouteFg(m.route.String())

	gap := m.common.width - lipgloss.Width(left) - lipgloss.Width(who) - 4
	if gap < 1 {
		gap = 1
	}
	return headerStyle.Render(left + strings.Repeat(" ", gap) + who)
}

// escaper is implemented by pages that use esc to leave a nested state
// before the app uses it to head home
type escaper interface {
	escape() bool
}

// Route is the route currently shown
func (m *Model) Route() route.Route { return m.route }

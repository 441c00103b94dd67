package model

import (
	"strings"

	"github.com/byxorna/tinyhouse/pkg/gateway"
	"github.com/byxorna/tinyhouse/pkg/route"
	"github.com/byxorna/tinyhouse/pkg/text"
	"github.com/byxorna/tinyhouse/pkg/ui"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	authURLErrorDescription  = "Sorry! We weren't able to log you in. Please try again later!"
	exchangeErrorDescription = "Sorry! We weren't able to log you in. Please try again later!"
	codeCharacterLimit       = 512
)

type loginState int

const (
	loginStateIdle loginState = iota
	loginStateFetchingURL
	loginStateAwaitingCode
	loginStateExchanging
	loginStateFailed
)

type loginFocus int

const (
	focusSignInButton loginFocus = iota
	focusCodeInput
)

// loginModel starts the external sign in and exchanges the code it returns
// for a session
type loginModel struct {
	common *commonModel
	code   string
	state  loginState
	focus  loginFocus
	input  textinput.Model

	authURL    string
	authFailed bool
}

func newLoginModel(common *commonModel, code string) *loginModel {
	ti := textinput.NewModel()
	ti.Prompt = text.EmojiKey + " "
	ti.Placeholder = "paste the code from your browser"
	ti.CharLimit = codeCharacterLimit

	return &loginModel{
		common: common,
		code:   code,
		input:  ti,
	}
}

func (m *loginModel) init() tea.Cmd {
	if v := m.common.viewer(); v.LoggedIn() {
		return navigate(route.User(v.ID))
	}
	return m.exchange()
}

// exchange trades the route's code for a session. Each code is sent at most
// once.
func (m *loginModel) exchange() tea.Cmd {
	if m.code == "" {
		return nil
	}
	if _, done := m.common.exchanged[m.code]; done {
		return nil
	}
	m.common.exchanged[m.code] = struct{}{}
	m.state = loginStateExchanging

	code := m.code
	ctx, gw := m.common.requestContext(), m.common.gateway
	return func() tea.Msg {
		v, err := gateway.LogIn(ctx, gw, code)
		return loggedInMsg{code: code, viewer: v, err: err}
	}
}

func (m *loginModel) fetchAuthURL() tea.Cmd {
	m.state = loginStateFetchingURL
	m.authFailed = false
	ctx, gw := m.common.requestContext(), m.common.gateway
	return func() tea.Msg {
		u, err := gateway.AuthURL(ctx, gw)
		return authURLMsg{url: u, err: err}
	}
}

func (m *loginModel) capturing() bool { return m.input.Focused() }

func (m *loginModel) setFocus(f loginFocus) {
	m.focus = f
	if f == focusCodeInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *loginModel) update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case loggedInMsg:
		if msg.code != m.code {
			return m, nil
		}
		if msg.err != nil {
			m.common.log.WithError(msg.err).Warn("unable to exchange login code")
			m.state = loginStateFailed
			return m, nil
		}
		if err := m.common.session.Apply(msg.viewer); err != nil {
			m.common.log.WithError(err).Error("unable to persist session")
		}
		m.common.resetCache()
		if !msg.viewer.LoggedIn() {
			m.state = loginStateFailed
			return m, nil
		}
		return m, navigateWithNotice(route.User(msg.viewer.ID), "You've successfully logged in!")

	case authURLMsg:
		if msg.err != nil {
			m.common.log.WithError(msg.err).Warn("unable to fetch auth url")
			m.state = loginStateIdle
			m.authFailed = true
			return m, nil
		}
		m.authURL = msg.url
		return m, m.common.openBrowser(msg.url)

	case browserOpenedMsg:
		if msg.err != nil {
			m.common.log.WithError(msg.err).Warn("unable to open browser")
		}
		m.state = loginStateAwaitingCode
		m.setFocus(focusCodeInput)
		return m, nil

	case tea.KeyMsg:
		if m.state == loginStateExchanging || m.state == loginStateFetchingURL {
			return m, nil
		}
		switch {
		case msg.Type == tea.KeyTab || msg.Type == tea.KeyShiftTab:
			if m.focus == focusSignInButton {
				m.setFocus(focusCodeInput)
			} else {
				m.setFocus(focusSignInButton)
			}
			return m, nil

		case key.Matches(msg, pageKeys.Open):
			if m.focus == focusSignInButton {
				return m, m.fetchAuthURL()
			}
			code := strings.TrimSpace(m.input.Value())
			if code == "" {
				return m, nil
			}
			return m, navigate(route.LoginWithCode(code))
		}
	}

	if m.focus == focusCodeInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *loginModel) view() string {
	if m.state == loginStateExchanging {
		return m.common.spin() + " Logging you in..."
	}

	b := strings.Builder{}
	if m.state == loginStateFailed {
		b.WriteString(errorBanner(exchangeErrorDescription) + "\n\n")
	}
	if m.authFailed {
		b.WriteString(errorBanner(authURLErrorDescription) + "\n\n")
	}

	card := strings.Builder{}
	card.WriteString(titleStyle.Render(text.EmojiHouse + " Log in to TinyHouse!"))
	card.WriteString("\n")
	card.WriteString(subtitleStyle.Render("Sign in with Google to start booking available rentals!"))
	card.WriteString("\n")

	if m.state == loginStateFetchingURL {
		card.WriteString("\n" + m.common.spin() + " contacting Google")
	} else {
		card.WriteString(button("Sign in with Google", m.focus == focusSignInButton))
	}

	if m.authURL != "" {
		card.WriteString("\n\n")
		card.WriteString(infoBanner("Finish signing in at " + m.authURL))
	}

	card.WriteString("\n\n")
	if m.focus == focusCodeInput {
		card.WriteString(ui.FormLabelFocused("Code") + "\n")
	} else {
		card.WriteString(ui.FormLabelUnfocused("Code") + "\n")
	}
	card.WriteString(m.input.View())
	card.WriteString("\n\n")
	card.WriteString(ui.FormHintFg("Note: By signing in, you'll be redirected to the Google consent form to sign in\nwith your Google account. Paste the code you are given above to finish."))

	b.WriteString(dialogBoxStyle.Render(card.String()))
	return b.String()
}

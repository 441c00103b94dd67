package model

import (
	"github.com/byxorna/tinyhouse/pkg/gateway"
	"github.com/byxorna/tinyhouse/pkg/route"
	tea "github.com/charmbracelet/bubbletea"
)

const stripeConnectedNotice = "You've successfully connected your Stripe Account! You can now begin to create listings in the Host page."

// stripeModel finishes connecting a wallet with the code Stripe handed back
// and returns to the viewer's profile either way
type stripeModel struct {
	common *commonModel
	code   string
}

func newStripeModel(common *commonModel, code string) *stripeModel {
	return &stripeModel{common: common, code: code}
}

func (m *stripeModel) capturing() bool { return false }

func (m *stripeModel) init() tea.Cmd {
	v := m.common.viewer()
	if m.code == "" || !v.LoggedIn() {
		return navigate(route.Login())
	}
	if _, done := m.common.connected[m.code]; done {
		return navigate(route.User(v.ID))
	}
	m.common.connected[m.code] = struct{}{}

	code := m.code
	ctx, gw := m.common.requestContext(), m.common.gateway
	return func() tea.Msg {
		hasWallet, err := gateway.ConnectStripe(ctx, gw, code)
		return stripeConnectedMsg{code: code, hasWallet: hasWallet, err: err}
	}
}

func (m *stripeModel) update(msg tea.Msg) (page, tea.Cmd) {
	res, ok := msg.(stripeConnectedMsg)
	if !ok || res.code != m.code {
		return m, nil
	}
	id := m.common.viewer().ID
	if res.err != nil {
		m.common.log.WithError(res.err).Warn("unable to connect stripe")
		return m, navigate(route.UserWithStripeError(id))
	}
	m.common.session.SetWallet(res.hasWallet)
	return m, navigateWithNotice(route.User(id), stripeConnectedNotice)
}

func (m *stripeModel) view() string {
	return m.common.spin() + " Connecting your Stripe account...\n" +
		subtitleStyle.Render("Hang tight! We're setting up your wallet.")
}

package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/byxorna/tinyhouse/pkg/gateway"
	"github.com/byxorna/tinyhouse/pkg/payment"
	"github.com/byxorna/tinyhouse/pkg/route"
	"github.com/byxorna/tinyhouse/pkg/text"
	v1 "github.com/byxorna/tinyhouse/pkg/types/v1"
	"github.com/byxorna/tinyhouse/pkg/ui"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	userPageLimit = 4

	userErrorDescription   = "This user may not exist or we've encountered an error. Please try again later."
	stripeErrorDescription = "We had an issue connecting with Stripe. Please try again later."

	disconnectStripeErrorDescription = "Sorry! We weren't able to disconnect you from Stripe. Please try again later!"
	stripeUnavailableDescription     = "Connecting with Stripe isn't set up for this client."
	stripeDisconnectedNotice         = "You've successfully disconnected from Stripe! You'll have to reconnect with Stripe to continue to create listings."
)

type walletState int

const (
	walletIdle walletState = iota
	walletAwaitingCode
	walletDisconnecting
)

type userSection int

const (
	userSectionListings userSection = iota
	userSectionBookings
)

// userModel shows a profile with its listings, and its bookings when the
// viewer is looking at their own profile
type userModel struct {
	common      *commonModel
	id          string
	stripeError bool

	gen          int
	state        loadState
	user         v1.User
	listingsPage int
	bookingsPage int

	section userSection
	cursor  int

	wallet      walletState
	walletInput textinput.Model
	connectURL  string
}

func newUserModel(common *commonModel, id string, stripeError bool) *userModel {
	ti := textinput.NewModel()
	ti.Prompt = text.EmojiKey + " "
	ti.Placeholder = "paste the code from Stripe"
	ti.CharLimit = codeCharacterLimit

	return &userModel{
		common:       common,
		id:           id,
		stripeError:  stripeError,
		listingsPage: 1,
		bookingsPage: 1,
		walletInput:  ti,
	}
}

func (m *userModel) init() tea.Cmd { return m.fetch() }

func (m *userModel) capturing() bool { return m.walletInput.Focused() }

// ownProfile reports whether the signed in viewer is looking at themselves
func (m *userModel) ownProfile() bool {
	v := m.common.viewer()
	return v.LoggedIn() && v.ID == m.user.ID
}

// toggleWallet disconnects a connected wallet, or sends the viewer to the
// Stripe consent page and waits for the code it hands back
func (m *userModel) toggleWallet() tea.Cmd {
	if m.user.HasWallet {
		m.wallet = walletDisconnecting
		ctx, gw := m.common.requestContext(), m.common.gateway
		return func() tea.Msg {
			hasWallet, err := gateway.DisconnectStripe(ctx, gw)
			return walletDisconnectedMsg{hasWallet: hasWallet, err: err}
		}
	}
	if m.common.stripeClientID == "" {
		return notifyError(stripeUnavailableDescription)
	}
	m.wallet = walletAwaitingCode
	m.connectURL = payment.ConnectURL(m.common.stripeClientID)
	m.walletInput.Focus()
	return m.common.openBrowser(m.connectURL)
}

func (m *userModel) escape() bool {
	if m.wallet != walletAwaitingCode {
		return false
	}
	m.wallet = walletIdle
	m.connectURL = ""
	m.walletInput.Reset()
	m.walletInput.Blur()
	return true
}

func (m *userModel) updateWalletInput(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, pageKeys.Open) {
		code := strings.TrimSpace(m.walletInput.Value())
		if code == "" {
			return nil
		}
		return navigate(route.Stripe(code))
	}
	var cmd tea.Cmd
	m.walletInput, cmd = m.walletInput.Update(msg)
	return cmd
}

func (m *userModel) fetch() tea.Cmd {
	m.gen++
	m.state = stateLoading

	gen, id, bookingsPage, listingsPage := m.gen, m.id, m.bookingsPage, m.listingsPage
	ctx, gw := m.common.requestContext(), m.common.gateway
	return func() tea.Msg {
		u, err := gateway.User(ctx, gw, id, bookingsPage, listingsPage, userPageLimit, gateway.NetworkOnly)
		return userLoadedMsg{gen: gen, user: u, err: err}
	}
}

// items are the listings in the focused section
func (m *userModel) items() []v1.ListingSummary {
	if m.section == userSectionListings {
		return m.user.Listings.Result
	}
	if m.user.Bookings == nil {
		return nil
	}
	out := []v1.ListingSummary{}
	for _, b := range m.user.Bookings.Result {
		if b.Listing != nil {
			out = append(out, *b.Listing)
		}
	}
	return out
}

func (m *userModel) update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case userLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.err != nil {
			m.common.log.WithError(msg.err).Warn("unable to load user")
			m.state = stateError
			m.user = v1.User{}
			return m, nil
		}
		m.state = stateReady
		m.user = msg.user
		if m.user.Bookings != nil {
			sort.Stable(v1.ByCheckIn(m.user.Bookings.Result))
		}
		m.cursor = 0
		return m, nil

	case browserOpenedMsg:
		if msg.err != nil {
			m.common.log.WithError(msg.err).Warn("unable to open browser")
		}
		return m, nil

	case walletDisconnectedMsg:
		m.wallet = walletIdle
		if msg.err != nil {
			m.common.log.WithError(msg.err).Warn("unable to disconnect stripe")
			return m, notifyError(disconnectStripeErrorDescription)
		}
		m.common.session.SetWallet(msg.hasWallet)
		return m, tea.Batch(notify(stripeDisconnectedNotice), m.fetch())

	case tea.KeyMsg:
		if m.wallet == walletAwaitingCode {
			return m, m.updateWalletInput(msg)
		}
		if m.state != stateReady || m.wallet == walletDisconnecting {
			return m, nil
		}
		switch {
		case key.Matches(msg, pageKeys.Wallet) && m.ownProfile():
			return m, m.toggleWallet()

		case msg.Type == tea.KeyTab:
			if m.section == userSectionListings && m.user.Bookings != nil {
				m.section = userSectionBookings
			} else {
				m.section = userSectionListings
			}
			m.cursor = 0

		case key.Matches(msg, pageKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, pageKeys.Down):
			if m.cursor < len(m.items())-1 {
				m.cursor++
			}

		case key.Matches(msg, pageKeys.Prev):
			return m, m.turnPage(-1)

		case key.Matches(msg, pageKeys.Next):
			return m, m.turnPage(1)

		case key.Matches(msg, pageKeys.Open):
			if items := m.items(); len(items) > 0 {
				return m, navigate(route.Listing(items[m.cursor].ID))
			}
		}
	}
	return m, nil
}

func (m *userModel) turnPage(delta int) tea.Cmd {
	if m.section == userSectionListings {
		next := m.listingsPage + delta
		if next < 1 || next > v1.TotalPages(m.user.Listings.Total, userPageLimit) {
			return nil
		}
		m.listingsPage = next
		return m.fetch()
	}
	if m.user.Bookings == nil {
		return nil
	}
	next := m.bookingsPage + delta
	if next < 1 || next > v1.TotalPages(m.user.Bookings.Total, userPageLimit) {
		return nil
	}
	m.bookingsPage = next
	return m.fetch()
}

func (m *userModel) view() string {
	b := strings.Builder{}
	if m.stripeError {
		b.WriteString(errorBanner(stripeErrorDescription) + "\n\n")
	}

	switch m.state {
	case stateLoading:
		b.WriteString(m.common.spin() + "\n\n" + skeleton(userPageLimit))
		return b.String()
	case stateError:
		b.WriteString(errorBanner(userErrorDescription) + "\n\n" + skeleton(userPageLimit))
		return b.String()
	}

	u := m.user
	viewerIsUser := m.ownProfile()

	profile := strings.Builder{}
	profile.WriteString(titleStyle.Render(u.Name))
	profile.WriteString("\n")
	profile.WriteString(ui.FormHintFg("Contact: ") + u.Contact)
	if viewerIsUser {
		profile.WriteString("\n\n")
		if u.HasWallet {
			profile.WriteString(ui.GreenFg(text.EmojiCard + " Stripe Registered"))
			if u.Income != nil {
				profile.WriteString(ui.FormHintFg("  Income Earned: ") + ui.CardPriceFg(text.Price(*u.Income, false)))
			}
		} else {
			profile.WriteString(ui.FormHintFg("Interested in becoming a TinyHouse host? Register with your Stripe account!"))
		}
		profile.WriteString("\n\n" + m.walletView())
	}
	b.WriteString(dialogBoxStyle.Render(profile.String()))
	b.WriteString("\n\n")

	b.WriteString(m.sectionView("Listings", userSectionListings, u.Listings.Total, m.listingsPage, u.Listings.Result))
	if u.Bookings != nil {
		items := []v1.ListingSummary{}
		lines := []string{}
		for _, bk := range u.Bookings.Result {
			if bk.Listing != nil {
				items = append(items, *bk.Listing)
				lines = append(lines, bookingLine(bk))
			}
		}
		b.WriteString("\n")
		b.WriteString(m.sectionView("Bookings", userSectionBookings, u.Bookings.Total, m.bookingsPage, items, lines...))
	}
	return b.String()
}

func (m *userModel) sectionView(title string, section userSection, total, page int, items []v1.ListingSummary, captions ...string) string {
	b := strings.Builder{}
	heading := fmt.Sprintf("%s (%d)", title, total)
	if m.section == section {
		b.WriteString(ui.FormLabelFocused(heading))
	} else {
		b.WriteString(ui.FormLabelUnfocused(heading))
	}
	if pages := v1.TotalPages(total, userPageLimit); pages > 1 {
		b.WriteString(divider + ui.FormHintFg(fmt.Sprintf("page %d/%d", page, pages)))
	}
	b.WriteString("\n\n")

	if len(items) == 0 {
		b.WriteString(ui.EmptyStateFg(fmt.Sprintf("No %s yet!", strings.ToLower(title))))
		return b.String() + "\n"
	}
	for i, l := range items {
		if i < len(captions) {
			b.WriteString(captions[i] + "\n")
		}
		b.WriteString(listingCard(l, m.section == section && i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *userModel) walletView() string {
	switch m.wallet {
	case walletDisconnecting:
		return m.common.spin() + " Disconnecting from Stripe..."
	case walletAwaitingCode:
		return infoBanner("Finish connecting at "+m.connectURL) + "\n\n" +
			ui.FormLabelFocused("Code") + "\n" + m.walletInput.View()
	}
	if m.user.HasWallet {
		return button("Disconnect Stripe", false) + ui.FormHintFg("  press w")
	}
	return button("Connect with Stripe", false) + ui.FormHintFg("  press w")
}

package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/byxorna/tinyhouse/pkg/gateway"
	"github.com/byxorna/tinyhouse/pkg/text"
	v1 "github.com/byxorna/tinyhouse/pkg/types/v1"
	"github.com/byxorna/tinyhouse/pkg/ui"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

const (
	listingBookingsLimit = 3
	descriptionHeight    = 8

	listingErrorDescription = "This listing may not exist or we've encountered an error. Please try again soon!"
)

// listingModel shows a single listing and hosts the booking form
type listingModel struct {
	common *commonModel
	id     string

	gen          int
	state        loadState
	listing      v1.Listing
	description  viewport.Model
	bookingsPage int

	booking bookingModel
}

func newListingModel(common *commonModel, id string) *listingModel {
	return &listingModel{
		common:       common,
		id:           id,
		bookingsPage: 1,
		description:  viewport.Model{Height: descriptionHeight},
		booking:      newBookingModel(common),
	}
}

func (m *listingModel) init() tea.Cmd {
	return m.fetch(gateway.CacheFirst)
}

func (m *listingModel) fetch(policy gateway.Policy) tea.Cmd {
	m.gen++
	m.state = stateLoading

	gen, id, page, width := m.gen, m.id, m.bookingsPage, m.common.width
	ctx, gw := m.common.requestContext(), m.common.gateway
	return func() tea.Msg {
		l, err := gateway.Listing(ctx, gw, id, page, listingBookingsLimit, policy)
		if err != nil {
			return listingLoadedMsg{gen: gen, err: err}
		}
		return listingLoadedMsg{gen: gen, listing: l, description: renderDescription(l.Description, width)}
	}
}

func (m *listingModel) capturing() bool { return m.booking.capturing() }

func (m *listingModel) escape() bool {
	if m.booking.active && !m.booking.submitting {
		m.booking.close()
		return true
	}
	return false
}

// bookingBlocked explains why the viewer can't book this listing, if they can't
func (m *listingModel) bookingBlocked() string {
	v := m.common.viewer()
	switch {
	case !v.LoggedIn():
		return "You have to be signed in to book a listing!"
	case v.ID == m.listing.Host.ID:
		return "You can't book your own listing!"
	case !m.listing.Host.HasWallet:
		return "The host has disconnected from Stripe and thus won't be able to receive payments."
	}
	return ""
}

func (m *listingModel) update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case listingLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.err != nil {
			m.common.log.WithError(msg.err).Warn("unable to load listing")
			m.state = stateError
			m.listing = v1.Listing{}
			return m, nil
		}
		m.state = stateReady
		m.listing = msg.listing
		if m.listing.Bookings != nil {
			sort.Stable(v1.ByCheckIn(m.listing.Bookings.Result))
		}
		m.description.Width = m.common.width
		m.description.SetContent(msg.description)
		return m, nil

	case bookingCreatedMsg:
		if msg.err != nil {
			m.common.log.WithError(msg.err).Warn("unable to book listing")
			m.booking.failed(msg.err)
			return m, nil
		}
		m.common.log.WithField("booking", msg.id).Info("booked listing")
		m.booking.submitting = false
		m.booking.clear()
		return m, tea.Batch(notify(bookingSuccessNotice), m.fetch(gateway.NetworkOnly))

	case tea.KeyMsg:
		if m.state != stateReady {
			return m, nil
		}
		if m.booking.active {
			if m.booking.submitting {
				return m, nil
			}
			if msg.Type == tea.KeyEnter && m.booking.focus == bookingFieldSubmit {
				return m, m.booking.submit(m.listing.ID)
			}
			var cmd tea.Cmd
			m.booking, cmd = m.booking.update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, pageKeys.Book):
			if m.bookingBlocked() == "" {
				m.booking.open()
			}
		case key.Matches(msg, pageKeys.Up):
			m.description.LineUp(1)
		case key.Matches(msg, pageKeys.Down):
			m.description.LineDown(1)
		case key.Matches(msg, pageKeys.Prev):
			if m.bookingsPage > 1 {
				m.bookingsPage--
				return m, m.fetch(gateway.CacheFirst)
			}
		case key.Matches(msg, pageKeys.Next):
			if b := m.listing.Bookings; b != nil && m.bookingsPage < v1.TotalPages(b.Total, listingBookingsLimit) {
				m.bookingsPage++
				return m, m.fetch(gateway.CacheFirst)
			}
		}
	}
	return m, nil
}

func (m *listingModel) view() string {
	switch m.state {
	case stateLoading:
		return m.common.spin() + "\n\n" + skeleton(2)
	case stateError:
		return errorBanner(listingErrorDescription) + "\n\n" + skeleton(2)
	}

	l := m.listing
	b := strings.Builder{}
	b.WriteString(ui.CardDetailUnfocused(text.EmojiPin + " " + l.City))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(text.ListingIcon(l.Type) + " " + l.Title))
	b.WriteString("\n")
	b.WriteString(ui.CardDetailUnfocused(l.Address))
	b.WriteString("\n\n")
	b.WriteString(ui.FormHintFg("Hosted by ") + ui.HeaderViewerFg(l.Host.Name))
	b.WriteString(divider)
	b.WriteString(ui.CardPriceFg(text.Price(l.Price, true)) + ui.FormHintFg("/day"))
	b.WriteString(divider)
	b.WriteString(ui.FormHintFg(text.EmojiGuests + " " + text.Guests(l.NumOfGuests)))
	b.WriteString("\n")
	b.WriteString(m.description.View())
	b.WriteString("\n")

	if l.Bookings != nil {
		b.WriteString(m.bookingsView(*l.Bookings))
		b.WriteString("\n")
	}

	switch {
	case m.booking.active:
		b.WriteString(m.booking.view(l.Price))
	case m.bookingBlocked() != "":
		b.WriteString(ui.FormHintFg(m.bookingBlocked()))
	default:
		b.WriteString(button("Request to book! (b)", false))
	}
	return b.String()
}

func (m *listingModel) bookingsView(bookings v1.Bookings) string {
	b := strings.Builder{}
	b.WriteString(ui.FormLabelUnfocused(fmt.Sprintf("Bookings (%d)", bookings.Total)))
	b.WriteString("\n")
	if len(bookings.Result) == 0 {
		b.WriteString(ui.FormHintFg("No bookings have been made yet!"))
		return b.String()
	}
	for _, bk := range bookings.Result {
		who := ""
		if bk.Tenant != nil {
			who = divider + ui.HeaderViewerFg(bk.Tenant.Name)
		}
		b.WriteString(bookingLine(bk) + who + "\n")
	}
	if pages := v1.TotalPages(bookings.Total, listingBookingsLimit); pages > 1 {
		b.WriteString(ui.FormHintFg(fmt.Sprintf("page %d/%d", m.bookingsPage, pages)))
	}
	return b.String()
}

// bookingLine renders the dates of a booking with how far away they are
func bookingLine(bk v1.Booking) string {
	line := ui.CardDetailUnfocused(text.EmojiCalendar + " " + bk.CheckIn + " → " + bk.CheckOut)
	if in, err := v1.ParseDate(bk.CheckIn); err == nil {
		line += ui.FormHintFg(" (" + text.RelativeTime(in) + ")")
	}
	return line
}

// renderDescription renders markdown for the terminal, falling back to the
// raw text when glamour fails
func renderDescription(markdown string, width int) string {
	if width <= 0 {
		width = cardWidth + 20
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width-4))
	if err != nil {
		return markdown
	}
	out, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(out, "\n")
}

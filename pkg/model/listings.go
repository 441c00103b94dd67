package model

import (
	"fmt"
	"strings"

	"github.com/byxorna/tinyhouse/pkg/gateway"
	"github.com/byxorna/tinyhouse/pkg/route"
	v1 "github.com/byxorna/tinyhouse/pkg/types/v1"
	"github.com/byxorna/tinyhouse/pkg/ui"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	listingsPageLimit = 8

	listingsErrorDescription = "We either couldn't find anything matching your search or have encountered an error. If you're searching for a unique location, try searching again with a more common keyword."
)

// listingsModel searches listings for a location. The location anchor is the
// location the current page number belongs to; whenever the route location
// moves away from it the page goes back to 1 before anything is fetched.
type listingsModel struct {
	common *commonModel

	location string
	anchor   string
	filter   v1.ListingsFilter
	page     int

	// gen identifies the latest request; responses for older ones are dropped
	gen   int
	state loadState

	result    v1.ListingsPage
	cursor    int
	paginator paginator.Model
}

func newListingsModel(common *commonModel, location string) *listingsModel {
	p := paginator.NewModel()
	p.Type = paginator.Arabic
	p.PerPage = listingsPageLimit

	return &listingsModel{
		common:    common,
		location:  location,
		anchor:    location,
		filter:    v1.PriceLowToHigh,
		page:      1,
		paginator: p,
	}
}

func (m *listingsModel) init() tea.Cmd {
	return m.fetch()
}

func (m *listingsModel) capturing() bool { return false }

// setLocation moves the search to a new location. The page is reset before
// the request for the new location is derived.
func (m *listingsModel) setLocation(location string) tea.Cmd {
	m.location = location
	if m.location != m.anchor {
		m.page = 1
	}
	return m.fetch()
}

// fetch issues the request for the current (location, filter, page). It
// refuses to build a request that would carry the page of a previous
// location.
func (m *listingsModel) fetch() tea.Cmd {
	if m.location != m.anchor && m.page != 1 {
		m.common.log.WithField("location", m.location).Debug("skipping listings request with stale page")
		return nil
	}
	m.anchor = m.location

	m.gen++
	m.state = stateLoading
	m.result = v1.ListingsPage{}
	m.cursor = 0

	gen := m.gen
	ctx, gw := m.common.requestContext(), m.common.gateway
	vars := gateway.ListingsVariables{
		Location: m.location,
		Filter:   m.filter,
		Limit:    listingsPageLimit,
		Page:     m.page,
	}
	return func() tea.Msg {
		page, err := gateway.Listings(ctx, gw, vars, gateway.CacheFirst)
		return listingsLoadedMsg{gen: gen, page: page, err: err}
	}
}

func (m *listingsModel) totalPages() int {
	return v1.TotalPages(m.result.Total, listingsPageLimit)
}

func (m *listingsModel) update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case listingsLoadedMsg:
		if msg.gen != m.gen {
			m.common.log.WithField("gen", msg.gen).Debug("discarding superseded listings response")
			return m, nil
		}
		if msg.err != nil {
			m.common.log.WithError(msg.err).Warn("unable to load listings")
			m.state = stateError
			m.result = v1.ListingsPage{}
			return m, nil
		}
		m.state = stateReady
		m.result = msg.page
		m.cursor = 0
		m.paginator.SetTotalPages(msg.page.Total)
		m.paginator.Page = m.page - 1
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, pageKeys.Filter):
			m.filter = m.filter.Toggle()
			return m, m.fetch()

		case key.Matches(msg, pageKeys.Prev):
			if m.state == stateReady && m.page > 1 {
				m.page--
				return m, m.fetch()
			}

		case key.Matches(msg, pageKeys.Next):
			if m.state == stateReady && m.page < m.totalPages() {
				m.page++
				return m, m.fetch()
			}

		case key.Matches(msg, pageKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, pageKeys.Down):
			if m.cursor < len(m.result.Result)-1 {
				m.cursor++
			}

		case key.Matches(msg, pageKeys.Open):
			if m.state != stateReady {
				return m, nil
			}
			if len(m.result.Result) == 0 {
				return m, navigate(route.Host())
			}
			return m, navigate(route.Listing(m.result.Result[m.cursor].ID))
		}
	}
	return m, nil
}

func (m *listingsModel) region() string {
	if m.result.Region != "" {
		return m.result.Region
	}
	return m.location
}

func (m *listingsModel) view() string {
	b := strings.Builder{}

	switch m.state {
	case stateLoading:
		b.WriteString(m.common.spin() + " " + ui.FormHintFg("searching"))
		b.WriteString("\n\n")
		b.WriteString(skeleton(listingsPageLimit))

	case stateError:
		b.WriteString(errorBanner(listingsErrorDescription))
		b.WriteString("\n\n")
		b.WriteString(skeleton(listingsPageLimit))

	case stateReady:
		if len(m.result.Result) == 0 {
			b.WriteString(ui.EmptyStateFg(fmt.Sprintf("It appears that no listings have yet been created for %q", m.region())))
			b.WriteString("\n")
			b.WriteString(ui.EmptyStateFg("Be the first person to create a listing in this area!"))
			b.WriteString("\n")
			b.WriteString(button("Host a listing", true))
			return b.String()
		}

		if m.result.Region != "" {
			b.WriteString(titleStyle.Render(fmt.Sprintf("Results for %q", m.result.Region)))
			b.WriteString("\n")
		}
		b.WriteString(ui.FormHintFg("sort: ") + ui.FormLabelFocused(m.filter.String()))
		b.WriteString(divider)
		b.WriteString(ui.FormHintFg("page ") + m.paginator.View())
		b.WriteString("\n\n")
		for i, l := range m.result.Result {
			b.WriteString(listingCard(l, i == m.cursor))
			b.WriteString("\n")
		}
	}
	return b.String()
}

package model

import (
	"strings"

	"github.com/byxorna/tinyhouse/pkg/gateway"
	"github.com/byxorna/tinyhouse/pkg/route"
	"github.com/byxorna/tinyhouse/pkg/text"
	v1 "github.com/byxorna/tinyhouse/pkg/types/v1"
	"github.com/byxorna/tinyhouse/pkg/ui"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

const (
	premiumListingsLimit = 4
	searchPlaceholder    = "Search 'San Fransisco'"
	searchCharacterLimit = 128
	maxSuggestions       = 3
)

var (
	popularCities = []string{"Toronto", "Dubai", "Los Angeles", "London"}

	// knownCities are offered as completions while typing a search
	knownCities = append([]string{
		"San Francisco", "New York", "Vancouver", "Montreal", "Paris",
		"Tokyo", "Cancun", "Miami", "Barcelona", "Lisbon",
	}, popularCities...)
)

type loadState int

const (
	stateLoading loadState = iota
	stateError
	stateReady
)

func (s loadState) String() string {
	return map[loadState]string{
		stateLoading: "loading",
		stateError:   "error",
		stateReady:   "ready",
	}[s]
}

// homeModel turns a search into a listings navigation and shows the most
// expensive listings
type homeModel struct {
	common *commonModel
	input  textinput.Model

	// index into popularCities, -1 when none is picked
	city int

	premiumState loadState
	premium      v1.ListingsPage
}

func newHomeModel(common *commonModel) *homeModel {
	ti := textinput.NewModel()
	ti.Prompt = text.EmojiSearch + " "
	ti.Placeholder = searchPlaceholder
	ti.CharLimit = searchCharacterLimit
	ti.Focus()

	return &homeModel{
		common: common,
		input:  ti,
		city:   -1,
	}
}

func (m *homeModel) init() tea.Cmd {
	m.premiumState = stateLoading
	ctx, gw := m.common.requestContext(), m.common.gateway
	vars := gateway.ListingsVariables{
		Filter: v1.PriceHighToLow,
		Limit:  premiumListingsLimit,
		Page:   1,
	}
	return func() tea.Msg {
		page, err := gateway.Listings(ctx, gw, vars, gateway.CacheFirst)
		return premiumListingsMsg{page: page, err: err}
	}
}

func (m *homeModel) capturing() bool { return m.input.Focused() }

func (m *homeModel) update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case premiumListingsMsg:
		if msg.err != nil {
			m.common.log.WithError(msg.err).Warn("unable to load premium listings")
			m.premiumState = stateError
			return m, nil
		}
		m.premium = msg.page
		m.premiumState = stateReady
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			return m, m.search()
		case tea.KeyTab:
			if s := m.suggestions(); len(s) > 0 {
				m.input.SetValue(s[0])
				m.input.CursorEnd()
			}
			return m, nil
		case tea.KeyUp:
			m.pickCity(-1)
			return m, nil
		case tea.KeyDown:
			m.pickCity(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// search navigates to the listings for the trimmed input. Blank input is
// ignored.
func (m *homeModel) search() tea.Cmd {
	location := strings.TrimSpace(m.input.Value())
	if location == "" {
		return nil
	}
	return navigate(route.Listings(location))
}

// suggestions are the known cities that fuzzy match the search so far
func (m *homeModel) suggestions() []string {
	q := strings.TrimSpace(m.input.Value())
	if q == "" {
		return nil
	}
	var out []string
	for _, match := range fuzzy.Find(q, knownCities) {
		if strings.EqualFold(match.Str, q) {
			return nil
		}
		if len(out) < maxSuggestions {
			out = append(out, match.Str)
		}
	}
	return out
}

func (m *homeModel) pickCity(delta int) {
	n := len(popularCities)
	m.city = ((m.city+delta)%n + n) % n
	m.input.SetValue(popularCities[m.city])
	m.input.CursorEnd()
}

func (m *homeModel) view() string {
	b := strings.Builder{}
	b.WriteString(titleStyle.Render("Find a place you'll love to stay at"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Helping you make the best decisions in renting your last minute locations."))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	cities := make([]string, len(popularCities))
	for i, c := range popularCities {
		if i == m.city {
			cities[i] = ui.FuchsiaFg(c)
		} else {
			cities[i] = ui.BrightGrayFg(c)
		}
	}
	b.WriteString(ui.FormHintFg("popular: ") + strings.Join(cities, divider))
	b.WriteString("\n")
	if s := m.suggestions(); len(s) > 0 {
		b.WriteString(ui.FormHintFg("tab to complete: ") + ui.DullFuchsiaFg(strings.Join(s, ", ")))
	}
	b.WriteString("\n\n")

	switch m.premiumState {
	case stateLoading:
		b.WriteString(ui.PremiumHeadingFg("Premium Listings - Loading") + " " + m.common.spin())
		b.WriteString("\n\n")
		b.WriteString(skeleton(premiumListingsLimit))
	case stateReady:
		b.WriteString(ui.Gradient(text.EmojiStar+" Premium Listings", ui.InstaOrangeHex, ui.InstaMagentaHex))
		b.WriteString("\n\n")
		for _, l := range m.premium.Result {
			b.WriteString(listingCard(l, false))
			b.WriteString("\n")
		}
	}
	return b.String()
}

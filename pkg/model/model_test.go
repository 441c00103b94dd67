package model

import (
	"context"
	"strings"
	"testing"

	"github.com/byxorna/tinyhouse/pkg/route"
	v1 "github.com/byxorna/tinyhouse/pkg/types/v1"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(f *fixture, start route.Route) *Model {
	return New(context.Background(), Options{
		Gateway: f.gateway,
		Session: f.session,
		Payment: f.widget,
		Open:    f.opener.open,
		Log:     f.common.log,
		Start:   start,
	})
}

// drive feeds the messages cmd produces into the app, returning whatever
// the app asks for next
func drive(m *Model, cmd tea.Cmd) tea.Cmd {
	var cmds []tea.Cmd
	for _, msg := range run(cmd) {
		_, next := m.Update(msg)
		cmds = append(cmds, next)
	}
	return tea.Batch(cmds...)
}

// started returns an app that has bootstrapped and loaded its first page
func started(t *testing.T, f *fixture, start route.Route) *Model {
	t.Helper()
	m := newTestModel(f, start)
	drive(m, drive(m, m.Init()))
	if !m.ready {
		t.Fatal("expected the app to be ready after bootstrap")
	}
	return m
}

func TestBootstrapIsSentOnce(t *testing.T) {
	f := newFixture(t)
	m := newTestModel(f, route.Home())

	if !strings.Contains(m.View(), "Launching Tinyhouse") {
		t.Fatalf("expected the launch screen, got:\n%s", m.View())
	}
	cmd := m.Init()
	if m.bootstrap() != nil {
		t.Fatal("expected bootstrap to be issued only once")
	}
	if _, next := m.Update(press("ctrl+x")); next != nil {
		t.Fatal("keys other than quit are ignored until bootstrap finishes")
	}
	drive(m, cmd)

	calls := f.gateway.calls("LogIn")
	if len(calls) != 1 {
		t.Fatalf("expected one bootstrap call but saw %d", len(calls))
	}
	if _, ok := calls[0].Variables["input"]; ok {
		t.Fatalf("bootstrap should not send a code, sent %v", calls[0].Variables)
	}
	if strings.Contains(m.View(), "Launching Tinyhouse") || !m.route.Equal(route.Home()) {
		t.Fatalf("expected the home page after bootstrap, got:\n%s", m.View())
	}
	if !f.session.Viewer().DidRequest {
		t.Fatal("expected the viewer to be marked as requested")
	}
}

func TestBootstrapResumesSession(t *testing.T) {
	f := newFixture(t)
	if err := f.session.Store().Set("3242"); err != nil {
		t.Fatal(err)
	}
	f.gateway.reply("LogIn", logInReply)
	m := started(t, f, route.Home())

	if v := f.session.Viewer(); v.ID != "324" {
		t.Fatalf("expected the stored session to be resumed, got %+v", v)
	}
	if !strings.Contains(m.View(), "signed in as 324") {
		t.Fatalf("expected the viewer in the header, got:\n%s", m.View())
	}
}

func TestBootstrapFailure(t *testing.T) {
	f := newFixture(t)
	f.gateway.fail("LogIn", errBoom)
	m := started(t, f, route.Home())

	if !strings.Contains(m.View(), "We weren't able to verify that you were logged in.") {
		t.Fatalf("expected the bootstrap banner, got:\n%s", m.View())
	}
	v := f.session.Viewer()
	if v.LoggedIn() || !v.DidRequest {
		t.Fatalf("expected a requested, logged out viewer, got %+v", v)
	}
}

func TestStartRouteIsKept(t *testing.T) {
	f := newFixture(t)
	f.gateway.reply("Listings", torontoReply)
	m := started(t, f, route.Listings("Toronto"))

	if _, ok := m.page.(*listingsModel); !ok || !m.Route().Equal(route.Listings("Toronto")) {
		t.Fatalf("expected the listings page, got %T at %s", m.page, m.Route())
	}
	if !strings.Contains(m.View(), "Loft in the Annex") {
		t.Fatalf("expected the listings to load, got:\n%s", m.View())
	}
}

func TestSearchFromHome(t *testing.T) {
	f := newFixture(t)
	f.gateway.reply("Listings", torontoReply)
	m := started(t, f, route.Home())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Toronto")})
	if m.route.Kind != route.HomeKind {
		t.Fatal("typing a search should not leave the home page")
	}
	_, cmd := m.Update(press("enter"))
	drive(m, drive(m, cmd))

	if !m.Route().Equal(route.Listings("Toronto")) {
		t.Fatalf("expected /listings/Toronto but got %s", m.Route())
	}
}

func TestListingsSurviveLocationChange(t *testing.T) {
	f := newFixture(t)
	f.gateway.reply("Listings", torontoReply)
	m := started(t, f, route.Listings("Toronto"))
	lm := m.page.(*listingsModel)

	_, cmd := m.Update(press("right"))
	drive(m, cmd)
	_, cmd = m.Update(press("f"))
	drive(m, cmd)
	if lm.page != 2 {
		t.Fatalf("expected page 2 but got %d", lm.page)
	}

	drive(m, drive(m, navigate(route.Listings("Dubai"))))
	if m.page != page(lm) {
		t.Fatal("expected the listings page to be reused")
	}
	if lm.page != 1 || lm.filter != v1.PriceHighToLow {
		t.Fatalf("expected page 1 with the filter kept, got page %d filter %s", lm.page, lm.filter)
	}
	calls := f.gateway.calls("Listings")
	if vars := calls[len(calls)-1].Variables; vars["location"] != "Dubai" || vars["page"] != 1 {
		t.Fatalf("unexpected request %v", vars)
	}
}

func TestNavigateToCurrentRouteIsIgnored(t *testing.T) {
	f := newFixture(t)
	m := started(t, f, route.Home())
	current := m.page

	drive(m, navigate(route.Home()))
	if m.page != current {
		t.Fatal("expected the page to be kept")
	}
}

func TestNoticeExpires(t *testing.T) {
	f := newFixture(t)
	m := started(t, f, route.Home())

	_, cmd := m.Update(noticeMsg{message: "You've successfully logged in!"})
	if !strings.Contains(m.View(), "You've successfully logged in!") {
		t.Fatalf("expected the notice, got:\n%s", m.View())
	}
	drive(m, cmd)
	if m.statusMessage != "" {
		t.Fatalf("expected the notice to expire, still showing %q", m.statusMessage)
	}
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	if err := f.session.Store().Set("3242"); err != nil {
		t.Fatal(err)
	}
	f.gateway.reply("LogIn", logInReply)
	f.gateway.reply("LogOut", `{"logOut":{"didRequest":true}}`)
	m := started(t, f, route.Home())
	resets := f.gateway.resets

	_, cmd := m.Update(press("ctrl+x"))
	drive(m, cmd)

	if f.session.Viewer().LoggedIn() {
		t.Fatal("expected the viewer to be logged out")
	}
	if _, ok := f.session.Store().Get(); ok {
		t.Fatal("expected the stored token to be removed")
	}
	if f.gateway.resets != resets+1 {
		t.Fatal("expected the cache to be reset on logout")
	}
	if !strings.Contains(m.View(), logoutNotice) {
		t.Fatalf("expected the logout notice, got:\n%s", m.View())
	}
}

func TestViewerChangeResetsCache(t *testing.T) {
	f := newFixture(t)
	if err := f.session.Store().Set("3242"); err != nil {
		t.Fatal(err)
	}
	f.gateway.reply("LogIn", logInReply)
	m := started(t, f, route.Home())
	m.Update(viewerChangedMsg(f.session.Viewer()))
	resets := f.gateway.resets

	f.session.SetWallet(true)
	m.Update(viewerChangedMsg(f.session.Viewer()))
	if f.gateway.resets != resets {
		t.Fatal("a wallet change should keep the cache")
	}

	f.session.Forget()
	m.Update(viewerChangedMsg(f.session.Viewer()))
	if f.gateway.resets != resets+1 {
		t.Fatal("expected the cache to be reset when the session is dropped elsewhere")
	}
}

func TestQuitWaitsForTextFields(t *testing.T) {
	f := newFixture(t)
	m := started(t, f, route.Home())

	m.Update(press("q"))
	if hm := m.page.(*homeModel); hm.input.Value() != "q" {
		t.Fatalf("q should reach the search field, field has %q", hm.input.Value())
	}
	if _, cmd := m.Update(press("ctrl+c")); cmd == nil {
		t.Fatal("ctrl+c should always quit")
	}
}

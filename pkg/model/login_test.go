package model

import (
	"strings"
	"testing"

	"github.com/byxorna/tinyhouse/pkg/route"
	v1 "github.com/byxorna/tinyhouse/pkg/types/v1"
	tea "github.com/charmbracelet/bubbletea"
)

const logInReply = `{"logIn":{"id":"324","token":"3242","avatar":"image.png","hasWallet":false,"didRequest":true}}`

func TestLoginWithoutCodeSendsNothing(t *testing.T) {
	f := newFixture(t)
	m := newLoginModel(f.common, "")
	if cmd := m.init(); cmd != nil {
		t.Fatalf("expected nothing to be sent but got %v", run(cmd))
	}
	if n := len(f.gateway.calls("LogIn")); n != 0 {
		t.Fatalf("expected no login calls but saw %d", n)
	}
}

func TestLoginExchangesCodeOnce(t *testing.T) {
	f := newFixture(t)
	f.gateway.reply("LogIn", logInReply)
	m := newLoginModel(f.common, "1234")

	cmd := m.init()
	if !strings.Contains(m.view(), "Logging you in...") {
		t.Fatalf("expected the exchange in progress, got:\n%s", m.view())
	}
	msgs := run(cmd)

	// a repeated render or a remount with the same code must not resend it
	if again := m.init(); again != nil {
		t.Fatal("expected the code to be exchanged only once")
	}
	if again := newLoginModel(f.common, "1234").init(); again != nil {
		t.Fatal("expected a remounted page not to resend the code")
	}

	calls := f.gateway.calls("LogIn")
	if len(calls) != 1 {
		t.Fatalf("expected exactly one login call but saw %d", len(calls))
	}
	input, _ := calls[0].Variables["input"].(map[string]interface{})
	if input["code"] != "1234" {
		t.Fatalf("expected code 1234 to be sent, got %v", calls[0].Variables)
	}

	var next []tea.Msg
	for _, msg := range msgs {
		_, cmd := m.update(msg)
		next = append(next, run(cmd)...)
	}
	if len(next) != 1 {
		t.Fatalf("expected one navigation but got %v", next)
	}
	nav, ok := next[0].(navigateMsg)
	if !ok || !nav.route.Equal(route.User("324")) || nav.notice == "" {
		t.Fatalf("expected navigation to the user page with a notice, got %+v", next[0])
	}

	if tok, _ := f.session.Store().Get(); tok != "3242" {
		t.Fatalf("expected token 3242 to be stored but got %q", tok)
	}
	if v := f.session.Viewer(); v.ID != "324" || !v.DidRequest {
		t.Fatalf("unexpected viewer %+v", v)
	}
	if f.gateway.resets != 1 {
		t.Fatalf("expected the cache to be reset on login, saw %d resets", f.gateway.resets)
	}
}

func TestLoginExchangeFailure(t *testing.T) {
	testcases := map[string]func(f *fixture){
		"transport error": func(f *fixture) { f.gateway.fail("LogIn", errBoom) },
		"no viewer":       func(f *fixture) { f.gateway.reply("LogIn", `{"logIn":{"didRequest":true}}`) },
	}
	for name, setup := range testcases {
		f := newFixture(t)
		setup(f)
		m := newLoginModel(f.common, "1234")

		for _, msg := range run(m.init()) {
			if _, cmd := m.update(msg); cmd != nil {
				t.Fatalf("%s: expected no navigation but got %v", name, run(cmd))
			}
		}
		if !strings.Contains(m.view(), "Sorry! We weren't able to log you in.") {
			t.Fatalf("%s: expected the failure banner, got:\n%s", name, m.view())
		}
		if f.session.Viewer().LoggedIn() {
			t.Fatalf("%s: viewer should not be logged in", name)
		}
	}
}

func TestLoginOpensAuthURL(t *testing.T) {
	f := newFixture(t)
	f.gateway.reply("AuthUrl", `{"authUrl":"https://accounts.google.com/o/oauth2/v2/auth"}`)
	m := newLoginModel(f.common, "")

	_, cmd := m.update(press("enter"))
	for _, msg := range run(cmd) {
		_, next := m.update(msg)
		for _, opened := range run(next) {
			m.update(opened)
		}
	}

	if len(f.opener.urls) != 1 || f.opener.urls[0] != "https://accounts.google.com/o/oauth2/v2/auth" {
		t.Fatalf("expected the auth url to be opened, opened %v", f.opener.urls)
	}
	if m.state != loginStateAwaitingCode || !m.input.Focused() {
		t.Fatal("expected the code input to be waiting for the pasted code")
	}

	m.input.SetValue("  4/0AX4XfWh  ")
	_, cmd = m.update(press("enter"))
	expectRoute(t, run(cmd), route.LoginWithCode("4/0AX4XfWh"))
}

func TestLoginAuthURLFailure(t *testing.T) {
	f := newFixture(t)
	f.gateway.fail("AuthUrl", errBoom)
	m := newLoginModel(f.common, "")

	_, cmd := m.update(press("enter"))
	for _, msg := range run(cmd) {
		if _, next := m.update(msg); next != nil {
			t.Fatal("expected nothing to be opened after a failure")
		}
	}
	if len(f.opener.urls) != 0 {
		t.Fatalf("expected nothing to be opened, opened %v", f.opener.urls)
	}
	if !strings.Contains(m.view(), "Uh oh! Something went wrong") {
		t.Fatalf("expected the error banner, got:\n%s", m.view())
	}
}

func TestLoginRedirectsSignedInViewer(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, v1.Viewer{ID: "324", Token: "3242"})
	m := newLoginModel(f.common, "1234")

	expectRoute(t, run(m.init()), route.User("324"))
	if n := len(f.gateway.calls("LogIn")); n != 0 {
		t.Fatalf("expected no login calls but saw %d", n)
	}
}

package model

import (
	"context"
	"encoding/json"
	"errors"
	"io/ioutil"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/byxorna/tinyhouse/pkg/gateway"
	"github.com/byxorna/tinyhouse/pkg/payment"
	"github.com/byxorna/tinyhouse/pkg/route"
	"github.com/byxorna/tinyhouse/pkg/session"
	v1 "github.com/byxorna/tinyhouse/pkg/types/v1"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

func init() {
	statusMessageTimeout = time.Millisecond
}

var errBoom = errors.New("boom")

// fakeGateway answers each operation with canned data
type fakeGateway struct {
	sync.Mutex
	requests []gateway.Request
	replies  map[string]string
	errs     map[string]error
	resets   int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{replies: map[string]string{}, errs: map[string]error{}}
}

func (f *fakeGateway) Execute(ctx context.Context, req gateway.Request, out interface{}) error {
	f.Lock()
	f.requests = append(f.requests, req)
	reply, err := f.replies[req.Operation], f.errs[req.Operation]
	f.Unlock()

	if err != nil {
		return &gateway.TransportError{Operation: req.Operation, Err: err}
	}
	if reply == "" {
		reply = "{}"
	}
	return json.Unmarshal([]byte(reply), out)
}

func (f *fakeGateway) Reset() {
	f.Lock()
	defer f.Unlock()
	f.resets++
}

func (f *fakeGateway) reply(operation, data string) {
	f.Lock()
	defer f.Unlock()
	f.replies[operation] = data
	delete(f.errs, operation)
}

func (f *fakeGateway) fail(operation string, err error) {
	f.Lock()
	defer f.Unlock()
	f.errs[operation] = err
}

func (f *fakeGateway) calls(operation string) []gateway.Request {
	f.Lock()
	defer f.Unlock()
	var out []gateway.Request
	for _, r := range f.requests {
		if r.Operation == operation {
			out = append(out, r)
		}
	}
	return out
}

type fakeWidget struct {
	sync.Mutex
	ready bool
	token string
	err   error
	cards []payment.Card
}

func (w *fakeWidget) Ready() bool { return w.ready }

func (w *fakeWidget) Tokenize(ctx context.Context, card payment.Card) (string, error) {
	w.Lock()
	defer w.Unlock()
	w.cards = append(w.cards, card)
	return w.token, w.err
}

type fakeOpener struct {
	sync.Mutex
	urls []string
	err  error
}

func (o *fakeOpener) open(u string) error {
	o.Lock()
	defer o.Unlock()
	o.urls = append(o.urls, u)
	return o.err
}

type fixture struct {
	common  *commonModel
	gateway *fakeGateway
	widget  *fakeWidget
	opener  *fakeOpener
	session *session.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := session.NewStore(filepath.Join(t.TempDir(), session.FileName))
	if err != nil {
		t.Fatal(err)
	}
	log := logrus.New()
	log.SetOutput(ioutil.Discard)

	f := fixture{
		gateway: newFakeGateway(),
		widget:  &fakeWidget{ready: true, token: "tok_visa"},
		opener:  &fakeOpener{},
		session: session.New(store, log),
	}
	f.common = &commonModel{
		ctx:            context.Background(),
		gateway:        f.gateway,
		session:        f.session,
		payment:        f.widget,
		open:           f.opener.open,
		log:            log,
		now:            time.Now,
		exchanged:      map[string]struct{}{},
		connected:      map[string]struct{}{},
		stripeClientID: "ca_123",
		width:          100,
		height:         40,
	}
	return &f
}

// signIn makes the session belong to a viewer
func (f *fixture) signIn(t *testing.T, v v1.Viewer) {
	t.Helper()
	if err := f.session.Apply(v); err != nil {
		t.Fatal(err)
	}
}

// run executes cmd and every command batched into it, returning the
// messages produced. Commands that block, such as timers, are abandoned
// after a short wait.
func run(cmd tea.Cmd) []tea.Msg {
	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		msgs []tea.Msg
	)

	var spawn func(c tea.Cmd)
	spawn = func(c tea.Cmd) {
		if c == nil {
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			msg := c()
			if cmds, ok := batched(msg); ok {
				for _, sub := range cmds {
					spawn(sub)
				}
				return
			}
			if msg != nil {
				mu.Lock()
				msgs = append(msgs, msg)
				mu.Unlock()
			}
		}()
	}
	spawn(cmd)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}

	mu.Lock()
	defer mu.Unlock()
	return append([]tea.Msg(nil), msgs...)
}

var cmdType = reflect.TypeOf((*tea.Cmd)(nil)).Elem()

// batched unpacks the message tea.Batch produces
func batched(msg tea.Msg) ([]tea.Cmd, bool) {
	if msg == nil {
		return nil, false
	}
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Slice || v.Type().Elem() != cmdType {
		return nil, false
	}
	cmds := make([]tea.Cmd, v.Len())
	for i := range cmds {
		cmds[i], _ = v.Index(i).Interface().(tea.Cmd)
	}
	return cmds, true
}

// navigation returns the first navigation among msgs
func navigation(msgs []tea.Msg) (navigateMsg, bool) {
	for _, msg := range msgs {
		if n, ok := msg.(navigateMsg); ok {
			return n, true
		}
	}
	return navigateMsg{}, false
}

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func expectRoute(t *testing.T, msgs []tea.Msg, expected route.Route) {
	t.Helper()
	n, ok := navigation(msgs)
	if !ok {
		t.Fatalf("expected navigation to %s but got %v", expected, msgs)
	}
	if !n.route.Equal(expected) {
		t.Fatalf("expected navigation to %s but got %s", expected, n.route)
	}
}

package session

import (
	"fmt"
	"sync"

	v1 "github.com/byxorna/tinyhouse/pkg/types/v1"
	"github.com/sirupsen/logrus"
)

// Session owns the Viewer. Every write goes through update, which notifies
// subscribers after the lock is released.
type Session struct {
	sync.RWMutex
	store       *Store
	viewer      v1.Viewer
	subscribers []func(v1.Viewer)
	log         logrus.FieldLogger
}

func New(store *Store, log logrus.FieldLogger) *Session {
	return &Session{store: store, log: log}
}

func (s *Session) Store() *Store { return s.store }

func (s *Session) Viewer() v1.Viewer {
	s.RLock()
	defer s.RUnlock()
	return s.viewer
}

// Subscribe registers fn to be called with the new Viewer after each change
func (s *Session) Subscribe(fn func(v1.Viewer)) {
	s.Lock()
	defer s.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Apply records the result of a logIn or logOut mutation. The token is
// persisted when present and cleared otherwise.
func (s *Session) Apply(v v1.Viewer) error {
	var err error
	if v.Token != "" {
		err = s.store.Set(v.Token)
	} else {
		err = s.store.Clear()
	}
	if err != nil {
		err = fmt.Errorf("unable to update session store: %w", err)
	}

	s.update(func(cur *v1.Viewer) {
		*cur = v
		cur.DidRequest = true
	})
	s.log.WithField("viewer", v.ID).Debug("session updated")
	return err
}

// SetWallet records a Stripe connection change for the current viewer. The
// token and identity are left alone.
func (s *Session) SetWallet(hasWallet bool) {
	s.update(func(cur *v1.Viewer) {
		cur.HasWallet = hasWallet
	})
	s.log.WithField("has_wallet", hasWallet).Debug("wallet updated")
}

// Fail marks the bootstrap as attempted without changing the identity
func (s *Session) Fail() {
	s.update(func(cur *v1.Viewer) {
		cur.DidRequest = true
	})
}

// Forget drops the identity without touching the store. It is used when the
// token disappears out from under us.
func (s *Session) Forget() {
	s.update(func(cur *v1.Viewer) {
		*cur = v1.Viewer{DidRequest: cur.DidRequest}
	})
}

func (s *Session) update(fn func(*v1.Viewer)) {
	s.Lock()
	fn(&s.viewer)
	v := s.viewer
	subs := make([]func(v1.Viewer), len(s.subscribers))
	copy(subs, s.subscribers)
	s.Unlock()

	for _, sub := range subs {
		sub(v)
	}
}

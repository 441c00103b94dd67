package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/byxorna/tinyhouse/pkg/runtime"
	"golang.org/x/oauth2"
)

const (
	// FileName is where the session token lives inside the runtime directory
	FileName = "session.json"
)

var (
	ErrNoToken = errors.New("no session token")
)

// Store holds the session token. It is read from disk once when created and
// written through on every change.
type Store struct {
	sync.RWMutex
	path  string
	token string
}

// NewDefaultStore opens the store in the XDG runtime directory
func NewDefaultStore() (*Store, error) {
	path, err := runtime.File(FileName)
	if err != nil {
		return nil, fmt.Errorf("unable to determine session storage file: %w", err)
	}
	return NewStore(path)
}

func NewStore(path string) (*Store, error) {
	s := Store{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Store) Path() string { return s.path }

// Get returns the current token, if any
func (s *Store) Get() (string, bool) {
	s.RLock()
	defer s.RUnlock()
	return s.token, s.token != ""
}

// Set persists token, replacing any previous one
func (s *Store) Set(token string) error {
	if token == "" {
		return s.Clear()
	}

	s.Lock()
	defer s.Unlock()

	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to persist session token: %w", err)
	}
	defer f.Close()

	err = json.NewEncoder(f).Encode(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	if err != nil {
		return fmt.Errorf("unable to encode session token: %w", err)
	}
	s.token = token
	return nil
}

// Clear forgets the token and removes it from disk
func (s *Store) Clear() error {
	s.Lock()
	defer s.Unlock()
	s.token = ""
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("unable to remove session token: %w", err)
	}
	return nil
}

// Token makes the store an oauth2.TokenSource. ErrNoToken is returned when
// there is no session.
func (s *Store) Token() (*oauth2.Token, error) {
	token, ok := s.Get()
	if !ok {
		return nil, ErrNoToken
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}

func (s *Store) load() error {
	s.Lock()
	defer s.Unlock()

	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		s.token = ""
		return nil
	}
	if err != nil {
		return fmt.Errorf("unable to read session token: %w", err)
	}
	defer f.Close()

	tok := oauth2.Token{}
	if err := json.NewDecoder(f).Decode(&tok); err != nil {
		// a torn or foreign file is treated as no session
		s.token = ""
		return nil
	}
	s.token = tok.AccessToken
	return nil
}

package session

import (
	"sync"

	"github.com/sirupsen/logrus"

	"keylink/internal/domain"
	"keylink/internal/util/memzero"
)

// State holds the session key and ticket counter of one connection.
//
// The zero value is not usable; use New. A single mutex guards the whole
// state and is only held for in-memory work, never across network calls.
type State struct {
	mu      sync.Mutex
	key     *domain.SessionKey // nil while unestablished
	counter uint64
	log     *logrus.Entry
}

// New returns an unestablished State.
func New(logger *logrus.Logger) *State {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &State{log: logger.WithField("component", "session")}
}

// Establish installs key and the initial ticket counter, overwriting any
// previous session.
func (s *State) Establish(key domain.SessionKey, counter uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wipeLocked()
	k := key
	s.key = &k
	s.counter = counter

	s.log.WithFields(logrus.Fields{
		"function": "Establish",
		"counter":  counter,
	}).Debug("Session established")
}

// Clear drops the session. Safe to call in any state.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wipeLocked()
	s.counter = 0
	s.log.WithField("function", "Clear").Debug("Session cleared")
}

func (s *State) wipeLocked() {
	if s.key != nil {
		memzero.Zero(s.key[:])
		s.key = nil
	}
}

// Established reports whether a session key is installed.
func (s *State) Established() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key != nil
}

// CurrentKey returns a copy of the session key.
func (s *State) CurrentKey() (domain.SessionKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == nil {
		return domain.SessionKey{}, domain.ErrSessionNotEstablished
	}
	return *s.key, nil
}

// Counter returns the last ticket value handed out.
func (s *State) Counter() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == nil {
		return 0, domain.ErrSessionNotEstablished
	}
	return s.counter, nil
}

package vault

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"keylink/internal/crypto"
	"keylink/internal/domain"
	"keylink/internal/session"
)

// Service performs the encrypted read operations against the daemon.
//
// Every call:
//   - takes the current session key (failing fast without a session),
//   - issues a fresh ticket,
//   - sends the request with the ticket header,
//   - opens the response envelope and checks it is UTF-8 text.
//
// Calls are serialized so that tickets reach the daemon in the order they
// were issued. The session lock is not held during the request.
type Service struct {
	sess   *session.State
	daemon domain.DaemonClient
	log    *logrus.Entry

	dispatch sync.Mutex
}

// New constructs a vault Service.
func New(sess *session.State, daemon domain.DaemonClient, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		sess:   sess,
		daemon: daemon,
		log:    logger.WithField("component", "vault"),
	}
}

// FetchAll returns every entry as the daemon serialized it.
func (s *Service) FetchAll(ctx context.Context) (string, error) {
	return s.fetch("FetchAll", logrus.Fields{}, func(t domain.Ticket) ([]byte, error) {
		return s.daemon.FetchAll(ctx, t)
	})
}

// FetchFiltered returns the entries matching filter.
func (s *Service) FetchFiltered(ctx context.Context, filter string) (string, error) {
	return s.fetch("FetchFiltered", logrus.Fields{"filter": filter}, func(t domain.Ticket) ([]byte, error) {
		return s.daemon.FetchFiltered(ctx, filter, t)
	})
}

// FetchDecrypted returns the named entry with its secret in the clear.
func (s *Service) FetchDecrypted(ctx context.Context, name string) (string, error) {
	return s.fetch("FetchDecrypted", logrus.Fields{"name": name}, func(t domain.Ticket) ([]byte, error) {
		return s.daemon.FetchDecrypted(ctx, name, t)
	})
}

func (s *Service) fetch(op string, fields logrus.Fields, call func(domain.Ticket) ([]byte, error)) (string, error) {
	log := s.log.WithFields(fields).WithField("function", op)

	s.dispatch.Lock()
	defer s.dispatch.Unlock()

	key, err := s.sess.CurrentKey()
	if err != nil {
		return "", err
	}
	ticket, err := s.sess.NextTicket()
	if err != nil {
		return "", err
	}

	body, err := call(ticket)
	if err != nil {
		log.WithError(err).Error("Request failed")
		return "", err
	}
	log.WithField("body_size", len(body)).Debug("Retrieved bytes")

	pt, err := crypto.Decrypt(key, body)
	if err != nil {
		log.WithError(err).Error("Could not decrypt response")
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !utf8.Valid(pt) {
		return "", fmt.Errorf("%s: %w", op, domain.ErrTextDecoding)
	}
	log.Debug("Decrypted response")
	return string(pt), nil
}

// ParseEntries decodes the JSON entry list returned by FetchAll and
// FetchFiltered.
func ParseEntries(text string) ([]domain.Entry, error) {
	var out []domain.Entry
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("decoding entries: %w", err)
	}
	return out, nil
}

// ParseEntry decodes the JSON entry returned by FetchDecrypted.
func ParseEntry(text string) (domain.Entry, error) {
	var out domain.Entry
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return domain.Entry{}, fmt.Errorf("decoding entry: %w", err)
	}
	return out, nil
}

var _ domain.VaultService = (*Service)(nil)

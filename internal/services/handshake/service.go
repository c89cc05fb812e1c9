package handshake

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"keylink/internal/crypto"
	"keylink/internal/domain"
	"keylink/internal/protocol/spake2"
)

// Default SPAKE2 identities. They must match the daemon's configuration
// byte for byte.
const (
	DefaultClientIdentity = "rust-keylock-browser-extension"
	DefaultDaemonIdentity = "rust-keylock-lib"
)

// DefaultIdentities returns the identity pair the daemon expects.
func DefaultIdentities() domain.Identities {
	return domain.Identities{Client: DefaultClientIdentity, Daemon: DefaultDaemonIdentity}
}

// Service runs the client side of the SPAKE2 exchange.
//
// This service handles:
//   - Building our first message from the password and identities.
//   - Posting it to the daemon and reading its reply.
//   - Finishing the exchange to derive the session key.
//   - Recovering the daemon's bootstrap ticket counter.
type Service struct {
	daemon domain.DaemonClient
	ids    domain.Identities
	log    *logrus.Entry
}

// New constructs a handshake Service.
func New(daemon domain.DaemonClient, ids domain.Identities, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		daemon: daemon,
		ids:    ids,
		log:    logger.WithField("component", "handshake"),
	}
}

// Run performs the exchange and returns the session key and the initial
// ticket counter. It does not touch any session state.
//
// Steps:
//  1. Start SPAKE2 as side A.
//  2. Exchange messages with the daemon.
//  3. Finish the exchange; the transcript is wiped afterwards.
//  4. Decode the bootstrap ticket, falling back to 0 on any problem.
func (s *Service) Run(ctx context.Context, password string) (domain.SessionKey, uint64, error) {
	s.log.WithField("function", "Run").Debug("Executing PAKE")

	st, out, err := spake2.StartA([]byte(password), []byte(s.ids.Client), []byte(s.ids.Daemon))
	if err != nil {
		return domain.SessionKey{}, 0, fmt.Errorf("%w: %v", domain.ErrHandshakeProtocol, err)
	}

	reply, err := s.daemon.Exchange(ctx, out)
	if err != nil {
		return domain.SessionKey{}, 0, fmt.Errorf("%w: %w", domain.ErrHandshakeTransport, err)
	}

	raw, err := st.Finish(reply.Message)
	if err != nil {
		return domain.SessionKey{}, 0, fmt.Errorf("%w: %w", domain.ErrHandshakeProtocol, err)
	}
	var key domain.SessionKey
	copy(key[:], raw)

	counter := s.bootstrapTicket(key, reply)
	s.log.WithFields(logrus.Fields{
		"function": "Run",
		"ticket":   counter,
	}).Info("Key generated and received ticket")
	return key, counter, nil
}

func (s *Service) bootstrapTicket(key domain.SessionKey, reply domain.HandshakeReply) uint64 {
	if !reply.HasTicket {
		s.log.WithField("function", "bootstrapTicket").Debug("No bootstrap ticket, starting at 0")
		return 0
	}
	v, err := decodeTicket(key, reply.Ticket)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"function": "bootstrapTicket",
			"error":    err,
		}).Warn("Ignoring bootstrap ticket, starting at 0")
		return 0
	}
	return v
}

func decodeTicket(key domain.SessionKey, text string) (uint64, error) {
	pt, err := crypto.DecryptText(key, text)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrMalformedBootstrapTicket, err)
	}
	v, err := strconv.ParseUint(string(pt), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrMalformedBootstrapTicket, err)
	}
	return v, nil
}

var _ domain.HandshakeService = (*Service)(nil)

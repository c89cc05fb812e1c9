package session

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"keylink/internal/crypto"
	"keylink/internal/domain"
)

// NextTicket increments the counter and returns its decimal form encrypted
// under the session key. Concurrent callers always get distinct, increasing
// values.
func (s *State) NextTicket() (domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == nil {
		return "", domain.ErrSessionNotEstablished
	}

	s.counter++
	enc, err := crypto.Encrypt(*s.key, []byte(strconv.FormatUint(s.counter, 10)))
	if err != nil {
		return "", err
	}
	s.log.WithFields(logrus.Fields{
		"function": "NextTicket",
		"ticket":   s.counter,
	}).Debug("Issued ticket")
	return domain.Ticket(enc), nil
}

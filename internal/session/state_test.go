package session_test

import (
	"strconv"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keylink/internal/crypto"
	"keylink/internal/domain"
	"keylink/internal/session"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func testKey(b byte) domain.SessionKey {
	var k domain.SessionKey
	for i := range k {
		k[i] = b
	}
	return k
}

// ticketValue decrypts a ticket back to its counter.
func ticketValue(t *testing.T, key domain.SessionKey, tk domain.Ticket) uint64 {
	t.Helper()
	pt, err := crypto.DecryptText(key, string(tk))
	require.NoError(t, err)
	v, err := strconv.ParseUint(string(pt), 10, 64)
	require.NoError(t, err)
	return v
}

func TestState_Lifecycle(t *testing.T) {
	s := session.New(quietLogger())

	_, err := s.CurrentKey()
	assert.ErrorIs(t, err, domain.ErrSessionNotEstablished)
	assert.False(t, s.Established())

	key := testKey(0x11)
	s.Establish(key, 7)
	got, err := s.CurrentKey()
	require.NoError(t, err)
	assert.Equal(t, key, got)
	c, err := s.Counter()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), c)

	s.Clear()
	_, err = s.CurrentKey()
	assert.ErrorIs(t, err, domain.ErrSessionNotEstablished)
	_, err = s.Counter()
	assert.ErrorIs(t, err, domain.ErrSessionNotEstablished)

	// Idempotent.
	s.Clear()
	assert.False(t, s.Established())
}

func TestState_EstablishOverwrites(t *testing.T) {
	s := session.New(quietLogger())
	s.Establish(testKey(1), 100)
	s.Establish(testKey(2), 3)

	got, err := s.CurrentKey()
	require.NoError(t, err)
	assert.Equal(t, testKey(2), got)
	c, _ := s.Counter()
	assert.Equal(t, uint64(3), c)
}

func TestState_CurrentKeyIsCopy(t *testing.T) {
	s := session.New(quietLogger())
	s.Establish(testKey(9), 0)
	k, err := s.CurrentKey()
	require.NoError(t, err)
	s.Clear()
	assert.Equal(t, testKey(9), k, "caller copy must survive Clear")
}

func TestNextTicket_NotEstablished(t *testing.T) {
	s := session.New(quietLogger())
	_, err := s.NextTicket()
	assert.ErrorIs(t, err, domain.ErrSessionNotEstablished)
}

func TestNextTicket_Sequential(t *testing.T) {
	s := session.New(quietLogger())
	key := testKey(0x42)
	s.Establish(key, 42)

	prev := uint64(42)
	for i := 0; i < 50; i++ {
		tk, err := s.NextTicket()
		require.NoError(t, err)
		v := ticketValue(t, key, tk)
		assert.Equal(t, prev+1, v)
		prev = v
	}
}

func TestNextTicket_Concurrent(t *testing.T) {
	s := session.New(quietLogger())
	key := testKey(0x24)
	s.Establish(key, 0)

	const workers, each = 8, 25
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		tickets []domain.Ticket
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				tk, err := s.NextTicket()
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				tickets = append(tickets, tk)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	seen := make(map[uint64]bool)
	for _, tk := range tickets {
		v := ticketValue(t, key, tk)
		assert.False(t, seen[v], "duplicate ticket %d", v)
		seen[v] = true
	}
	assert.Len(t, seen, workers*each)
	for v := uint64(1); v <= workers*each; v++ {
		assert.True(t, seen[v], "missing ticket %d", v)
	}
}

func TestNextTicket_ClearResetsCounter(t *testing.T) {
	s := session.New(quietLogger())
	s.Establish(testKey(1), 10)
	_, err := s.NextTicket()
	require.NoError(t, err)

	s.Clear()
	key := testKey(2)
	s.Establish(key, 0)
	tk, err := s.NextTicket()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), ticketValue(t, key, tk))
}

package vault_test

import (
	"context"
	"errors"
	"io"
	"strconv"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keylink/internal/crypto"
	"keylink/internal/domain"
	"keylink/internal/services/vault"
	"keylink/internal/session"
)

// stubDaemon serves a fixed body and records what it was asked.
type stubDaemon struct {
	body    []byte
	err     error
	calls   int
	tickets []domain.Ticket
	filter  string
	name    string
}

func (d *stubDaemon) Exchange(context.Context, []byte) (domain.HandshakeReply, error) {
	return domain.HandshakeReply{}, errors.New("not used")
}

func (d *stubDaemon) serve(t domain.Ticket) ([]byte, error) {
	d.calls++
	d.tickets = append(d.tickets, t)
	return d.body, d.err
}

func (d *stubDaemon) FetchAll(_ context.Context, t domain.Ticket) ([]byte, error) {
	return d.serve(t)
}

func (d *stubDaemon) FetchFiltered(_ context.Context, f string, t domain.Ticket) ([]byte, error) {
	d.filter = f
	return d.serve(t)
}

func (d *stubDaemon) FetchDecrypted(_ context.Context, n string, t domain.Ticket) ([]byte, error) {
	d.name = n
	return d.serve(t)
}

func setup(t *testing.T, counter uint64) (*vault.Service, *stubDaemon, *session.State, domain.SessionKey) {
	t.Helper()
	l := logrus.New()
	l.SetOutput(io.Discard)

	var key domain.SessionKey
	copy(key[:], "0123456789abcdef0123456789abcdef")
	st := session.New(l)
	st.Establish(key, counter)
	d := &stubDaemon{}
	return vault.New(st, d, l), d, st, key
}

func seal(t *testing.T, key domain.SessionKey, pt string) []byte {
	t.Helper()
	env, err := crypto.Seal(key, []byte(pt))
	require.NoError(t, err)
	return env
}

func ticketOf(t *testing.T, key domain.SessionKey, tk domain.Ticket) uint64 {
	t.Helper()
	pt, err := crypto.DecryptText(key, string(tk))
	require.NoError(t, err)
	v, err := strconv.ParseUint(string(pt), 10, 64)
	require.NoError(t, err)
	return v
}

func TestFetch_NotEstablished(t *testing.T) {
	svc, d, st, _ := setup(t, 0)
	st.Clear()

	ctx := context.Background()
	_, err := svc.FetchAll(ctx)
	assert.ErrorIs(t, err, domain.ErrSessionNotEstablished)
	_, err = svc.FetchFiltered(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrSessionNotEstablished)
	_, err = svc.FetchDecrypted(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrSessionNotEstablished)
	assert.Zero(t, d.calls, "no request may be sent without a session")
}

func TestFetchAll_ReturnsPlaintextAndTickets(t *testing.T) {
	svc, d, _, key := setup(t, 41)
	const payload = `[{"name":"mail","user":"me"}]`
	d.body = seal(t, key, payload)

	for i := 0; i < 3; i++ {
		got, err := svc.FetchAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	}
	require.Len(t, d.tickets, 3)
	assert.Equal(t, uint64(42), ticketOf(t, key, d.tickets[0]))
	assert.Equal(t, uint64(43), ticketOf(t, key, d.tickets[1]))
	assert.Equal(t, uint64(44), ticketOf(t, key, d.tickets[2]))
}

func TestFetchFilteredAndDecrypted_PassArguments(t *testing.T) {
	svc, d, _, key := setup(t, 0)
	d.body = seal(t, key, "{}")

	_, err := svc.FetchFiltered(context.Background(), "ma")
	require.NoError(t, err)
	assert.Equal(t, "ma", d.filter)

	_, err = svc.FetchDecrypted(context.Background(), "mail")
	require.NoError(t, err)
	assert.Equal(t, "mail", d.name)
}

func TestFetch_Errors(t *testing.T) {
	var other domain.SessionKey
	other[5] = 9

	for name, tc := range map[string]struct {
		body func(key domain.SessionKey) []byte
		err  error
		want error
	}{
		"transport": {
			body: func(domain.SessionKey) []byte { return nil },
			err:  domain.ErrTransport,
			want: domain.ErrTransport,
		},
		"too short": {
			body: func(domain.SessionKey) []byte { return make([]byte, 12) },
			want: domain.ErrEnvelopeTooShort,
		},
		"wrong key": {
			body: func(domain.SessionKey) []byte { env, _ := crypto.Seal(other, []byte("x")); return env },
			want: domain.ErrAuthentication,
		},
		"not utf8": {
			body: func(k domain.SessionKey) []byte { env, _ := crypto.Seal(k, []byte{0xff, 0xfe}); return env },
			want: domain.ErrTextDecoding,
		},
	} {
		t.Run(name, func(t *testing.T) {
			svc, d, _, key := setup(t, 0)
			d.body, d.err = tc.body(key), tc.err

			_, err := svc.FetchAll(context.Background())
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, 1, d.calls, "no retries")
		})
	}
}

func TestParseEntries(t *testing.T) {
	got, err := vault.ParseEntries(`[{"name":"mail","user":"me"},{"name":"bank","user":"acct","url":"https://b"}]`)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.Entry{Name: "mail", User: "me"}, got[0])
	assert.Equal(t, "https://b", got[1].URL)

	_, err = vault.ParseEntries("nope")
	assert.Error(t, err)

	e, err := vault.ParseEntry(`{"name":"mail","user":"me","pass":"hunter2"}`)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", e.Pass)
}

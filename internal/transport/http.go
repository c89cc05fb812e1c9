package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"keylink/internal/domain"
)

// Default endpoint layout of the daemon.
const (
	DefaultBaseURL      = "http://127.0.0.1:9876"
	DefaultTicketHeader = "ticket"

	PathPake      = "/pake"
	PathEntries   = "/entries"
	PathDecrypted = "/decrypted/"
)

// maxBody bounds how much of a response we are willing to read.
const maxBody = 16 << 20

// HTTP is the daemon client over plain HTTP.
type HTTP struct {
	Base         string
	TicketHeader string
	HTTP         *http.Client
	log          *logrus.Entry
}

// NewHTTP returns a client for the daemon at base. A nil client means
// http.DefaultClient.
func NewHTTP(base string, c *http.Client, logger *logrus.Logger) *HTTP {
	if c == nil {
		c = http.DefaultClient
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &HTTP{
		Base:         strings.TrimRight(base, "/"),
		TicketHeader: DefaultTicketHeader,
		HTTP:         c,
		log:          logger.WithField("component", "transport"),
	}
}

var _ domain.DaemonClient = (*HTTP)(nil)

func (c *HTTP) Exchange(ctx context.Context, msg []byte) (domain.HandshakeReply, error) {
	u := c.Base + PathPake
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(msg))
	if err != nil {
		return domain.HandshakeReply{}, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return domain.HandshakeReply{}, fmt.Errorf("%w: post %s: %v", domain.ErrTransport, u, err)
	}
	defer resp.Body.Close()
	body, err := readBody(resp, http.MethodPost, u)
	if err != nil {
		return domain.HandshakeReply{}, err
	}

	reply := domain.HandshakeReply{Message: body}
	if vals, ok := resp.Header[http.CanonicalHeaderKey(c.TicketHeader)]; ok && len(vals) > 0 {
		reply.Ticket, reply.HasTicket = vals[0], true
	}
	c.log.WithFields(logrus.Fields{
		"function":   "Exchange",
		"reply_size": len(body),
		"has_ticket": reply.HasTicket,
	}).Debug("Got PAKE response")
	return reply, nil
}

func (c *HTTP) FetchAll(ctx context.Context, ticket domain.Ticket) ([]byte, error) {
	return c.get(ctx, c.Base+PathEntries, ticket)
}

func (c *HTTP) FetchFiltered(ctx context.Context, filter string, ticket domain.Ticket) ([]byte, error) {
	q := url.Values{"filter": []string{filter}}
	return c.get(ctx, c.Base+PathEntries+"?"+q.Encode(), ticket)
}

func (c *HTTP) FetchDecrypted(ctx context.Context, name string, ticket domain.Ticket) ([]byte, error) {
	return c.get(ctx, c.Base+PathDecrypted+url.PathEscape(name), ticket)
}

func (c *HTTP) get(ctx context.Context, u string, ticket domain.Ticket) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(c.TicketHeader, string(ticket))

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", domain.ErrTransport, u, err)
	}
	defer resp.Body.Close()
	body, err := readBody(resp, http.MethodGet, u)
	if err != nil {
		return nil, err
	}
	c.log.WithFields(logrus.Fields{
		"function":  "get",
		"url":       u,
		"body_size": len(body),
	}).Debug("Retrieved bytes")
	return body, nil
}

func readBody(resp *http.Response, method, u string) ([]byte, error) {
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %w: %s %s: %s", domain.ErrTransport, domain.ErrUnauthorized, strings.ToLower(method), u, resp.Status)
	case resp.StatusCode/100 != 2:
		return nil, fmt.Errorf("%w: %s %s: %s", domain.ErrTransport, strings.ToLower(method), u, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrTransport, u, err)
	}
	return body, nil
}

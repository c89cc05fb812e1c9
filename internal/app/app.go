package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"keylink/internal/domain"
	"keylink/internal/session"
)

// Client is the connection handle exposed to hosts: connect, reset and the
// three read operations. Errors carry descriptive text for display.
type Client struct {
	Session   *session.State
	Handshake domain.HandshakeService
	Vault     domain.VaultService
	Notifier  domain.Notifier

	verify  bool
	log     *logrus.Entry
	connect sync.Mutex
}

// New assembles a Client from its parts.
func New(
	sess *session.State,
	hs domain.HandshakeService,
	vault domain.VaultService,
	notifier domain.Notifier,
	verify bool,
	logger *logrus.Logger,
) *Client {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Client{
		Session:   sess,
		Handshake: hs,
		Vault:     vault,
		Notifier:  notifier,
		verify:    verify,
		log:       logger.WithField("component", "client"),
	}
}

// Connect runs the handshake unless a session is already established.
//
// With verification enabled, one FetchAll is issued right after the
// handshake. If the daemon refuses our ticket or its response fails
// authentication, it derived another key: the session is dropped and
// ErrWrongPassword returned.
func (c *Client) Connect(ctx context.Context, secret string) error {
	c.connect.Lock()
	defer c.connect.Unlock()

	if c.Session.Established() {
		c.notify("PAKE is already executed")
		return nil
	}

	key, counter, err := c.Handshake.Run(ctx, secret)
	if err != nil {
		c.log.WithError(err).Error("Handshake failed")
		return fmt.Errorf("connect: %w", err)
	}
	c.Session.Establish(key, counter)

	if c.verify {
		if _, err := c.Vault.FetchAll(ctx); err != nil {
			c.Session.Clear()
			if errors.Is(err, domain.ErrAuthentication) || errors.Is(err, domain.ErrUnauthorized) {
				return fmt.Errorf("connect: %w", domain.ErrWrongPassword)
			}
			return fmt.Errorf("connect: verifying session: %w", err)
		}
	}
	c.notify("Connected")
	return nil
}

// Reset drops the session; the next Connect runs a fresh handshake.
func (c *Client) Reset() {
	c.Session.Clear()
	c.notify("Session reset")
}

// Connected reports whether a session is established.
func (c *Client) Connected() bool { return c.Session.Established() }

func (c *Client) FetchAll(ctx context.Context) (string, error) {
	return c.Vault.FetchAll(ctx)
}

func (c *Client) FetchFiltered(ctx context.Context, filter string) (string, error) {
	return c.Vault.FetchFiltered(ctx, filter)
}

func (c *Client) FetchDecrypted(ctx context.Context, name string) (string, error) {
	return c.Vault.FetchDecrypted(ctx, name)
}

func (c *Client) notify(msg string) {
	if c.Notifier != nil {
		c.Notifier.Notify(msg)
	}
}

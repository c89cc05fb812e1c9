package app

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"keylink/internal/domain"
	"keylink/internal/logging"
	"keylink/internal/services/handshake"
	"keylink/internal/services/vault"
	"keylink/internal/session"
	"keylink/internal/transport"
)

// NewClient constructs the dependency graph from cfg. A nil notifier routes
// messages to the logger.
func NewClient(cfg Config, logger *logrus.Logger, notifier domain.Notifier) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if notifier == nil {
		notifier = logging.Notifier{Log: logger}
	}

	// Ensure an HTTP client is available for outbound calls
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout.Duration}
	}

	dc := transport.NewHTTP(cfg.BaseURL, httpClient, logger)
	dc.TicketHeader = cfg.TicketHeader

	sess := session.New(logger)
	hs := handshake.New(dc, domain.Identities{Client: cfg.ClientIdentity, Daemon: cfg.DaemonIdentity}, logger)
	vs := vault.New(sess, dc, logger)

	return New(sess, hs, vs, notifier, cfg.VerifyOnConnect, logger), nil
}

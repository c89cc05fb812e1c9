package app

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"keylink/internal/logging"
	"keylink/internal/services/handshake"
	"keylink/internal/transport"
)

// Config holds runtime wiring options for building the client.
type Config struct {
	BaseURL         string   `toml:"base_url"`        // daemon base URL, e.g. http://127.0.0.1:9876
	ClientIdentity  string   `toml:"client_identity"` // SPAKE2 identity of this side
	DaemonIdentity  string   `toml:"daemon_identity"` // SPAKE2 identity of the daemon
	TicketHeader    string   `toml:"ticket_header"`
	Timeout         Duration `toml:"timeout"`
	VerifyOnConnect bool     `toml:"verify_on_connect"`

	Logging logging.Config `toml:"logging"`

	HTTP *http.Client `toml:"-"` // optional; built from Timeout when nil
}

// Duration is a time.Duration read from a TOML string such as "10s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig returns the settings matching a stock daemon.
func DefaultConfig() Config {
	return Config{
		BaseURL:        transport.DefaultBaseURL,
		ClientIdentity: handshake.DefaultClientIdentity,
		DaemonIdentity: handshake.DefaultDaemonIdentity,
		TicketHeader:   transport.DefaultTicketHeader,
		Timeout:        Duration{30 * time.Second},
		Logging:        logging.Config{Level: "warn", Format: "text"},
	}
}

// Validate checks the config is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("config: base_url must be http or https, got %q", c.BaseURL)
	}
	if c.ClientIdentity == "" || c.DaemonIdentity == "" {
		return errors.New("config: identities must not be empty")
	}
	if c.ClientIdentity == c.DaemonIdentity {
		return errors.New("config: client and daemon identities must differ")
	}
	if c.TicketHeader == "" {
		return errors.New("config: ticket_header must not be empty")
	}
	if c.Timeout.Duration < 0 {
		return errors.New("config: timeout must not be negative")
	}
	return nil
}

// Load parses and validates the provided buffer b as a config file body.
// Missing keys keep their DefaultConfig value.
func Load(b []byte) (*Config, error) {
	if b == nil {
		return nil, errors.New("config: no nil buffer as config file")
	}
	cfg := DefaultConfig()
	if _, err := toml.Decode(string(b), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile loads, parses and validates the provided file.
func LoadFile(f string) (*Config, error) {
	b, err := os.ReadFile(f)
	if err != nil {
		return nil, err
	}
	return Load(b)
}

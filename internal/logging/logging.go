// Package logging builds the logrus logger shared by keylink components and
// the notifier used to surface messages to the user.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"keylink/internal/domain"
)

// Config selects level, format and destination of log output.
type Config struct {
	Level  string `toml:"level"`  // panic|fatal|error|warn|info|debug|trace
	Format string `toml:"format"` // text|json
	File   string `toml:"file"`   // empty means stderr
}

// New creates a logger from cfg. The returned closer releases the log file,
// if any.
func New(cfg Config) (*logrus.Logger, io.Closer, error) {
	l := logrus.New()

	lvl := cfg.Level
	if lvl == "" {
		lvl = "warn"
	}
	level, err := logrus.ParseLevel(lvl)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: %w", err)
	}
	l.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, nil, fmt.Errorf("logging: unknown format %q", cfg.Format)
	}

	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: failed to open log file: %w", err)
		}
		l.SetOutput(f)
		closer = f
	}
	return l, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Notifier forwards user-facing messages to a logger at info level.
type Notifier struct {
	Log *logrus.Logger
}

func (n Notifier) Notify(msg string) {
	n.Log.WithField("component", "notifier").Info(msg)
}

// WriterNotifier prints user-facing messages, one per line.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Notify(msg string) {
	fmt.Fprintln(n.W, msg)
}

var (
	_ domain.Notifier = Notifier{}
	_ domain.Notifier = WriterNotifier{}
)

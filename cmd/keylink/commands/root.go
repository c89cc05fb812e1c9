package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"keylink/internal/app"
	"keylink/internal/logging"
)

const passwordEnv = "KEYLINK_PASSWORD"

var (
	configPath string
	baseURL    string
	password   string
	logLevel   string
	verify     bool

	appCtx    *app.Client
	logger    *logrus.Logger
	logCloser io.Closer
)

func Execute() error {
	root := &cobra.Command{
		Use:           "keylink",
		Short:         "Read entries from a local rust-keylock daemon over an encrypted channel",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, logCloser, err = logging.New(cfg.Logging)
			if err != nil {
				return err
			}
			appCtx, err = app.NewClient(*cfg, logger, logging.WriterNotifier{W: cmd.ErrOrStderr()})
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file")
	root.PersistentFlags().StringVar(&baseURL, "url", "", "daemon base URL (default http://127.0.0.1:9876)")
	root.PersistentFlags().StringVarP(&password, "password", "p", "", "master password (or $"+passwordEnv+")")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace|debug|info|warn|error)")
	root.PersistentFlags().BoolVar(&verify, "verify", false, "check the password with one request right after the handshake")

	root.AddCommand(listCmd(), getCmd(), shellCmd())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

// loadConfig reads --config when given and applies flag overrides on top.
func loadConfig(cmd *cobra.Command) (*app.Config, error) {
	cfg := app.DefaultConfig()
	if configPath != "" {
		c, err := app.LoadFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = *c
	}
	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.BaseURL = baseURL
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("verify") {
		cfg.VerifyOnConnect = verify
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func secret() (string, error) {
	if password != "" {
		return password, nil
	}
	if v := os.Getenv(passwordEnv); v != "" {
		return v, nil
	}
	return "", errors.New("password required (-p or $" + passwordEnv + ")")
}

// connect runs the handshake with the configured password.
func connect(ctx context.Context) error {
	pw, err := secret()
	if err != nil {
		return err
	}
	return appCtx.Connect(ctx, pw)
}

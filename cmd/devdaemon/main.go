package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"keylink/internal/devdaemon"
	"keylink/internal/domain"
	"keylink/internal/logging"
	"keylink/internal/services/handshake"
	"keylink/internal/store"
)

var sampleEntries = []domain.Entry{
	{Name: "mail", User: "me@example.com", Pass: "correct horse", URL: "https://mail.example.com"},
	{Name: "bank", User: "0042-1337", Pass: "battery staple", Desc: "online banking"},
	{Name: "router", User: "admin", Pass: "admin"},
}

func main() {
	var (
		listen    string
		dir       string
		password  string
		bootstrap string
		logLevel  string
		plain     bool
	)
	cmd := &cobra.Command{
		Use:          "devdaemon",
		Short:        "Development stand-in for the rust-keylock HTTP daemon",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closer, err := logging.New(logging.Config{Level: logLevel})
			if err != nil {
				return err
			}
			defer closer.Close()
			log := logger.WithField("component", "devdaemon")

			if dir == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				dir = filepath.Join(home, ".keylink-devdaemon")
			}
			es := store.NewSealedEntryFileStore(dir, password)
			if plain {
				es = store.NewEntryFileStore(dir)
			}
			seeded, err := es.SeedIfEmpty(sampleEntries)
			if err != nil {
				return err
			}
			if seeded {
				log.WithField("path", es.Path()).Info("Seeded sample entries")
			}

			srv := devdaemon.New(es, devdaemon.Options{
				Password:   password,
				Identities: handshake.DefaultIdentities(),
				Bootstrap:  bootstrap,
				Logger:     logger,
			})
			return serve(cmd.Context(), listen, srv.Handler(), log)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "127.0.0.1:9876", "listen address")
	cmd.Flags().StringVar(&dir, "dir", "", "entries directory (default ~/.keylink-devdaemon)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "master password")
	cmd.Flags().StringVar(&bootstrap, "bootstrap", "", "plaintext sent as the handshake ticket, e.g. 100")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level")
	cmd.Flags().BoolVar(&plain, "plain", false, "keep entries as plain JSON instead of sealing them with the password")
	_ = cmd.MarkFlagRequired("password")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func serve(ctx context.Context, addr string, h http.Handler, log *logrus.Entry) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           accessLog(h, log),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.WithField("addr", addr).Info("Listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func accessLog(next http.Handler, log *logrus.Entry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"remote":   r.RemoteAddr,
			"status":   sw.status,
			"bytes":    sw.bytes,
			"duration": time.Since(start),
		}).Info("request")
	})
}

package devdaemon

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"keylink/internal/crypto"
	"keylink/internal/domain"
	"keylink/internal/protocol/spake2"
	"keylink/internal/transport"
)

// EntrySource supplies the entries the daemon serves.
type EntrySource interface {
	Entries() ([]domain.Entry, error)
}

// Options configure a Server.
type Options struct {
	Password   string
	Identities domain.Identities
	// Bootstrap is the plaintext sent, encrypted, in the handshake ticket
	// header. Empty means no header. A decimal value also seeds the
	// daemon's own replay counter.
	Bootstrap    string
	TicketHeader string
	Logger       *logrus.Logger
}

// Server is a development stand-in for the password daemon.
type Server struct {
	opts    Options
	entries EntrySource
	log     *logrus.Entry

	mu         sync.Mutex
	key        *domain.SessionKey
	lastTicket uint64
}

// New builds a Server serving entries from src.
func New(src EntrySource, opts Options) *Server {
	if opts.TicketHeader == "" {
		opts.TicketHeader = transport.DefaultTicketHeader
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &Server{
		opts:    opts,
		entries: src,
		log:     opts.Logger.WithField("component", "devdaemon"),
	}
}

// SessionKey returns the key agreed in the last handshake.
func (s *Server) SessionKey() (domain.SessionKey, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == nil {
		return domain.SessionKey{}, false
	}
	return *s.key, true
}

// LastTicket returns the highest ticket accepted so far.
func (s *Server) LastTicket() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTicket
}

// Handler returns the HTTP routes of the daemon.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+transport.PathPake, s.handlePake)
	mux.HandleFunc("GET "+transport.PathEntries, s.handleEntries)
	mux.HandleFunc("GET "+transport.PathDecrypted+"{name}", s.handleDecrypted)
	return mux
}

func (s *Server) handlePake(w http.ResponseWriter, r *http.Request) {
	msg, err := io.ReadAll(io.LimitReader(r.Body, 1024))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	st, out, err := spake2.StartB([]byte(s.opts.Password), []byte(s.opts.Identities.Client), []byte(s.opts.Identities.Daemon))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	raw, err := st.Finish(msg)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var key domain.SessionKey
	copy(key[:], raw)

	last, _ := strconv.ParseUint(s.opts.Bootstrap, 10, 64)
	s.mu.Lock()
	s.key = &key
	s.lastTicket = last
	s.mu.Unlock()

	if s.opts.Bootstrap != "" {
		tk, err := crypto.Encrypt(key, []byte(s.opts.Bootstrap))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set(s.opts.TicketHeader, tk)
	}
	s.log.WithFields(logrus.Fields{
		"function":  "handlePake",
		"bootstrap": last,
	}).Info("PAKE completed")
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(out)
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	key, ok := s.checkTicket(w, r)
	if !ok {
		return
	}
	all, err := s.entries.Entries()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	filter := strings.ToUpper(r.URL.Query().Get("filter"))
	list := make([]domain.Entry, 0, len(all))
	for _, e := range all {
		if filter != "" && !strings.Contains(strings.ToUpper(e.Name), filter) {
			continue
		}
		e.Pass = ""
		list = append(list, e)
	}
	s.writeSealed(w, key, list)
}

func (s *Server) handleDecrypted(w http.ResponseWriter, r *http.Request) {
	key, ok := s.checkTicket(w, r)
	if !ok {
		return
	}
	name := r.PathValue("name")
	all, err := s.entries.Entries()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	for _, e := range all {
		if e.Name == name {
			s.writeSealed(w, key, e)
			return
		}
	}
	http.Error(w, "not found", http.StatusNotFound)
}

// checkTicket verifies the ticket header decrypts under the session key to
// a value above every ticket seen before.
func (s *Server) checkTicket(w http.ResponseWriter, r *http.Request) (domain.SessionKey, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key == nil {
		http.Error(w, "no session", http.StatusUnauthorized)
		return domain.SessionKey{}, false
	}
	pt, err := crypto.DecryptText(*s.key, r.Header.Get(s.opts.TicketHeader))
	if err != nil {
		http.Error(w, "bad ticket", http.StatusUnauthorized)
		return domain.SessionKey{}, false
	}
	v, err := strconv.ParseUint(string(pt), 10, 64)
	if err != nil || v <= s.lastTicket {
		s.log.WithFields(logrus.Fields{
			"function": "checkTicket",
			"ticket":   string(pt),
			"last":     s.lastTicket,
		}).Warn("Rejected replayed or out-of-order ticket")
		http.Error(w, "stale ticket", http.StatusUnauthorized)
		return domain.SessionKey{}, false
	}
	s.lastTicket = v
	return *s.key, true
}

func (s *Server) writeSealed(w http.ResponseWriter, key domain.SessionKey, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	env, err := crypto.Seal(key, b)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(env)
}

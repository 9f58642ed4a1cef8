// Package droplrtest provides an in-process Droplr API double for
// tests. It verifies the Authorization header of every request under
// all three signing schemes, keeps accounts and drops in memory, and
// signals failures through droplr-errorcode headers the way the real
// service does.
package droplrtest

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/droplr/droplr-go/auth"
	"github.com/droplr/droplr-go/droplr"
	"github.com/droplr/droplr-go/internal/uuid"
)

// Server is a fake Droplr deployment bound to one application key
// pair. The anonymous placeholder identity is registered out of the
// box, so anonymous signed requests verify immediately.
type Server struct {
	publicKey string
	keys      auth.KeyMaterial
	now       func() time.Time
	router    chi.Router

	mu       sync.Mutex
	accounts map[string]*account
	drops    map[string]*drop
}

type account struct {
	id           string
	email        string
	digest       string
	createdAt    int64
	dropPrivacy  string
	theme        string
	rootRedirect string
	useDomain    string
}

type drop struct {
	owner string
	d     droplr.Drop
}

// Option customizes a Server.
type Option func(*Server)

// WithClock replaces the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// New builds a Server that accepts requests signed with the given
// application key pair.
func New(publicKey, privateKey string, opts ...Option) *Server {
	s := &Server{
		publicKey: publicKey,
		keys:      auth.NewKeyMaterial(publicKey, privateKey),
		now:       time.Now,
		accounts:  make(map[string]*account),
		drops:     make(map[string]*drop),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.register(auth.AnonymousEmail, auth.Digest("anonymous"))
	s.router = s.buildRouter()
	return s
}

// RegisterAccount seeds an account so tests can sign as it without
// going through CreateAccount first.
func (s *Server) RegisterAccount(email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.register(email, auth.Digest(password))
}

func (s *Server) register(email, digest string) *account {
	a := &account{
		id:          uuid.New(),
		email:       email,
		digest:      digest,
		createdAt:   s.now().UnixMilli(),
		dropPrivacy: "PUBLIC",
	}
	s.accounts[email] = a
	return a
}

// Router returns the chi router serving the fake API. Mount it on an
// httptest.Server and point a droplr.Client at its URL.
func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(s.authenticate)

	r.Post("/account", s.createAccount)
	r.Get("/account", s.readAccount)
	r.Put("/account", s.editAccount)

	r.Get("/drops", s.listDrops)
	r.Get("/drops/{code}", s.readDrop)
	r.Delete("/drops/{code}", s.deleteDrop)

	r.Post("/notes", s.createNote)
	r.Post("/links", s.createLink)
	r.Post("/files", s.createFile)

	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// writeError signals failure the Droplr way: the error code and
// details ride in headers, independent of the HTTP status.
func writeError(w http.ResponseWriter, status int, code, details string) {
	w.Header().Set(droplr.HeaderErrorCode, code)
	if details != "" {
		w.Header().Set(droplr.HeaderErrorDetails, details)
	}
	w.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Package droplr is a client for the Droplr REST API. Every request is
// individually signed with HMAC-SHA1 under one of the protocol's three
// Authorization schemes; the auth package defines the wire format.
//
// A Client starts anonymous and can bind account credentials at any
// point with SetCredentials. Binding is a one-way transition: on the
// legacy scheme pair it promotes droplranon to droplr, and on the
// default droplr2 scheme it only swaps the identity the requests are
// signed as.
package droplr

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/droplr/droplr-go/auth"
)

const defaultTimeout = 30 * time.Second

// Doer executes HTTP requests. *http.Client satisfies it; tests swap
// in fakes.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a signing Droplr API client. It is safe for concurrent
// use; binding credentials mid-flight affects only requests signed
// afterwards.
type Client struct {
	baseURL   *url.URL
	keys      auth.KeyMaterial
	userAgent string
	accept    string
	http      Doer
	now       func() time.Time
	logger    *slog.Logger

	mu      sync.Mutex
	session session
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport requests are sent through.
func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		if doer != nil {
			c.http = doer
		}
	}
}

// WithClock replaces the time source used to date and sign requests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger attaches a structured logger. The client logs request
// outcomes at debug level and never logs key material, passwords, or
// signatures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a Client from cfg. The private key is sealed before New
// returns, so the config struct can be discarded afterwards.
func New(cfg Config, opts ...Option) (*Client, error) {
	base, err := cfg.parse()
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		keys:      auth.NewKeyMaterial(cfg.PublicKey, cfg.PrivateKey),
		userAgent: cfg.userAgent(),
		accept:    cfg.accept(),
		http:      &http.Client{Timeout: defaultTimeout},
		now:       time.Now,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		session:   newSession(cfg.Plaintext),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

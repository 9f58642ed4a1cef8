package droplr

import (
	"fmt"
	"net/url"
)

// DefaultUserAgent identifies this library when the application does
// not set its own agent string.
const DefaultUserAgent = "droplr-go-client"

// DefaultAPIVersion is the protocol version pinned in the Accept
// header of every request.
const DefaultAPIVersion = "0.9"

// Config carries everything a Client needs to reach and sign against a
// Droplr API deployment.
type Config struct {
	// URL is the base URL of the API, e.g. "https://api.droplr.com".
	URL string
	// PublicKey identifies the application.
	PublicKey string
	// PrivateKey signs requests. It is sealed when the client is
	// built and never logged.
	PrivateKey string
	// UserAgent overrides DefaultUserAgent when non-empty.
	UserAgent string
	// APIVersion overrides DefaultAPIVersion when non-empty.
	APIVersion string
	// Plaintext starts the session on the legacy scheme pair:
	// droplranon before credentials are bound, droplr after. Only
	// useful against old deployments; new code should leave this
	// false and speak droplr2.
	Plaintext bool
}

// parse validates the config and returns the parsed base URL.
func (c Config) parse() (*url.URL, error) {
	if c.PublicKey == "" {
		return nil, fmt.Errorf("%w: missing public key", ErrConfig)
	}
	if c.PrivateKey == "" {
		return nil, fmt.Errorf("%w: missing private key", ErrConfig)
	}
	if c.URL == "" {
		return nil, fmt.Errorf("%w: missing base URL", ErrConfig)
	}
	base, err := url.Parse(c.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing base URL: %v", ErrConfig, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w: base URL scheme must be http or https", ErrConfig)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("%w: base URL has no host", ErrConfig)
	}
	return base, nil
}

func (c Config) userAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return DefaultUserAgent
}

func (c Config) accept() string {
	version := c.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}
	return "application/json; version=" + version
}

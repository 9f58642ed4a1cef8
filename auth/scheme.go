// Package auth implements the signing protocol spoken by the Droplr
// API: SHA-1 password digests, HMAC-SHA1 request signatures, and the
// three Authorization header schemes (droplranon, droplr, droplr2).
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Scheme selects which Authorization header format a request is signed
// under. The zero value is SchemeVersioned, the current protocol.
type Scheme int

const (
	// SchemeVersioned is the current scheme ("droplr2"). Its header
	// carries the password digest as a third field and the signature
	// is computed with the private key alone.
	SchemeVersioned Scheme = iota
	// SchemeLegacyAnonymous is the legacy scheme for requests sent
	// before an account is bound ("droplranon"). It signs with the
	// placeholder credentials shared by all anonymous clients.
	SchemeLegacyAnonymous
	// SchemeLegacy is the legacy scheme for authenticated requests
	// ("droplr"). The password digest is folded into the HMAC key.
	SchemeLegacy
)

// ErrUnknownScheme is returned when an unrecognized scheme or scheme
// token is encountered.
var ErrUnknownScheme = errors.New("unknown authorization scheme")

// Token returns the literal token leading the Authorization header, or
// "" for an unrecognized scheme.
func (s Scheme) Token() string {
	switch s {
	case SchemeVersioned:
		return "droplr2"
	case SchemeLegacyAnonymous:
		return "droplranon"
	case SchemeLegacy:
		return "droplr"
	default:
		return ""
	}
}

func (s Scheme) String() string {
	if tok := s.Token(); tok != "" {
		return tok
	}
	return "unknown"
}

// SchemeFromToken resolves the leading token of an Authorization
// header back to its scheme.
func SchemeFromToken(token string) (Scheme, error) {
	switch token {
	case "droplr2":
		return SchemeVersioned, nil
	case "droplranon":
		return SchemeLegacyAnonymous, nil
	case "droplr":
		return SchemeLegacy, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, token)
	}
}

// Authenticated returns the scheme used once account credentials are
// bound. The anonymous legacy scheme promotes to the authenticated
// legacy scheme; every other scheme is unchanged. Promotion never
// reverses.
func (s Scheme) Authenticated() Scheme {
	if s == SchemeLegacyAnonymous {
		return SchemeLegacy
	}
	return s
}

func (s *Scheme) UnmarshalJSON(b []byte) error {
	var tok string
	if err := json.Unmarshal(b, &tok); err != nil {
		return fmt.Errorf("unmarshaling scheme: %w", err)
	}
	scheme, err := SchemeFromToken(tok)
	if err != nil {
		return err
	}
	*s = scheme
	return nil
}

func (s Scheme) MarshalJSON() ([]byte, error) {
	tok := s.Token()
	if tok == "" {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, int(s))
	}
	return json.Marshal(tok)
}

package droplrtest

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/droplr/droplr-go/auth"
)

type contextKey int

const identityKey contextKey = iota

// identity is the verified account an authenticated request acts as.
type identity struct {
	email     string
	anonymous bool
}

func requestIdentity(r *http.Request) identity {
	id, _ := r.Context().Value(identityKey).(identity)
	return id
}

// authenticate verifies the Authorization header of every request the
// way the real service does: parse the scheme token and identity,
// recompute the signature from the credentials on record, and compare
// in constant time. Failures are signaled through droplr-errorcode
// headers with a 401 status.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "Request.NoAuthorizationHeader", "request carries no Authorization header")
			return
		}
		if r.Header.Get("Date") == "" {
			writeError(w, http.StatusUnauthorized, "Request.NoDateHeader", "request carries no Date header")
			return
		}

		token, rest, ok := strings.Cut(header, " ")
		if !ok {
			writeError(w, http.StatusUnauthorized, "Request.InvalidAuthorizationHeader", "malformed Authorization header")
			return
		}
		scheme, err := auth.SchemeFromToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Request.InvalidAuthorizationHeader", "unknown scheme token")
			return
		}

		publicKey, email, ok := decodeIdentity(rest)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Request.InvalidAuthorizationHeader", "malformed identity key")
			return
		}
		if publicKey != s.publicKey {
			writeError(w, http.StatusUnauthorized, "Authentication.InvalidPublicKey", "unknown application key")
			return
		}

		// The legacy token pair encodes the session state: droplranon
		// is only valid for the placeholder identity, droplr only for
		// a real one.
		anonymous := email == auth.AnonymousEmail
		if (scheme == auth.SchemeLegacyAnonymous && !anonymous) ||
			(scheme == auth.SchemeLegacy && anonymous) {
			writeError(w, http.StatusUnauthorized, "Request.InvalidAuthorizationHeader", "scheme token does not match identity")
			return
		}

		s.mu.Lock()
		acct, known := s.accounts[email]
		s.mu.Unlock()
		if !known {
			writeError(w, http.StatusUnauthorized, "Authentication.UnknownUser", "no such user: "+email)
			return
		}

		canonical := auth.Canonicalize(auth.Request{
			Method:      r.Method,
			Path:        r.URL.Path,
			ContentType: r.Header.Get("Content-Type"),
			Date:        r.Header.Get("Date"),
		})
		valid, err := auth.Verify(header, canonical, scheme, s.keys, auth.NewHashedCredentials(email, acct.digest))
		if err != nil || !valid {
			writeError(w, http.StatusUnauthorized, "Authentication.BadCredentials", "signature mismatch")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity{email: email, anonymous: anonymous})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// decodeIdentity extracts the application public key and account email
// from the base64 identity leading the header's credential section.
func decodeIdentity(credentials string) (publicKey, email string, ok bool) {
	encoded, _, found := strings.Cut(credentials, ":")
	if !found {
		return "", "", false
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", false
	}
	publicKey, email, found = strings.Cut(string(raw), ":")
	if !found || publicKey == "" || email == "" {
		return "", "", false
	}
	return publicKey, email, true
}

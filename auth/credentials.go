package auth

import "fmt"

// AnonymousEmail is the placeholder identity email baked into every
// client and server for requests sent before an account is bound.
// Anonymous requests are still signed and verified like any other,
// just under this shared identity.
const AnonymousEmail = "anonymous"

const anonymousPassword = "anonymous"

// Credentials carries the account identity a request is signed as. The
// password never leaves the struct in the clear: signing uses its
// SHA-1 digest, or the stored digest verbatim for credentials built
// from an already-hashed password.
type Credentials struct {
	email    string
	password Secret
	hashed   bool
}

// NewCredentials builds credentials from an email and a plaintext
// password. The password is sealed immediately and only its SHA-1
// digest ever participates in signing.
func NewCredentials(email, password string) Credentials {
	return Credentials{email: email, password: NewSecret(password)}
}

// NewHashedCredentials builds credentials whose password is already a
// lowercase hex SHA-1 digest, for callers that never hold the
// plaintext: stored profiles and server-side verification.
func NewHashedCredentials(email, passwordDigest string) Credentials {
	return Credentials{email: email, password: NewSecret(passwordDigest), hashed: true}
}

// AnonymousCredentials returns the shared placeholder identity used to
// sign requests before an account is bound.
func AnonymousCredentials() Credentials {
	return NewCredentials(AnonymousEmail, anonymousPassword)
}

// Email returns the identity email requests are signed as.
func (c Credentials) Email() string {
	return c.email
}

// passwordTerm returns the digest component used in signing: the SHA-1
// digest of the password, or the stored digest for hashed credentials.
func (c Credentials) passwordTerm() (string, error) {
	var term string
	err := c.password.use(func(raw []byte) error {
		if c.hashed {
			term = string(raw)
		} else {
			term = Digest(string(raw))
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return term, nil
}

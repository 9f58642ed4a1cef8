package droplr

import "github.com/droplr/droplr-go/auth"

// session pairs the scheme requests are signed under with the
// credentials they are signed as. Sessions are immutable values;
// binding produces a new one.
type session struct {
	scheme auth.Scheme
	creds  auth.Credentials
}

// newSession returns the starting session: the versioned scheme with
// placeholder credentials, or the anonymous legacy scheme when
// plaintext is set.
func newSession(plaintext bool) session {
	scheme := auth.SchemeVersioned
	if plaintext {
		scheme = auth.SchemeLegacyAnonymous
	}
	return session{scheme: scheme, creds: auth.AnonymousCredentials()}
}

// bind returns the session after account credentials are attached: the
// scheme promotes per auth.Scheme.Authenticated and the credentials
// are replaced wholesale.
func (s session) bind(creds auth.Credentials) session {
	return session{scheme: s.scheme.Authenticated(), creds: creds}
}

// SetCredentials binds an email and plaintext password to the client.
// Requests signed after it returns use the new identity; requests
// already in flight keep the session they were signed with.
func (c *Client) SetCredentials(email, password string) {
	c.bind(auth.NewCredentials(email, password))
}

// SetHashedCredentials binds an identity whose password is already a
// lowercase hex SHA-1 digest, for example one loaded from a credential
// store.
func (c *Client) SetHashedCredentials(email, passwordDigest string) {
	c.bind(auth.NewHashedCredentials(email, passwordDigest))
}

func (c *Client) bind(creds auth.Credentials) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = c.session.bind(creds)
}

// Scheme reports the scheme the next request will be signed under.
func (c *Client) Scheme() auth.Scheme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.scheme
}

// snapshot returns the session a request should be signed with.
func (c *Client) snapshot() session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

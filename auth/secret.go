package auth

import (
	"errors"
	"fmt"

	"github.com/awnumar/memguard"
)

const redacted = "[REDACTED]"

var errSecretMarshal = errors.New("secrets do not marshal")

// Secret holds a sensitive string (a private key or a password) in a
// memguard Enclave so it stays encrypted in memory between uses. The
// zero value is an empty secret.
//
// Secret has no accessor returning the raw value. It redacts itself
// when printed and refuses JSON and text marshaling, so the value
// cannot leak through logging or serialization.
type Secret struct {
	enclave *memguard.Enclave
}

// NewSecret seals value into a Secret.
func NewSecret(value string) Secret {
	if value == "" {
		return Secret{}
	}
	return Secret{enclave: memguard.NewEnclave([]byte(value))}
}

// use calls fn with the secret's raw bytes. The bytes are valid only
// for the duration of the call and must not be retained. An empty
// secret yields a nil slice.
func (s Secret) use(fn func(raw []byte) error) error {
	if s.enclave == nil {
		return fn(nil)
	}
	buf, err := s.enclave.Open()
	if err != nil {
		return fmt.Errorf("opening secret enclave: %w", err)
	}
	defer buf.Destroy()
	return fn(buf.Bytes())
}

// IsZero reports whether the secret holds no value.
func (s Secret) IsZero() bool {
	return s.enclave == nil
}

func (s Secret) String() string {
	return redacted
}

// GoString keeps %#v from printing the struct layout.
func (s Secret) GoString() string {
	return "auth.Secret(" + redacted + ")"
}

// MarshalJSON always fails; secrets must never be serialized.
func (s Secret) MarshalJSON() ([]byte, error) {
	return nil, errSecretMarshal
}

// MarshalText always fails; secrets must never be serialized.
func (s Secret) MarshalText() ([]byte, error) {
	return nil, errSecretMarshal
}

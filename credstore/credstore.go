// Package credstore persists Droplr account profiles for the CLI.
// Profiles hold an email and a SHA-1 password digest, never the
// plaintext password, and are encrypted at rest with AES-256-GCM under
// a key derived from a store passphrase with argon2id.
package credstore

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/droplr/droplr-go/internal/util"
)

const (
	blobVersion = 1
	saltLen     = 16
)

var (
	// ErrProfileNotFound is returned when no profile exists under the
	// requested name.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrWrongPassphrase is returned when a stored profile cannot be
	// decrypted, which almost always means the passphrase is wrong.
	ErrWrongPassphrase = errors.New("wrong store passphrase")
	// ErrCorruptProfile is returned when a stored blob is structurally
	// unreadable before decryption is even attempted.
	ErrCorruptProfile = errors.New("corrupt profile blob")
)

// Backend persists opaque sealed blobs by profile name. Implementations
// never see plaintext profile data.
type Backend interface {
	Put(name string, blob []byte) error
	Get(name string) ([]byte, error)
	List() ([]string, error)
	Delete(name string) error
}

// Profile is one stored Droplr identity.
type Profile struct {
	// Email is the account email.
	Email string `json:"email"`
	// PasswordDigest is the lowercase hex SHA-1 digest of the account
	// password. The plaintext is never stored.
	PasswordDigest string `json:"password_digest"`
	// SavedAt is the Unix epoch millisecond timestamp of the last save.
	SavedAt int64 `json:"saved_at,omitempty"`
}

// Store reads and writes encrypted profiles through a Backend.
type Store struct {
	backend Backend
}

// New returns a Store over backend.
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Save seals profile under the store passphrase and persists it as
// name. An existing profile of the same name is overwritten.
func (s *Store) Save(name string, profile Profile, passphrase string) error {
	blob, err := seal(name, profile, passphrase)
	if err != nil {
		return err
	}
	if err := s.backend.Put(name, blob); err != nil {
		return fmt.Errorf("storing profile %q: %w", name, err)
	}
	return nil
}

// Load fetches and decrypts the named profile.
func (s *Store) Load(name, passphrase string) (Profile, error) {
	blob, err := s.backend.Get(name)
	if err != nil {
		return Profile{}, fmt.Errorf("loading profile %q: %w", name, err)
	}
	return open(name, blob, passphrase)
}

// List returns the names of all stored profiles.
func (s *Store) List() ([]string, error) {
	names, err := s.backend.List()
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	return names, nil
}

// Delete removes the named profile.
func (s *Store) Delete(name string) error {
	if err := s.backend.Delete(name); err != nil {
		return fmt.Errorf("deleting profile %q: %w", name, err)
	}
	return nil
}

// seal encrypts a profile into a portable blob:
//
//	version (1 byte) || salt (16 bytes) || AES-256-GCM ciphertext
//
// The key is derived from the passphrase with argon2id and the fresh
// salt; the profile name is bound in as AAD so a blob copied to another
// slot fails to open.
func seal(name string, profile Profile, passphrase string) ([]byte, error) {
	plaintext, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("encoding profile: %w", err)
	}
	defer util.WipeBytes(plaintext)

	salt, err := util.RandomBytes(saltLen)
	if err != nil {
		return nil, fmt.Errorf("generating profile salt: %w", err)
	}
	key, err := util.DeriveArgon2idKey(passphrase, salt, util.DefaultArgon2idParams())
	if err != nil {
		return nil, fmt.Errorf("deriving profile key: %w", err)
	}
	defer util.WipeBytes(key)

	ciphertext, err := util.EncryptAESWithAAD(plaintext, key, []byte(name))
	if err != nil {
		return nil, fmt.Errorf("sealing profile: %w", err)
	}

	blob := make([]byte, 0, 1+saltLen+len(ciphertext))
	blob = append(blob, blobVersion)
	blob = append(blob, salt...)
	blob = append(blob, ciphertext...)
	return blob, nil
}

func open(name string, blob []byte, passphrase string) (Profile, error) {
	if len(blob) < 1+saltLen {
		return Profile{}, fmt.Errorf("%w: %d bytes", ErrCorruptProfile, len(blob))
	}
	if blob[0] != blobVersion {
		return Profile{}, fmt.Errorf("%w: unsupported version %d", ErrCorruptProfile, blob[0])
	}
	salt := blob[1 : 1+saltLen]
	ciphertext := blob[1+saltLen:]

	key, err := util.DeriveArgon2idKey(passphrase, salt, util.DefaultArgon2idParams())
	if err != nil {
		return Profile{}, fmt.Errorf("deriving profile key: %w", err)
	}
	defer util.WipeBytes(key)

	plaintext, err := util.DecryptAESWithAAD(ciphertext, key, []byte(name))
	if err != nil {
		return Profile{}, ErrWrongPassphrase
	}
	defer util.WipeBytes(plaintext)

	var profile Profile
	if err := json.Unmarshal(plaintext, &profile); err != nil {
		return Profile{}, fmt.Errorf("%w: decoding profile: %v", ErrCorruptProfile, err)
	}
	return profile, nil
}

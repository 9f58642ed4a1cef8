// Package uuid generates random string identifiers.
package uuid

import "github.com/google/uuid"

// New returns a random UUIDv4 string.
func New() string {
	return uuid.NewString()
}

// Package bbolt provides a BBolt-backed credstore backend, the CLI's
// on-disk profile store.
package bbolt

import (
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/droplr/droplr-go/credstore"
	"github.com/droplr/droplr-go/internal/util"
)

var bucketProfiles = []byte("profiles")

// Backend implements credstore.Backend backed by a BBolt database.
type Backend struct {
	db *bbolt.DB
}

var _ credstore.Backend = (*Backend)(nil)

// NewBackend returns a Backend over the given BBolt database.
func NewBackend(db *bbolt.DB) *Backend {
	return &Backend{db: db}
}

// NewBackendFromFile opens a BBolt database at path and returns a
// Backend over it.
func NewBackendFromFile(path string, options *bbolt.Options) (*Backend, error) {
	db, err := bbolt.Open(path, 0600, options)
	if err != nil {
		return nil, fmt.Errorf("opening profile db: %w", err)
	}
	return NewBackend(db), nil
}

// Close closes the underlying BBolt database.
func (b *Backend) Close() error {
	return b.db.Close()
}

func (b *Backend) Put(name string, blob []byte) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketProfiles)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(name), blob)
	})
}

func (b *Backend) Get(name string) ([]byte, error) {
	var blob []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketProfiles)
		if bucket == nil {
			return credstore.ErrProfileNotFound
		}
		data := bucket.Get([]byte(name))
		if data == nil {
			return credstore.ErrProfileNotFound
		}
		blob = util.CopyBytes(data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return blob, nil
}

func (b *Backend) List() ([]string, error) {
	var names []string
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketProfiles)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}

func (b *Backend) Delete(name string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketProfiles)
		if bucket == nil {
			return credstore.ErrProfileNotFound
		}
		if bucket.Get([]byte(name)) == nil {
			return credstore.ErrProfileNotFound
		}
		return bucket.Delete([]byte(name))
	})
}

package memory_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/droplr/droplr-go/credstore"
	"github.com/droplr/droplr-go/credstore/memory"
)

func TestPutGetCopies(t *testing.T) {
	backend := memory.NewBackend()

	blob := []byte("sealed")
	require.NoError(t, backend.Put("default", blob))

	// Mutating the caller's slice must not reach the stored copy.
	blob[0] = 'X'

	got, err := backend.Get("default")
	require.NoError(t, err)
	assert.Equal(t, []byte("sealed"), got)

	// Nor must mutating a returned slice.
	got[0] = 'Y'
	again, err := backend.Get("default")
	require.NoError(t, err)
	assert.Equal(t, []byte("sealed"), again)
}

func TestGetMissing(t *testing.T) {
	backend := memory.NewBackend()

	_, err := backend.Get("nope")
	require.ErrorIs(t, err, credstore.ErrProfileNotFound)
}

func TestListAndDelete(t *testing.T) {
	backend := memory.NewBackend()

	require.NoError(t, backend.Put("work", []byte("a")))
	require.NoError(t, backend.Put("home", []byte("b")))

	names, err := backend.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"work", "home"}, names)

	require.NoError(t, backend.Delete("home"))
	require.ErrorIs(t, backend.Delete("home"), credstore.ErrProfileNotFound)
}

func TestConcurrentAccess(t *testing.T) {
	backend := memory.NewBackend()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, backend.Put("default", []byte("sealed")))
			_, _ = backend.Get("default")
			_, _ = backend.List()
		}()
	}
	wg.Wait()

	blob, err := backend.Get("default")
	require.NoError(t, err)
	assert.Equal(t, []byte("sealed"), blob)
}

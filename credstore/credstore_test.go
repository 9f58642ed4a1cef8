package credstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/droplr/droplr-go/auth"
	"github.com/droplr/droplr-go/credstore"
	"github.com/droplr/droplr-go/credstore/memory"
)

func newStore(t *testing.T) *credstore.Store {
	t.Helper()
	return credstore.New(memory.NewBackend())
}

func TestSaveLoadRoundtrip(t *testing.T) {
	store := newStore(t)
	profile := credstore.Profile{
		Email:          "a@b.com",
		PasswordDigest: auth.Digest("pw"),
		SavedAt:        1327351200000,
	}

	require.NoError(t, store.Save("default", profile, "store-pass"))

	loaded, err := store.Load("default", "store-pass")
	require.NoError(t, err)
	assert.Equal(t, profile, loaded)
}

func TestLoadWrongPassphrase(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save("default", credstore.Profile{Email: "a@b.com"}, "right"))

	_, err := store.Load("default", "wrong")
	require.ErrorIs(t, err, credstore.ErrWrongPassphrase)
}

func TestLoadMissingProfile(t *testing.T) {
	store := newStore(t)

	_, err := store.Load("nope", "pass")
	require.ErrorIs(t, err, credstore.ErrProfileNotFound)
}

func TestBlobBoundToProfileName(t *testing.T) {
	backend := memory.NewBackend()
	store := credstore.New(backend)
	require.NoError(t, store.Save("default", credstore.Profile{Email: "a@b.com"}, "pass"))

	// Copy the sealed blob into another slot; the name is AAD, so the
	// copy must not open even with the right passphrase.
	blob, err := backend.Get("default")
	require.NoError(t, err)
	require.NoError(t, backend.Put("other", blob))

	_, err = store.Load("other", "pass")
	require.ErrorIs(t, err, credstore.ErrWrongPassphrase)
}

func TestSaveOverwrites(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save("default", credstore.Profile{Email: "old@b.com"}, "pass"))
	require.NoError(t, store.Save("default", credstore.Profile{Email: "new@b.com"}, "pass"))

	loaded, err := store.Load("default", "pass")
	require.NoError(t, err)
	assert.Equal(t, "new@b.com", loaded.Email)
}

func TestListAndDelete(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save("work", credstore.Profile{Email: "w@b.com"}, "pass"))
	require.NoError(t, store.Save("home", credstore.Profile{Email: "h@b.com"}, "pass"))

	names, err := store.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"work", "home"}, names)

	require.NoError(t, store.Delete("work"))
	require.ErrorIs(t, store.Delete("work"), credstore.ErrProfileNotFound)

	names, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"home"}, names)
}

func TestCorruptBlobRejected(t *testing.T) {
	backend := memory.NewBackend()
	store := credstore.New(backend)

	require.NoError(t, backend.Put("short", []byte{1, 2, 3}))
	_, err := store.Load("short", "pass")
	require.ErrorIs(t, err, credstore.ErrCorruptProfile)

	require.NoError(t, backend.Put("badver", append([]byte{9}, make([]byte, 40)...)))
	_, err = store.Load("badver", "pass")
	require.ErrorIs(t, err, credstore.ErrCorruptProfile)
}

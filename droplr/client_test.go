package droplr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/droplr/droplr-go/auth"
)

func TestNewRejectsBadConfig(t *testing.T) {
	bad := []Config{
		{},
		{URL: "http://droplr.test", PublicKey: "k"},
		{URL: "http://droplr.test", PrivateKey: "s"},
		{PublicKey: "k", PrivateKey: "s"},
		{URL: "ftp://droplr.test", PublicKey: "k", PrivateKey: "s"},
		{URL: "http://", PublicKey: "k", PrivateKey: "s"},
		{URL: "://bad", PublicKey: "k", PrivateKey: "s"},
	}
	for _, cfg := range bad {
		_, err := New(cfg)
		require.ErrorIs(t, err, ErrConfig, "config %+v", cfg)
	}
}

func TestNewDefaults(t *testing.T) {
	client, err := New(Config{URL: "https://api.droplr.com", PublicKey: "k", PrivateKey: "s"})
	require.NoError(t, err)

	assert.Equal(t, "application/json; version=0.9", client.accept)
	assert.Equal(t, DefaultUserAgent, client.userAgent)
	assert.Equal(t, auth.SchemeVersioned, client.Scheme())
}

func TestNewOverrides(t *testing.T) {
	client, err := New(Config{
		URL:        "https://api.droplr.com",
		PublicKey:  "k",
		PrivateKey: "s",
		UserAgent:  "droplr-cli/1.0",
		APIVersion: "1.0",
		Plaintext:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, "application/json; version=1.0", client.accept)
	assert.Equal(t, "droplr-cli/1.0", client.userAgent)
	assert.Equal(t, auth.SchemeLegacyAnonymous, client.Scheme())
}

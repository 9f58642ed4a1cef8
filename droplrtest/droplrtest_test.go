package droplrtest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/droplr/droplr-go/auth"
	"github.com/droplr/droplr-go/droplr"
	"github.com/droplr/droplr-go/droplrtest"
)

const (
	testPublicKey  = "app_0"
	testPrivateKey = "secret"
)

func newFixture(t *testing.T, plaintext bool) (*droplrtest.Server, *droplr.Client) {
	t.Helper()
	fake := droplrtest.New(testPublicKey, testPrivateKey)
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := droplr.New(droplr.Config{
		URL:        srv.URL,
		PublicKey:  testPublicKey,
		PrivateKey: testPrivateKey,
		Plaintext:  plaintext,
	}, droplr.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return fake, client
}

func TestAnonymousLegacyVerifies(t *testing.T) {
	_, client := newFixture(t, true)
	require.Equal(t, auth.SchemeLegacyAnonymous, client.Scheme())

	// Account creation is the one operation an anonymous session may
	// perform, so it proves the droplranon signature verifies.
	acct, err := client.CreateAccount(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", acct.Email)
}

func TestAuthenticatedLegacyVerifies(t *testing.T) {
	fake, client := newFixture(t, true)
	fake.RegisterAccount("a@b.com", "pw")

	client.SetCredentials("a@b.com", "pw")
	require.Equal(t, auth.SchemeLegacy, client.Scheme())

	acct, err := client.ReadAccount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", acct.Email)
}

func TestVersionedVerifies(t *testing.T) {
	fake, client := newFixture(t, false)
	fake.RegisterAccount("a@b.com", "pw")

	client.SetCredentials("a@b.com", "pw")
	require.Equal(t, auth.SchemeVersioned, client.Scheme())

	acct, err := client.ReadAccount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", acct.Email)
}

func TestHashedCredentialsVerify(t *testing.T) {
	fake, client := newFixture(t, false)
	fake.RegisterAccount("a@b.com", "pw")

	// A profile loaded from a credential store carries only the
	// digest; signing with it must be indistinguishable from signing
	// with the plaintext.
	client.SetHashedCredentials("a@b.com", auth.Digest("pw"))

	_, err := client.ReadAccount(context.Background())
	require.NoError(t, err)
}

func TestUnknownUserRejected(t *testing.T) {
	_, client := newFixture(t, false)
	client.SetCredentials("ghost@b.com", "pw")

	_, err := client.ReadAccount(context.Background())
	apiErr, ok := droplr.AsAPIError(err)
	require.True(t, ok, "expected APIError, got %v", err)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Authentication.UnknownUser", apiErr.Code)
	assert.True(t, apiErr.Authentication())
}

func TestWrongPasswordRejected(t *testing.T) {
	fake, client := newFixture(t, false)
	fake.RegisterAccount("a@b.com", "pw")
	client.SetCredentials("a@b.com", "not-pw")

	_, err := client.ReadAccount(context.Background())
	apiErr, ok := droplr.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Authentication.BadCredentials", apiErr.Code)
}

func TestWrongPrivateKeyRejected(t *testing.T) {
	fake, client := newFixture(t, false)
	fake.RegisterAccount("a@b.com", "pw")
	client.SetCredentials("a@b.com", "pw")

	_, err := client.ReadAccount(context.Background(),
		droplr.WithKeyMaterial(auth.NewKeyMaterial(testPublicKey, "not-the-key")))
	apiErr, ok := droplr.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Authentication.BadCredentials", apiErr.Code)
}

func TestMissingAuthorizationHeader(t *testing.T) {
	fake := droplrtest.New(testPublicKey, testPrivateKey)
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	resp, err := srv.Client().Get(srv.URL + "/account")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Request.NoAuthorizationHeader", resp.Header.Get(droplr.HeaderErrorCode))
}

func TestMissingDateHeader(t *testing.T) {
	fake := droplrtest.New(testPublicKey, testPrivateKey)
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/account", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "droplr2 x:y:z")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "Request.NoDateHeader", resp.Header.Get(droplr.HeaderErrorCode))
}

func TestSchemeTokenMustMatchIdentity(t *testing.T) {
	fake, client := newFixture(t, true)
	fake.RegisterAccount("a@b.com", "pw")
	client.SetHashedCredentials(auth.AnonymousEmail, auth.Digest("anonymous"))

	// The client promoted to droplr, but the identity is still the
	// anonymous placeholder; the server must refuse the combination.
	_, err := client.ListDrops(context.Background(), droplr.ListDropsOptions{})
	apiErr, ok := droplr.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Request.InvalidAuthorizationHeader", apiErr.Code)
}

func TestDropLifecycle(t *testing.T) {
	fake, client := newFixture(t, false)
	fake.RegisterAccount("a@b.com", "pw")
	client.SetCredentials("a@b.com", "pw")

	note, err := client.CreateNote(context.Background(), "first line\nrest")
	require.NoError(t, err)
	assert.Equal(t, droplr.DropTypeNote, note.Type)
	assert.Equal(t, "first line", note.Title)
	assert.NotEmpty(t, note.Code)
	assert.Contains(t, note.ShortLink, note.Code)

	link, err := client.ShortenLink(context.Background(), "https://example.com/page")
	require.NoError(t, err)
	assert.Equal(t, droplr.DropTypeLink, link.Type)

	content := "binary bytes"
	file, err := client.UploadFile(context.Background(), "shot.png", "image/png",
		strings.NewReader(content), int64(len(content)))
	require.NoError(t, err)
	assert.Equal(t, droplr.DropTypeImage, file.Type)
	assert.Equal(t, "shot.png", file.Title)
	assert.Equal(t, int64(len(content)), file.Size)

	read, err := client.ReadDrop(context.Background(), note.Code)
	require.NoError(t, err)
	assert.Equal(t, int64(1), read.Views)

	drops, err := client.ListDrops(context.Background(), droplr.ListDropsOptions{SortBy: "CREATION"})
	require.NoError(t, err)
	assert.Len(t, drops, 3)

	require.NoError(t, client.DeleteDrop(context.Background(), note.Code))

	_, err = client.ReadDrop(context.Background(), note.Code)
	apiErr, ok := droplr.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "ReadDrop.NoSuchDrop", apiErr.Code)

	err = client.DeleteDrop(context.Background(), note.Code)
	apiErr, ok = droplr.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "DeleteDrop.NoSuchDrop", apiErr.Code)
}

func TestListDropsPagination(t *testing.T) {
	fake, client := newFixture(t, false)
	fake.RegisterAccount("a@b.com", "pw")
	client.SetCredentials("a@b.com", "pw")

	for i := 0; i < 5; i++ {
		_, err := client.CreateNote(context.Background(), strings.Repeat("x", i+1))
		require.NoError(t, err)
	}

	page, err := client.ListDrops(context.Background(), droplr.ListDropsOptions{
		Offset: 1,
		Amount: 2,
		SortBy: "SIZE",
		Order:  "ASC",
	})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, int64(2), page[0].Size)
	assert.Equal(t, int64(3), page[1].Size)

	empty, err := client.ListDrops(context.Background(), droplr.ListDropsOptions{Offset: 50})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAccountLifecycle(t *testing.T) {
	_, client := newFixture(t, false)

	created, err := client.CreateAccount(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	client.SetCredentials("a@b.com", "pw")

	edited, err := client.EditAccount(context.Background(), droplr.AccountEdit{
		Theme:       "DARK",
		DropPrivacy: "PRIVATE",
	})
	require.NoError(t, err)
	assert.Equal(t, "DARK", edited.Theme)
	assert.Equal(t, "PRIVATE", edited.DropPrivacy)

	// A password change takes effect for subsequent binds.
	_, err = client.EditAccount(context.Background(), droplr.AccountEdit{Password: "pw2"})
	require.NoError(t, err)

	client.SetCredentials("a@b.com", "pw2")
	_, err = client.ReadAccount(context.Background())
	require.NoError(t, err)
}

func TestAnonymousCannotTouchAccountOrDrops(t *testing.T) {
	_, client := newFixture(t, false)

	_, err := client.ReadAccount(context.Background())
	apiErr, ok := droplr.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "Request.ActionForbidden", apiErr.Code)

	_, err = client.ListDrops(context.Background(), droplr.ListDropsOptions{})
	apiErr, ok = droplr.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Request.ActionForbidden", apiErr.Code)
}

func TestInvalidLinkRejected(t *testing.T) {
	fake, client := newFixture(t, false)
	fake.RegisterAccount("a@b.com", "pw")
	client.SetCredentials("a@b.com", "pw")

	_, err := client.ShortenLink(context.Background(), "not a url")
	apiErr, ok := droplr.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "CreateDrop.InvalidURL", apiErr.Code)
}

func TestDuplicateAccountRejected(t *testing.T) {
	fake, client := newFixture(t, false)
	fake.RegisterAccount("a@b.com", "pw")

	_, err := client.CreateAccount(context.Background(), "a@b.com", "pw")
	apiErr, ok := droplr.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "CreateAccount.EmailTaken", apiErr.Code)
}

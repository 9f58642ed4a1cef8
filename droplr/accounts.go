package droplr

import (
	"context"
	"net/http"

	"github.com/droplr/droplr-go/auth"
)

// Account is a Droplr account as returned by the API. Space figures
// are bytes; timestamps are Unix epoch milliseconds.
type Account struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	CreatedAt       int64  `json:"createdAt,omitempty"`
	SubscriptionEnd int64  `json:"subscriptionEnd,omitempty"`
	MaxUploadSize   int64  `json:"maxUploadSize,omitempty"`
	ExtraSpace      int64  `json:"extraSpace,omitempty"`
	UsedSpace       int64  `json:"usedSpace,omitempty"`
	TotalSpace      int64  `json:"totalSpace,omitempty"`
	DropCount       int64  `json:"dropCount,omitempty"`
	DropPrivacy     string `json:"dropPrivacy,omitempty"`
	Theme           string `json:"theme,omitempty"`
	RootRedirect    string `json:"rootRedirect,omitempty"`
	UseDomain       string `json:"useDomain,omitempty"`
}

// CreateAccount registers a new account. The password is digested
// before it leaves the process; the plaintext is never transmitted.
// Registration works on an anonymous session, so this can be the first
// call a fresh client makes.
func (c *Client) CreateAccount(ctx context.Context, email, password string, opts ...RequestOption) (*Account, error) {
	pl, err := jsonPayload(map[string]string{
		"email":    email,
		"password": auth.Digest(password),
	})
	if err != nil {
		return nil, err
	}
	var acct Account
	if err := c.do(ctx, http.MethodPost, "/account", pl, &acct, opts...); err != nil {
		return nil, err
	}
	return &acct, nil
}

// ReadAccount fetches the account the session is bound to.
func (c *Client) ReadAccount(ctx context.Context, opts ...RequestOption) (*Account, error) {
	var acct Account
	if err := c.do(ctx, http.MethodGet, "/account", payload{}, &acct, opts...); err != nil {
		return nil, err
	}
	return &acct, nil
}

// AccountEdit selects the account fields to change. Zero-valued fields
// are left untouched.
type AccountEdit struct {
	// Password replaces the account password. It is digested before
	// transmission. The session keeps signing with the credentials it
	// was bound with; rebind after a password change.
	Password string
	// DropPrivacy is "PUBLIC" or "PRIVATE".
	DropPrivacy  string
	Theme        string
	RootRedirect string
	UseDomain    string
}

// EditAccount applies edit to the bound account and returns the
// updated account.
func (c *Client) EditAccount(ctx context.Context, edit AccountEdit, opts ...RequestOption) (*Account, error) {
	fields := map[string]string{}
	if edit.Password != "" {
		fields["password"] = auth.Digest(edit.Password)
	}
	if edit.DropPrivacy != "" {
		fields["dropPrivacy"] = edit.DropPrivacy
	}
	if edit.Theme != "" {
		fields["theme"] = edit.Theme
	}
	if edit.RootRedirect != "" {
		fields["rootRedirect"] = edit.RootRedirect
	}
	if edit.UseDomain != "" {
		fields["useDomain"] = edit.UseDomain
	}

	pl, err := jsonPayload(fields)
	if err != nil {
		return nil, err
	}
	var acct Account
	if err := c.do(ctx, http.MethodPut, "/account", pl, &acct, opts...); err != nil {
		return nil, err
	}
	return &acct, nil
}

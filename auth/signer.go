package auth

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/droplr/droplr-go/internal/util"
)

// Digest returns the lowercase hex SHA-1 digest of data. Droplr hashes
// account passwords this way before they enter signing or leave the
// process.
func Digest(data string) string {
	sum := sha1.Sum([]byte(data))
	return hex.EncodeToString(sum[:])
}

// IdentityKey returns the identity token embedded in every
// Authorization header: base64("{publicKey}:{email}").
func IdentityKey(publicKey, email string) string {
	return base64.StdEncoding.EncodeToString([]byte(publicKey + ":" + email))
}

// signData computes the base64 HMAC-SHA1 of data under key.
func signData(data, key []byte) string {
	mac := hmac.New(sha1.New, key)
	mac.Write(data)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Sign produces the Authorization header value for a canonical request
// string. Legacy schemes yield
//
//	{token} {identity}:{signature}
//
// with the password digest folded into the HMAC key as
// "{privateKey}:{digest}". The versioned scheme signs with the private
// key alone and carries the digest as a third field:
//
//	droplr2 {identity}:{signature}:{digest}
//
// Sign fails only for an unrecognized scheme or an unopenable secret.
func Sign(canonical string, scheme Scheme, keys KeyMaterial, creds Credentials) (string, error) {
	identity := IdentityKey(keys.publicKey, creds.email)
	term, err := creds.passwordTerm()
	if err != nil {
		return "", err
	}

	var header string
	err = keys.privateKey.use(func(privateKey []byte) error {
		switch scheme {
		case SchemeLegacyAnonymous, SchemeLegacy:
			secret := make([]byte, 0, len(privateKey)+1+len(term))
			secret = append(secret, privateKey...)
			secret = append(secret, ':')
			secret = append(secret, term...)
			defer util.WipeBytes(secret)
			header = scheme.Token() + " " + identity + ":" + signData([]byte(canonical), secret)
		case SchemeVersioned:
			header = scheme.Token() + " " + identity + ":" + signData([]byte(canonical), privateKey) + ":" + term
		default:
			return fmt.Errorf("%w: %d", ErrUnknownScheme, int(scheme))
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return header, nil
}

// Verify recomputes the Authorization header for a canonical string
// and compares it against the presented one in constant time. Servers
// use it with the credentials on record for the claimed identity.
func Verify(presented, canonical string, scheme Scheme, keys KeyMaterial, creds Credentials) (bool, error) {
	expected, err := Sign(canonical, scheme, keys, creds)
	if err != nil {
		return false, err
	}
	return hmac.Equal([]byte(presented), []byte(expected)), nil
}

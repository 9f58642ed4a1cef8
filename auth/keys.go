package auth

// KeyMaterial is an application's API key pair: the public key that
// identifies it and the private key that signs its requests.
type KeyMaterial struct {
	publicKey  string
	privateKey Secret
}

// NewKeyMaterial seals an application key pair for signing.
func NewKeyMaterial(publicKey, privateKey string) KeyMaterial {
	return KeyMaterial{publicKey: publicKey, privateKey: NewSecret(privateKey)}
}

// PublicKey returns the application's public key.
func (k KeyMaterial) PublicKey() string {
	return k.publicKey
}

// IsZero reports whether no key pair has been set.
func (k KeyMaterial) IsZero() bool {
	return k.publicKey == "" && k.privateKey.IsZero()
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/droplr/droplr-go/credstore"
	bboltstore "github.com/droplr/droplr-go/credstore/bbolt"
	"github.com/droplr/droplr-go/droplr"
)

var (
	apiURL     string
	publicKey  string
	privateKey string
	plaintext  bool
	profile    string
	storePath  string
)

var rootCmd = &cobra.Command{
	Use:   "droplr",
	Short: "Droplr is a file, note and link sharing client",
	Long: `A command line client for the Droplr sharing service: upload files,
share notes, shorten links and manage your drops from the terminal.`,
	SilenceUsage: true,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "url", envOr("DROPLR_URL", "https://api.droplr.com"), "base URL of the Droplr API")
	rootCmd.PersistentFlags().StringVar(&publicKey, "public-key", os.Getenv("DROPLR_PUBLIC_KEY"), "application public key")
	rootCmd.PersistentFlags().StringVar(&privateKey, "private-key", os.Getenv("DROPLR_PRIVATE_KEY"), "application private key")
	rootCmd.PersistentFlags().BoolVar(&plaintext, "plaintext", false, "use the legacy signing scheme")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "default", "stored profile to act as")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", defaultStorePath(), "path to the encrypted profile store")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "profiles.db"
	}
	return filepath.Join(home, ".droplr", "profiles.db")
}

// newClient builds an API client from the flags. Anonymous unless a
// profile is bound afterwards.
func newClient() (*droplr.Client, error) {
	return droplr.New(droplr.Config{
		URL:        apiURL,
		PublicKey:  publicKey,
		PrivateKey: privateKey,
		UserAgent:  "droplr-cli",
		Plaintext:  plaintext,
	})
}

// newBoundClient builds an API client signed as the stored profile.
// The profile holds the password digest, never the plaintext, so the
// client binds hashed credentials.
func newBoundClient() (*droplr.Client, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}

	store, closeStore, err := openStore()
	if err != nil {
		return nil, err
	}
	defer closeStore()

	passphrase, err := promptSecret("Store passphrase: ")
	if err != nil {
		return nil, err
	}
	p, err := store.Load(profile, passphrase)
	if err != nil {
		return nil, err
	}
	client.SetHashedCredentials(p.Email, p.PasswordDigest)
	return client, nil
}

func openStore() (*credstore.Store, func(), error) {
	if err := os.MkdirAll(filepath.Dir(storePath), 0o700); err != nil {
		return nil, nil, fmt.Errorf("creating store directory: %w", err)
	}
	backend, err := bboltstore.NewBackendFromFile(storePath, nil)
	if err != nil {
		return nil, nil, err
	}
	return credstore.New(backend), func() { _ = backend.Close() }, nil
}

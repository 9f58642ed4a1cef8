package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/droplr/droplr-go/auth"
	"github.com/droplr/droplr-go/credstore"
)

var loginCmd = &cobra.Command{
	Use:   "login EMAIL",
	Short: "Store credentials for a Droplr account",
	Long: `Prompts for the account password, verifies it against the API and
saves the profile to the encrypted store. Only the password digest is
stored, never the password itself.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := args[0]

		password, err := promptSecret("Account password: ")
		if err != nil {
			return err
		}
		digest := auth.Digest(password)

		client, err := newClient()
		if err != nil {
			return err
		}
		client.SetHashedCredentials(email, digest)
		acct, err := client.ReadAccount(cmd.Context())
		if err != nil {
			return fmt.Errorf("verifying credentials: %w", err)
		}

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		passphrase, err := promptSecret("Store passphrase: ")
		if err != nil {
			return err
		}
		err = store.Save(profile, credstore.Profile{
			Email:          acct.Email,
			PasswordDigest: digest,
		}, passphrase)
		if err != nil {
			return err
		}

		fmt.Printf("Logged in as %s (profile %q)\n", acct.Email, profile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

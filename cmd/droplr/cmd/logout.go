package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		if err := store.Delete(profile); err != nil {
			return err
		}
		fmt.Printf("Removed profile %q\n", profile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

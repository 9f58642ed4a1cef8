package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show the logged-in account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newBoundClient()
		if err != nil {
			return err
		}
		acct, err := client.ReadAccount(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Email:      %s\n", acct.Email)
		fmt.Printf("Created:    %s\n", time.UnixMilli(acct.CreatedAt).Format(time.RFC1123))
		fmt.Printf("Drops:      %d\n", acct.DropCount)
		fmt.Printf("Used space: %d of %d bytes\n", acct.UsedSpace, acct.TotalSpace)
		if acct.DropPrivacy != "" {
			fmt.Printf("Privacy:    %s\n", acct.DropPrivacy)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
}

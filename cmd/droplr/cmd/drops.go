package cmd

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/droplr/droplr-go/droplr"
)

var uploadCmd = &cobra.Command{
	Use:   "upload FILE",
	Short: "Upload a file and print its short link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return fmt.Errorf("stating %s: %w", path, err)
		}

		client, err := newBoundClient()
		if err != nil {
			return err
		}
		name := filepath.Base(path)
		drop, err := client.UploadFile(cmd.Context(), name,
			mime.TypeByExtension(filepath.Ext(name)), f, info.Size())
		if err != nil {
			return err
		}
		fmt.Println(drop.ShortLink)
		return nil
	},
}

var noteCmd = &cobra.Command{
	Use:   "note TEXT",
	Short: "Share a note and print its short link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newBoundClient()
		if err != nil {
			return err
		}
		drop, err := client.CreateNote(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(drop.ShortLink)
		return nil
	},
}

var linkCmd = &cobra.Command{
	Use:   "link URL",
	Short: "Shorten a link and print the short form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newBoundClient()
		if err != nil {
			return err
		}
		drop, err := client.ShortenLink(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(drop.ShortLink)
		return nil
	},
}

var (
	listOffset int
	listAmount int
	listSortBy string
	listOrder  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your drops",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newBoundClient()
		if err != nil {
			return err
		}
		drops, err := client.ListDrops(cmd.Context(), droplr.ListDropsOptions{
			Offset: listOffset,
			Amount: listAmount,
			SortBy: listSortBy,
			Order:  listOrder,
		})
		if err != nil {
			return err
		}
		for _, d := range drops {
			created := time.UnixMilli(d.CreatedAt).Format("2006-01-02 15:04")
			fmt.Printf("%-10s %-5s %s  %s\n", d.Code, d.Type, created, d.ShortLink)
		}
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete CODE",
	Short: "Delete a drop by its short code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newBoundClient()
		if err != nil {
			return err
		}
		if err := client.DeleteDrop(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "number of drops to skip")
	listCmd.Flags().IntVar(&listAmount, "amount", 0, "page size (server default when 0)")
	listCmd.Flags().StringVar(&listSortBy, "sort", "", "sort key: CREATION, CODE, TITLE, SIZE, ACTIVITY, VIEWS")
	listCmd.Flags().StringVar(&listOrder, "order", "", "sort order: ASC or DESC")

	rootCmd.AddCommand(uploadCmd, noteCmd, linkCmd, listCmd, deleteCmd)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmcdole/gallery/internal/adapter"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local page cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), adapter.GetCachePath())
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all cached pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := adapter.ClearCache(); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "✓ Cache cleared")
			return err
		},
	})

	return cmd
}

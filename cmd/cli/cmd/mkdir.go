package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/simpledav/simpledav/internal/davpath"
	"github.com/simpledav/simpledav/internal/remote"
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir [-p] <remote-path>...",
	Short: "Create remote directories",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parents, _ := cmd.Flags().GetBool("parents")

		c := newClient()
		for _, raw := range args {
			path, err := davpath.Parse(raw)
			if err != nil {
				return fmt.Errorf("invalid path %q: %w", raw, err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			err = remote.Mkdir(ctx, c, path, parents)
			cancel()
			if err != nil {
				return fmt.Errorf("failed to create directory %s: %w", path, err)
			}

			fmt.Printf("✓ Directory created: %s\n", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mkdirCmd)

	mkdirCmd.Flags().BoolP("parents", "p", false, "Make parent directories as needed")
}

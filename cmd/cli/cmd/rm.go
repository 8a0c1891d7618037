package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simpledav/simpledav/internal/davpath"
	"github.com/simpledav/simpledav/internal/remote"
)

var rmCmd = &cobra.Command{
	Use:   "rm [-r] <remote-path>...",
	Short: "Remove remote files or directories",
	Long: `Remove one or more remote files. Directories are refused unless -r is
given, in which case their contents are removed first, depth-first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recursive, _ := cmd.Flags().GetBool("recursive")

		c := newClient()
		for _, raw := range args {
			path, err := davpath.Parse(raw)
			if err != nil {
				return fmt.Errorf("invalid path %q: %w", raw, err)
			}

			if err := remote.Remove(cmd.Context(), c, path, recursive); err != nil {
				return fmt.Errorf("failed to remove %s: %w", path, err)
			}

			fmt.Printf("✓ Removed: %s\n", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)

	rmCmd.Flags().BoolP("recursive", "r", false, "Remove directories and their contents recursively")
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/simpledav/simpledav/internal/davpath"
	"github.com/simpledav/simpledav/internal/plan"
	"github.com/simpledav/simpledav/internal/remote"
	"github.com/simpledav/simpledav/internal/transfer"
	"github.com/simpledav/simpledav/pkg/client"
)

var getCmd = &cobra.Command{
	Use:   "get [-O local-dir] <remote-path>...",
	Short: "Download remote files or directories",
	Long: `Download one or more remote files or directories into a local directory.
Each SRC is saved as LOCAL_DIR/basename(SRC); directories are downloaded
recursively. With --dry-run the planned actions are printed and nothing is
transferred.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		destRaw, _ := cmd.Flags().GetString("output-directory")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		destAbs, err := filepath.Abs(destRaw)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", destRaw, err)
		}

		c := newClient()
		for _, remotePath := range args {
			if err := downloadOne(cmd.Context(), c, remotePath, destAbs, dryRun); err != nil {
				return err
			}
		}
		return nil
	},
}

func downloadOne(ctx context.Context, c *client.Client, remotePath, destAbs string, dryRun bool) error {
	remoteRoot, err := davpath.Parse(remotePath)
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", remotePath, err)
	}

	// The server root downloads directly into the destination directory;
	// anything else lands under its own name.
	localDest := davpath.Root()
	if !remoteRoot.IsRoot() {
		localDest, err = localDest.Append(remoteRoot.Base())
		if err != nil {
			return fmt.Errorf("invalid path %q: %w", remotePath, err)
		}
	}

	p, err := plan.PlanDownload(ctx, remote.NewLister(c), remoteRoot, localDest)
	if err != nil {
		return fmt.Errorf("failed to plan download of %s: %w", remoteRoot, err)
	}

	if dryRun {
		printPlan(p)
		return nil
	}

	exec := transfer.NewExecutor(c, osfs.New(destAbs), os.Stdout)
	if err := exec.Execute(ctx, p).Err(); err != nil {
		return fmt.Errorf("failed to download %s: %w", remoteRoot, err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringP("output-directory", "O", ".", "Local directory to download into")
	getCmd.Flags().Bool("dry-run", false, "Print the planned actions without transferring")
}

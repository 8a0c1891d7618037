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
	"github.com/simpledav/simpledav/internal/transfer"
	"github.com/simpledav/simpledav/pkg/client"
)

var putCmd = &cobra.Command{
	Use:   "put [-O remote-dir] <local-path>...",
	Short: "Upload local files or directories to the server",
	Long: `Upload one or more local files or directories into a remote directory.
Each SRC is uploaded as REMOTE_DIR/basename(SRC); directories are uploaded
recursively. With --dry-run the planned actions are printed and nothing is
transferred.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		destRaw, _ := cmd.Flags().GetString("output-directory")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		destDir, err := davpath.Parse(destRaw)
		if err != nil {
			return fmt.Errorf("invalid remote directory %q: %w", destRaw, err)
		}

		c := newClient()
		for _, localPath := range args {
			if err := uploadOne(cmd.Context(), c, localPath, destDir, dryRun); err != nil {
				return err
			}
		}
		return nil
	},
}

func uploadOne(ctx context.Context, c *client.Client, localPath string, destDir davpath.Token, dryRun bool) error {
	abs, err := filepath.Abs(localPath)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", localPath, err)
	}
	base := filepath.Base(abs)

	localRoot, err := davpath.Root().Append(base)
	if err != nil {
		return fmt.Errorf("invalid local path %q: %w", localPath, err)
	}
	remoteDest, err := destDir.Append(base)
	if err != nil {
		return fmt.Errorf("invalid local path %q: %w", localPath, err)
	}

	localFS := osfs.New(filepath.Dir(abs))
	p, err := plan.PlanUpload(localFS, localRoot, remoteDest)
	if err != nil {
		return fmt.Errorf("failed to plan upload of %s: %w", localPath, err)
	}

	if dryRun {
		printPlan(p)
		return nil
	}

	exec := transfer.NewExecutor(c, localFS, os.Stdout)
	if err := exec.Execute(ctx, p).Err(); err != nil {
		return fmt.Errorf("failed to upload %s: %w", localPath, err)
	}
	return nil
}

func printPlan(p *plan.Plan) {
	for _, a := range p.Actions {
		fmt.Println(a)
	}
}

func init() {
	rootCmd.AddCommand(putCmd)

	putCmd.Flags().StringP("output-directory", "O", "/", "Remote directory to upload into")
	putCmd.Flags().Bool("dry-run", false, "Print the planned actions without transferring")
}

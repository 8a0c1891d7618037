package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/simpledav/simpledav/internal/daverr"
	"github.com/simpledav/simpledav/internal/davpath"
	"github.com/simpledav/simpledav/internal/remote"
)

var lsCmd = &cobra.Command{
	Use:   "ls [remote-path]",
	Short: "List a remote file or directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := "/"
		if len(args) == 1 {
			raw = args[0]
		}
		path, err := davpath.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid path %q: %w", raw, err)
		}

		c := newClient()
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		entries, err := remote.NewLister(c).List(ctx, path)
		if errors.Is(err, daverr.ErrNotADirectory) {
			// Listing a plain file prints just its name.
			fmt.Println(path.Base())
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", path, err)
		}

		if len(entries) == 0 {
			fmt.Println("(empty directory)")
			return nil
		}

		sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

		longFormat, _ := cmd.Flags().GetBool("long")
		if longFormat {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, e := range entries {
				typ := "-"
				if e.IsDir() {
					typ = "d"
				}

				fmt.Fprintf(w, "%s\t%d\t%s\n", typ, e.Size, e.Name)
			}
			w.Flush()
		} else {
			for _, e := range entries {
				if e.IsDir() {
					fmt.Printf("%s/\n", e.Name)
				} else {
					fmt.Println(e.Name)
				}
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)

	lsCmd.Flags().BoolP("long", "l", false, "Use long listing format")
}

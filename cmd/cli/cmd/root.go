package cmd

import (
	"github.com/spf13/cobra"

	"github.com/simpledav/simpledav/pkg/client"
)

var (
	host string
	port int
)

var rootCmd = &cobra.Command{
	Use:   "sdav",
	Short: "Simple DAV client - file operations against a WebDAV server",
	Long: `sdav is a command-line client for WebDAV-like servers over plain HTTP.

It provides commands to list, upload, download and remove remote files and
directories. Recursive transfers are planned up front as an ordered list of
actions and executed strictly in order, aborting on the first failure.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "localhost", "WebDAV server hostname")
	rootCmd.PersistentFlags().IntVar(&port, "port", 8080, "WebDAV server port")
}

func newClient() *client.Client {
	return client.New(host, port)
}

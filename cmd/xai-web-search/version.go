package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leonardcser/xai-web-search/internal/livesearch"
	"github.com/leonardcser/xai-web-search/internal/mcpserver"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	// config is not needed to print the version
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", mcpserver.Name, mcpserver.Version, livesearch.UserAgent)
	},
}

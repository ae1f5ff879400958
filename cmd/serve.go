package cmd

import (
	"github.com/spf13/cobra"

	"github.com/replaydev/jirabridge/internal/mcpserver"
)

// serveCmd runs the MCP tool server over stdio. Logging goes to stderr so
// the protocol stream on stdout stays clean.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP tool server on stdio",
	Long: `Expose the fetch pipeline as MCP tools for an AI-agent host:

  jira_fetch_issues    fetch and format issues for a project
  jira_get_issue       fetch and format a single issue by key
  jira_test_connection check the configured credentials
  jira_analyze_issues  categorize and rank a project's issues

The server reads JSON-RPC from stdin and writes to stdout until the host
closes the stream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcpserver.ServeStdio(Version)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

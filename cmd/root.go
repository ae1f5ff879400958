// Package cmd provides the command-line interface for the jirabridge tool.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is the application version reported to the MCP host.
const Version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "jirabridge",
	Short: "Fetch JIRA issues and format them for AI-assisted analysis",
	Long: `jirabridge fetches issues from a JIRA project, renders them as markdown
reports suitable for AI coding assistants, and can expose the same operations
as MCP tools for an assistant to call directly.

Connection credentials come from the environment: JIRA_DOMAIN, JIRA_EMAIL and
JIRA_API_TOKEN. Search defaults come from PROJECT_KEY, ASSIGNEE, STATUS_FILTER,
ISSUE_TYPE_FILTER and MAX_RESULTS; flags override them per invocation.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/replaydev/jirabridge/internal/config"
	"github.com/replaydev/jirabridge/internal/logging"
	"github.com/replaydev/jirabridge/internal/pipeline"
)

// fetchCmd runs the fetch-and-save pipeline: search issues with the
// configured filters, print a console summary with statistics, and persist
// the rendered report plus a raw JSON snapshot to the output directory.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch JIRA issues and save a formatted report",
	Long: `Fetch issues from JIRA using the configured filters, print a summary and
statistics to the console, and save two files to the output directory:

  jira-issues-<timestamp>.md       the rendered markdown report
  jira-issues-raw-<timestamp>.json the raw search results and statistics

Finding zero issues is a success: the command reports it and writes nothing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		applyFilterFlags(cmd, cfg)

		logging.Info("starting fetch",
			"project", cfg.Fetch.ProjectKey,
			"max_results", cfg.Fetch.MaxResults)

		return pipeline.Run(cfg, pipeline.Options{Mode: pipeline.FetchAndSave})
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	addFilterFlags(fetchCmd)
}

// addFilterFlags registers the search filter flags shared by the fetch and
// blockers commands.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("project", "p", "", "JIRA project key (overrides PROJECT_KEY)")
	cmd.Flags().StringP("assignee", "a", "", "filter by assignee (overrides ASSIGNEE)")
	cmd.Flags().StringP("status", "s", "", "filter by status, comma-separated for several (overrides STATUS_FILTER)")
	cmd.Flags().StringP("type", "t", "", "filter by issue type (overrides ISSUE_TYPE_FILTER)")
	cmd.Flags().IntP("max-results", "m", 0, "maximum number of issues to fetch (overrides MAX_RESULTS)")
	cmd.Flags().StringP("output", "o", "", "output directory for saved reports (overrides OUTPUT_DIR)")
}

// applyFilterFlags overlays any set flags onto the environment-derived config.
func applyFilterFlags(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetString("project"); v != "" {
		cfg.Fetch.ProjectKey = v
	}
	if v, _ := cmd.Flags().GetString("assignee"); v != "" {
		cfg.Fetch.Assignee = v
	}
	if v, _ := cmd.Flags().GetString("status"); v != "" {
		cfg.Fetch.Status = v
	}
	if v, _ := cmd.Flags().GetString("type"); v != "" {
		cfg.Fetch.IssueType = v
	}
	if v, _ := cmd.Flags().GetInt("max-results"); v > 0 {
		cfg.Fetch.MaxResults = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Fetch.OutputDir = v
	}
}

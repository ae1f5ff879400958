package cmd

import (
	"github.com/spf13/cobra"

	"github.com/replaydev/jirabridge/internal/config"
	"github.com/replaydev/jirabridge/internal/logging"
	"github.com/replaydev/jirabridge/internal/pipeline"
)

// blockersCmd prints issues sorted by priority severity to stdout. The JQL
// orders by update time only; the Blocker > High > Medium > Low ranking is
// applied client-side so unknown priorities land last instead of wherever
// the server's priority scheme puts them.
var blockersCmd = &cobra.Command{
	Use:   "blockers",
	Short: "Print issues sorted by priority, most severe first",
	Long: `Fetch issues with the configured filters and print the full markdown report
to stdout with issues ordered Blocker, High, Medium, Low; ties are broken by
most recent update. Nothing is written to disk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		applyFilterFlags(cmd, cfg)

		logging.Info("starting priority-sorted print",
			"project", cfg.Fetch.ProjectKey,
			"max_results", cfg.Fetch.MaxResults)

		return pipeline.Run(cfg, pipeline.Options{Mode: pipeline.PrintSorted})
	},
}

func init() {
	rootCmd.AddCommand(blockersCmd)
	addFilterFlags(blockersCmd)
}

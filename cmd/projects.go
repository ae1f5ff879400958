package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/replaydev/jirabridge/internal/config"
	"github.com/replaydev/jirabridge/internal/jira"
)

// projectsCmd lists the JIRA projects visible to the configured account,
// which is useful for finding the right PROJECT_KEY value.
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List JIRA projects accessible to the configured account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		if err := config.ValidateConnection(cfg); err != nil {
			return err
		}

		client, err := jira.NewClient(cfg.Jira.Domain, cfg.Jira.Email, cfg.Jira.Token)
		if err != nil {
			return err
		}

		projects, err := client.GetProjects()
		if err != nil {
			return err
		}

		if len(projects) == 0 {
			fmt.Println("No accessible projects found")
			return nil
		}

		for _, p := range projects {
			fmt.Printf("%-12s %s\n", p.Key, p.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}

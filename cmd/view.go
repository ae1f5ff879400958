package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/replaydev/jirabridge/internal/config"
)

// previewLines caps how much of the newest report is printed.
const previewLines = 20

// viewCmd lists previously saved reports and previews the newest one.
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "List saved issue reports and preview the most recent",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		if v, _ := cmd.Flags().GetString("output"); v != "" {
			cfg.Fetch.OutputDir = v
		}

		entries, err := os.ReadDir(cfg.Fetch.OutputDir)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Printf("No output directory found; run 'jirabridge fetch' first\n")
				return nil
			}
			return fmt.Errorf("failed to read output directory: %w", err)
		}

		var reports []string
		for _, entry := range entries {
			name := entry.Name()
			if strings.HasPrefix(name, "jira-issues-") &&
				!strings.HasPrefix(name, "jira-issues-raw-") &&
				strings.HasSuffix(name, ".md") {
				reports = append(reports, name)
			}
		}

		if len(reports) == 0 {
			fmt.Printf("No issue reports found in %s; run 'jirabridge fetch' first\n", cfg.Fetch.OutputDir)
			return nil
		}

		// Timestamped names sort chronologically; newest first
		sort.Sort(sort.Reverse(sort.StringSlice(reports)))

		fmt.Printf("Saved reports in %s:\n", cfg.Fetch.OutputDir)
		for _, name := range reports {
			fmt.Printf("  %s\n", name)
		}

		newest := filepath.Join(cfg.Fetch.OutputDir, reports[0])
		content, err := os.ReadFile(newest)
		if err != nil {
			return fmt.Errorf("failed to read report: %w", err)
		}

		lines := strings.Split(string(content), "\n")
		fmt.Printf("\nPreview of %s (first %d lines):\n\n", reports[0], previewLines)
		if len(lines) > previewLines {
			fmt.Println(strings.Join(lines[:previewLines], "\n"))
			fmt.Printf("\n... and %d more lines\n", len(lines)-previewLines)
		} else {
			fmt.Println(string(content))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewCmd.Flags().StringP("output", "o", "", "output directory to look in (overrides OUTPUT_DIR)")
}

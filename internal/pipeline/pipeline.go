// Package pipeline orchestrates the fetch flow shared by the CLI entry
// modes: validate configuration, connect, search, then either save a report
// to disk or print a priority-sorted report to stdout.
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/replaydev/jirabridge/internal/config"
	"github.com/replaydev/jirabridge/internal/format"
	"github.com/replaydev/jirabridge/internal/jira"
	"github.com/replaydev/jirabridge/internal/logging"
	"github.com/replaydev/jirabridge/pkg/models"
)

// Mode selects the pipeline's output strategy.
type Mode int

const (
	// FetchAndSave writes the rendered report and a raw JSON snapshot to
	// the output directory.
	FetchAndSave Mode = iota
	// PrintSorted prints the report to stdout after sorting issues by
	// priority client-side. No files are written.
	PrintSorted
)

// Options configures a pipeline run.
type Options struct {
	Mode   Mode
	Stdout io.Writer // defaults to os.Stdout
}

// trackerClient is the slice of the JIRA client the pipeline needs.
type trackerClient interface {
	Domain() string
	TestConnection() jira.ConnectionResult
	SearchIssues(jql string, maxResults int) (*jira.SearchResponse, error)
}

// rawSnapshot is the shape of the persisted raw JSON artifact.
type rawSnapshot struct {
	SearchResults *jira.SearchResponse `json:"searchResults"`
	Stats         models.Statistics    `json:"stats"`
}

// Run validates configuration, builds the client, and executes the pipeline.
// Zero search results are success, not failure.
func Run(cfg *config.Config, opts Options) error {
	if err := config.ValidateFetch(cfg); err != nil {
		return err
	}

	client, err := jira.NewClient(cfg.Jira.Domain, cfg.Jira.Email, cfg.Jira.Token)
	if err != nil {
		return err
	}

	return run(client, cfg, opts)
}

func run(client trackerClient, cfg *config.Config, opts Options) error {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}

	conn := client.TestConnection()
	if !conn.Success {
		return fmt.Errorf("jira connection failed: %s", conn.Error)
	}
	color.New(color.FgGreen).Fprintln(out, "JIRA connection successful!")
	color.New(color.FgBlue).Fprintf(out, "Connected as: %s (%s)\n", conn.User.DisplayName, conn.User.EmailAddress)

	filter := models.Filter{
		ProjectKey: cfg.Fetch.ProjectKey,
		Assignee:   cfg.Fetch.Assignee,
		Status:     cfg.Fetch.Status,
		IssueType:  cfg.Fetch.IssueType,
	}

	ordering := jira.OrderByPriority
	if opts.Mode == PrintSorted {
		// Sorting happens client-side in this mode
		ordering = jira.OrderByUpdated
	}
	jql := jira.BuildJQLOrdered(filter, ordering)

	logging.Info("searching issues", "jql", jql, "max_results", cfg.Fetch.MaxResults)

	results, err := client.SearchIssues(jql, cfg.Fetch.MaxResults)
	if err != nil {
		return err
	}

	if len(results.Issues) == 0 {
		color.New(color.FgYellow).Fprintln(out, "No issues found matching the criteria")
		return nil
	}

	if opts.Mode == PrintSorted {
		format.SortByPriority(results.Issues)
		fmt.Fprintln(out, strings.Repeat("-", 80))
		fmt.Fprint(out, format.RenderReport(results.Issues, client.Domain()))
		return nil
	}

	format.WriteConsoleSummary(out, results.Issues)
	stats := format.Summarize(results.Issues)
	format.WriteStats(out, stats)

	report := format.RenderReport(results.Issues, client.Domain())
	mdPath, jsonPath, err := writeArtifacts(cfg.Fetch.OutputDir, results, stats, report, time.Now())
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(out, "\nIssues saved to: %s\n", mdPath)
	color.New(color.FgHiBlack).Fprintf(out, "Raw data saved to: %s\n", jsonPath)
	return nil
}

// writeArtifacts persists the rendered report and a raw JSON snapshot of the
// same fetch under timestamped names, creating the directory if needed.
func writeArtifacts(dir string, results *jira.SearchResponse, stats models.Statistics, report string, now time.Time) (string, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := now.UTC().Format("2006-01-02T15-04-05")

	mdPath := filepath.Join(dir, fmt.Sprintf("jira-issues-%s.md", timestamp))
	if err := os.WriteFile(mdPath, []byte(report), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write report: %w", err)
	}

	raw, err := json.MarshalIndent(rawSnapshot{SearchResults: results, Stats: stats}, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal raw snapshot: %w", err)
	}
	jsonPath := filepath.Join(dir, fmt.Sprintf("jira-issues-raw-%s.json", timestamp))
	if err := os.WriteFile(jsonPath, raw, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write raw snapshot: %w", err)
	}

	logging.Info("saved fetch artifacts", "report", mdPath, "raw", jsonPath)
	return mdPath, jsonPath, nil
}

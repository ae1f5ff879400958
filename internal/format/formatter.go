package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/replaydev/jirabridge/internal/jira"
	"github.com/replaydev/jirabridge/pkg/models"
)

// IssueDelimiter separates issue blocks in rendered reports.
const IssueDelimiter = "\n---\n\n"

// jiraTimeLayout is the timestamp format used by the JIRA REST API.
const jiraTimeLayout = "2006-01-02T15:04:05.000-0700"

// RenderReport produces the full markdown report for a set of issues:
// header, one block per issue separated by a horizontal rule, and the fixed
// instructional trailer for the downstream assistant.
func RenderReport(issues []jira.Issue, domain string) string {
	var sb strings.Builder

	sb.WriteString("# JIRA Issues for AI Analysis\n\n")
	sb.WriteString(fmt.Sprintf("Found %d issues to analyze:\n\n", len(issues)))

	for i, issue := range issues {
		sb.WriteString(RenderIssue(issue, i+1, domain))
		sb.WriteString(IssueDelimiter)
	}

	sb.WriteString("## Instructions for the Assistant\n\n")
	sb.WriteString("Please analyze these JIRA issues and:\n")
	sb.WriteString("1. Identify which issues are code-related and can be fixed\n")
	sb.WriteString("2. Prioritize them by complexity and impact\n")
	sb.WriteString("3. For each fixable issue, provide the file paths and changes needed\n")
	sb.WriteString("4. Create a plan for addressing multiple related issues together\n\n")
	sb.WriteString("Focus on issues related to the project's existing code structure.\n")

	return sb.String()
}

// RenderIssue produces the markdown block for one issue. A positive index
// numbers the heading; zero leaves it unnumbered (single-issue rendering).
// Sections with no source data are omitted entirely.
func RenderIssue(issue jira.Issue, index int, domain string) string {
	fields := issue.Fields
	var sb strings.Builder

	if index > 0 {
		sb.WriteString(fmt.Sprintf("## %d. %s: %s\n\n", index, issue.Key, fields.Summary))
	} else {
		sb.WriteString(fmt.Sprintf("## %s: %s\n\n", issue.Key, fields.Summary))
	}

	sb.WriteString(fmt.Sprintf("**Type:** %s\n", namedOr(fields.IssueType, "")))
	sb.WriteString(fmt.Sprintf("**Status:** %s\n", namedOr(fields.Status, "")))
	sb.WriteString(fmt.Sprintf("**Priority:** %s\n", namedOr(fields.Priority, "None")))
	sb.WriteString(fmt.Sprintf("**Assignee:** %s\n", userOr(fields.Assignee, "Unassigned")))
	sb.WriteString(fmt.Sprintf("**Reporter:** %s\n", userOr(fields.Reporter, "Unknown")))
	sb.WriteString(fmt.Sprintf("**Created:** %s\n", FormatDate(fields.Created)))
	sb.WriteString(fmt.Sprintf("**Updated:** %s\n\n", FormatDate(fields.Updated)))

	if len(fields.Components) > 0 {
		sb.WriteString(fmt.Sprintf("**Components:** %s\n", joinNames(fields.Components)))
	}
	if len(fields.Labels) > 0 {
		sb.WriteString(fmt.Sprintf("**Labels:** %s\n", strings.Join(fields.Labels, ", ")))
	}
	if len(fields.FixVersions) > 0 {
		sb.WriteString(fmt.Sprintf("**Fix Versions:** %s\n", joinNames(fields.FixVersions)))
	}
	sb.WriteString("\n")

	if fields.Description != nil {
		sb.WriteString("**Description:**\n")
		sb.WriteString(RenderDescription(fields.Description))
		sb.WriteString("\n\n")
	}

	if fields.Comment != nil && len(fields.Comment.Comments) > 0 {
		sb.WriteString("**Recent Comments:**\n")
		comments := fields.Comment.Comments
		if len(comments) > 3 {
			comments = comments[len(comments)-3:]
		}
		for _, comment := range comments {
			sb.WriteString(fmt.Sprintf("- **%s** (%s): %s\n",
				userOr(comment.Author, "Unknown"),
				FormatDate(comment.Created),
				RenderDescription(comment.Body)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("**JIRA URL:** https://%s/browse/%s\n", domain, issue.Key))

	return sb.String()
}

// Summarize builds aggregate frequency statistics over a fetched issue set
// in a single pass.
func Summarize(issues []jira.Issue) models.Statistics {
	stats := models.Statistics{
		Total:      len(issues),
		ByStatus:   make(map[string]int),
		ByType:     make(map[string]int),
		ByPriority: make(map[string]int),
		ByAssignee: make(map[string]int),
	}

	for _, issue := range issues {
		fields := issue.Fields
		stats.ByStatus[namedOr(fields.Status, "")]++
		stats.ByType[namedOr(fields.IssueType, "")]++
		stats.ByPriority[namedOr(fields.Priority, "None")]++
		stats.ByAssignee[userOr(fields.Assignee, "Unassigned")]++
	}

	return stats
}

// WriteConsoleSummary prints a short colored listing of the issues.
func WriteConsoleSummary(w io.Writer, issues []jira.Issue) {
	color.New(color.FgBlue, color.Bold).Fprintf(w, "\nFound %d JIRA Issues:\n\n", len(issues))

	gray := color.New(color.FgHiBlack)
	for i, issue := range issues {
		fields := issue.Fields
		priority := namedOr(fields.Priority, "None")

		color.New(color.FgWhite, color.Bold).Fprintf(w, "%d. %s: %s\n", i+1, issue.Key, fields.Summary)
		gray.Fprintf(w, "   Type: %s | Status: %s\n", namedOr(fields.IssueType, ""), namedOr(fields.Status, ""))
		PriorityColor(priority).Fprintf(w, "   Priority: %s | Assignee: %s\n", priority, userOr(fields.Assignee, "Unassigned"))
		gray.Fprintf(w, "   Updated: %s\n", FormatDate(fields.Updated))
		fmt.Fprintln(w)
	}
}

// WriteStats prints aggregate statistics with priorities colored by severity.
func WriteStats(w io.Writer, stats models.Statistics) {
	color.New(color.FgBlue, color.Bold).Fprintln(w, "Issue Statistics:")
	fmt.Fprintf(w, "Total Issues: %d\n", stats.Total)

	gray := color.New(color.FgHiBlack)

	fmt.Fprintln(w, "\nBy Status:")
	for status, count := range stats.ByStatus {
		gray.Fprintf(w, "  %s: %d\n", status, count)
	}

	fmt.Fprintln(w, "\nBy Type:")
	for typ, count := range stats.ByType {
		gray.Fprintf(w, "  %s: %d\n", typ, count)
	}

	fmt.Fprintln(w, "\nBy Priority:")
	for priority, count := range stats.ByPriority {
		PriorityColor(priority).Fprintf(w, "  %s: %d\n", priority, count)
	}
}

// PriorityColor maps a priority name to its console color.
func PriorityColor(priority string) *color.Color {
	switch strings.ToLower(priority) {
	case "highest", "critical":
		return color.New(color.FgRed, color.Bold)
	case "high":
		return color.New(color.FgRed)
	case "medium":
		return color.New(color.FgYellow)
	case "low":
		return color.New(color.FgGreen)
	case "lowest":
		return color.New(color.FgHiBlack)
	default:
		return color.New(color.FgWhite)
	}
}

// FormatDate renders a JIRA API timestamp as a short date. Unparseable
// values pass through unchanged.
func FormatDate(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := time.Parse(jiraTimeLayout, raw)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, raw); err != nil {
			return raw
		}
	}
	return t.Format("2006-01-02")
}

func namedOr(n *jira.Named, fallback string) string {
	if n == nil || n.Name == "" {
		return fallback
	}
	return n.Name
}

func userOr(u *jira.User, fallback string) string {
	if u == nil || u.DisplayName == "" {
		return fallback
	}
	return u.DisplayName
}

func joinNames(names []jira.Named) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n.Name
	}
	return strings.Join(parts, ", ")
}

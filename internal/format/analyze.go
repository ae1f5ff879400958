package format

import (
	"fmt"
	"strings"

	"github.com/replaydev/jirabridge/internal/jira"
)

// codeKeywords marks an issue as code-related when any of them appears in
// its summary, description, or labels.
var codeKeywords = []string{
	"bug", "error", "exception", "crash", "performance", "ui",
	"unity", "code", "script", "method", "class", "function",
}

// Render caps for the bug and improvement sections. Aggregate counts always
// report the full category sizes.
const (
	maxRenderedBugs         = 10
	maxRenderedImprovements = 5
)

// categories holds the non-exclusive classification of an issue set. An
// issue may appear in several buckets at once.
type categories struct {
	bugs         []jira.Issue
	tasks        []jira.Issue
	improvements []jira.Issue
	critical     []jira.Issue
	codeRelated  []jira.Issue
}

// Analyze classifies issues into overlapping categories and renders a
// prioritized markdown report: critical code-related issues first, then
// remaining bugs, then improvements.
func Analyze(issues []jira.Issue, focusAreas []string, domain string) string {
	cats := categorize(issues)

	var sb strings.Builder
	sb.WriteString("# JIRA Issues Analysis for Code Fixes\n\n")

	sb.WriteString("## Analysis Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Total Issues:** %d\n", len(issues)))
	sb.WriteString(fmt.Sprintf("- **Code-Related Issues:** %d\n", len(cats.codeRelated)))
	sb.WriteString(fmt.Sprintf("- **Critical Issues:** %d\n", len(cats.critical)))
	sb.WriteString(fmt.Sprintf("- **Bugs:** %d\n", len(cats.bugs)))
	sb.WriteString(fmt.Sprintf("- **Tasks:** %d\n", len(cats.tasks)))
	sb.WriteString(fmt.Sprintf("- **Improvements:** %d\n\n", len(cats.improvements)))

	if len(focusAreas) > 0 {
		sb.WriteString(fmt.Sprintf("**Focus Areas:** %s\n\n", strings.Join(focusAreas, ", ")))
	}

	sb.WriteString("## Recommended Fix Priority\n\n")

	criticalCode := intersect(cats.critical, cats.codeRelated)
	if len(criticalCode) > 0 {
		sb.WriteString("### Critical Code Issues (Fix First)\n\n")
		writeSection(&sb, criticalCode, domain)
	}

	nonCriticalBugs := subtract(cats.bugs, cats.critical)
	if len(nonCriticalBugs) > 0 {
		sb.WriteString("### Bug Fixes\n\n")
		if len(nonCriticalBugs) > maxRenderedBugs {
			nonCriticalBugs = nonCriticalBugs[:maxRenderedBugs]
		}
		writeSection(&sb, nonCriticalBugs, domain)
	}

	if len(cats.improvements) > 0 {
		sb.WriteString("### Improvements & Enhancements\n\n")
		improvements := cats.improvements
		if len(improvements) > maxRenderedImprovements {
			improvements = improvements[:maxRenderedImprovements]
		}
		writeSection(&sb, improvements, domain)
	}

	sb.WriteString("## Analysis Instructions\n\n")
	sb.WriteString("Please analyze the issues above and:\n")
	sb.WriteString("1. **Identify Actionable Items**: Focus on issues that can be resolved through code changes\n")
	sb.WriteString("2. **Prioritize by Impact**: Consider user experience and system stability\n")
	sb.WriteString("3. **Group Related Issues**: Find issues that can be fixed together\n")
	sb.WriteString("4. **Provide Implementation Plan**: For each fixable issue, specify:\n")
	sb.WriteString("   - Affected file paths\n")
	sb.WriteString("   - Specific code changes needed\n")
	sb.WriteString("   - Testing approach\n")
	sb.WriteString("5. **Estimate Complexity**: Categorize as Simple/Medium/Complex based on required changes\n\n")
	sb.WriteString("Focus on the project's existing structure and patterns.\n")

	return sb.String()
}

// categorize buckets issues by type, priority, and code-relatedness.
// Classification is non-exclusive.
func categorize(issues []jira.Issue) categories {
	var cats categories

	for _, issue := range issues {
		fields := issue.Fields
		priority := strings.ToLower(namedOr(fields.Priority, ""))
		issueType := strings.ToLower(namedOr(fields.IssueType, ""))

		if isCodeRelated(issue) {
			cats.codeRelated = append(cats.codeRelated, issue)
		}
		if strings.Contains(priority, "critical") || strings.Contains(priority, "highest") {
			cats.critical = append(cats.critical, issue)
		}
		if strings.Contains(issueType, "bug") {
			cats.bugs = append(cats.bugs, issue)
		}
		if strings.Contains(issueType, "task") || strings.Contains(issueType, "story") {
			cats.tasks = append(cats.tasks, issue)
		}
		if strings.Contains(issueType, "improvement") || strings.Contains(issueType, "enhancement") {
			cats.improvements = append(cats.improvements, issue)
		}
	}

	return cats
}

// isCodeRelated reports whether any code keyword appears in the issue's
// summary or description text, or matches one of its labels exactly.
func isCodeRelated(issue jira.Issue) bool {
	fields := issue.Fields
	summary := strings.ToLower(fields.Summary)
	description := strings.ToLower(RenderDescription(fields.Description))

	labels := make(map[string]bool, len(fields.Labels))
	for _, label := range fields.Labels {
		labels[strings.ToLower(label)] = true
	}

	for _, keyword := range codeKeywords {
		if strings.Contains(summary, keyword) || strings.Contains(description, keyword) || labels[keyword] {
			return true
		}
	}
	return false
}

func writeSection(sb *strings.Builder, issues []jira.Issue, domain string) {
	for i, issue := range issues {
		sb.WriteString(RenderIssue(issue, i+1, domain))
		sb.WriteString(IssueDelimiter)
	}
}

// intersect returns the members of a that also appear in b, preserving
// a's order.
func intersect(a, b []jira.Issue) []jira.Issue {
	keys := make(map[string]bool, len(b))
	for _, issue := range b {
		keys[issue.Key] = true
	}

	var out []jira.Issue
	for _, issue := range a {
		if keys[issue.Key] {
			out = append(out, issue)
		}
	}
	return out
}

// subtract returns the members of a that do not appear in b, preserving
// a's order.
func subtract(a, b []jira.Issue) []jira.Issue {
	keys := make(map[string]bool, len(b))
	for _, issue := range b {
		keys[issue.Key] = true
	}

	var out []jira.Issue
	for _, issue := range a {
		if !keys[issue.Key] {
			out = append(out, issue)
		}
	}
	return out
}

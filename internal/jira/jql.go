package jira

import (
	"fmt"
	"strings"

	"github.com/replaydev/jirabridge/pkg/models"
)

const (
	// OrderByPriority is the default ordering suffix for built queries.
	OrderByPriority = "ORDER BY priority DESC, updated DESC"
	// OrderByUpdated orders by update time only, for callers that sort
	// by priority client-side.
	OrderByUpdated = "ORDER BY updated DESC"
)

// BuildJQL renders a filter into a JQL query string with the default
// priority-then-updated ordering.
func BuildJQL(filter models.Filter) string {
	return BuildJQLOrdered(filter, OrderByPriority)
}

// BuildJQLOrdered renders a filter into a JQL query string terminated by the
// given ordering clause. Each present filter field contributes one clause,
// joined with AND in field order. When no status filter is given, terminal
// statuses ("Done", "Closed") are excluded by default.
func BuildJQLOrdered(filter models.Filter, ordering string) string {
	var conditions []string

	if filter.ProjectKey != "" {
		conditions = append(conditions, fmt.Sprintf(`project = "%s"`, filter.ProjectKey))
	}

	if filter.Assignee != "" {
		conditions = append(conditions, fmt.Sprintf(`assignee = "%s"`, filter.Assignee))
	}

	if filter.Status != "" {
		if clause := statusClause(filter.Status); clause != "" {
			conditions = append(conditions, clause)
		}
	}

	if filter.IssueType != "" {
		conditions = append(conditions, fmt.Sprintf(`issuetype = "%s"`, filter.IssueType))
	}

	if filter.Priority != "" {
		conditions = append(conditions, fmt.Sprintf(`priority = "%s"`, filter.Priority))
	}

	// Default to open issues if no status specified
	if filter.Status == "" {
		conditions = append(conditions, `status != "Done" AND status != "Closed"`)
	}

	jql := strings.Join(conditions, " AND ")
	if jql == "" {
		return ordering
	}
	return jql + " " + ordering
}

// statusClause turns a status filter value into a JQL clause. Comma-separated
// values become a membership list; a single value becomes an equality check.
// A value with no usable tokens yields no clause.
func statusClause(status string) string {
	var statuses []string
	for _, s := range strings.Split(status, ",") {
		if s = strings.TrimSpace(s); s != "" {
			statuses = append(statuses, s)
		}
	}

	switch len(statuses) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf(`status = "%s"`, statuses[0])
	default:
		quoted := make([]string, len(statuses))
		for i, s := range statuses {
			quoted[i] = fmt.Sprintf(`"%s"`, s)
		}
		return fmt.Sprintf("status IN (%s)", strings.Join(quoted, ", "))
	}
}

// Package models defines data structures shared across the application.
package models

// Filter describes the search criteria for a single fetch invocation.
// Empty fields are simply skipped when the JQL query is built.
type Filter struct {
	// ProjectKey is the JIRA project identifier (e.g., "TLW")
	ProjectKey string

	// Assignee filters by assignee email or username
	Assignee string

	// Status filters by workflow status; a comma-separated value
	// ("Open, In Progress") selects several statuses at once
	Status string

	// IssueType filters by issue type name (e.g., "Bug", "Task")
	IssueType string

	// Priority filters by priority level name
	Priority string
}

// Statistics aggregates a fetched issue set into frequency counts.
// Each mapping's counts sum to Total.
type Statistics struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"byStatus"`
	ByType     map[string]int `json:"byType"`
	ByPriority map[string]int `json:"byPriority"`
	ByAssignee map[string]int `json:"byAssignee"`
}

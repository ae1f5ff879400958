package jira

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/replaydev/jirabridge/pkg/models"
)

func TestBuildJQL(t *testing.T) {
	testCases := []struct {
		name     string
		filter   models.Filter
		expected string
	}{
		{
			name:   "Project only gets default status exclusion",
			filter: models.Filter{ProjectKey: "TLW"},
			expected: `project = "TLW" AND status != "Done" AND status != "Closed" ` +
				`ORDER BY priority DESC, updated DESC`,
		},
		{
			name:   "All fields in order",
			filter: models.Filter{ProjectKey: "TLW", Assignee: "dev@example.com", Status: "Open", IssueType: "Bug", Priority: "High"},
			expected: `project = "TLW" AND assignee = "dev@example.com" AND status = "Open" ` +
				`AND issuetype = "Bug" AND priority = "High" ORDER BY priority DESC, updated DESC`,
		},
		{
			name:   "Single status is equality",
			filter: models.Filter{Status: "In Progress"},
			expected: `status = "In Progress" ORDER BY priority DESC, updated DESC`,
		},
		{
			name:   "Comma status becomes membership list",
			filter: models.Filter{Status: "Open, In Progress"},
			expected: `status IN ("Open", "In Progress") ORDER BY priority DESC, updated DESC`,
		},
		{
			name:     "Empty filter is ordering with default exclusion",
			filter:   models.Filter{},
			expected: `status != "Done" AND status != "Closed" ORDER BY priority DESC, updated DESC`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, BuildJQL(tc.filter))
		})
	}
}

func TestBuildJQLDefaultStatusExclusion(t *testing.T) {
	// Every filter without a status carries the terminal-state exclusion
	filters := []models.Filter{
		{},
		{ProjectKey: "ABC"},
		{ProjectKey: "ABC", Assignee: "someone", IssueType: "Task"},
	}

	for _, filter := range filters {
		jql := BuildJQL(filter)
		assert.Contains(t, jql, `status != "Done" AND status != "Closed"`)
		assert.False(t, strings.HasPrefix(jql, " "), "query must not start with whitespace: %q", jql)
		assert.False(t, strings.HasPrefix(jql, "AND"), "query must not start with AND: %q", jql)
	}
}

func TestBuildJQLMultiStatusSkipsDefault(t *testing.T) {
	jql := BuildJQL(models.Filter{ProjectKey: "TLW", Status: "Open, In Progress"})

	assert.Contains(t, jql, `status IN ("Open", "In Progress")`)
	assert.NotContains(t, jql, `status != "Done"`)
}

func TestBuildJQLOrderedOverridesSuffix(t *testing.T) {
	jql := BuildJQLOrdered(models.Filter{ProjectKey: "TLW"}, OrderByUpdated)

	assert.True(t, strings.HasSuffix(jql, "ORDER BY updated DESC"))
	assert.NotContains(t, jql, "priority DESC")
}

func TestStatusClauseTokens(t *testing.T) {
	testCases := []struct {
		name     string
		status   string
		expected string
	}{
		{
			name:     "Whitespace tokens are dropped",
			status:   " Open ,  , In Progress ",
			expected: `status IN ("Open", "In Progress")`,
		},
		{
			name:     "Only delimiters yields no clause",
			status:   " , ,",
			expected: "",
		},
		{
			name:     "Single token with padding",
			status:   "  Done  ",
			expected: `status = "Done"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, statusClause(tc.status))
		})
	}
}

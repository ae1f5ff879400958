package format

import (
	"sort"
	"time"

	"github.com/replaydev/jirabridge/internal/jira"
)

// priorityRank defines the explicit sort order for known priorities.
// Anything else, including a missing priority, ranks last.
var priorityRank = map[string]int{
	"Blocker": 1,
	"High":    2,
	"Medium":  3,
	"Low":     4,
}

const unknownPriorityRank = 5

// SortByPriority orders issues in place by priority rank, breaking ties by
// update time with the most recently updated first. The sort is stable.
func SortByPriority(issues []jira.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		ri := rankOf(issues[i])
		rj := rankOf(issues[j])
		if ri != rj {
			return ri < rj
		}
		return updatedAt(issues[i]).After(updatedAt(issues[j]))
	})
}

func rankOf(issue jira.Issue) int {
	if r, ok := priorityRank[namedOr(issue.Fields.Priority, "")]; ok {
		return r
	}
	return unknownPriorityRank
}

func updatedAt(issue jira.Issue) time.Time {
	raw := issue.Fields.Updated
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(jiraTimeLayout, raw)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, raw); err != nil {
			return time.Time{}
		}
	}
	return t
}

package jira

import (
	"encoding/json"
)

// SearchResponse is the payload returned by the search endpoint.
type SearchResponse struct {
	Total  int     `json:"total"`
	Issues []Issue `json:"issues"`
}

// Issue is a single tracked work item as returned by the JIRA REST API.
type Issue struct {
	Key    string      `json:"key"`
	Fields IssueFields `json:"fields"`
}

// IssueFields carries the field selection requested on every search and get.
// Optional fields stay nil until the rendering boundary maps them to their
// display defaults ("None", "Unassigned", "Unknown").
type IssueFields struct {
	Summary     string       `json:"summary"`
	Description *Body        `json:"description,omitempty"`
	Status      *Named       `json:"status,omitempty"`
	Priority    *Named       `json:"priority,omitempty"`
	IssueType   *Named       `json:"issuetype,omitempty"`
	Assignee    *User        `json:"assignee,omitempty"`
	Reporter    *User        `json:"reporter,omitempty"`
	Created     string       `json:"created,omitempty"`
	Updated     string       `json:"updated,omitempty"`
	Components  []Named      `json:"components,omitempty"`
	Labels      []string     `json:"labels,omitempty"`
	FixVersions []Named      `json:"fixVersions,omitempty"`
	Comment     *CommentPage `json:"comment,omitempty"`
}

// Named is any JIRA entity referenced only by its display name
// (status, priority, issue type, component, fix version).
type Named struct {
	Name string `json:"name"`
}

// User identifies a JIRA account.
type User struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress,omitempty"`
}

// CommentPage is the paged comment container embedded in issue fields.
type CommentPage struct {
	Comments []Comment `json:"comments"`
}

// Comment is a single issue comment. Its body uses the same dual
// string-or-document representation as descriptions.
type Comment struct {
	Author  *User  `json:"author,omitempty"`
	Created string `json:"created,omitempty"`
	Body    *Body  `json:"body,omitempty"`
}

// Body holds rich-text content that the API serves either as a plain string
// (API v2 style) or as an Atlassian Document Format tree (API v3).
type Body struct {
	Text string
	Doc  *Node
}

// Node is one node of an Atlassian Document Format tree. Unrecognized types
// are preserved: rendering recurses into Content when present, otherwise
// emits Text.
type Node struct {
	Type    string         `json:"type,omitempty"`
	Version int            `json:"version,omitempty"`
	Text    string         `json:"text,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []*Node        `json:"content,omitempty"`
}

// UnmarshalJSON accepts either a JSON string or an ADF document object.
func (b *Body) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &b.Text)
	}
	b.Doc = &Node{}
	return json.Unmarshal(data, b.Doc)
}

// MarshalJSON writes the body back in whichever shape it arrived, so raw
// JSON snapshots reproduce the original API response.
func (b *Body) MarshalJSON() ([]byte, error) {
	if b.Doc != nil {
		return json.Marshal(b.Doc)
	}
	return json.Marshal(b.Text)
}

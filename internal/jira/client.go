// Package jira provides the JIRA REST client, wire types, and JQL query
// building for the issue fetch pipeline.
package jira

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	gojira "github.com/andygrunwald/go-jira"

	"github.com/replaydev/jirabridge/internal/logging"
)

// issueFields is the field selection requested on every search and get.
var issueFields = []string{
	"key",
	"summary",
	"description",
	"status",
	"priority",
	"issuetype",
	"assignee",
	"reporter",
	"created",
	"updated",
	"components",
	"labels",
	"fixVersions",
	"comment",
}

// Client handles interactions with the JIRA API. Identity and project
// listing go through the typed go-jira client; search and single-issue
// fetches use the v3 REST endpoints directly because v3 is what returns
// Atlassian Document Format description trees. Both share one
// basic-auth transport.
type Client struct {
	domain     string
	baseURL    string
	httpClient *http.Client
	api        *gojira.Client
}

// ConnectionResult is the outcome of a connection test. It is a value, not
// an error: an unreachable or misconfigured JIRA is an expected, displayable
// condition.
type ConnectionResult struct {
	Success bool
	User    User
	Error   string
}

// NewClient creates a JIRA client authenticated with basic auth (email as
// username, API token as password) against the given Atlassian domain.
func NewClient(domain, email, token string) (*Client, error) {
	if domain == "" || email == "" || token == "" {
		return nil, fmt.Errorf("jira client requires JIRA_DOMAIN, JIRA_EMAIL and JIRA_API_TOKEN")
	}

	tp := gojira.BasicAuthTransport{
		Username: email,
		Password: token,
	}

	base := "https://" + strings.TrimSuffix(domain, "/")
	api, err := gojira.NewClient(tp.Client(), base)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}

	logging.Debug("created jira client",
		"domain", domain,
		"email", email,
		"token", logging.MaskSensitive(token))

	return &Client{
		domain:     domain,
		baseURL:    base + "/rest/api/3",
		httpClient: tp.Client(),
		api:        api,
	}, nil
}

// Domain returns the Atlassian site host the client is scoped to.
func (c *Client) Domain() string {
	return c.domain
}

// TestConnection issues a "who am I" request. It never returns a Go error:
// failures are captured in the result with the remote error message when one
// is available.
func (c *Client) TestConnection() ConnectionResult {
	me, resp, err := c.api.User.GetSelf()
	if err != nil {
		if resp != nil {
			err = gojira.NewJiraError(resp, err)
		}
		logging.Debug("jira connection test failed", "error", err)
		return ConnectionResult{Success: false, Error: err.Error()}
	}

	return ConnectionResult{
		Success: true,
		User: User{
			DisplayName:  me.DisplayName,
			EmailAddress: me.EmailAddress,
		},
	}
}

// searchRequest is the body for the POST /search/jql endpoint.
type searchRequest struct {
	JQL        string   `json:"jql"`
	MaxResults int      `json:"maxResults"`
	Fields     []string `json:"fields"`
}

// SearchIssues runs a JQL search returning at most maxResults issues.
// Transport and remote errors are propagated to the caller.
func (c *Client) SearchIssues(jql string, maxResults int) (*SearchResponse, error) {
	logging.Debug("searching issues", "jql", jql, "max_results", maxResults)

	body, err := json.Marshal(searchRequest{
		JQL:        jql,
		MaxResults: maxResults,
		Fields:     issueFields,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/search/jql", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var result SearchResponse
	if err := c.do(req, &result); err != nil {
		return nil, fmt.Errorf("failed to search issues: %w", err)
	}

	logging.Debug("search complete", "total", result.Total, "returned", len(result.Issues))
	return &result, nil
}

// GetIssue fetches a single issue by key with the standard field selection.
func (c *Client) GetIssue(key string) (*Issue, error) {
	q := url.Values{}
	q.Set("fields", strings.Join(issueFields, ","))

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/issue/"+url.PathEscape(key)+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build issue request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	var issue Issue
	if err := c.do(req, &issue); err != nil {
		return nil, fmt.Errorf("failed to get issue %s: %w", key, err)
	}

	return &issue, nil
}

// Project is an accessible JIRA project.
type Project struct {
	Key  string
	Name string
}

// GetProjects lists the projects visible to the authenticated user.
func (c *Client) GetProjects() ([]Project, error) {
	list, resp, err := c.api.Project.GetList()
	if err != nil {
		if resp != nil {
			err = gojira.NewJiraError(resp, err)
		}
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}

	projects := make([]Project, 0, len(*list))
	for _, p := range *list {
		projects = append(projects, Project{Key: p.Key, Name: p.Name})
	}
	return projects, nil
}

// do executes a request and decodes the JSON response into out. HTTP error
// statuses are turned into errors carrying the remote error message when the
// response body includes one.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, remoteMessage(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// remoteMessage extracts the most specific error text from a JIRA error
// response body, falling back to the raw body.
func remoteMessage(body []byte) string {
	var payload struct {
		ErrorMessages []string `json:"errorMessages"`
		Message       string   `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if len(payload.ErrorMessages) > 0 {
			return payload.ErrorMessages[0]
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(body))
}

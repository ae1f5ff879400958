// Package mcpserver republishes the issue fetch pipeline as MCP tools for
// an external AI-agent host, over a stdio transport.
package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/replaydev/jirabridge/internal/config"
	"github.com/replaydev/jirabridge/internal/format"
	"github.com/replaydev/jirabridge/internal/jira"
	"github.com/replaydev/jirabridge/internal/logging"
	"github.com/replaydev/jirabridge/pkg/models"
)

const serverName = "jira-mcp-server"

// New creates the MCP server with the four JIRA tools registered.
func New(version string) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	s.AddTool(mcp.NewTool("jira_fetch_issues",
		mcp.WithDescription("Fetch JIRA issues based on filters and return them formatted for analysis"),
		mcp.WithString("projectKey",
			mcp.Required(),
			mcp.Description("JIRA project key (e.g., 'TLW')")),
		mcp.WithNumber("maxResults",
			mcp.DefaultNumber(50),
			mcp.Description("Maximum number of issues to fetch (default: 50)")),
		mcp.WithString("assignee",
			mcp.Description("Filter by assignee email or username (optional)")),
		mcp.WithString("status",
			mcp.Description("Filter by status (optional, defaults to open issues)")),
		mcp.WithString("issueType",
			mcp.Description("Filter by issue type like 'Bug', 'Task', etc (optional)")),
		mcp.WithString("priority",
			mcp.Description("Filter by priority level (optional)")),
	), handleFetchIssues)

	s.AddTool(mcp.NewTool("jira_get_issue",
		mcp.WithDescription("Get detailed information about a specific JIRA issue"),
		mcp.WithString("issueKey",
			mcp.Required(),
			mcp.Description("JIRA issue key (e.g., 'TLW-123')")),
	), handleGetIssue)

	s.AddTool(mcp.NewTool("jira_test_connection",
		mcp.WithDescription("Test the connection to JIRA with current credentials"),
	), handleTestConnection)

	s.AddTool(mcp.NewTool("jira_analyze_issues",
		mcp.WithDescription("Analyze a set of JIRA issues and provide structured analysis for code fixes"),
		mcp.WithString("projectKey",
			mcp.Required(),
			mcp.Description("JIRA project key to analyze")),
		mcp.WithArray("focusAreas",
			mcp.Description("Specific areas to focus on (e.g., ['bugs', 'performance', 'ui'])"),
			mcp.Items(map[string]any{"type": "string"})),
		mcp.WithNumber("maxResults",
			mcp.DefaultNumber(25),
			mcp.Description("Maximum number of issues to analyze (default: 25)")),
	), handleAnalyzeIssues)

	return s
}

// ServeStdio runs the MCP server over stdin/stdout until the host closes
// the stream.
func ServeStdio(version string) error {
	logging.Info("jira mcp server running on stdio", "version", version)
	return server.ServeStdio(New(version))
}

// newClient loads configuration from the environment, validates the JIRA
// credentials, and constructs a client. The project key is not required
// here: tool calls supply it as an argument.
func newClient() (*jira.Client, error) {
	cfg := config.LoadConfig()
	if err := config.ValidateConnection(cfg); err != nil {
		return nil, err
	}
	return jira.NewClient(cfg.Jira.Domain, cfg.Jira.Email, cfg.Jira.Token)
}

// toolError wraps an internal failure as a single opaque tool error.
func toolError(tool string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Error executing %s: %v", tool, err))
}

func handleFetchIssues(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectKey, err := request.RequireString("projectKey")
	if err != nil {
		return toolError("jira_fetch_issues", err), nil
	}

	filter := models.Filter{
		ProjectKey: projectKey,
		Assignee:   request.GetString("assignee", ""),
		Status:     request.GetString("status", ""),
		IssueType:  request.GetString("issueType", ""),
		Priority:   request.GetString("priority", ""),
	}
	maxResults := request.GetInt("maxResults", 50)

	client, err := newClient()
	if err != nil {
		return toolError("jira_fetch_issues", err), nil
	}

	results, err := client.SearchIssues(jira.BuildJQL(filter), maxResults)
	if err != nil {
		return toolError("jira_fetch_issues", err), nil
	}

	return mcp.NewToolResultText(format.RenderReport(results.Issues, client.Domain())), nil
}

func handleGetIssue(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	issueKey, err := request.RequireString("issueKey")
	if err != nil {
		return toolError("jira_get_issue", err), nil
	}

	client, err := newClient()
	if err != nil {
		return toolError("jira_get_issue", err), nil
	}

	issue, err := client.GetIssue(issueKey)
	if err != nil {
		return toolError("jira_get_issue", err), nil
	}

	return mcp.NewToolResultText(format.RenderIssue(*issue, 0, client.Domain())), nil
}

// handleTestConnection reports failures as ordinary text rather than tool
// errors: an absent or misconfigured JIRA is an expected, displayable
// outcome for this operation.
func handleTestConnection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	client, err := newClient()
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("Connection test failed: %v", err)), nil
	}

	result := client.TestConnection()
	if !result.Success {
		return mcp.NewToolResultText(fmt.Sprintf("JIRA connection failed: %s", result.Error)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("JIRA connection successful!\nConnected as: %s (%s)",
		result.User.DisplayName, result.User.EmailAddress)), nil
}

func handleAnalyzeIssues(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectKey, err := request.RequireString("projectKey")
	if err != nil {
		return toolError("jira_analyze_issues", err), nil
	}

	focusAreas := request.GetStringSlice("focusAreas", nil)
	maxResults := request.GetInt("maxResults", 25)

	client, err := newClient()
	if err != nil {
		return toolError("jira_analyze_issues", err), nil
	}

	filter := models.Filter{ProjectKey: projectKey}
	results, err := client.SearchIssues(jira.BuildJQL(filter), maxResults)
	if err != nil {
		return toolError("jira_analyze_issues", err), nil
	}

	return mcp.NewToolResultText(format.Analyze(results.Issues, focusAreas, client.Domain())), nil
}

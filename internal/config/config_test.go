package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// configEnvVars lists every environment variable the package reads.
var configEnvVars = []string{
	"JIRA_DOMAIN", "JIRA_EMAIL", "JIRA_API_TOKEN",
	"PROJECT_KEY", "ASSIGNEE", "STATUS_FILTER", "STATUS_FILTERS",
	"ISSUE_TYPE_FILTER", "MAX_RESULTS", "OUTPUT_DIR",
}

// withCleanEnv clears the config environment for a test, restoring it after.
func withCleanEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	withCleanEnv(t)

	cfg := LoadConfig()

	assert.Equal(t, DefaultMaxResults, cfg.Fetch.MaxResults)
	assert.Equal(t, DefaultOutputDir, cfg.Fetch.OutputDir)
	assert.Empty(t, cfg.Jira.Domain)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	withCleanEnv(t)
	t.Setenv("JIRA_DOMAIN", "example.atlassian.net")
	t.Setenv("JIRA_EMAIL", "dev@example.com")
	t.Setenv("JIRA_API_TOKEN", "secret-token")
	t.Setenv("PROJECT_KEY", "TLW")
	t.Setenv("ASSIGNEE", "dev@example.com")
	t.Setenv("STATUS_FILTER", "In Progress")
	t.Setenv("ISSUE_TYPE_FILTER", "Bug")
	t.Setenv("MAX_RESULTS", "25")
	t.Setenv("OUTPUT_DIR", "reports")

	cfg := LoadConfig()

	assert.Equal(t, "example.atlassian.net", cfg.Jira.Domain)
	assert.Equal(t, "dev@example.com", cfg.Jira.Email)
	assert.Equal(t, "secret-token", cfg.Jira.Token)
	assert.Equal(t, "TLW", cfg.Fetch.ProjectKey)
	assert.Equal(t, "In Progress", cfg.Fetch.Status)
	assert.Equal(t, "Bug", cfg.Fetch.IssueType)
	assert.Equal(t, 25, cfg.Fetch.MaxResults)
	assert.Equal(t, "reports", cfg.Fetch.OutputDir)
}

func TestLoadConfigStatusFilterAlias(t *testing.T) {
	withCleanEnv(t)
	t.Setenv("STATUS_FILTERS", "Open, In Progress")

	cfg := LoadConfig()
	assert.Equal(t, "Open, In Progress", cfg.Fetch.Status)
}

func TestLoadConfigBadMaxResultsFallsBack(t *testing.T) {
	withCleanEnv(t)
	t.Setenv("MAX_RESULTS", "not-a-number")

	cfg := LoadConfig()
	assert.Equal(t, DefaultMaxResults, cfg.Fetch.MaxResults)
}

func TestValidateFetch(t *testing.T) {
	tests := []struct {
		name        string
		domain      string
		email       string
		token       string
		projectKey  string
		wantErr     bool
		errContains []string
	}{
		{
			name:       "Complete config",
			domain:     "example.atlassian.net",
			email:      "dev@example.com",
			token:      "tok",
			projectKey: "TLW",
			wantErr:    false,
		},
		{
			name:        "Missing everything lists every key",
			wantErr:     true,
			errContains: []string{"JIRA_DOMAIN", "JIRA_EMAIL", "JIRA_API_TOKEN", "PROJECT_KEY"},
		},
		{
			name:        "Missing project only",
			domain:      "example.atlassian.net",
			email:       "dev@example.com",
			token:       "tok",
			wantErr:     true,
			errContains: []string{"PROJECT_KEY"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Jira:  JiraConfig{Domain: tt.domain, Email: tt.email, Token: tt.token},
				Fetch: FetchConfig{ProjectKey: tt.projectKey},
			}

			err := ValidateFetch(cfg)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			for _, want := range tt.errContains {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestValidateConnectionSkipsProjectKey(t *testing.T) {
	// Tool-server operations take the project key as a call argument
	cfg := &Config{Jira: JiraConfig{Domain: "example.atlassian.net", Email: "dev@example.com", Token: "tok"}}
	assert.NoError(t, ValidateConnection(cfg))

	cfg.Jira.Token = ""
	err := ValidateConnection(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JIRA_API_TOKEN")
	assert.NotContains(t, err.Error(), "PROJECT_KEY")
}

// Package config provides centralized configuration management for the application.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DefaultMaxResults is used when MAX_RESULTS is unset or not a positive integer.
const DefaultMaxResults = 50

// DefaultOutputDir is where fetched reports are written unless overridden.
const DefaultOutputDir = "output"

// Config holds all configuration parameters for the application.
type Config struct {
	Jira  JiraConfig
	Fetch FetchConfig
}

// JiraConfig holds the JIRA connection credentials.
type JiraConfig struct {
	// Domain is the Atlassian site host (e.g., "mycompany.atlassian.net")
	Domain string

	// Email is the account email used as the basic-auth username
	Email string

	// Token is the API token used as the basic-auth password
	Token string
}

// FetchConfig holds the default search filters for the CLI fetch modes.
type FetchConfig struct {
	ProjectKey string
	Assignee   string
	Status     string
	IssueType  string
	MaxResults int
	OutputDir  string
}

// LoadConfig initializes and loads configuration from environment variables.
// It does not validate: the required keys differ per entry mode, so callers
// run ValidateConnection or ValidateFetch as appropriate.
func LoadConfig() *Config {
	// Initialize Viper for environment variables
	v := viper.New()
	v.SetEnvPrefix("")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Map specific environment variables
	v.BindEnv("jira.domain", "JIRA_DOMAIN")
	v.BindEnv("jira.email", "JIRA_EMAIL")
	v.BindEnv("jira.token", "JIRA_API_TOKEN")
	v.BindEnv("fetch.project", "PROJECT_KEY")
	v.BindEnv("fetch.assignee", "ASSIGNEE")
	v.BindEnv("fetch.status", "STATUS_FILTER", "STATUS_FILTERS")
	v.BindEnv("fetch.issuetype", "ISSUE_TYPE_FILTER")
	v.BindEnv("fetch.maxresults", "MAX_RESULTS")
	v.BindEnv("fetch.outputdir", "OUTPUT_DIR")

	maxResults := v.GetInt("fetch.maxresults")
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	outputDir := v.GetString("fetch.outputdir")
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}

	return &Config{
		Jira: JiraConfig{
			Domain: v.GetString("jira.domain"),
			Email:  v.GetString("jira.email"),
			Token:  v.GetString("jira.token"),
		},
		Fetch: FetchConfig{
			ProjectKey: v.GetString("fetch.project"),
			Assignee:   v.GetString("fetch.assignee"),
			Status:     v.GetString("fetch.status"),
			IssueType:  v.GetString("fetch.issuetype"),
			MaxResults: maxResults,
			OutputDir:  outputDir,
		},
	}
}

// ValidateConnection ensures the JIRA credentials are present. This is the
// check used by the tool-server operations, which receive the project key as
// a call argument instead of from the environment.
func ValidateConnection(config *Config) error {
	var missingVars []string

	if config.Jira.Domain == "" {
		missingVars = append(missingVars, "JIRA_DOMAIN")
	}
	if config.Jira.Email == "" {
		missingVars = append(missingVars, "JIRA_EMAIL")
	}
	if config.Jira.Token == "" {
		missingVars = append(missingVars, "JIRA_API_TOKEN")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	return nil
}

// ValidateFetch ensures everything the CLI fetch modes need is present,
// reporting every missing key in a single error.
func ValidateFetch(config *Config) error {
	var missingVars []string

	if config.Jira.Domain == "" {
		missingVars = append(missingVars, "JIRA_DOMAIN")
	}
	if config.Jira.Email == "" {
		missingVars = append(missingVars, "JIRA_EMAIL")
	}
	if config.Jira.Token == "" {
		missingVars = append(missingVars, "JIRA_API_TOKEN")
	}
	if config.Fetch.ProjectKey == "" {
		missingVars = append(missingVars, "PROJECT_KEY")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	return nil
}

package jira

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	gojira "github.com/andygrunwald/go-jira"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a client at a test server, bypassing NewClient's
// https URL construction.
func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()

	api, err := gojira.NewClient(srv.Client(), srv.URL)
	require.NoError(t, err)

	return &Client{
		domain:     "example.atlassian.net",
		baseURL:    srv.URL + "/rest/api/3",
		httpClient: srv.Client(),
		api:        api,
	}
}

func TestNewClientRequiresCredentials(t *testing.T) {
	testCases := []struct {
		name   string
		domain string
		email  string
		token  string
	}{
		{name: "Missing domain", domain: "", email: "dev@example.com", token: "tok"},
		{name: "Missing email", domain: "example.atlassian.net", email: "", token: "tok"},
		{name: "Missing token", domain: "example.atlassian.net", email: "dev@example.com", token: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewClient(tc.domain, tc.email, tc.token)
			assert.Error(t, err)
		})
	}

	client, err := NewClient("example.atlassian.net", "dev@example.com", "tok")
	require.NoError(t, err)
	assert.Equal(t, "example.atlassian.net", client.Domain())
}

func TestSearchIssues(t *testing.T) {
	var gotBody searchRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/rest/api/3/search/jql", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"total": 2,
			"issues": [
				{
					"key": "TLW-1",
					"fields": {
						"summary": "Plain description",
						"description": "just text",
						"status": {"name": "Open"},
						"issuetype": {"name": "Bug"}
					}
				},
				{
					"key": "TLW-2",
					"fields": {
						"summary": "Rich description",
						"description": {
							"type": "doc",
							"version": 1,
							"content": [
								{"type": "paragraph", "content": [{"type": "text", "text": "Hello"}]}
							]
						},
						"status": {"name": "In Progress"},
						"issuetype": {"name": "Task"}
					}
				}
			]
		}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	results, err := client.SearchIssues(`project = "TLW"`, 25)
	require.NoError(t, err)

	// Request carries the full field selection, including comments
	assert.Equal(t, `project = "TLW"`, gotBody.JQL)
	assert.Equal(t, 25, gotBody.MaxResults)
	assert.Contains(t, gotBody.Fields, "comment")
	assert.Contains(t, gotBody.Fields, "fixVersions")

	require.Len(t, results.Issues, 2)
	assert.Equal(t, 2, results.Total)

	// Plain string and ADF bodies both decode
	require.NotNil(t, results.Issues[0].Fields.Description)
	assert.Equal(t, "just text", results.Issues[0].Fields.Description.Text)
	require.NotNil(t, results.Issues[1].Fields.Description.Doc)
	assert.Equal(t, "doc", results.Issues[1].Fields.Description.Doc.Type)
}

func TestSearchIssuesRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"errorMessages": ["The project 'NOPE' does not exist"]}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	_, err := client.SearchIssues(`project = "NOPE"`, 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "The project 'NOPE' does not exist")
	assert.Contains(t, err.Error(), "400")
}

func TestGetIssue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/3/issue/TLW-42", r.URL.Path)
		require.Contains(t, r.URL.Query().Get("fields"), "description")

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"key": "TLW-42", "fields": {"summary": "A single issue", "status": {"name": "Open"}}}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	issue, err := client.GetIssue("TLW-42")
	require.NoError(t, err)
	assert.Equal(t, "TLW-42", issue.Key)
	assert.Equal(t, "A single issue", issue.Fields.Summary)
}

func TestGetIssueNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"errorMessages": ["Issue does not exist or you do not have permission to see it."]}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	_, err := client.GetIssue("TLW-404")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "TLW-404")
	assert.Contains(t, err.Error(), "Issue does not exist")
}

func TestTestConnection(t *testing.T) {
	t.Run("Success carries identity", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/rest/api/2/myself", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"displayName": "Dev Eloper", "emailAddress": "dev@example.com"}`)
		}))
		defer srv.Close()

		result := newTestClient(t, srv).TestConnection()
		assert.True(t, result.Success)
		assert.Equal(t, "Dev Eloper", result.User.DisplayName)
		assert.Equal(t, "dev@example.com", result.User.EmailAddress)
	})

	t.Run("Failure is a result, not an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		result := newTestClient(t, srv).TestConnection()
		assert.False(t, result.Success)
		assert.NotEmpty(t, result.Error)
	})
}

func TestBodyMarshalRoundTrip(t *testing.T) {
	// Raw snapshots must reproduce the body in its original shape
	adf := []byte(`{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"Hi"}]}]}`)

	var body Body
	require.NoError(t, json.Unmarshal(adf, &body))
	require.NotNil(t, body.Doc)

	out, err := json.Marshal(&body)
	require.NoError(t, err)
	assert.JSONEq(t, string(adf), string(out))

	var plain Body
	require.NoError(t, json.Unmarshal([]byte(`"text body"`), &plain))
	out, err = json.Marshal(&plain)
	require.NoError(t, err)
	assert.Equal(t, `"text body"`, string(out))
}

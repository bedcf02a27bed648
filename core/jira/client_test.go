package jira

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/gaurav-prasanna/adfpipe/core/adf"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(srv.URL+"/", "dev@example.com", "secret", WithHTTPClient(srv.Client()))
}

func sampleRequest() IssueRequest {
	return IssueRequest{
		ProjectKey: "OPS",
		Summary:    "Login button does nothing",
		IssueType:  "Bug",
		Description: adf.NewDocument(
			adf.NewParagraph(adf.Text{Text: "See"}, adf.InlineCard{URL: "https://x.com/a.png"}),
		),
	}
}

func TestCreateIssue_Success(t *testing.T) {
	t.Parallel()

	var body []byte
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/api/3/issue", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("dev@example.com:secret"))
		assert.Equal(t, wantAuth, r.Header.Get("Authorization"))

		var err error
		body, err = io.ReadAll(r.Body)
		assert.NoError(t, err)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"10042","key":"OPS-7","self":"https://jira.example.com/rest/api/3/issue/10042"}`))
	})

	issue, err := client.CreateIssue(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, "10042", issue.ID)
	assert.Equal(t, "OPS-7", issue.Key)
	assert.Equal(t, "https://jira.example.com/rest/api/3/issue/10042", issue.Self)
	assert.Equal(t, client.baseURL+"/browse/OPS-7", issue.Link)

	require.True(t, gjson.ValidBytes(body))
	assert.Equal(t, "OPS", gjson.GetBytes(body, "fields.project.key").String())
	assert.Equal(t, "Login button does nothing", gjson.GetBytes(body, "fields.summary").String())
	assert.Equal(t, "Bug", gjson.GetBytes(body, "fields.issuetype.name").String())
	assert.Equal(t, "doc", gjson.GetBytes(body, "fields.description.type").String())
	assert.Equal(t, int64(1), gjson.GetBytes(body, "fields.description.version").Int())
	assert.Equal(t, "inlineCard", gjson.GetBytes(body, "fields.description.content.0.content.1.type").String())
	assert.Equal(t, "https://x.com/a.png", gjson.GetBytes(body, "fields.description.content.0.content.1.attrs.url").String())
}

func TestCreateIssue_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		status       int
		body         string
		wantCategory error
		wantMessages []string
	}{
		{
			name:         "field errors",
			status:       http.StatusBadRequest,
			body:         `{"errorMessages":[],"errors":{"issuetype":"Specify a valid issue type"}}`,
			wantCategory: ErrInvalidIssue,
			wantMessages: []string{"issuetype: Specify a valid issue type"},
		},
		{
			name:         "error messages",
			status:       http.StatusBadRequest,
			body:         `{"errorMessages":["Project 'NOPE' does not exist."]}`,
			wantCategory: ErrInvalidIssue,
			wantMessages: []string{"Project 'NOPE' does not exist."},
		},
		{
			name:         "unauthorized",
			status:       http.StatusUnauthorized,
			body:         ``,
			wantCategory: ErrPermissionDenied,
			wantMessages: []string{"Unauthorized"},
		},
		{
			name:         "forbidden",
			status:       http.StatusForbidden,
			body:         `{"errorMessages":["You do not have permission to create issues in this project."]}`,
			wantCategory: ErrPermissionDenied,
			wantMessages: []string{"You do not have permission to create issues in this project."},
		},
		{
			name:         "server error without body",
			status:       http.StatusInternalServerError,
			body:         ``,
			wantCategory: ErrRemote,
			wantMessages: []string{"Internal Server Error"},
		},
		{
			name:         "html error page",
			status:       http.StatusBadGateway,
			body:         `<html><body>Bad gateway</body></html>`,
			wantCategory: ErrRemote,
			wantMessages: []string{"Bad Gateway"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			issue, err := client.CreateIssue(context.Background(), sampleRequest())
			require.Error(t, err)
			assert.Nil(t, issue)
			assert.ErrorIs(t, err, tt.wantCategory)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessages, apiErr.Messages)
			assert.Contains(t, err.Error(), "status code")
		})
	}
}

func TestCreateIssue_MissingKeyInResponse(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"1"}`))
	})

	_, err := client.CreateIssue(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing issue key")
}

func TestCreateIssue_ValidatesRequest(t *testing.T) {
	t.Parallel()

	called := false
	client := newTestClient(t, func(http.ResponseWriter, *http.Request) { called = true })

	req := sampleRequest()
	req.Summary = "   "
	_, err := client.CreateIssue(context.Background(), req)
	assert.EqualError(t, err, "summary is required")

	req = sampleRequest()
	req.ProjectKey = ""
	_, err = client.CreateIssue(context.Background(), req)
	assert.EqualError(t, err, "project key is required")

	assert.False(t, called)
}

func TestCreateIssue_CanceledContext(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.CreateIssue(ctx, sampleRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPayload_Defaults(t *testing.T) {
	t.Parallel()

	data, err := Payload(IssueRequest{ProjectKey: "OPS", Summary: "s"})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"fields": {
			"project": {"key": "OPS"},
			"summary": "s",
			"issuetype": {"name": "Task"},
			"description": {
				"type": "doc",
				"version": 1,
				"content": [{"type": "paragraph", "content": [{"type": "text", "text": ""}]}]
			}
		}
	}`, string(data))
}

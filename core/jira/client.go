// Package jira submits converted descriptions to Jira Cloud (REST API v3).
package jira

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/gaurav-prasanna/adfpipe/core/adf"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultIssueType = "Task"
	createIssuePath  = "/rest/api/3/issue"
)

// Error categories for a rejected submission. Test with errors.Is.
var (
	ErrInvalidIssue     = errors.New("issue rejected by Jira")
	ErrPermissionDenied = errors.New("permission denied by Jira")
	ErrRemote           = errors.New("Jira request failed")
)

// APIError is returned for any non-2xx response.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Messages are collected from errorMessages[] and errors{} of the body.
	Messages []string

	// Category is one of ErrInvalidIssue, ErrPermissionDenied or ErrRemote.
	Category error
}

// Error returns the category, the remote messages and the status code.
func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Category.Error())
	if len(e.Messages) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Messages, "; "))
	}
	fmt.Fprintf(&b, " (status code: %d)", e.StatusCode)
	return b.String()
}

// Unwrap returns the category for errors.Is.
func (e *APIError) Unwrap() error {
	return e.Category
}

// IssueRequest describes the issue to create.
type IssueRequest struct {
	ProjectKey  string
	Summary     string
	IssueType   string // defaults to "Task"
	Description *adf.Document
}

// Issue is a created issue.
type Issue struct {
	ID   string
	Key  string
	Self string
	Link string
}

// Client talks to one Jira site with basic auth.
type Client struct {
	baseURL    string
	email      string
	apiToken   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a Jira client.
func NewClient(baseURL, email, apiToken string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		email:    email,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type projectRef struct {
	Key string `json:"key"`
}

type issueTypeRef struct {
	Name string `json:"name"`
}

type issueFields struct {
	Project     projectRef    `json:"project"`
	Summary     string        `json:"summary"`
	IssueType   issueTypeRef  `json:"issuetype"`
	Description *adf.Document `json:"description"`
}

type createIssueBody struct {
	Fields issueFields `json:"fields"`
}

// Payload builds the JSON body of an issue-creation request.
func Payload(req IssueRequest) ([]byte, error) {
	issueType := req.IssueType
	if issueType == "" {
		issueType = defaultIssueType
	}
	description := req.Description
	if description == nil {
		description = adf.NewDocument()
	}

	body := createIssueBody{Fields: issueFields{
		Project:     projectRef{Key: req.ProjectKey},
		Summary:     req.Summary,
		IssueType:   issueTypeRef{Name: issueType},
		Description: description,
	}}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling issue: %w", err)
	}
	return data, nil
}

// CreateIssue creates an issue whose description is the given document.
func (c *Client) CreateIssue(ctx context.Context, req IssueRequest) (*Issue, error) {
	if req.ProjectKey == "" {
		return nil, errors.New("project key is required")
	}
	if strings.TrimSpace(req.Summary) == "" {
		return nil, errors.New("summary is required")
	}

	payload, err := Payload(req)
	if err != nil {
		return nil, err
	}

	url := c.baseURL + createIssuePath
	log.Debug().
		Str("url", url).
		Str("project", req.ProjectKey).
		Int64("paragraphs", gjson.GetBytes(payload, "fields.description.content.#").Int()).
		Msg("Creating Jira issue")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setAuthHeader(httpReq)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("creating issue: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp.StatusCode, body)
		log.Warn().
			Int("status", resp.StatusCode).
			Strs("messages", apiErr.Messages).
			Msg("Jira rejected issue")
		return nil, apiErr
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("decoding response: invalid JSON: %s", string(body))
	}
	result := gjson.ParseBytes(body)
	key := result.Get("key").String()
	if key == "" {
		return nil, errors.New("decoding response: missing issue key")
	}

	issue := &Issue{
		ID:   result.Get("id").String(),
		Key:  key,
		Self: result.Get("self").String(),
		Link: fmt.Sprintf("%s/browse/%s", c.baseURL, key),
	}
	log.Info().Str("key", issue.Key).Msg("Created Jira issue")
	return issue, nil
}

func (c *Client) setAuthHeader(req *http.Request) {
	auth := base64.StdEncoding.EncodeToString([]byte(c.email + ":" + c.apiToken))
	req.Header.Set("Authorization", "Basic "+auth)
}

// newAPIError maps a failed response onto an error category and collects the
// remote messages.
func newAPIError(status int, body []byte) *APIError {
	var category error
	switch status {
	case http.StatusBadRequest:
		category = ErrInvalidIssue
	case http.StatusUnauthorized, http.StatusForbidden:
		category = ErrPermissionDenied
	default:
		category = ErrRemote
	}

	var messages []string
	if gjson.ValidBytes(body) {
		result := gjson.ParseBytes(body)
		result.Get("errorMessages").ForEach(func(_, v gjson.Result) bool {
			if s := v.String(); s != "" {
				messages = append(messages, s)
			}
			return true
		})
		result.Get("errors").ForEach(func(k, v gjson.Result) bool {
			messages = append(messages, k.String()+": "+v.String())
			return true
		})
	}
	if len(messages) == 0 {
		if text := http.StatusText(status); text != "" {
			messages = append(messages, text)
		}
	}

	return &APIError{StatusCode: status, Messages: messages, Category: category}
}

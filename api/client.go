package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/gerunddev/repobrowse/tree"
	"github.com/google/uuid"
)

// Endpoint names.
const (
	GetRepositories  = "get_repositories"
	GetCommits       = "get_commits"
	GetDiffs         = "get_diffs"
	GetDirTree       = "get_dirtree"
	GetFileContents  = "get_filecontents"
	CreateRepository = "create_repository"
	DeleteRepository = "delete_repository"
)

const (
	// DefaultURL is where the bundled backend listens.
	DefaultURL = "http://localhost:3001/api"
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second
)

// Endpoint fixes the method and URL suffix of one backend call.
type Endpoint struct {
	Name   string
	Method string
	Path   string
}

var endpoints = map[string]Endpoint{
	GetRepositories:  {GetRepositories, http.MethodGet, "get_repositories"},
	GetCommits:       {GetCommits, http.MethodGet, "get_commits"},
	GetDiffs:         {GetDiffs, http.MethodGet, "get_diffs"},
	GetDirTree:       {GetDirTree, http.MethodGet, "get_dirtree"},
	GetFileContents:  {GetFileContents, http.MethodGet, "get_filecontents"},
	CreateRepository: {CreateRepository, http.MethodPost, "create_repository"},
	DeleteRepository: {DeleteRepository, http.MethodPost, "delete_repository"},
}

// LookupEndpoint returns the registry entry for name.
func LookupEndpoint(name string) (Endpoint, bool) {
	ep, ok := endpoints[name]
	return ep, ok
}

// Endpoints returns the registered endpoint names, sorted.
func Endpoints() []string {
	names := make([]string, 0, len(endpoints))
	for name := range endpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Client talks to one backend. It never retries and never caches.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout bounds every request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend URL the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Call invokes a registered endpoint and returns the raw "data" member of
// the response envelope, which is nil when the backend omitted it.
// Unknown endpoints fail before any request is made.
func (c *Client) Call(ctx context.Context, endpoint string, args map[string]string) (json.RawMessage, error) {
	ep, ok := endpoints[endpoint]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEndpoint, endpoint)
	}

	requestID := uuid.NewString()
	done := logOp(ep.Name, "request_id", requestID, "args", formatArgs(args))

	data, err := c.do(ctx, ep, args, requestID)
	done(err, "bytes", len(data))
	return data, err
}

func (c *Client) do(ctx context.Context, ep Endpoint, args map[string]string, requestID string) (json.RawMessage, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	values := url.Values{}
	for k, v := range args {
		values.Set(k, v)
	}

	target := c.baseURL + "/" + ep.Path
	var req *http.Request
	var err error
	if ep.Method == http.MethodPost {
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(values.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		if len(values) > 0 {
			target += "?" + values.Encode()
		}
		req, err = http.NewRequestWithContext(ctx, ep.Method, target, nil)
	}
	if err != nil {
		return nil, &TransportError{Endpoint: ep.Name, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: ep.Name, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: ep.Name, Status: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := truncate(strings.TrimSpace(string(body)), 200)
		return nil, &TransportError{Endpoint: ep.Name, Status: resp.StatusCode, Err: errors.New(msg)}
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &TransportError{Endpoint: ep.Name, Status: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return envelope.Data, nil
}

// Repositories lists repository names.
func (c *Client) Repositories(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.list(ctx, GetRepositories, nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// CreateRepository creates an empty repository. A {"success": false}
// answer is returned as a *RejectionError.
func (c *Client) CreateRepository(ctx context.Context, name string) error {
	return c.mutate(ctx, CreateRepository, name)
}

// DeleteRepository removes a repository. Deleting a repository that does
// not exist is a *RejectionError.
func (c *Client) DeleteRepository(ctx context.Context, name string) error {
	return c.mutate(ctx, DeleteRepository, name)
}

// Commits lists the commits of a repository in backend order (newest
// first).
func (c *Client) Commits(ctx context.Context, name string) ([]Commit, error) {
	var commits []Commit
	if err := c.list(ctx, GetCommits, map[string]string{"name": name}, &commits); err != nil {
		return nil, err
	}
	return commits, nil
}

// Diffs returns the diff texts of a commit against its first parent.
func (c *Client) Diffs(ctx context.Context, name, sha1 string) ([]string, error) {
	var diffs []string
	if err := c.list(ctx, GetDiffs, map[string]string{"name": name, "sha1": sha1}, &diffs); err != nil {
		return nil, err
	}
	return diffs, nil
}

// DirTree returns the directory tree of a repository at a commit.
func (c *Client) DirTree(ctx context.Context, name, sha1 string) (tree.Tree, error) {
	data, err := c.required(ctx, GetDirTree, map[string]string{"name": name, "sha1": sha1})
	if err != nil {
		return nil, err
	}
	t, err := tree.ParseEnvelope(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", GetDirTree, err)
	}
	return t, nil
}

// FileContents returns the contents of the file at path.
func (c *Client) FileContents(ctx context.Context, name, sha1, path string) (string, error) {
	data, err := c.required(ctx, GetFileContents, map[string]string{"name": name, "sha1": sha1, "path": path})
	if err != nil {
		return "", err
	}
	var contents string
	if err := json.Unmarshal(data, &contents); err != nil {
		return "", &TransportError{Endpoint: GetFileContents, Err: fmt.Errorf("failed to decode file contents: %w", err)}
	}
	return contents, nil
}

// list decodes an array payload; a missing or null payload is an empty
// list.
func (c *Client) list(ctx context.Context, endpoint string, args map[string]string, out any) error {
	data, err := c.Call(ctx, endpoint, args)
	if err != nil {
		return err
	}
	if isEmpty(data) {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Endpoint: endpoint, Err: fmt.Errorf("failed to decode data: %w", err)}
	}
	return nil
}

func (c *Client) required(ctx context.Context, endpoint string, args map[string]string) (json.RawMessage, error) {
	data, err := c.Call(ctx, endpoint, args)
	if err != nil {
		return nil, err
	}
	if isEmpty(data) {
		return nil, &RejectionError{Endpoint: endpoint, Reason: "empty data"}
	}
	return data, nil
}

func (c *Client) mutate(ctx context.Context, endpoint, name string) error {
	data, err := c.required(ctx, endpoint, map[string]string{"name": name})
	if err != nil {
		return err
	}
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return &TransportError{Endpoint: endpoint, Err: fmt.Errorf("failed to decode result: %w", err)}
	}
	if !result.Success {
		return &RejectionError{Endpoint: endpoint, Reason: "success: false"}
	}
	return nil
}

func isEmpty(data json.RawMessage) bool {
	s := strings.TrimSpace(string(data))
	return s == "" || s == "null"
}

// formatArgs renders args in key order for the request log.
func formatArgs(args map[string]string) string {
	if len(args) == 0 {
		return ""
	}
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + truncate(args[k], 100)
	}
	return strings.Join(parts, " ")
}

// Package ghapi provides a github.Client implementation backed by the GitHub
// REST v3 contents API.
package ghapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"essaybot/pkg/github"
	"essaybot/pkg/metrics"
	"essaybot/pkg/serrors"
)

// Client talks to the GitHub REST API and fulfills the github.Client
// interface. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs HTTP requests to the API
	baseURL    string       // baseURL is the API root, e.g. https://api.github.com
	token      string       // token is the personal access token
	owner      string       // owner is the account owning all target repositories
}

// Options configure a Client.
type Options struct {
	// BaseURL is the API root. Defaults to the public GitHub API when empty.
	BaseURL string
	// Token is the personal access token sent on every request.
	Token string
	// Owner is the account owning the content and image repositories.
	Owner string
}

// New constructs a Client that uses the provided http.Client and options to
// interact with the GitHub API.
func New(httpClient *http.Client, opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      opts.Token,
		owner:      opts.Owner,
	}
}

// ParseRateLimit extracts GitHub rate-limit information from response headers.
// GitHub reports the reset time as unix seconds, unlike some providers that
// use RFC3339 timestamps. Missing headers yield a zero status without error.
func ParseRateLimit(h http.Header) github.RateLimitStatus {
	atoi := func(s string) int {
		if s == "" {
			return 0
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}

		return 0
	}

	out := github.RateLimitStatus{
		Limit:     atoi(h.Get("X-RateLimit-Limit")),
		Remaining: atoi(h.Get("X-RateLimit-Remaining")),
	}
	if resetStr := h.Get("X-RateLimit-Reset"); resetStr != "" {
		if unix, err := strconv.ParseInt(resetStr, 10, 64); err == nil {
			out.ResetAt = time.Unix(unix, 0).UTC()
		}
	}

	return out
}

// contentsPath builds the contents API endpoint for a file reference.
func (c *Client) contentsPath(ref github.FileRef) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, c.owner, ref.Repo, ref.Path)
}

// do performs an authenticated request, records latency, and maps rate-limit
// rejections to semantic errors. The response body is returned fully read.
func (c *Client) do(ctx context.Context, operation, method, rawURL string, body any) ([]byte, int, error) {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("could not marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.GitHubRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, 0, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("could not read response body: %w", err)
	}

	rl := ParseRateLimit(resp.Header)
	// GitHub signals exhaustion either with 429 or with 403 plus a zero
	// remaining budget.
	if resp.StatusCode == http.StatusTooManyRequests ||
		(resp.StatusCode == http.StatusForbidden && rl.Remaining == 0 && !rl.ResetAt.IsZero()) {
		return b, resp.StatusCode,
			serrors.With(serrors.ErrRateLimited, "rate limited until %s", rl.ResetAt.Format(time.RFC3339))
	}

	return b, resp.StatusCode, nil
}

// GetFile fetches a file's decoded content and blob SHA. A 404 is reported as
// a not-found semantic error.
func (c *Client) GetFile(ctx context.Context, ref github.FileRef) (*github.File, error) {
	endpoint := c.contentsPath(ref)
	if ref.Branch != "" {
		endpoint += "?ref=" + url.QueryEscape(ref.Branch)
	}

	b, status, err := c.do(ctx, "get_file", http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, serrors.With(serrors.ErrNotFound, "file not found: %s", ref.Path)
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("get file failed: %s", strings.TrimSpace(string(b)))
	}

	var fileResp struct {
		Content string `json:"content"`
		SHA     string `json:"sha"`
	}
	if err := json.Unmarshal(b, &fileResp); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}

	// the contents API returns base64 with embedded newlines
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(fileResp.Content, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("could not decode file content: %w", err)
	}

	return &github.File{Content: raw, SHA: fileResp.SHA}, nil
}

// PutFile creates or updates a file through the contents API. For updates,
// sha must carry the current blob SHA. A 409 or a 422 caused by a stale SHA is
// reported as a conflict semantic error.
func (c *Client) PutFile(ctx context.Context, ref github.FileRef, content []byte, message, sha string) error {
	body := map[string]any{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
	}
	if sha != "" {
		body["sha"] = sha
	}
	if ref.Branch != "" {
		body["branch"] = ref.Branch
	}

	b, status, err := c.do(ctx, "put_file", http.MethodPut, c.contentsPath(ref), body)
	if err != nil {
		return err
	}
	if status == http.StatusConflict || status == http.StatusUnprocessableEntity {
		return serrors.With(serrors.ErrConflict, "put rejected: %s", strings.TrimSpace(string(b)))
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("put file failed: %s", strings.TrimSpace(string(b)))
	}

	return nil
}

// DeleteFile removes a file identified by its current blob SHA.
func (c *Client) DeleteFile(ctx context.Context, ref github.FileRef, message, sha string) error {
	body := map[string]any{
		"message": message,
		"sha":     sha,
	}
	if ref.Branch != "" {
		body["branch"] = ref.Branch
	}

	b, status, err := c.do(ctx, "delete_file", http.MethodDelete, c.contentsPath(ref), body)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return serrors.With(serrors.ErrNotFound, "file not found: %s", ref.Path)
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("delete file failed: %s", strings.TrimSpace(string(b)))
	}

	return nil
}

// ListDir lists a directory's entries through the contents API.
func (c *Client) ListDir(ctx context.Context, ref github.FileRef) ([]github.Entry, error) {
	endpoint := c.contentsPath(ref)
	if ref.Branch != "" {
		endpoint += "?ref=" + url.QueryEscape(ref.Branch)
	}

	b, status, err := c.do(ctx, "list_dir", http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, serrors.With(serrors.ErrNotFound, "directory not found: %s", ref.Path)
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("list dir failed: %s", strings.TrimSpace(string(b)))
	}

	var items []struct {
		Name string `json:"name"`
		Path string `json:"path"`
		SHA  string `json:"sha"`
		Type string `json:"type"`
	}
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}

	out := make([]github.Entry, 0, len(items))
	for _, it := range items {
		out = append(out, github.Entry{Name: it.Name, Path: it.Path, SHA: it.SHA, Type: it.Type})
	}

	return out, nil
}

// VerifyToken checks the configured token against the user endpoint and
// returns the authenticated login. Invalid tokens map to an unauthorized
// semantic error.
func (c *Client) VerifyToken(ctx context.Context) (string, error) {
	b, status, err := c.do(ctx, "verify_token", http.MethodGet, c.baseURL+"/user", nil)
	if err != nil {
		return "", err
	}
	if status == http.StatusUnauthorized {
		return "", serrors.With(serrors.ErrUnauthorized, "invalid GitHub token")
	}
	if status < 200 || status >= 300 {
		return "", fmt.Errorf("verify token failed: %s", strings.TrimSpace(string(b)))
	}

	var userResp struct {
		Login string `json:"login"`
	}
	if err := json.Unmarshal(b, &userResp); err != nil {
		return "", fmt.Errorf("could not decode response: %w", err)
	}

	return userResp.Login, nil
}

// Ensure Client conforms to the github.Client interface at compile time.
var _ github.Client = (*Client)(nil)

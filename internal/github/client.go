// Package github fetches public repository metadata from the GitHub REST
// API.
//
// This is the only external network call in the system. It is made
// unauthenticated — public repository listings don't need a token, at the
// cost of GitHub's lower unauthenticated rate limit. The client enforces a
// request timeout so a slow upstream cannot hold a PATCH request open
// forever.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/userverse/userverse/internal/model"
)

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

// DefaultTimeout bounds a single repository fetch.
const DefaultTimeout = 10 * time.Second

// Client calls the GitHub repository-listing API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a Client. An empty baseURL selects the public GitHub API;
// tests point it at an httptest server. A zero timeout selects the default.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// repo is the slice of GitHub's repository object we care about. GitHub
// returns a much larger object — we only unmarshal the fields we need.
type repo struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	FullName    string  `json:"full_name"`
	Description *string `json:"description"`
}

// FetchRepos lists the public repositories of a GitHub user and maps them
// to RepoInsight values.
//
// GET {base}/users/{user}/repos?sort=updated&per_page=100
//
// Failure modes, all surfaced as errors to the caller:
//   - 404: the GitHub user does not exist
//   - any other non-2xx status
//   - a response body that is not a JSON array
func (c *Client) FetchRepos(ctx context.Context, gitUserName string) ([]model.RepoInsight, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=100",
		c.baseURL, url.PathEscape(gitUserName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("github: building request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "userverse-api")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github: calling repos API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("github: GitHub user '%s' not found", gitUserName)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("github: GitHub API returned status %d", resp.StatusCode)
	}

	// Decode strictly as an array. json.Decoder into a slice fails on an
	// object body (e.g. a rate-limit error document), which is exactly the
	// "unexpected response format" case.
	var repos []repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("github: unexpected response format: %w", err)
	}

	insights := make([]model.RepoInsight, 0, len(repos))
	for _, r := range repos {
		insights = append(insights, model.RepoInsight{
			ID:          r.ID,
			Name:        r.Name,
			FullName:    r.FullName,
			Description: r.Description,
		})
	}

	c.logger.Debug("fetched GitHub repositories",
		slog.String("user", gitUserName),
		slog.Int("count", len(insights)),
	)
	return insights, nil
}

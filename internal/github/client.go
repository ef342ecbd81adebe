// Package github provides a client for the GitHub pull request API.
package github

import "context"

// PullRequestInfo contains information about a pull request.
// This is a simplified struct to avoid coupling to go-github library
type PullRequestInfo struct {
	Number  int
	URL     string // API URL, resolved against the API endpoint
	HTMLURL string
	Draft   bool
}

// CreatePROptions contains options for creating a pull request
type CreatePROptions struct {
	Title string
	Head  string
	Base  string
	Draft bool
}

// UpdatePROptions contains options for updating a pull request
type UpdatePROptions struct {
	Base string
	Head string
}

// Client is an interface for GitHub API interactions
type Client interface {
	// CreatePullRequest creates a new pull request
	CreatePullRequest(ctx context.Context, owner, repo string, opts CreatePROptions) (*PullRequestInfo, error)

	// UpdatePullRequest sends one update to the pull request at its API URL
	UpdatePullRequest(ctx context.Context, pullURL string, opts UpdatePROptions) error
}

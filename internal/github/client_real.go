package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	stacktrackerrors "stacktrack.dev/stacktrack/internal/errors"
)

// RealClient implements Client using the GitHub REST API
type RealClient struct {
	client  *github.Client
	baseURL *url.URL
}

var _ Client = (*RealClient)(nil)

// NewRealClient creates a client for the API at apiURL authenticated with token
func NewRealClient(ctx context.Context, apiURL, token string) (*RealClient, error) {
	if token == "" {
		return nil, fmt.Errorf("no GitHub token: set GITHUB_TOKEN or log in with gh")
	}

	baseURL, err := url.Parse(apiURL)
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("invalid GitHub API endpoint %q", apiURL)
	}
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	client := github.NewClient(oauth2.NewClient(ctx, ts))
	client.BaseURL = baseURL
	client.UploadURL = baseURL

	return &RealClient{client: client, baseURL: baseURL}, nil
}

// CreatePullRequest creates a new pull request
func (c *RealClient) CreatePullRequest(ctx context.Context, owner, repo string, opts CreatePROptions) (*PullRequestInfo, error) {
	pr := &github.NewPullRequest{
		Title: github.String(opts.Title),
		Head:  github.String(opts.Head),
		Base:  github.String(opts.Base),
		Draft: github.Bool(opts.Draft),
	}

	createdPR, resp, err := c.client.PullRequests.Create(ctx, owner, repo, pr)
	if err != nil {
		return nil, apiError("create pull request", resp, err)
	}
	return c.toPullRequestInfo(createdPR), nil
}

// UpdatePullRequest sets the head and base of the pull request at pullURL
func (c *RealClient) UpdatePullRequest(ctx context.Context, pullURL string, opts UpdatePROptions) error {
	body := map[string]string{
		"head": opts.Head,
		"base": opts.Base,
	}
	req, err := c.client.NewRequest(http.MethodPatch, pullURL, body)
	if err != nil {
		return fmt.Errorf("failed to build update request for %s: %w", pullURL, err)
	}

	resp, err := c.client.Do(ctx, req, nil)
	if err != nil {
		return apiError("update pull request", resp, err)
	}
	return nil
}

// toPullRequestInfo converts a github.PullRequest to PullRequestInfo
func (c *RealClient) toPullRequestInfo(pr *github.PullRequest) *PullRequestInfo {
	info := &PullRequestInfo{
		Number:  pr.GetNumber(),
		HTMLURL: pr.GetHTMLURL(),
		Draft:   pr.GetDraft(),
	}
	if raw := pr.GetURL(); raw != "" {
		if ref, err := url.Parse(raw); err == nil {
			info.URL = c.baseURL.ResolveReference(ref).String()
		} else {
			info.URL = raw
		}
	}
	return info
}

func apiError(operation string, resp *github.Response, err error) error {
	status := 0
	if resp != nil && resp.Response != nil {
		status = resp.StatusCode
	}

	message := ""
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		message = errResp.Message
	}
	return stacktrackerrors.NewHostingAPIError(operation, status, message, err)
}

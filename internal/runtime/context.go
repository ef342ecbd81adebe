package runtime

import (
	"context"

	"stacktrack.dev/stacktrack/internal/config"
	"stacktrack.dev/stacktrack/internal/engine"
	"stacktrack.dev/stacktrack/internal/git"
	"stacktrack.dev/stacktrack/internal/github"
	"stacktrack.dev/stacktrack/internal/tui"
)

// GitHubClientFactory builds the hosting client on first use
type GitHubClientFactory func(ctx context.Context) (github.Client, error)

// Context provides access to the graph, git and output for commands
type Context struct {
	Context  context.Context
	Config   *config.Config
	Git      git.Runner
	Graph    *engine.Graph
	Splog    *tui.Splog
	Prompter tui.Prompter

	RepoRoot  string
	GraphPath string
	Trunk     string

	NewGitHubClient GitHubClientFactory
	gitHubClient    github.Client
}

// NewContext creates a context around an already loaded graph
func NewContext(ctx context.Context, runner git.Runner, graph *engine.Graph, splog *tui.Splog) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if splog == nil {
		splog = tui.NewSplog()
	}
	trunk, _ := graph.Root()
	return &Context{
		Context:  ctx,
		Config:   &config.Config{GitHubAPI: config.DefaultGitHubAPI, GraphFile: config.DefaultGraphFile},
		Git:      runner,
		Graph:    graph,
		Splog:    splog,
		Prompter: &tui.SurveyPrompter{},
		RepoRoot: runner.RepoRoot(),
		Trunk:    trunk,
	}
}

// GitHubClient returns the hosting client, creating it on first use
func (c *Context) GitHubClient() (github.Client, error) {
	if c.gitHubClient != nil {
		return c.gitHubClient, nil
	}
	if c.NewGitHubClient == nil {
		return nil, errNoGitHubClient
	}
	client, err := c.NewGitHubClient(c.Context)
	if err != nil {
		return nil, err
	}
	c.gitHubClient = client
	return client, nil
}

// SetGitHubClient installs a ready client
func (c *Context) SetGitHubClient(client github.Client) {
	c.gitHubClient = client
}

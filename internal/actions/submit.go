package actions

import (
	stacktrackerrors "stacktrack.dev/stacktrack/internal/errors"
	"stacktrack.dev/stacktrack/internal/github"
	"stacktrack.dev/stacktrack/internal/output"
	"stacktrack.dev/stacktrack/internal/runtime"
)

// DefaultPullRequestTitle is used when submit is called without a title
const DefaultPullRequestTitle = "Untitled Pull Request"

// submitRemote is the remote whose push URL names the hosting repository
const submitRemote = "origin"

// SubmitOptions contains options for the submit command
type SubmitOptions struct {
	Title string
}

// createStrategy is one attempt at opening a pull request
type createStrategy struct {
	name  string
	draft bool
}

// createStrategies are tried in order; a later one is used only when the
// hosting service rejects drafts.
var createStrategies = []createStrategy{
	{name: "draft", draft: true},
	{name: "ready", draft: false},
}

// Submit opens a pull request for the checked out branch against its parent,
// or retargets the one already recorded for it.
func Submit(ctx *runtime.Context, opts SubmitOptions) error {
	node, parent, err := activeBranch(ctx)
	if err != nil {
		return err
	}

	client, err := ctx.GitHubClient()
	if err != nil {
		return err
	}

	gctx := ctx.Context
	if node.PullURL != "" {
		if err := client.UpdatePullRequest(gctx, node.PullURL, github.UpdatePROptions{
			Base: parent.Name,
			Head: node.Name,
		}); err != nil {
			return err
		}
		ctx.Splog.Info("Updated pull request for %s to merge into %s.",
			output.ColorBranchName(node.Name, true),
			output.ColorBranchName(parent.Name, false))
		return nil
	}

	pushURL, err := ctx.Git.PushURL(gctx, submitRemote)
	if err != nil {
		return err
	}
	repo, err := github.ParseRemoteForAPI(submitRemote, pushURL, ctx.Config.GitHubAPI)
	if err != nil {
		return err
	}

	title := opts.Title
	if title == "" {
		title = DefaultPullRequestTitle
	}

	var lastErr error
	for _, strategy := range createStrategies {
		pr, err := client.CreatePullRequest(gctx, repo.Owner, repo.Repo, github.CreatePROptions{
			Title: title,
			Head:  node.Name,
			Base:  parent.Name,
			Draft: strategy.draft,
		})
		if err != nil {
			if strategy.draft && stacktrackerrors.IsDraftUnsupported(err) {
				ctx.Splog.Debug("Draft pull requests rejected for %s/%s, retrying without draft", repo.Owner, repo.Repo)
				lastErr = err
				continue
			}
			return err
		}

		if err := ctx.Graph.SetPullURL(node.Name, pr.URL); err != nil {
			return err
		}
		ctx.Splog.Info("Created %s pull request %s for %s: %s",
			strategy.name,
			output.ColorPRNumber(pr.Number),
			output.ColorBranchName(node.Name, true),
			pr.HTMLURL)
		return nil
	}
	return lastErr
}

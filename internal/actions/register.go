package actions

import (
	"stacktrack.dev/stacktrack/internal/engine"
	"stacktrack.dev/stacktrack/internal/git"
	"stacktrack.dev/stacktrack/internal/output"
	"stacktrack.dev/stacktrack/internal/runtime"
)

// RegisterOptions carries the arguments git passes to the post-checkout hook
type RegisterOptions struct {
	// ParentSHA is the sha HEAD pointed at after the checkout
	ParentSHA string
	// BranchFlag is "1" for a branch checkout and "0" for a file checkout
	BranchFlag string
}

// Register starts tracking a newly checked out branch on top of the tracked
// node whose recorded sha matches the hook's sha.
func Register(ctx *runtime.Context, opts RegisterOptions) error {
	if opts.BranchFlag != "1" {
		return nil
	}

	gctx := ctx.Context
	name, head, err := ctx.Git.CurrentBranch(gctx)
	if err != nil {
		return err
	}
	if name == git.DetachedHead || ctx.Graph.Has(name) {
		return nil
	}

	parent, ok := ctx.Graph.FindBySHA(opts.ParentSHA)
	if !ok {
		ctx.Splog.Debug("No tracked branch at %s, not tracking %s", opts.ParentSHA, name)
		return nil
	}
	parentNode, _ := ctx.Graph.Node(parent)

	history, err := ctx.Git.CommitHistory(gctx, head)
	if err != nil {
		return err
	}
	base := head
	for _, sha := range history {
		if sha == parentNode.SHA {
			base = sha
			break
		}
	}

	if err := ctx.Graph.AddNode(engine.Node{Name: name, SHA: head, Base: base}); err != nil {
		return err
	}
	if err := ctx.Graph.AddEdge(parent, name); err != nil {
		return err
	}

	ctx.Splog.Info("Tracking %s on top of %s.", output.ColorBranchName(name, true), output.ColorBranchName(parent, false))
	return nil
}

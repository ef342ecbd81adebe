package actions

import (
	"stacktrack.dev/stacktrack/internal/git"
	"stacktrack.dev/stacktrack/internal/output"
	"stacktrack.dev/stacktrack/internal/runtime"
)

// Restack rebases the checked out branch onto the recorded tip of its parent
func Restack(ctx *runtime.Context) error {
	node, parent, err := activeBranch(ctx)
	if err != nil {
		return err
	}

	gctx := git.WithOperation(ctx.Context, "restack")
	if err := ctx.Git.Rebase(gctx, parent.SHA); err != nil {
		printConflictStatus(ctx, err)
		return err
	}

	tip, err := ctx.Git.Revision(gctx, node.Name)
	if err != nil {
		return err
	}
	if err := ctx.Graph.SetBase(node.Name, parent.SHA); err != nil {
		return err
	}
	if err := ctx.Graph.SetSHA(node.Name, tip); err != nil {
		return err
	}

	ctx.Splog.Info("Restacked %s on %s.",
		output.ColorBranchName(node.Name, true),
		output.ColorBranchName(parent.Name, false))
	return nil
}

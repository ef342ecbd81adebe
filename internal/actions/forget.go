package actions

import (
	stacktrackerrors "stacktrack.dev/stacktrack/internal/errors"
	"stacktrack.dev/stacktrack/internal/output"
	"stacktrack.dev/stacktrack/internal/runtime"
)

// ForgetOptions contains options for the forget command
type ForgetOptions struct {
	Branch string
}

// Forget stops tracking a leaf branch. The git branch itself is untouched.
func Forget(ctx *runtime.Context, opts ForgetOptions) error {
	branch := opts.Branch
	if !ctx.Graph.Has(branch) {
		return stacktrackerrors.NewUnknownBranchError(branch)
	}
	if root, ok := ctx.Graph.Root(); ok && root == branch {
		return stacktrackerrors.NewTopologyError(branch, "cannot forget the trunk")
	}

	current, _, err := ctx.Git.CurrentBranch(ctx.Context)
	if err != nil {
		return err
	}
	if current == branch {
		return stacktrackerrors.NewTopologyError(branch, "cannot forget the checked out branch")
	}

	if children := ctx.Graph.Children(branch); len(children) > 0 {
		return stacktrackerrors.NewTopologyError(branch, "cannot forget a branch with %d children", len(children))
	}

	if err := ctx.Graph.RemoveNode(branch); err != nil {
		return err
	}
	ctx.Splog.Info("Stopped tracking %s.", output.ColorBranchName(branch, false))
	return nil
}

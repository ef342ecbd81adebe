package actions

import (
	"errors"

	"stacktrack.dev/stacktrack/internal/engine"
	stacktrackerrors "stacktrack.dev/stacktrack/internal/errors"
	"stacktrack.dev/stacktrack/internal/git"
	"stacktrack.dev/stacktrack/internal/output"
	"stacktrack.dev/stacktrack/internal/runtime"
)

// activeBranch returns the checked out node and its parent. The node must be
// tracked, have exactly one parent and a recorded sha equal to its tip.
func activeBranch(ctx *runtime.Context) (engine.Node, engine.Node, error) {
	name, tip, err := ctx.Git.CurrentBranch(ctx.Context)
	if err != nil {
		return engine.Node{}, engine.Node{}, err
	}
	if name == git.DetachedHead {
		return engine.Node{}, engine.Node{}, stacktrackerrors.ErrNotOnBranch
	}

	node, ok := ctx.Graph.Node(name)
	if !ok {
		return engine.Node{}, engine.Node{}, stacktrackerrors.NewUnknownBranchError(name)
	}

	parents := ctx.Graph.Parents(name)
	if len(parents) != 1 {
		return engine.Node{}, engine.Node{}, stacktrackerrors.NewTopologyError(name, "expected exactly one parent, found %d", len(parents))
	}

	if node.SHA != tip {
		return engine.Node{}, engine.Node{}, stacktrackerrors.NewStaleStateError(name, node.SHA, tip)
	}

	parent, _ := ctx.Graph.Node(parents[0])
	return node, parent, nil
}

// printConflictStatus explains how to finish a rebase that stopped on a conflict
func printConflictStatus(ctx *runtime.Context, err error) {
	var conflict *stacktrackerrors.RebaseConflictError
	if !errors.As(err, &conflict) {
		return
	}
	ctx.Splog.Warn("Hit conflict rebasing %s.", output.ColorBranchName(conflict.BranchName, false))
	if conflict.Message != "" {
		ctx.Splog.Info("%s", conflict.Message)
	}
	ctx.Splog.Tip("Resolve the conflicts, then run git rebase --continue or git rebase --abort.")
}

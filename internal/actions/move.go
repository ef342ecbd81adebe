package actions

import (
	"context"

	stacktrackerrors "stacktrack.dev/stacktrack/internal/errors"
	"stacktrack.dev/stacktrack/internal/git"
	"stacktrack.dev/stacktrack/internal/output"
	"stacktrack.dev/stacktrack/internal/runtime"
)

// MoveOptions contains options for the move-onto command
type MoveOptions struct {
	Onto string // Branch to move the checked out branch onto
}

// MoveReport describes what a move did to the moved branch and its descendants
type MoveReport struct {
	Branch    string
	OldParent string
	NewParent string
	// Moved lists the branches that were rebased, the moved branch first
	Moved []string
	// Failed is the descendant whose rebase stopped on a conflict
	Failed string
	// Skipped lists the descendants left untouched after Failed
	Skipped []string
	NoOp    bool
}

// Move rebases the checked out branch onto another tracked branch and then
// restacks every descendant onto its rebased parent.
func Move(ctx *runtime.Context, opts MoveOptions) (*MoveReport, error) {
	node, oldParent, err := activeBranch(ctx)
	if err != nil {
		return nil, err
	}

	onto := opts.Onto
	newParent, ok := ctx.Graph.Node(onto)
	if !ok {
		return nil, stacktrackerrors.NewUnknownBranchError(onto)
	}
	if onto == node.Name {
		return nil, stacktrackerrors.NewTopologyError(node.Name, "cannot move a branch onto itself")
	}
	if ctx.Graph.IsDescendant(node.Name, onto) {
		return nil, stacktrackerrors.NewTopologyError(node.Name, "cannot move onto descendant %s", onto)
	}

	report := &MoveReport{Branch: node.Name, OldParent: oldParent.Name, NewParent: onto}
	if onto == oldParent.Name {
		report.NoOp = true
		ctx.Splog.Info("%s is already on %s.", output.ColorBranchName(node.Name, true), output.ColorBranchName(onto, false))
		return report, nil
	}

	gctx := git.WithOperation(ctx.Context, "move")
	if err := ctx.Git.RebaseOnto(gctx, newParent.SHA, node.Base, node.Name); err != nil {
		printConflictStatus(ctx, err)
		return report, err
	}

	tip, err := ctx.Git.Revision(gctx, node.Name)
	if err != nil {
		return report, err
	}
	if err := ctx.Graph.SetBase(node.Name, newParent.SHA); err != nil {
		return report, err
	}
	if err := ctx.Graph.SetSHA(node.Name, tip); err != nil {
		return report, err
	}
	if err := ctx.Graph.RemoveEdge(oldParent.Name, node.Name); err != nil {
		return report, err
	}
	if err := ctx.Graph.AddEdge(onto, node.Name); err != nil {
		return report, err
	}
	report.Moved = append(report.Moved, node.Name)

	ctx.Splog.Info("Moved %s from %s to %s.",
		output.ColorBranchName(node.Name, true),
		output.ColorBranchName(oldParent.Name, false),
		output.ColorBranchName(onto, false))

	descendants := ctx.Graph.Descendants(node.Name)
	for i, child := range descendants {
		if err := restackChild(gctx, ctx, child); err != nil {
			report.Failed = child
			report.Skipped = append([]string(nil), descendants[i+1:]...)
			printConflictStatus(ctx, err)
			for _, skipped := range report.Skipped {
				ctx.Splog.Warn("Skipped %s.", output.ColorBranchName(skipped, false))
			}
			return report, err
		}
		report.Moved = append(report.Moved, child)
	}

	if len(descendants) > 0 {
		if err := ctx.Git.Checkout(gctx, node.Name); err != nil {
			return report, err
		}
	}
	return report, nil
}

// restackChild replays child onto the current tip of its parent. Parents are
// always visited first, so the parent's sha is already the rebased one.
func restackChild(gctx context.Context, ctx *runtime.Context, child string) error {
	parentName, _ := ctx.Graph.Parent(child)
	parent, _ := ctx.Graph.Node(parentName)

	if err := ctx.Git.Checkout(gctx, child); err != nil {
		return err
	}
	tip, err := ctx.Git.Revision(gctx, child)
	if err != nil {
		return err
	}
	if err := ctx.Graph.SetSHA(child, tip); err != nil {
		return err
	}

	node, _ := ctx.Graph.Node(child)
	if err := ctx.Git.RebaseOnto(gctx, parent.SHA, node.Base, child); err != nil {
		return err
	}

	newTip, err := ctx.Git.Revision(gctx, child)
	if err != nil {
		return err
	}
	if err := ctx.Graph.SetBase(child, parent.SHA); err != nil {
		return err
	}
	if err := ctx.Graph.SetSHA(child, newTip); err != nil {
		return err
	}

	ctx.Splog.Info("Restacked %s on %s.",
		output.ColorBranchName(child, false),
		output.ColorBranchName(parentName, false))
	return nil
}

package actions

import (
	"fmt"

	"stacktrack.dev/stacktrack/internal/git"
	"stacktrack.dev/stacktrack/internal/output"
	"stacktrack.dev/stacktrack/internal/runtime"
)

// Synchronize records the current tips of the trunk and the checked out branch.
// Untracked branches and a detached HEAD are left alone.
func Synchronize(ctx *runtime.Context) error {
	gctx := ctx.Context

	trunk, trunkSHA, err := ctx.Git.TrunkBranch(gctx)
	if err != nil {
		return err
	}
	if ctx.Graph.Has(trunk) {
		if err := ctx.Graph.SetSHA(trunk, trunkSHA); err != nil {
			return err
		}
	}

	name, tip, err := ctx.Git.CurrentBranch(gctx)
	if err != nil {
		return err
	}
	if name == git.DetachedHead {
		ctx.Splog.Debug("HEAD is detached, nothing to synchronize")
		return nil
	}
	if !ctx.Graph.Has(name) {
		ctx.Splog.Debug("%s is not tracked, nothing to synchronize", name)
		return nil
	}

	if err := ctx.Graph.SetSHA(name, tip); err != nil {
		return err
	}

	parent, ok := ctx.Graph.Parent(name)
	if !ok {
		return nil
	}
	base, err := ctx.Git.MergeBase(gctx, parentRevision(ctx, parent), name)
	if err != nil {
		return fmt.Errorf("failed to find merge base of %s and %s (run stacktrack move-onto to choose a new parent): %w", parent, name, err)
	}
	return ctx.Graph.SetBase(name, base)
}

// parentRevision resolves parent by name, falling back to its recorded tip
// once the branch has been deleted in git.
func parentRevision(ctx *runtime.Context, parent string) string {
	if _, err := ctx.Git.Revision(ctx.Context, parent); err == nil {
		return parent
	}
	node, ok := ctx.Graph.Node(parent)
	if !ok || node.SHA == "" {
		return parent
	}
	ctx.Splog.Warn("Parent branch %s no longer exists, using its last recorded tip %s.", parent, output.ShortSHA(node.SHA))
	ctx.Splog.Tip("Run stacktrack move-onto to choose a new parent.")
	return node.SHA
}

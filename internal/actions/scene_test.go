package actions_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"stacktrack.dev/stacktrack/internal/actions"
	"stacktrack.dev/stacktrack/internal/engine"
	stacktrackerrors "stacktrack.dev/stacktrack/internal/errors"
	"stacktrack.dev/stacktrack/internal/git"
	"stacktrack.dev/stacktrack/internal/runtime"
	"stacktrack.dev/stacktrack/internal/tui"
	"stacktrack.dev/stacktrack/testhelpers"
)

// createBranch branches off the checked out branch and commits one change
func createBranch(t *testing.T, scene *testhelpers.Scene, name string) {
	t.Helper()
	require.NoError(t, scene.Repo.CreateAndCheckoutBranch(name))
	require.NoError(t, scene.Repo.CreateChangeAndCommit(name, name))
}

// track records branch in g on top of parent, as the post-checkout hook would
func track(t *testing.T, scene *testhelpers.Scene, g *engine.Graph, parent, branch string) {
	t.Helper()
	sha, err := scene.Repo.GetRevision(branch)
	require.NoError(t, err)
	base, err := scene.Repo.MergeBase(parent, branch)
	require.NoError(t, err)
	require.NoError(t, g.AddNode(engine.Node{Name: branch, SHA: sha, Base: base}))
	require.NoError(t, g.AddEdge(parent, branch))
}

func newSceneContext(t *testing.T, scene *testhelpers.Scene, g *engine.Graph) *runtime.Context {
	t.Helper()
	splog, err := tui.NewSplogWithOptions(tui.SplogOptions{Writer: io.Discard})
	require.NoError(t, err)
	runner, err := git.NewRealRunner(scene.Dir, splog)
	require.NoError(t, err)
	ctx := runtime.NewContext(context.Background(), runner, g, splog)
	require.NoError(t, actions.Synchronize(ctx))
	return ctx
}

func TestRestackScene(t *testing.T) {
	t.Run("rebases a branch onto its moved parent", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		createBranch(t, scene, "b1")
		require.NoError(t, scene.Repo.CheckoutBranch("main"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("2", "2"))

		g := engine.NewTrunkGraph("main")
		track(t, scene, g, "main", "b1")
		require.NoError(t, scene.Repo.CheckoutBranch("b1"))

		before, err := scene.Repo.ListCurrentBranchCommitMessages()
		require.NoError(t, err)
		require.Equal(t, []string{"b1", "1"}, before)

		ctx := newSceneContext(t, scene, g)
		require.NoError(t, actions.Restack(ctx))

		messages, err := scene.Repo.ListCurrentBranchCommitMessages()
		require.NoError(t, err)
		require.Equal(t, []string{"b1", "2", "1"}, messages)

		mainSHA, err := scene.Repo.GetRevision("main")
		require.NoError(t, err)
		b1SHA, err := scene.Repo.GetRevision("b1")
		require.NoError(t, err)
		require.True(t, scene.Repo.IsAncestor("main", "b1"))

		node, _ := g.Node("b1")
		require.Equal(t, mainSHA, node.Base)
		require.Equal(t, b1SHA, node.SHA)
	})

	t.Run("conflict leaves the rebase stopped", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateAndCheckoutBranch("b1"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("from b1", "shared"))
		require.NoError(t, scene.Repo.CheckoutBranch("main"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("from main", "shared"))

		g := engine.NewTrunkGraph("main")
		track(t, scene, g, "main", "b1")
		require.NoError(t, scene.Repo.CheckoutBranch("b1"))

		ctx := newSceneContext(t, scene, g)
		before := g.Clone()

		err := actions.Restack(ctx)
		require.ErrorIs(t, err, stacktrackerrors.ErrRebaseConflict)
		require.True(t, scene.Repo.RebaseInProgress())
		require.True(t, before.Equal(g))
		require.NoError(t, scene.Repo.AbortRebase())
	})
}

func TestMoveScene(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	createBranch(t, scene, "b1")
	createBranch(t, scene, "b2")
	createBranch(t, scene, "b3")
	createBranch(t, scene, "b4")
	require.NoError(t, scene.Repo.CheckoutBranch("main"))
	createBranch(t, scene, "c1")

	g := engine.NewTrunkGraph("main")
	track(t, scene, g, "main", "b1")
	track(t, scene, g, "b1", "b2")
	track(t, scene, g, "b2", "b3")
	track(t, scene, g, "b3", "b4")
	track(t, scene, g, "main", "c1")
	require.NoError(t, scene.Repo.CheckoutBranch("b2"))
	b1Before, _ := g.Node("b1")
	b1Revision, err := scene.Repo.GetRevision("b1")
	require.NoError(t, err)

	ctx := newSceneContext(t, scene, g)
	report, err := actions.Move(ctx, actions.MoveOptions{Onto: "c1"})
	require.NoError(t, err)
	require.Equal(t, []string{"b2", "b3", "b4"}, report.Moved)

	current, err := scene.Repo.CurrentBranchName()
	require.NoError(t, err)
	require.Equal(t, "b2", current)

	require.True(t, scene.Repo.IsAncestor("c1", "b2"))
	require.True(t, scene.Repo.IsAncestor("b2", "b3"))
	require.True(t, scene.Repo.IsAncestor("b3", "b4"))
	require.False(t, scene.Repo.IsAncestor("b1", "b2"))

	require.NoError(t, scene.Repo.CheckoutBranch("b4"))
	messages, err := scene.Repo.ListCurrentBranchCommitMessages()
	require.NoError(t, err)
	require.Equal(t, []string{"b4", "b3", "b2", "c1", "1"}, messages)

	c1SHA, _ := scene.Repo.GetRevision("c1")
	b2SHA, _ := scene.Repo.GetRevision("b2")
	b3SHA, _ := scene.Repo.GetRevision("b3")
	b4SHA, _ := scene.Repo.GetRevision("b4")
	b2, _ := g.Node("b2")
	b3, _ := g.Node("b3")
	b4, _ := g.Node("b4")
	require.Equal(t, c1SHA, b2.Base)
	require.Equal(t, b2SHA, b2.SHA)
	require.Equal(t, b2SHA, b3.Base)
	require.Equal(t, b3SHA, b3.SHA)
	require.Equal(t, b3SHA, b4.Base)
	require.Equal(t, b4SHA, b4.SHA)
	parent, _ := g.Parent("b2")
	require.Equal(t, "c1", parent)

	b1After, _ := g.Node("b1")
	require.Equal(t, b1Before, b1After)
	b1Now, err := scene.Repo.GetRevision("b1")
	require.NoError(t, err)
	require.Equal(t, b1Revision, b1Now)
}

func TestRegisterScene(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	createBranch(t, scene, "b1")

	g := engine.NewTrunkGraph("main")
	track(t, scene, g, "main", "b1")

	b1SHA, err := scene.Repo.GetRevision("b1")
	require.NoError(t, err)
	require.NoError(t, scene.Repo.CreateAndCheckoutBranch("b2"))

	ctx := newSceneContext(t, scene, g)
	require.NoError(t, actions.Register(ctx, actions.RegisterOptions{ParentSHA: b1SHA, BranchFlag: "1"}))

	node, ok := g.Node("b2")
	require.True(t, ok)
	require.Equal(t, b1SHA, node.SHA)
	require.Equal(t, b1SHA, node.Base)
	parent, _ := g.Parent("b2")
	require.Equal(t, "b1", parent)
}

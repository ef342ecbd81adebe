package actions_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"stacktrack.dev/stacktrack/internal/engine"
	stacktrackerrors "stacktrack.dev/stacktrack/internal/errors"
	"stacktrack.dev/stacktrack/internal/git"
	"stacktrack.dev/stacktrack/internal/runtime"
	"stacktrack.dev/stacktrack/internal/tui"
)

// fakeRunner is an in-memory git.Runner. Rebases give the rebased branch a
// fresh sha; branches listed in conflicts fail with a RebaseConflictError.
type fakeRunner struct {
	root       string
	gitDir     string
	current    string
	trunk      string
	tips       map[string]string
	mergeBases map[[2]string]string
	history    map[string][]string
	conflicts  map[string]bool
	pushURL    string

	calls      []string
	operations []string
	counter    int
}

var _ git.Runner = (*fakeRunner)(nil)

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		root:       "/repo",
		gitDir:     "/repo/.git",
		current:    "main",
		trunk:      "main",
		tips:       map[string]string{"main": "m1"},
		mergeBases: map[[2]string]string{},
		history:    map[string][]string{},
		conflicts:  map[string]bool{},
	}
}

func (f *fakeRunner) CurrentBranch(_ context.Context) (string, string, error) {
	if f.current == git.DetachedHead {
		return git.DetachedHead, "detached", nil
	}
	return f.current, f.tips[f.current], nil
}

func (f *fakeRunner) TrunkBranch(_ context.Context) (string, string, error) {
	return f.trunk, f.tips[f.trunk], nil
}

func (f *fakeRunner) CommitHistory(_ context.Context, headSHA string) ([]string, error) {
	return f.history[headSHA], nil
}

// MergeBase defaults to the tip of a, the shape of a branch that is up to date with its parent
func (f *fakeRunner) MergeBase(_ context.Context, a, b string) (string, error) {
	if base, ok := f.mergeBases[[2]string{a, b}]; ok {
		return base, nil
	}
	return f.tips[a], nil
}

func (f *fakeRunner) Revision(_ context.Context, rev string) (string, error) {
	sha, ok := f.tips[rev]
	if !ok {
		return "", fmt.Errorf("unknown revision %s", rev)
	}
	return sha, nil
}

func (f *fakeRunner) Rebase(ctx context.Context, newBase string) error {
	f.record(ctx, "rebase %s", newBase)
	return f.rebase(f.current)
}

func (f *fakeRunner) RebaseOnto(ctx context.Context, newBase, oldBase, branch string) error {
	f.record(ctx, "rebase --onto %s %s %s", newBase, oldBase, branch)
	f.current = branch
	return f.rebase(branch)
}

func (f *fakeRunner) rebase(branch string) error {
	if f.conflicts[branch] {
		return stacktrackerrors.NewRebaseConflictError(branch, "CONFLICT (content): Merge conflict in file.txt", errors.New("exit status 1"))
	}
	f.counter++
	f.tips[branch] = fmt.Sprintf("%s-r%d", branch, f.counter)
	return nil
}

func (f *fakeRunner) Checkout(ctx context.Context, branch string) error {
	f.record(ctx, "checkout %s", branch)
	if _, ok := f.tips[branch]; !ok {
		return fmt.Errorf("unknown branch %s", branch)
	}
	f.current = branch
	return nil
}

func (f *fakeRunner) PushURL(_ context.Context, remote string) (string, error) {
	if f.pushURL == "" {
		return "", stacktrackerrors.NewRemoteConfigError(remote, "", "remote is not configured")
	}
	return f.pushURL, nil
}

func (f *fakeRunner) RepoRoot() string {
	return f.root
}

func (f *fakeRunner) GitDir(_ context.Context) (string, error) {
	return f.gitDir, nil
}

func (f *fakeRunner) record(ctx context.Context, format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	f.operations = append(f.operations, git.OperationFrom(ctx))
}

// stackNode describes a tracked branch for newStack
type stackNode struct {
	name, parent, sha, base string
}

// newStack builds a graph rooted at main and points the runner's tips at the
// recorded shas so nothing starts out stale.
func newStack(t *testing.T, runner *fakeRunner, nodes ...stackNode) *engine.Graph {
	t.Helper()
	g := engine.NewTrunkGraph("main")
	require.NoError(t, g.SetSHA("main", runner.tips["main"]))
	for _, n := range nodes {
		require.NoError(t, g.AddNode(engine.Node{Name: n.name, SHA: n.sha, Base: n.base}))
		require.NoError(t, g.AddEdge(n.parent, n.name))
		runner.tips[n.name] = n.sha
	}
	return g
}

type scriptedPrompter struct {
	confirm  bool
	selected string
	asked    []string
}

func (p *scriptedPrompter) Select(message string, _ []string, _ string) (string, error) {
	p.asked = append(p.asked, message)
	return p.selected, nil
}

func (p *scriptedPrompter) Confirm(message string, _ bool) (bool, error) {
	p.asked = append(p.asked, message)
	return p.confirm, nil
}

// newTestContext returns a context whose console output is captured in out
func newTestContext(t *testing.T, runner git.Runner, g *engine.Graph) (*runtime.Context, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	splog, err := tui.NewSplogWithOptions(tui.SplogOptions{Writer: out})
	require.NoError(t, err)
	return runtime.NewContext(context.Background(), runner, g, splog), out
}

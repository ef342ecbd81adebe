package integration

import (
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"stacktrack.dev/stacktrack/internal/engine"
	"stacktrack.dev/stacktrack/testhelpers"
)

const mainBranchName = "main"

// TestShell wraps a test scene and provides a fluent interface for running
// commands. Tests using this read like a series of terminal commands.
type TestShell struct {
	t          *testing.T
	scene      *testhelpers.Scene
	binaryPath string
	lastOutput string
}

// NewTestShell creates a repository with one commit on main and the hooks installed
func NewTestShell(t *testing.T, binaryPath string) *TestShell {
	t.Helper()
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	sh := &TestShell{t: t, scene: scene, binaryPath: binaryPath}
	return sh.Run("install-hooks")
}

// Run executes a stacktrack command, e.g. "move-onto feature-a"
func (s *TestShell) Run(args string) *TestShell {
	s.t.Helper()
	output, err := s.exec(s.binaryPath, args)
	require.NoError(s.t, err, "$ stacktrack %s\n%s", args, output)
	return s
}

// RunExpectError executes a stacktrack command and expects it to fail
func (s *TestShell) RunExpectError(args string) *TestShell {
	s.t.Helper()
	output, err := s.exec(s.binaryPath, args)
	require.Error(s.t, err, "$ stacktrack %s (expected error)\n%s", args, output)
	return s
}

// Git executes a raw git command. Installed hooks run as they would for a user.
func (s *TestShell) Git(args string) *TestShell {
	s.t.Helper()
	output, err := s.exec("git", args)
	require.NoError(s.t, err, "$ git %s\n%s", args, output)
	return s
}

// Branch creates and checks out a branch, then commits one change on it
func (s *TestShell) Branch(name string) *TestShell {
	s.t.Helper()
	return s.Git("checkout -b " + name).Commit(name, name)
}

// Commit creates a file change and commits it
func (s *TestShell) Commit(filename, message string) *TestShell {
	s.t.Helper()
	err := s.scene.Repo.CreateChangeAndCommit(message, filename)
	require.NoError(s.t, err, "failed to commit %s", filename)
	return s
}

// Output returns the output of the last command
func (s *TestShell) Output() string {
	return s.lastOutput
}

// OutputContains asserts the last output contains the given string
func (s *TestShell) OutputContains(substr string) *TestShell {
	s.t.Helper()
	require.Contains(s.t, s.lastOutput, substr)
	return s
}

// OnBranch asserts the current branch
func (s *TestShell) OnBranch(expected string) *TestShell {
	s.t.Helper()
	branch, err := s.scene.Repo.CurrentBranchName()
	require.NoError(s.t, err)
	require.Equal(s.t, expected, branch)
	return s
}

// Tracked asserts branch is tracked on parent with its recorded sha equal to its tip
func (s *TestShell) Tracked(branch, parent string) *TestShell {
	s.t.Helper()
	g := s.Graph()
	got, ok := g.Parent(branch)
	require.True(s.t, ok, "%s is not tracked", branch)
	require.Equal(s.t, parent, got)

	node, _ := g.Node(branch)
	tip, err := s.scene.Repo.GetRevision(branch)
	require.NoError(s.t, err)
	require.Equal(s.t, tip, node.SHA, "recorded sha of %s", branch)
	return s
}

// NotTracked asserts branch is absent from the graph
func (s *TestShell) NotTracked(branch string) *TestShell {
	s.t.Helper()
	require.False(s.t, s.Graph().Has(branch), "%s should not be tracked", branch)
	return s
}

// StackedOn asserts parent's tip is in branch's history
func (s *TestShell) StackedOn(branch, parent string) *TestShell {
	s.t.Helper()
	require.True(s.t, s.scene.Repo.IsAncestor(parent, branch), "%s should be stacked on %s", branch, parent)
	return s
}

// Graph loads the graph file
func (s *TestShell) Graph() *engine.Graph {
	s.t.Helper()
	g, err := engine.Load(s.scene.GraphPath(), mainBranchName)
	require.NoError(s.t, err)
	return g
}

// Log adds a message to test output
func (s *TestShell) Log(msg string) *TestShell {
	s.t.Log(msg)
	return s
}

func (s *TestShell) exec(name, args string) (string, error) {
	cmd := exec.Command(name, splitArgs(args)...)
	cmd.Dir = s.scene.Dir
	output, err := cmd.CombinedOutput()
	s.lastOutput = string(output)
	return s.lastOutput, err
}

// splitArgs splits a command string into args, respecting quotes
func splitArgs(s string) []string {
	var args []string
	var current strings.Builder
	inQuote := false
	quoteChar := rune(0)

	for _, r := range s {
		switch {
		case r == '"' || r == '\'':
			switch {
			case inQuote && r == quoteChar:
				inQuote = false
			case !inQuote:
				inQuote = true
				quoteChar = r
			default:
				current.WriteRune(r)
			}
		case r == ' ' && !inQuote:
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// Package testhelpers provides testing utilities for stacktrack,
// including temporary git repositories, a scene system and a mock GitHub server.
package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const textFileName = "test.txt"

// GitRepo represents a Git repository for testing purposes.
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a new Git repository in the specified directory using 'git init'.
func NewGitRepo(dir string) (*GitRepo, error) {
	repo := &GitRepo{Dir: dir}

	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "init", dir, "-b", "main")
	cmd.Env = gitEnv()
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w: %s", err, out)
	}

	// Configure Git user (required for commits)
	if err := repo.runGitCommand("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.runGitCommand("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}
	if err := repo.runGitCommand("config", "commit.gpgsign", "false"); err != nil {
		return nil, err
	}

	return repo, nil
}

// gitEnv avoids reading the global git config in tests
func gitEnv() []string {
	return append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null", "GIT_CONFIG_NOSYSTEM=1")
}

// runGitCommand executes a git command in the repository directory.
func (r *GitRepo) runGitCommand(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = gitEnv()
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s failed: %w: %s", strings.Join(args, " "), err, output)
	}
	return nil
}

// RunGitCommand executes a git command and returns an error if it fails.
func (r *GitRepo) RunGitCommand(args ...string) error {
	return r.runGitCommand(args...)
}

// RunGitCommandAndGetOutput executes a git command and returns its trimmed output.
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = gitEnv()
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git command failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// CreateChange writes textValue to a file and stages it unless unstaged is set.
func (r *GitRepo) CreateChange(textValue string, prefix string, unstaged bool) error {
	fileName := textFileName
	if prefix != "" {
		fileName = prefix + "_" + fileName
	}
	filePath := filepath.Join(r.Dir, fileName)

	if err := os.WriteFile(filePath, []byte(textValue), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if !unstaged {
		return r.runGitCommand("add", filePath)
	}
	return nil
}

// CreateChangeAndCommit creates a file change and commits it.
func (r *GitRepo) CreateChangeAndCommit(textValue string, prefix string) error {
	if err := r.CreateChange(textValue, prefix, false); err != nil {
		return err
	}
	return r.runGitCommand("commit", "-m", textValue)
}

// CreateAndCheckoutBranch creates and checks out a new branch.
func (r *GitRepo) CreateAndCheckoutBranch(name string) error {
	return r.runGitCommand("checkout", "-b", name)
}

// CheckoutBranch checks out a branch.
func (r *GitRepo) CheckoutBranch(name string) error {
	return r.runGitCommand("checkout", name)
}

// CheckoutDetached checks out a revision in detached HEAD state.
func (r *GitRepo) CheckoutDetached(rev string) error {
	return r.runGitCommand("checkout", "--detach", rev)
}

// RenameBranch renames a local branch.
func (r *GitRepo) RenameBranch(oldName, newName string) error {
	return r.runGitCommand("branch", "-m", oldName, newName)
}

// AddRemote adds a remote with the given url.
func (r *GitRepo) AddRemote(name, url string) error {
	return r.runGitCommand("remote", "add", name, url)
}

// CurrentBranchName returns the name of the current branch.
func (r *GitRepo) CurrentBranchName() (string, error) {
	return r.RunGitCommandAndGetOutput("branch", "--show-current")
}

// GetRevision returns the SHA of a revision (branch, tag, or commit reference).
func (r *GitRepo) GetRevision(rev string) (string, error) {
	return r.RunGitCommandAndGetOutput("rev-parse", rev)
}

// MergeBase returns the merge base of two revisions.
func (r *GitRepo) MergeBase(a, b string) (string, error) {
	return r.RunGitCommandAndGetOutput("merge-base", a, b)
}

// IsAncestor checks if the first ref is an ancestor of the second ref.
func (r *GitRepo) IsAncestor(ancestor, descendant string) bool {
	return r.runGitCommand("merge-base", "--is-ancestor", ancestor, descendant) == nil
}

// RebaseInProgress checks if a rebase is in progress.
func (r *GitRepo) RebaseInProgress() bool {
	for _, dir := range []string{"rebase-merge", "rebase-apply"} {
		if _, err := os.Stat(filepath.Join(r.Dir, ".git", dir)); err == nil {
			return true
		}
	}
	return false
}

// AbortRebase aborts a rebase left in progress.
func (r *GitRepo) AbortRebase() error {
	return r.runGitCommand("rebase", "--abort")
}

// ListCurrentBranchCommitMessages returns the commit messages on the current branch, newest first.
func (r *GitRepo) ListCurrentBranchCommitMessages() ([]string, error) {
	output, err := r.RunGitCommandAndGetOutput("log", "--format=%s")
	if err != nil {
		return nil, err
	}
	return splitLines(output), nil
}

// splitLines splits a string by newlines and returns non-empty lines.
func splitLines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}

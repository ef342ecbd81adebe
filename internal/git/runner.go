package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	stacktrackerrors "stacktrack.dev/stacktrack/internal/errors"
)

// DetachedHead is the branch name reported when HEAD does not point at a branch
const DetachedHead = "HEAD"

// trunkCandidates are tried in order when looking up the trunk branch
var trunkCandidates = []string{"main", "master"}

// Runner defines the git operations used by stacktrack.
// This allows operators to run against both real git and fakes.
type Runner interface {
	// CurrentBranch returns the checked out branch and its tip. The name is
	// DetachedHead when HEAD is detached.
	CurrentBranch(ctx context.Context) (string, string, error)
	// TrunkBranch returns main, falling back to master, and its tip
	TrunkBranch(ctx context.Context) (string, string, error)
	// CommitHistory lists the commits reachable from headSHA, newest first
	CommitHistory(ctx context.Context, headSHA string) ([]string, error)
	MergeBase(ctx context.Context, a, b string) (string, error)
	Revision(ctx context.Context, rev string) (string, error)

	// Rebase rebases the checked out branch onto newBase
	Rebase(ctx context.Context, newBase string) error
	// RebaseOnto replays the commits of branch after oldBase onto newBase
	RebaseOnto(ctx context.Context, newBase, oldBase, branch string) error
	Checkout(ctx context.Context, branch string) error

	PushURL(ctx context.Context, remote string) (string, error)
	RepoRoot() string
	GitDir(ctx context.Context) (string, error)
}

// RealRunner implements Runner with go-git for reads and the git CLI for writes
type RealRunner struct {
	repo     *gogit.Repository
	root     string
	commands *CommandRunner
}

var _ Runner = (*RealRunner)(nil)

// NewRealRunner opens the repository containing dir
func NewRealRunner(dir string, logger Logger) (*RealRunner, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}
	root := wt.Filesystem.Root()

	return &RealRunner{
		repo:     repo,
		root:     root,
		commands: NewCommandRunner(root, logger),
	}, nil
}

// Commands returns the command runner bound to the repository root
func (r *RealRunner) Commands() *CommandRunner {
	return r.commands
}

// RepoRoot returns the root directory of the working tree
func (r *RealRunner) RepoRoot() string {
	return r.root
}

func (r *RealRunner) CurrentBranch(_ context.Context) (string, string, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", "", fmt.Errorf("repository has no commits yet")
		}
		return "", "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return DetachedHead, head.Hash().String(), nil
	}
	return head.Name().Short(), head.Hash().String(), nil
}

func (r *RealRunner) TrunkBranch(_ context.Context) (string, string, error) {
	for _, name := range trunkCandidates {
		ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true)
		if err == nil {
			return name, ref.Hash().String(), nil
		}
		if !errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", "", fmt.Errorf("failed to read branch %s: %w", name, err)
		}
	}
	return "", "", stacktrackerrors.NewTopologyError("", "no trunk branch found (tried %v)", trunkCandidates)
}

func (r *RealRunner) CommitHistory(_ context.Context, headSHA string) ([]string, error) {
	from, err := r.resolve(headSHA)
	if err != nil {
		return nil, err
	}

	iter, err := r.repo.Log(&gogit.LogOptions{From: from})
	if err != nil {
		return nil, fmt.Errorf("failed to read history of %s: %w", headSHA, err)
	}
	defer iter.Close()

	var shas []string
	err = iter.ForEach(func(c *object.Commit) error {
		shas = append(shas, c.Hash.String())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read history of %s: %w", headSHA, err)
	}
	return shas, nil
}

func (r *RealRunner) MergeBase(_ context.Context, a, b string) (string, error) {
	commitA, err := r.commit(a)
	if err != nil {
		return "", err
	}
	commitB, err := r.commit(b)
	if err != nil {
		return "", err
	}

	bases, err := commitA.MergeBase(commitB)
	if err != nil {
		return "", fmt.Errorf("failed to find merge base of %s and %s: %w", a, b, err)
	}
	if len(bases) == 0 {
		return "", fmt.Errorf("no merge base found for %s and %s", a, b)
	}
	return bases[0].Hash.String(), nil
}

func (r *RealRunner) Revision(_ context.Context, rev string) (string, error) {
	hash, err := r.resolve(rev)
	if err != nil {
		return "", err
	}
	return hash.String(), nil
}

func (r *RealRunner) Rebase(ctx context.Context, newBase string) error {
	branch, _, err := r.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if _, err := r.commands.Run(ctx, "rebase", newBase); err != nil {
		return r.rebaseError(ctx, branch, err)
	}
	return nil
}

func (r *RealRunner) RebaseOnto(ctx context.Context, newBase, oldBase, branch string) error {
	if _, err := r.commands.Run(ctx, "rebase", "--onto", newBase, oldBase, branch); err != nil {
		return r.rebaseError(ctx, branch, err)
	}
	return nil
}

func (r *RealRunner) rebaseError(ctx context.Context, branch string, err error) error {
	if r.IsRebaseInProgress(ctx) {
		var gitErr *stacktrackerrors.GitCommandError
		message := ""
		if errors.As(err, &gitErr) {
			message = conflictSummary(gitErr.Stdout + "\n" + gitErr.Stderr)
		}
		return stacktrackerrors.NewRebaseConflictError(branch, message, err)
	}
	return fmt.Errorf("failed to rebase %s: %w", branch, err)
}

func (r *RealRunner) Checkout(ctx context.Context, branch string) error {
	if _, err := r.commands.Run(ctx, "checkout", branch); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", branch, err)
	}
	return nil
}

func (r *RealRunner) PushURL(ctx context.Context, remote string) (string, error) {
	url, err := r.commands.Run(ctx, "remote", "get-url", "--push", remote)
	if err != nil {
		return "", stacktrackerrors.NewRemoteConfigError(remote, "", "remote is not configured")
	}
	return url, nil
}

func (r *RealRunner) GitDir(ctx context.Context) (string, error) {
	return r.commands.Run(ctx, "rev-parse", "--absolute-git-dir")
}

// IsRebaseInProgress checks for the state directories git leaves behind a stopped rebase
func (r *RealRunner) IsRebaseInProgress(ctx context.Context) bool {
	gitDir, err := r.GitDir(ctx)
	if err != nil {
		return false
	}
	for _, dir := range []string{"rebase-merge", "rebase-apply"} {
		if _, err := os.Stat(filepath.Join(gitDir, dir)); err == nil {
			return true
		}
	}
	return false
}

func (r *RealRunner) resolve(rev string) (plumbing.Hash, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve %s: %w", rev, err)
	}
	return *hash, nil
}

func (r *RealRunner) commit(rev string) (*object.Commit, error) {
	hash, err := r.resolve(rev)
	if err != nil {
		return nil, err
	}
	c, err := r.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", rev, err)
	}
	return c, nil
}

// conflictSummary returns the first CONFLICT line git printed
func conflictSummary(output string) string {
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, "CONFLICT") {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

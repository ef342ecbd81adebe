// Package git provides the Git operations stacktrack depends on.
//
// It wraps git command execution and go-git repository access behind the Runner interface:
//   - Repo state queries (current branch, trunk, revisions, merge bases, history) through go-git
//   - History rewriting (rebase, checkout) through the git CLI
//   - Remote lookups (push URL) through the git CLI
//
// This package should be the only place where direct git commands are executed.
package git

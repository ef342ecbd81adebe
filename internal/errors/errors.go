// Package errors provides sentinel errors and custom error types for stacktrack.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for common conditions
var (
	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")

	// ErrStaleState indicates recorded state predates the current repository state
	ErrStaleState = errors.New("stale branch state")

	// ErrTopology indicates an operation that would violate the branch tree shape
	ErrTopology = errors.New("invalid stack topology")

	// ErrRebaseConflict indicates that a rebase operation encountered a conflict
	ErrRebaseConflict = errors.New("rebase conflict")

	// ErrRemoteConfig indicates hosting coordinates could not be derived from the remote
	ErrRemoteConfig = errors.New("remote configuration error")

	// ErrHostingAPI indicates a non-success response from the hosting API
	ErrHostingAPI = errors.New("hosting api error")
)

// StaleStateError is returned when a branch's recorded sha differs from its actual tip
type StaleStateError struct {
	Branch   string
	Recorded string
	Actual   string
}

func (e *StaleStateError) Error() string {
	return fmt.Sprintf("recorded sha %s for %s does not match current tip %s", short(e.Recorded), e.Branch, short(e.Actual))
}

// Is returns true if the target error is ErrStaleState
func (e *StaleStateError) Is(target error) bool {
	return target == ErrStaleState
}

// NewStaleStateError creates a new StaleStateError
func NewStaleStateError(branch, recorded, actual string) *StaleStateError {
	return &StaleStateError{Branch: branch, Recorded: recorded, Actual: actual}
}

// TopologyError represents an operation that does not fit the tracked tree
type TopologyError struct {
	Branch string
	Reason string
}

func (e *TopologyError) Error() string {
	if e.Branch == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Branch, e.Reason)
}

// Is returns true if the target error is ErrTopology
func (e *TopologyError) Is(target error) bool {
	return target == ErrTopology
}

// NewTopologyError creates a new TopologyError
func NewTopologyError(branch string, format string, args ...any) *TopologyError {
	return &TopologyError{Branch: branch, Reason: fmt.Sprintf(format, args...)}
}

// NewUnknownBranchError reports a branch that is not tracked
func NewUnknownBranchError(branch string) *TopologyError {
	return &TopologyError{Branch: branch, Reason: "branch is not tracked"}
}

// RebaseConflictError represents an error when a rebase encounters a conflict
type RebaseConflictError struct {
	BranchName string
	Message    string
	Err        error
}

func (e *RebaseConflictError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("rebase conflict on branch %s: %s", e.BranchName, e.Message)
	}
	return fmt.Sprintf("rebase conflict on branch %s", e.BranchName)
}

// Is returns true if the target error is ErrRebaseConflict
func (e *RebaseConflictError) Is(target error) bool {
	return target == ErrRebaseConflict
}

func (e *RebaseConflictError) Unwrap() error {
	return e.Err
}

// NewRebaseConflictError creates a new RebaseConflictError
func NewRebaseConflictError(branchName string, message string, err error) *RebaseConflictError {
	return &RebaseConflictError{
		BranchName: branchName,
		Message:    message,
		Err:        err,
	}
}

// RemoteConfigError is returned when the push remote is not a recognised hosting URL
type RemoteConfigError struct {
	Remote string
	URL    string
	Reason string
}

func (e *RemoteConfigError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("remote %s: %s", e.Remote, e.Reason)
	}
	return fmt.Sprintf("remote %s (%s): %s", e.Remote, e.URL, e.Reason)
}

// Is returns true if the target error is ErrRemoteConfig
func (e *RemoteConfigError) Is(target error) bool {
	return target == ErrRemoteConfig
}

// NewRemoteConfigError creates a new RemoteConfigError
func NewRemoteConfigError(remote, url, reason string) *RemoteConfigError {
	return &RemoteConfigError{Remote: remote, URL: url, Reason: reason}
}

// HostingAPIError represents a non-success response from the hosting API
type HostingAPIError struct {
	Operation  string
	StatusCode int
	Message    string
	Err        error
}

func (e *HostingAPIError) Error() string {
	msg := fmt.Sprintf("%s failed", e.Operation)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" with status %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	} else if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Is returns true if the target error is ErrHostingAPI
func (e *HostingAPIError) Is(target error) bool {
	return target == ErrHostingAPI
}

func (e *HostingAPIError) Unwrap() error {
	return e.Err
}

// NewHostingAPIError creates a new HostingAPIError
func NewHostingAPIError(operation string, statusCode int, message string, err error) *HostingAPIError {
	return &HostingAPIError{
		Operation:  operation,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// IsDraftUnsupported reports whether err is a create rejection that means the
// repository does not accept draft pull requests.
func IsDraftUnsupported(err error) bool {
	var apiErr *HostingAPIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnprocessableEntity
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

func short(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	if sha == "" {
		return "<none>"
	}
	return sha
}

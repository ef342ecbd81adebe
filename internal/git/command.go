package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"stacktrack.dev/stacktrack/internal/config"
	stacktrackerrors "stacktrack.dev/stacktrack/internal/errors"
)

// Logger receives a debug line for every command executed
type Logger interface {
	Debug(format string, args ...any)
}

// CommandRunner handles execution of git commands
type CommandRunner struct {
	workingDir string
	logger     Logger
}

// NewCommandRunner creates a new CommandRunner. logger may be nil.
func NewCommandRunner(workingDir string, logger Logger) *CommandRunner {
	return &CommandRunner{workingDir: workingDir, logger: logger}
}

// Run executes a git command with the given context and returns the trimmed output
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	return r.run(ctx, "git", args...)
}

// RunGH executes a gh command with the given context and returns the trimmed output
func (r *CommandRunner) RunGH(ctx context.Context, args ...string) (string, error) {
	return r.run(ctx, "gh", args...)
}

func (r *CommandRunner) run(ctx context.Context, name string, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if r.logger != nil {
		r.logger.Debug("--> %s %s", name, strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, name, args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	if op := OperationFrom(ctx); op != "" {
		cmd.Env = append(os.Environ(), config.OperationEnvVar+"="+op)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", stacktrackerrors.NewGitCommandError(name, args, stdout.String(), stderr.String(), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

package actions

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stacktrack.dev/stacktrack/internal/runtime"
	"stacktrack.dev/stacktrack/internal/tui"
)

// hookMarker identifies hook scripts written by stacktrack
const hookMarker = "# installed by stacktrack"

// InstallHooksOptions contains options for the install-hooks command
type InstallHooksOptions struct {
	Force bool
	// Executable is the binary the hooks invoke. Defaults to the running binary.
	Executable string
}

type hookScript struct {
	name string
	args string
}

var hookScripts = []hookScript{
	{name: "post-commit", args: "post-commit"},
	{name: "post-checkout", args: `post-checkout "$2" "$3"`},
}

// InstallHooks writes the git hooks that keep the graph current
func InstallHooks(ctx *runtime.Context, opts InstallHooksOptions) error {
	executable := opts.Executable
	if executable == "" {
		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to locate stacktrack binary: %w", err)
		}
		executable = exe
	}

	gitDir, err := ctx.Git.GitDir(ctx.Context)
	if err != nil {
		return err
	}
	hooksDir := filepath.Join(gitDir, "hooks")
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return fmt.Errorf("failed to create hooks directory: %w", err)
	}

	for _, hook := range hookScripts {
		path := filepath.Join(hooksDir, hook.name)
		if !opts.Force {
			overwrite, err := canOverwriteHook(ctx, path)
			if err != nil {
				return err
			}
			if !overwrite {
				return fmt.Errorf("%s hook already exists and was not installed by stacktrack; rerun with --force to replace it", hook.name)
			}
		}

		script := fmt.Sprintf("#!/bin/sh\n%s\nexec %s %s\n", hookMarker, shellQuote(executable), hook.args)
		if err := os.WriteFile(path, []byte(script), 0755); err != nil {
			return fmt.Errorf("failed to write %s hook: %w", hook.name, err)
		}
		// WriteFile keeps the mode of an existing file
		if err := os.Chmod(path, 0755); err != nil {
			return fmt.Errorf("failed to make %s hook executable: %w", hook.name, err)
		}
		ctx.Splog.Info("Installed %s hook.", hook.name)
	}
	return nil
}

// canOverwriteHook reports whether the hook at path is missing, ours, or the
// user agreed to replace it.
func canOverwriteHook(ctx *runtime.Context, path string) (bool, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if strings.Contains(string(content), hookMarker) {
		return true, nil
	}

	if ctx.Prompter == nil {
		return false, nil
	}
	ok, err := ctx.Prompter.Confirm(fmt.Sprintf("Replace existing hook %s?", filepath.Base(path)), false)
	if errors.Is(err, tui.ErrInteractiveDisabled) {
		return false, nil
	}
	return ok, err
}

// shellQuote wraps s in single quotes for /bin/sh
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

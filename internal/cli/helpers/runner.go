package helpers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"stacktrack.dev/stacktrack/internal/actions"
	"stacktrack.dev/stacktrack/internal/config"
	"stacktrack.dev/stacktrack/internal/engine"
	"stacktrack.dev/stacktrack/internal/git"
	"stacktrack.dev/stacktrack/internal/github"
	"stacktrack.dev/stacktrack/internal/output"
	"stacktrack.dev/stacktrack/internal/runtime"
	"stacktrack.dev/stacktrack/internal/tui"
)

// Operator is the command specific part of an invocation
type Operator func(ctx *runtime.Context) error

type runOptions struct {
	hook   bool
	render bool
}

// Run loads the graph, synchronizes it with the checked out branch, runs fn,
// then persists and renders the graph. The graph is saved even when fn fails.
func Run(cmd *cobra.Command, globals *GlobalOptions, fn Operator) error {
	return run(cmd, globals, runOptions{render: true}, fn)
}

// RunHook is Run for commands invoked by git hooks. It does nothing while
// another stacktrack operation is running and does not render the graph.
func RunHook(cmd *cobra.Command, globals *GlobalOptions, fn Operator) error {
	return run(cmd, globals, runOptions{hook: true}, fn)
}

func run(cmd *cobra.Command, globals *GlobalOptions, opts runOptions, fn Operator) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	globals.Apply(cfg)

	splog, err := tui.NewSplogWithOptions(tui.SplogOptions{
		Writer: cmd.OutOrStdout(),
		Debug:  cfg.Debug,
		File: &tui.LogFileOptions{
			Path:       cfg.LogFilePath(),
			MaxSize:    cfg.LogMaxSize,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAge,
		},
	})
	if err != nil {
		return err
	}
	defer func() { _ = splog.Close() }()

	if opts.hook && cfg.InOperation() {
		splog.Debug("Skipping %s hook during %s", cmd.Name(), cfg.Operation)
		return nil
	}

	noColor := globals != nil && globals.NoColor
	tui.ConfigureColors(noColor)

	gctx := cmd.Context()
	if gctx == nil {
		gctx = context.Background()
	}

	ctx, err := newContext(gctx, cfg, splog)
	if err != nil {
		return err
	}

	opErr := actions.Synchronize(ctx)
	if opErr == nil {
		opErr = fn(ctx)
	}

	if err := engine.Save(ctx.Graph, ctx.GraphPath); err != nil {
		saveErr := fmt.Errorf("failed to save graph: %w", err)
		if opErr == nil {
			return saveErr
		}
		splog.Error("%s", saveErr)
	}

	if opts.render {
		active, _, err := ctx.Git.CurrentBranch(gctx)
		if err != nil {
			active = ""
		}
		splog.Page(strings.Join(output.RenderGraph(ctx.Graph, active), "\n"))
	}
	return opErr
}

// newContext opens the repository in the working directory and loads its graph
func newContext(gctx context.Context, cfg *config.Config, splog *tui.Splog) (*runtime.Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	runner, err := git.NewRealRunner(cwd, splog)
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	trunk, _, err := runner.TrunkBranch(gctx)
	if err != nil {
		return nil, err
	}

	graphPath := cfg.GraphPath(runner.RepoRoot())
	graph, err := engine.Load(graphPath, trunk)
	if err != nil {
		return nil, err
	}
	splog.Debug("Loaded %d tracked branches from %s", len(graph.Nodes()), graphPath)

	return &runtime.Context{
		Context:   gctx,
		Config:    cfg,
		Git:       runner,
		Graph:     graph,
		Splog:     splog,
		Prompter:  tui.NewPrompter(cfg.NonInteractive),
		RepoRoot:  runner.RepoRoot(),
		GraphPath: graphPath,
		Trunk:     trunk,
		NewGitHubClient: func(ctx context.Context) (github.Client, error) {
			token, err := github.ResolveToken(ctx, cfg.GitHubToken, runner.Commands())
			if err != nil {
				return nil, err
			}
			return github.NewRealClient(ctx, cfg.GitHubAPI, token)
		},
	}, nil
}

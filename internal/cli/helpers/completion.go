package helpers

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"stacktrack.dev/stacktrack/internal/config"
	"stacktrack.dev/stacktrack/internal/engine"
	"stacktrack.dev/stacktrack/internal/git"
)

// CompleteTrackedBranches is a helper for cobra.ValidArgsFunction
// that returns the branches recorded in the graph.
func CompleteTrackedBranches(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	runner, err := git.NewRealRunner(cwd, nil)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	trunk, _, err := runner.TrunkBranch(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	graph, err := engine.Load(cfg.GraphPath(runner.RepoRoot()), trunk)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, node := range graph.Nodes() {
		names = append(names, node.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

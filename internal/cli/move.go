package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"stacktrack.dev/stacktrack/internal/actions"
	"stacktrack.dev/stacktrack/internal/cli/helpers"
	"stacktrack.dev/stacktrack/internal/runtime"
	"stacktrack.dev/stacktrack/internal/tui"
)

// newMoveOntoCmd creates the move-onto command
func newMoveOntoCmd(globals *helpers.GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move-onto [parent]",
		Short: "Rebase the current branch onto another tracked branch, restacking its descendants",
		Long: `Rebase the current branch onto another tracked branch and make it the new parent.
Every descendant is then rebased onto its own rebased parent. Without an argument
you are asked to pick the new parent.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: helpers.CompleteTrackedBranches,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, globals, func(ctx *runtime.Context) error {
				onto := ""
				if len(args) > 0 {
					onto = args[0]
				} else {
					selected, err := selectParent(ctx)
					if err != nil {
						return err
					}
					onto = selected
				}

				_, err := actions.Move(ctx, actions.MoveOptions{Onto: onto})
				return err
			})
		},
	}

	return cmd
}

// selectParent asks for a new parent among the branches the current branch can move onto
func selectParent(ctx *runtime.Context) (string, error) {
	current, _, err := ctx.Git.CurrentBranch(ctx.Context)
	if err != nil {
		return "", err
	}

	var candidates []string
	for _, node := range ctx.Graph.Nodes() {
		if node.Name == current || ctx.Graph.IsDescendant(current, node.Name) {
			continue
		}
		candidates = append(candidates, node.Name)
	}
	parent, _ := ctx.Graph.Parent(current)

	selected, err := ctx.Prompter.Select(fmt.Sprintf("Move %s onto", current), candidates, parent)
	if errors.Is(err, tui.ErrInteractiveDisabled) {
		return "", fmt.Errorf("a parent branch is required when not running interactively")
	}
	return selected, err
}

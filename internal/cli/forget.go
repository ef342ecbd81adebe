package cli

import (
	"github.com/spf13/cobra"

	"stacktrack.dev/stacktrack/internal/actions"
	"stacktrack.dev/stacktrack/internal/cli/helpers"
	"stacktrack.dev/stacktrack/internal/runtime"
)

// newForgetCmd creates the forget command
func newForgetCmd(globals *helpers.GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "forget <branch>",
		Short:             "Stop tracking a branch without deleting it",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: helpers.CompleteTrackedBranches,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, globals, func(ctx *runtime.Context) error {
				return actions.Forget(ctx, actions.ForgetOptions{Branch: args[0]})
			})
		},
	}
}

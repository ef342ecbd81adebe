package cli

import (
	"github.com/spf13/cobra"

	"stacktrack.dev/stacktrack/internal/actions"
	"stacktrack.dev/stacktrack/internal/cli/helpers"
	"stacktrack.dev/stacktrack/internal/runtime"
)

// newRestackCmd creates the restack command
func newRestackCmd(globals *helpers.GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restack",
		Short: "Rebase the current branch onto the recorded tip of its parent",
		Long: `Rebase the current branch onto the recorded tip of its parent.
If conflicts are encountered the rebase is left stopped for you to resolve.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, globals, func(ctx *runtime.Context) error {
				return actions.Restack(ctx)
			})
		},
	}
}

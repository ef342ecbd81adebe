package cli

import (
	"github.com/spf13/cobra"

	"stacktrack.dev/stacktrack/internal/actions"
	"stacktrack.dev/stacktrack/internal/cli/helpers"
	"stacktrack.dev/stacktrack/internal/runtime"
)

// newSubmitCmd creates the submit command
func newSubmitCmd(globals *helpers.GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "submit [title]",
		Short: "Open a pull request for the current branch against its parent",
		Long: `Open a pull request for the current branch against its parent branch.
If the branch already has a pull request, its base is updated to the current parent.
Draft pull requests are tried first.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			title := ""
			if len(args) > 0 {
				title = args[0]
			}
			return helpers.Run(cmd, globals, func(ctx *runtime.Context) error {
				return actions.Submit(ctx, actions.SubmitOptions{Title: title})
			})
		},
	}
}

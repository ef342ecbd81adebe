package cli

import (
	"github.com/spf13/cobra"

	"stacktrack.dev/stacktrack/internal/actions"
	"stacktrack.dev/stacktrack/internal/cli/helpers"
	"stacktrack.dev/stacktrack/internal/runtime"
)

// newPostCommitCmd creates the command run by the post-commit hook
func newPostCommitCmd(globals *helpers.GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "post-commit",
		Short:        "Record the new tip of the current branch (git hook)",
		Args:         cobra.NoArgs,
		Hidden:       true,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.RunHook(cmd, globals, func(_ *runtime.Context) error {
				return nil
			})
		},
	}
}

// newPostCheckoutCmd creates the command run by the post-checkout hook
func newPostCheckoutCmd(globals *helpers.GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "post-checkout <parent-sha> <is-branch-flag>",
		Short:        "Track a branch created from a tracked branch (git hook)",
		Args:         cobra.ExactArgs(2),
		Hidden:       true,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.RunHook(cmd, globals, func(ctx *runtime.Context) error {
				return actions.Register(ctx, actions.RegisterOptions{
					ParentSHA:  args[0],
					BranchFlag: args[1],
				})
			})
		},
	}
}

// newInstallHooksCmd creates the install-hooks command
func newInstallHooksCmd(globals *helpers.GlobalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:          "install-hooks",
		Short:        "Install the git hooks that keep the stack graph current",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, globals, func(ctx *runtime.Context) error {
				return actions.InstallHooks(ctx, actions.InstallHooksOptions{Force: force})
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace hooks that were not installed by stacktrack.")

	return cmd
}

package cli

import (
	"github.com/spf13/cobra"

	"stacktrack.dev/stacktrack/internal/cli/helpers"
	"stacktrack.dev/stacktrack/internal/runtime"
)

// newLogCmd creates the log command
func newLogCmd(globals *helpers.GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "log",
		Short:        "Show the tracked branches as a tree",
		Aliases:      []string{"l"},
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, globals, func(_ *runtime.Context) error {
				return nil
			})
		},
	}
}

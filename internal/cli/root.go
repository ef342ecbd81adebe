// Package cli defines the stacktrack command tree.
package cli

import (
	"github.com/spf13/cobra"

	"stacktrack.dev/stacktrack/internal/cli/helpers"
	"stacktrack.dev/stacktrack/internal/config"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version string) *cobra.Command {
	globals := &helpers.GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "stacktrack",
		Short: "Track stacked branches and keep them rebased on their parents",
		Long: `Track stacked branches and keep them rebased on their parents.

Branches created from a tracked branch are recorded automatically by the
post-checkout hook. Run stacktrack install-hooks once per repository.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&globals.GitHubAPI, "github", "", "GitHub API endpoint. Defaults to "+config.DefaultGitHubAPI+".")
	rootCmd.PersistentFlags().BoolVar(&globals.Debug, "debug", false, "Write debug output to the terminal.")
	rootCmd.PersistentFlags().BoolVar(&globals.NoColor, "no-color", false, "Disable colored output.")

	rootCmd.AddCommand(
		newRestackCmd(globals),
		newMoveOntoCmd(globals),
		newSubmitCmd(globals),
		newForgetCmd(globals),
		newLogCmd(globals),
		newPostCommitCmd(globals),
		newPostCheckoutCmd(globals),
		newInstallHooksCmd(globals),
	)

	return rootCmd
}

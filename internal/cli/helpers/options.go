// Package helpers provides shared helper functions for CLI commands.
package helpers

import "stacktrack.dev/stacktrack/internal/config"

// GlobalOptions holds the persistent flags of the root command
type GlobalOptions struct {
	GitHubAPI string
	Debug     bool
	NoColor   bool
}

// Apply overrides the environment configuration with flags that were set
func (g *GlobalOptions) Apply(cfg *config.Config) {
	if g == nil {
		return
	}
	if g.GitHubAPI != "" {
		cfg.GitHubAPI = g.GitHubAPI
	}
	if g.Debug {
		cfg.Debug = true
	}
}

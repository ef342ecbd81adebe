package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

const (
	// DefaultGraphFile is the graph file name, relative to the repository root
	DefaultGraphFile = ".stack.json"

	// DefaultGitHubAPI is the GitHub REST endpoint used unless overridden
	DefaultGitHubAPI = "https://api.github.com"

	// OperationEnvVar carries the operation marker to child git processes
	OperationEnvVar = "STACKTRACK_OPERATION"
)

// Config holds process configuration read from the environment
type Config struct {
	GitHubToken string `env:"GITHUB_TOKEN"`
	GitHubAPI   string `env:"STACKTRACK_GITHUB_API" envDefault:"https://api.github.com"`
	GraphFile   string `env:"STACKTRACK_GRAPH_FILE" envDefault:".stack.json"`

	LogFile       string `env:"STACKTRACK_LOG_FILE"`
	LogMaxSize    int    `env:"STACKTRACK_LOG_MAX_SIZE" envDefault:"1"`
	LogMaxBackups int    `env:"STACKTRACK_LOG_MAX_BACKUPS" envDefault:"2"`
	LogMaxAge     int    `env:"STACKTRACK_LOG_MAX_AGE" envDefault:"30"`

	Debug          bool `env:"DEBUG"`
	NonInteractive bool `env:"STACKTRACK_NON_INTERACTIVE"`

	// Operation is set when this process was spawned by a git hook while another
	// stacktrack operation was running.
	Operation string `env:"STACKTRACK_OPERATION"`
}

// Load parses the configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// GraphPath returns the graph file path, resolving relative paths against repoRoot
func (c *Config) GraphPath(repoRoot string) string {
	path := c.GraphFile
	if path == "" {
		path = DefaultGraphFile
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(repoRoot, path)
}

// LogFilePath returns the path to the log file.
// Defaults to ~/.stacktrack/logs/stacktrack.log
func (c *Config) LogFilePath() string {
	if c.LogFile != "" {
		return c.LogFile
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "stacktrack.log"
	}
	return filepath.Join(homeDir, ".stacktrack", "logs", "stacktrack.log")
}

// InOperation reports whether this process runs underneath another stacktrack operation
func (c *Config) InOperation() bool {
	return c.Operation != ""
}

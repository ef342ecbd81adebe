package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("STACKTRACK_OPERATION", "")
		unsetEnv(t, "STACKTRACK_GITHUB_API", "STACKTRACK_GRAPH_FILE", "STACKTRACK_LOG_MAX_SIZE",
			"STACKTRACK_LOG_MAX_BACKUPS", "STACKTRACK_LOG_MAX_AGE")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, DefaultGitHubAPI, cfg.GitHubAPI)
		require.Equal(t, DefaultGraphFile, cfg.GraphFile)
		require.Equal(t, 1, cfg.LogMaxSize)
		require.Equal(t, 2, cfg.LogMaxBackups)
		require.Equal(t, 30, cfg.LogMaxAge)
		require.False(t, cfg.InOperation())
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "secret")
		t.Setenv("STACKTRACK_GITHUB_API", "http://localhost:8000")
		t.Setenv("STACKTRACK_GRAPH_FILE", "stack/graph.json")
		t.Setenv("STACKTRACK_OPERATION", "move")
		t.Setenv("STACKTRACK_LOG_MAX_SIZE", "5")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "secret", cfg.GitHubToken)
		require.Equal(t, "http://localhost:8000", cfg.GitHubAPI)
		require.Equal(t, 5, cfg.LogMaxSize)
		require.True(t, cfg.InOperation())
		require.Equal(t, filepath.Join("/repo", "stack", "graph.json"), cfg.GraphPath("/repo"))
	})

	t.Run("rejects malformed numbers", func(t *testing.T) {
		t.Setenv("STACKTRACK_LOG_MAX_SIZE", "lots")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "parse env")
	})
}

func TestGraphPath(t *testing.T) {
	cfg := &Config{GraphFile: "/abs/graph.json"}
	require.Equal(t, "/abs/graph.json", cfg.GraphPath("/repo"))

	cfg = &Config{}
	require.Equal(t, filepath.Join("/repo", ".stack.json"), cfg.GraphPath("/repo"))
}

func TestLogFilePath(t *testing.T) {
	cfg := &Config{LogFile: "/tmp/custom.log"}
	require.Equal(t, "/tmp/custom.log", cfg.LogFilePath())

	t.Setenv("HOME", "/home/tester")
	cfg = &Config{}
	require.Equal(t, filepath.Join("/home/tester", ".stacktrack", "logs", "stacktrack.log"), cfg.LogFilePath())
}

// unsetEnv removes variables for the duration of the test
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

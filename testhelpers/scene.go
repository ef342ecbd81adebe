package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// Scene represents a test scene with a temporary directory and Git repository.
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene with a temporary directory and Git repository
// and changes into it. It isolates git from the user's global configuration.
// NOTE: This function is NOT safe for parallel tests as it uses t.Setenv and t.Chdir.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	t.Setenv("GIT_CONFIG_GLOBAL", "/dev/null")
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("STACKTRACK_OPERATION", "")
	t.Setenv("STACKTRACK_LOG_FILE", filepath.Join(t.TempDir(), "stacktrack.log"))

	// Resolve symlinks so paths compare equal to what git reports
	tmpDir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}

	repo, err := NewGitRepo(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{
		Dir:  tmpDir,
		Repo: repo,
	}

	t.Chdir(tmpDir)

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}

	return scene
}

// BasicSceneSetup is a setup function that creates a basic scene with a single commit.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("1", "1")
}

// GraphPath returns the path of the graph file in the scene repository.
func (s *Scene) GraphPath() string {
	return filepath.Join(s.Dir, ".stack.json")
}

// ReadGraphFile returns the raw graph file contents, or "" if it does not exist.
func (s *Scene) ReadGraphFile(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(s.GraphPath())
	if os.IsNotExist(err) {
		return ""
	}
	if err != nil {
		t.Fatalf("Failed to read graph file: %v", err)
	}
	return string(data)
}

// Package testhelper builds the stacktrack binary for end-to-end tests.
package testhelper

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
)

var (
	binaryPath string
	binaryOnce sync.Once
	binaryErr  error
)

// BinaryPath returns the path of a stacktrack binary built from this module.
// The binary is built once per test process.
func BinaryPath() (string, error) {
	binaryOnce.Do(func() {
		binaryPath, binaryErr = buildBinary()
	})
	return binaryPath, binaryErr
}

// buildBinary builds ./cmd/stacktrack into a temporary directory
func buildBinary() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	moduleRoot := findModuleRoot(wd)
	if moduleRoot == "" {
		return "", fmt.Errorf("could not find module root (go.mod) starting from %s", wd)
	}

	tmpDir, err := os.MkdirTemp("", "stacktrack-test-binary-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}

	path := filepath.Join(tmpDir, "stacktrack")
	cmd := exec.Command("go", "build", "-o", path, "./cmd/stacktrack")
	cmd.Dir = moduleRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("failed to build: %s: %w", string(output), err)
	}
	return path, nil
}

// findModuleRoot walks up from startDir to the directory containing go.mod
func findModuleRoot(startDir string) string {
	for dir := startDir; ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		if filepath.Dir(dir) == dir {
			return ""
		}
	}
}

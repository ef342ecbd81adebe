// Package integration runs the stacktrack binary against real repositories
// with the git hooks installed.
package integration

import (
	"testing"

	"stacktrack.dev/stacktrack/internal/testhelper"
)

// getStacktrackBinary returns the path to the built stacktrack binary
func getStacktrackBinary(t *testing.T) string {
	t.Helper()
	path, err := testhelper.BinaryPath()
	if err != nil {
		t.Fatalf("failed to build stacktrack binary: %v", err)
	}
	return path
}

// Package runtime provides the execution context for stacktrack commands.
//
// It encapsulates shared dependencies and configuration needed by actions,
// such as the loaded graph, the git runner, the logger, and the repository root path.
package runtime

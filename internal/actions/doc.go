// Package actions provides the operators behind each stacktrack command.
//
// Each action corresponds to a command (restack, move-onto, submit, forget, ...)
// and orchestrates operations across the engine, git, and github packages.
//
// Key patterns:
//   - Actions accept runtime.Context which provides the Graph, Git, Splog, and other dependencies
//   - Actions only mutate the in-memory graph; the caller persists it
//   - Operators that run git add an operation marker to the context so hooks fired by git stay quiet
package actions

// Package engine holds the tracked stack of branches and its persistence.
//
// It is the core of stacktrack, responsible for:
//   - Tracking parent-child relationships between branches as a single-rooted tree
//   - Recording each branch's tip sha, fork point (base) and pull request reference
//   - Loading and saving the tree to the graph file in the repository root
//
// The trunk branch is always the root. Every other branch has exactly one parent.
package engine

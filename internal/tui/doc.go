// Package tui provides the terminal surface for stacktrack.
//
// It handles:
//   - Structured logging to the console and a rotated log file (Splog)
//   - Interactive prompts (using survey)
//   - Terminal detection and color profile selection
package tui

// Package output renders the tracked stack for the terminal.
package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ColorBranchName colors a branch name, marking the current branch
func ColorBranchName(branchName string, isCurrent bool) string {
	if isCurrent {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Render(branchName + " (current)")
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Render(branchName)
}

// ColorSHA colors an abbreviated commit id
func ColorSHA(sha string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("3")).
		Render(sha)
}

// ColorPRNumber colors a pull request number
func ColorPRNumber(number int) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("5")).
		Render(fmt.Sprintf("#%d", number))
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Render(text)
}

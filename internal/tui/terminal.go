package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// IsTTY returns true if both stdin and stdout are attached to a terminal
func IsTTY() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ConfigureColors selects the color profile used for all rendered output.
// Colors are disabled when requested or when stdout is not a terminal.
func ConfigureColors(noColor bool) {
	if noColor || os.Getenv("NO_COLOR") != "" || !isTerminal(os.Stdout) {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}

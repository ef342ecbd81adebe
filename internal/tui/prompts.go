package tui

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// ErrInteractiveDisabled is returned when a prompt is needed but the session is not interactive
var ErrInteractiveDisabled = errors.New("interactive prompts are disabled")

// Prompter asks the user questions. Tests substitute a scripted implementation.
type Prompter interface {
	Select(message string, options []string, defaultOption string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter prompts on the terminal using survey
type SurveyPrompter struct {
	// Interactive must be true for prompts to be shown
	Interactive bool
}

// NewPrompter returns a prompter that is interactive only on a TTY
func NewPrompter(nonInteractive bool) *SurveyPrompter {
	return &SurveyPrompter{Interactive: !nonInteractive && IsTTY()}
}

// Select asks the user to pick one of options
func (p *SurveyPrompter) Select(message string, options []string, defaultOption string) (string, error) {
	if !p.Interactive {
		return "", ErrInteractiveDisabled
	}
	if len(options) == 0 {
		return "", fmt.Errorf("no options to choose from")
	}

	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if defaultOption != "" {
		prompt.Default = defaultOption
	}

	var selected string
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", fmt.Errorf("canceled")
	}
	return selected, nil
}

// Confirm asks a yes/no question
func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	if !p.Interactive {
		return false, ErrInteractiveDisabled
	}

	answer := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return false, fmt.Errorf("canceled")
	}
	return answer, nil
}

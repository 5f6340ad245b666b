package cli

import (
	"strings"

	"github.com/charmbracelet/huh"
)

// ConfirmFunc prompts the user for confirmation and returns true if confirmed.
type ConfirmFunc func(prompt string) (bool, error)

// NewConfirmFunc creates a ConfirmFunc using huh's interactive confirm component.
func NewConfirmFunc() ConfirmFunc {
	return func(prompt string) (bool, error) {
		var result bool
		err := huh.NewConfirm().
			Title(prompt).
			Value(&result).
			Run()
		return result, err
	}
}

// AlwaysYes returns a ConfirmFunc that always confirms.
func AlwaysYes() ConfirmFunc {
	return func(_ string) (bool, error) {
		return true, nil
	}
}

// PromptFunc asks for free text. An empty answer yields def.
type PromptFunc func(prompt, def string) (string, error)

// NewPromptFunc creates a PromptFunc using huh's interactive input component.
// validate, when non-nil, rejects answers inline until they pass.
func NewPromptFunc(validate func(prompt, answer string) error) PromptFunc {
	return func(prompt, def string) (string, error) {
		var result string
		input := huh.NewInput().
			Title(prompt).
			Placeholder(def).
			Value(&result)
		if validate != nil {
			input = input.Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					s = def
				}
				return validate(prompt, s)
			})
		}
		if err := input.Run(); err != nil {
			return "", err
		}
		if strings.TrimSpace(result) == "" {
			return def, nil
		}
		return strings.TrimSpace(result), nil
	}
}

// PromptKit bundles all prompt function types for dependency injection.
type PromptKit struct {
	Prompt  PromptFunc
	Confirm ConfirmFunc
}

// NewPromptKit creates a PromptKit with huh-based interactive implementations.
func NewPromptKit(validate func(prompt, answer string) error) PromptKit {
	return PromptKit{
		Prompt:  NewPromptFunc(validate),
		Confirm: NewConfirmFunc(),
	}
}

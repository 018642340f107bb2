package add

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/routines/pkg/routine"
)

// Prompter asks for one value, offering def when the answer is blank.
type Prompter interface {
	Ask(label, def string, required bool) (string, error)
}

// TerminalPrompter prompts on the terminal with promptui.
type TerminalPrompter struct{}

func (TerminalPrompter) Ask(label, def string, required bool) (string, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} : ",
		Valid:   "{{ . | green }} : ",
		Invalid: "{{ . | red }} : ",
		Success: "{{ . | bold }} : ",
	}

	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		Templates: templates,
		Validate:  validator(label, required),
	}

	result, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("prompt for %s: %w", strings.ToLower(label), err)
	}
	if strings.TrimSpace(result) == "" {
		result = def
	}
	return strings.TrimSpace(result), nil
}

func validator(label string, required bool) promptui.ValidateFunc {
	return func(input string) error {
		input = strings.TrimSpace(input)
		if input == "" {
			if required {
				return errors.New("empty")
			}
			return nil
		}
		if label == "Datetime" {
			_, err := routine.ParseTime(input)
			return err
		}
		return nil
	}
}

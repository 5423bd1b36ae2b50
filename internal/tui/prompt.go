package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// ConfirmDangerous asks for explicit confirmation before a destructive
// action. It defaults to No and returns false on abort.
func ConfirmDangerous(prompt string) (bool, error) {
	var confirmed bool
	form := huh.NewConfirm().
		Title(prompt).
		Description("This action cannot be undone.").
		Affirmative("Yes, I'm sure").
		Negative("Cancel").
		Value(&confirmed)
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

// InputRequired prompts for a single line of text and rejects blank input.
func InputRequired(title, placeholder string) (string, error) {
	var value string
	input := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("a value is required")
			}
			return nil
		}).
		Value(&value)
	if err := input.Run(); err != nil {
		return "", err
	}
	return value, nil
}

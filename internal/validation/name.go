package validation

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const MaxHabitNameLength = 100

// ValidateHabitName validates a habit name
func ValidateHabitName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return errors.New("habit name is required")
	}

	if utf8.RuneCountInString(trimmed) > MaxHabitNameLength {
		return errors.New("habit name is too long (max 100 characters)")
	}

	return nil
}

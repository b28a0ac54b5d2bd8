package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MaxTitleLength   = 200
	MaxContentLength = 100_000
)

// Required rejects blank values, naming the field in the message.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// MaxLength rejects values longer than max runes.
func MaxLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return fmt.Errorf("%s is too long (max %d characters)", field, max)
	}
	return nil
}

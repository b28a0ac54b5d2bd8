package validation

import (
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	MaxEmailLength    = 254
	MinPasswordLength = 12
	// bcrypt ignores everything past 72 bytes.
	MaxPasswordBytes = 72
)

var (
	ErrEmailRequired   = errors.New("email address is required")
	ErrEmailTooLong    = errors.New("email address is too long (max 254 characters)")
	ErrEmailInvalid    = errors.New("invalid email address format")
	ErrPasswordShort   = errors.New("password must be at least 12 characters")
	ErrPasswordLong    = errors.New("password must not exceed 72 bytes")
	ErrPasswordCommon  = errors.New("password is too common, please choose a stronger one")
	ErrPasswordIsEmail = errors.New("password must not contain your email address")
)

var commonPasswordParts = []string{
	"password", "123456", "qwerty", "letmein", "welcome",
	"streakly", "habit", "iloveyou", "abc123",
}

// ValidateEmail accepts a bare RFC 5322 address. Display-name forms such as
// "Ada <ada@example.com>" are rejected since the value is stored as-is.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if len(email) > MaxEmailLength {
		return ErrEmailTooLong
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return ErrEmailInvalid
	}

	return nil
}

// ValidatePassword checks length in characters and bcrypt's byte limit, and
// blocks well-known weak fragments.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordShort
	}
	if len(password) > MaxPasswordBytes {
		return ErrPasswordLong
	}

	lower := strings.ToLower(password)
	for _, part := range commonPasswordParts {
		if strings.Contains(lower, part) {
			return ErrPasswordCommon
		}
	}

	return nil
}

// ValidateCredentials validates a registration pair and additionally rejects
// passwords built from the email's local part.
func ValidateCredentials(email, password string) (field string, err error) {
	err = ValidateEmail(email)
	if err != nil {
		return "email", err
	}

	err = ValidatePassword(password)
	if err != nil {
		return "password", err
	}

	local, _, _ := strings.Cut(email, "@")
	if utf8.RuneCountInString(local) >= 4 && strings.Contains(strings.ToLower(password), strings.ToLower(local)) {
		return "password", ErrPasswordIsEmail
	}

	return "", nil
}

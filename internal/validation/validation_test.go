package validation

import (
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"ada@example.com", true},
		{"", false},
		{"not-an-email", false},
		{strings.Repeat("a", 250) + "@x.io", false},
	}

	for _, tt := range tests {
		err := ValidateEmail(tt.email)
		if (err == nil) != tt.ok {
			t.Fatalf("ValidateEmail(%q): expected ok=%v, got %v", tt.email, tt.ok, err)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		ok       bool
	}{
		{"strong", "correct horse battery", true},
		{"too short", "short", false},
		{"too long", strings.Repeat("x", 73), false},
		{"common pattern", "mypassword1234", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err == nil) != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, err)
			}
		})
	}
}

func TestValidateHabitName(t *testing.T) {
	if err := ValidateHabitName("  Read 10 pages  "); err != nil {
		t.Fatalf("expected valid name, got %v", err)
	}
	if err := ValidateHabitName("   "); err == nil {
		t.Fatal("expected error for blank name")
	}
	if err := ValidateHabitName(strings.Repeat("é", MaxHabitNameLength)); err != nil {
		t.Fatalf("expected %d multibyte runes to be allowed, got %v", MaxHabitNameLength, err)
	}
	if err := ValidateHabitName(strings.Repeat("a", MaxHabitNameLength+1)); err == nil {
		t.Fatal("expected error for long name")
	}
}

func TestRequired(t *testing.T) {
	err := Required("task", " \t")
	if err == nil || err.Error() != "task is required" {
		t.Fatalf("expected %q, got %v", "task is required", err)
	}
	if err := Required("task", "x"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestValidateEmailRejectsDisplayNames(t *testing.T) {
	for _, email := range []string{"Ada <ada@example.com>", "ada@localhost"} {
		if err := ValidateEmail(email); err != ErrEmailInvalid {
			t.Fatalf("ValidateEmail(%q): expected ErrEmailInvalid, got %v", email, err)
		}
	}
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		field    string
	}{
		{"valid", "grace@example.com", "correct horse battery", ""},
		{"bad email", "grace", "correct horse battery", "email"},
		{"weak password", "grace@example.com", "short", "password"},
		{"password contains email", "grace@example.com", "Grace-is-my-secret", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, err := ValidateCredentials(tt.email, tt.password)
			if field != tt.field {
				t.Fatalf("expected field %q, got %q (%v)", tt.field, field, err)
			}
			if (err == nil) != (tt.field == "") {
				t.Fatalf("unexpected error %v", err)
			}
		})
	}
}

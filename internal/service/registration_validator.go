package service

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"storefront/internal/errors"
)

const (
	minPasswordLength = 8
	minUsernameLength = 3
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterInput is the raw registration form.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// RegistrationValidator checks registration input. Rules are applied in a fixed order
// and the first failure is reported.
type RegistrationValidator struct{}

// NewRegistrationValidator creates a new registration validator.
func NewRegistrationValidator() *RegistrationValidator {
	return &RegistrationValidator{}
}

// Normalize trims the identifying fields. Passwords are taken verbatim.
func (v *RegistrationValidator) Normalize(in RegisterInput) RegisterInput {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	return in
}

// Validate returns a *errors.ValidationError for the first rule the input breaks.
func (v *RegistrationValidator) Validate(in RegisterInput) error {
	if in.Username == "" || in.Email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return errors.NewValidationError("form", "All fields are required")
	}

	if in.Password != in.ConfirmPassword {
		return errors.NewValidationError("confirm_password", "Passwords do not match")
	}

	if utf8.RuneCountInString(in.Password) < minPasswordLength {
		return errors.NewValidationError("password", "Password must be at least 8 characters long")
	}

	if utf8.RuneCountInString(in.Username) < minUsernameLength || !alphanumeric(in.Username) {
		return errors.NewValidationError("username", "Username must be at least 3 characters long and contain only letters and numbers")
	}

	if !v.ValidEmail(in.Email) {
		return errors.NewValidationError("email", "Invalid email format")
	}

	return nil
}

// ValidEmail reports whether email has the shape of an address.
func (v *RegistrationValidator) ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// alphanumeric reports whether s is made only of letters and numbers, in any script.
func alphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

package auth

import "regexp"

const minPasswordLength = 6

var emailRe = regexp.MustCompile(`\S+@\S+\.\S+`)

type ValidationKind int

const (
	ValidationInvalidEmail ValidationKind = iota
	ValidationWeakPassword
	ValidationPasswordMismatch
)

// ValidationError rejects a form before any provider call is made.
type ValidationError struct {
	Kind ValidationKind
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case ValidationInvalidEmail:
		return "validation: email is invalid"
	case ValidationWeakPassword:
		return "validation: password is too weak"
	default:
		return "validation: passwords do not match"
	}
}

func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidPassword requires at least six characters, an ASCII uppercase letter
// and an ASCII digit.
func ValidPassword(password string) bool {
	if len([]rune(password)) < minPasswordLength {
		return false
	}

	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}

	return hasUpper && hasDigit
}

func validateLogin(email string) error {
	if !ValidEmail(email) {
		return &ValidationError{Kind: ValidationInvalidEmail}
	}
	return nil
}

func validateRegistration(email, password, confirmPassword string) error {
	if !ValidEmail(email) {
		return &ValidationError{Kind: ValidationInvalidEmail}
	}
	if !ValidPassword(password) {
		return &ValidationError{Kind: ValidationWeakPassword}
	}
	if password != confirmPassword {
		return &ValidationError{Kind: ValidationPasswordMismatch}
	}
	return nil
}

package auth

import (
	"errors"
	"strings"
)

type Kind int

const (
	KindOther Kind = iota
	KindWrongPassword
	KindUserNotFound
	KindInvalidEmail
	KindEmailInUse
)

func (k Kind) String() string {
	switch k {
	case KindWrongPassword:
		return "WrongPassword"
	case KindUserNotFound:
		return "UserNotFound"
	case KindInvalidEmail:
		return "InvalidEmail"
	case KindEmailInUse:
		return "EmailInUse"
	default:
		return "Other"
	}
}

// Provider error codes.
const (
	CodeWrongPassword = "wrong-password"
	CodeUserNotFound  = "user-not-found"
	CodeInvalidEmail  = "invalid-email"
	CodeEmailInUse    = "email-already-in-use"
	CodeOther         = "other"

	codePrefix = "auth/"
)

// ProviderError is what a Provider returns for a rejected call.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

// Error is a classified remote authentication failure.
type Error struct {
	Kind    Kind
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.Kind == KindOther && e.Message != "" {
		return "auth: " + e.Message
	}
	return "auth: " + e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.err
}

// Classify maps any provider failure onto an *Error.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		return &Error{Kind: KindOther, Message: err.Error(), err: err}
	}

	code := strings.TrimPrefix(strings.TrimSpace(providerErr.Code), codePrefix)

	switch code {
	case CodeWrongPassword:
		return &Error{Kind: KindWrongPassword, err: err}
	case CodeUserNotFound:
		return &Error{Kind: KindUserNotFound, err: err}
	case CodeInvalidEmail:
		return &Error{Kind: KindInvalidEmail, err: err}
	case CodeEmailInUse:
		return &Error{Kind: KindEmailInUse, err: err}
	default:
		message := providerErr.Message
		if message == "" {
			message = providerErr.Code
		}
		return &Error{Kind: KindOther, Message: message, err: err}
	}
}

package auth

import (
	"errors"

	"github.com/heartmarshall/pudiya/internal/domain"
)

// ErrorCode categorizes authentication failures for display.
type ErrorCode string

const (
	CodeAlreadyInUse      ErrorCode = "already-in-use"
	CodeWeakCredential    ErrorCode = "weak-credential"
	CodeInvalidCredential ErrorCode = "invalid-credential"
	CodeNotFound          ErrorCode = "not-found"
	CodeNotConfigured     ErrorCode = "not-configured"
	CodeOther             ErrorCode = "other"
)

// GenericMessage is shown for any code without a dedicated message.
const GenericMessage = "Something went wrong. Please try again."

var messages = map[ErrorCode]string{
	CodeAlreadyInUse:      "An account with this email already exists.",
	CodeWeakCredential:    "Password should be at least 6 characters.",
	CodeInvalidCredential: "Invalid email or password.",
	CodeNotFound:          "No account found with this email.",
	CodeNotConfigured:     "Sign-in is unavailable: the service is not configured.",
}

// Code maps an error returned by the auth service to its category.
// A nil error yields "".
func Code(err error) ErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrAlreadyExists):
		return CodeAlreadyInUse
	case errors.Is(err, domain.ErrWeakCredential):
		return CodeWeakCredential
	case errors.Is(err, domain.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrValidation):
		return CodeInvalidCredential
	case errors.Is(err, domain.ErrNotConfigured):
		return CodeNotConfigured
	default:
		return CodeOther
	}
}

// Message returns the user-facing text for a code. Unknown codes fall back
// to GenericMessage.
func Message(code ErrorCode) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return GenericMessage
}

// ErrorMessage is shorthand for Message(Code(err)).
func ErrorMessage(err error) string {
	return Message(Code(err))
}

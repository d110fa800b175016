// Package auth is the boundary to the identity provider: form validation,
// sign-in/up/out and the fixed messages shown for provider failures.
package auth

import "errors"

// Code classifies a provider failure.
type Code string

const (
	CodeInvalidEmail        Code = "invalid-email"
	CodeUserNotFound        Code = "user-not-found"
	CodeWrongPassword       Code = "wrong-password"
	CodeEmailInUse          Code = "email-already-in-use"
	CodeWeakPassword        Code = "weak-password"
	CodeTooManyRequests     Code = "too-many-requests"
	CodeNetwork             Code = "network-request-failed"
	CodeUserDisabled        Code = "user-disabled"
	CodeOperationNotAllowed Code = "operation-not-allowed"
	CodeUnknown             Code = "unknown"
)

var messages = map[Code]string{
	CodeInvalidEmail:        "Please enter a valid email address",
	CodeUserNotFound:        "No account found with this email address",
	CodeWrongPassword:       "Incorrect password. Please try again",
	CodeEmailInUse:          "An account with this email already exists",
	CodeWeakPassword:        "Password is too weak. Please choose a stronger password (at least 6 characters)",
	CodeTooManyRequests:     "Too many failed attempts. Please try again later",
	CodeNetwork:             "Network error. Please check your internet connection",
	CodeUserDisabled:        "This account has been disabled",
	CodeOperationNotAllowed: "Email/password sign-in is not enabled for this app",
	CodeUnknown:             "An error occurred. Please try again",
}

// SignOutMessage is shown for any sign-out failure.
const SignOutMessage = "Failed to sign out. Please try again"

// Error is a classified provider failure.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "auth/" + string(e.Code)
	}
	return "auth/" + string(e.Code) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func newError(code Code, err error) *Error {
	return &Error{Code: code, Err: err}
}

// CodeOf returns the classification of err, or CodeUnknown.
func CodeOf(err error) Code {
	var authErr *Error
	if errors.As(err, &authErr) {
		if _, ok := messages[authErr.Code]; ok {
			return authErr.Code
		}
	}
	return CodeUnknown
}

// Message returns the user-facing text for a provider failure. It never
// includes the underlying error text.
func Message(err error) string {
	return messages[CodeOf(err)]
}

// Failure is what callers of Client see when the provider rejects a request.
type Failure struct {
	Code    Code
	Message string
}

func (f *Failure) Error() string { return f.Message }

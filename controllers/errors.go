package controllers

import (
	"errors"
	"net/http"

	"civiconnect-be/auth"
	"civiconnect-be/store"
)

// statusFor maps store failures to a response status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

var authStatus = map[auth.Code]int{
	auth.CodeInvalidEmail:        http.StatusBadRequest,
	auth.CodeWeakPassword:        http.StatusBadRequest,
	auth.CodeUserNotFound:        http.StatusUnauthorized,
	auth.CodeWrongPassword:       http.StatusUnauthorized,
	auth.CodeEmailInUse:          http.StatusConflict,
	auth.CodeTooManyRequests:     http.StatusTooManyRequests,
	auth.CodeNetwork:             http.StatusServiceUnavailable,
	auth.CodeUserDisabled:        http.StatusForbidden,
	auth.CodeOperationNotAllowed: http.StatusForbidden,
}

func authStatusFor(code auth.Code) int {
	if status, ok := authStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

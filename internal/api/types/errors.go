package types

import (
	"errors"
	"net/http"

	appErr "github.com/techstock/inventory/pkg/errors"
)

// StatusOf maps application error codes to HTTP status.
func StatusOf(err error) int {
	switch appErr.CodeOf(err) {
	case appErr.CodeInvalid:
		return http.StatusBadRequest
	case appErr.CodeNotFound:
		return http.StatusNotFound
	case appErr.CodeConflict, appErr.CodeAlreadyExists:
		return http.StatusConflict
	case appErr.CodeUnauthorized:
		return http.StatusUnauthorized
	case appErr.CodeDeadline:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// MessageOf returns the user-facing message for err. Infrastructure failures
// collapse to a generic message; their detail is for server-side logs only.
func MessageOf(err error) string {
	var ae *appErr.AppError
	if !errors.As(err, &ae) {
		return "internal server error"
	}
	switch ae.Code {
	case appErr.CodeInternal, appErr.CodeUnavailable, appErr.CodeUnknown:
		return "internal server error"
	case appErr.CodeDeadline:
		return "request timed out"
	default:
		return ae.Message
	}
}

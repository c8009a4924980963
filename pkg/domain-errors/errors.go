// Package domainerrors defines the error taxonomy surfaced by domain services.
//
// Services translate infrastructure sentinels (pkg/platform/sentinel) into
// these coded errors; the HTTP layer translates codes into status codes via
// ToHTTPStatus. Codes are stable strings that appear in API error envelopes.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a class of domain error.
type Code string

const (
	// CodeNotFound marks lookups for records that do not exist
	// (unknown application, payment, scheme, or notification id).
	CodeNotFound Code = "not_found"

	// CodeInvalidTransition marks state machine violations, such as retrying
	// a payment that is not in the failed state.
	CodeInvalidTransition Code = "invalid_transition"

	// CodeValidation marks semantically invalid input at submission time,
	// such as an application against an inactive scheme or malformed
	// eligibility rules on scheme creation.
	CodeValidation Code = "validation_failed"

	// CodeBadRequest marks syntactically invalid input (unparseable ids,
	// bad JSON bodies).
	CodeBadRequest Code = "bad_request"

	// CodeUnauthorized marks requests lacking a valid identity.
	CodeUnauthorized Code = "unauthorized"

	// CodeInternal marks unexpected failures. HTTP responses omit the
	// description for this code.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error. It may wrap an underlying cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New constructs a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that did not originate in the domain layer.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a domain error code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidTransition:
		return http.StatusConflict
	case CodeValidation:
		return http.StatusUnprocessableEntity
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

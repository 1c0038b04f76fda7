// Package domainerrors provides coded errors that cross package boundaries.
//
// Models and services return *Error values carrying a Code. Transport layers map
// codes to status codes; callers branch with HasCode instead of string matching.
// Every code belongs to exactly one Kind, which is the coarse taxonomy callers use
// to decide whether a retry with corrected input makes sense.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a specific failure.
type Code string

const (
	// Validation: the caller can retry with corrected input.
	CodeValidation         Code = "validation_error"
	CodeInvalidInput       Code = "invalid_input"
	CodeBadRequest         Code = "bad_request"
	CodeInvariantViolation Code = "invariant_violation"

	// Authorization: terminal for the call.
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeRateLimited  Code = "rate_limited"

	// State: terminal for the call.
	CodeNotFound          Code = "not_found"
	CodeConflict          Code = "conflict"
	CodeInvalidState      Code = "invalid_state"
	CodeExpired           Code = "expired"
	CodeSupplyExceeded    Code = "supply_exceeded"
	CodeInsufficientFunds Code = "insufficient_funds"

	// Arithmetic: always fatal for the unit of work.
	CodeOverflow Code = "overflow"

	CodeInternal Code = "internal_error"
	CodeTimeout  Code = "timeout"
)

// Kind groups codes into the error taxonomy.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindState         Kind = "state"
	KindArithmetic    Kind = "arithmetic"
	KindInternal      Kind = "internal"
)

var codeKinds = map[Code]Kind{
	CodeValidation:         KindValidation,
	CodeInvalidInput:       KindValidation,
	CodeBadRequest:         KindValidation,
	CodeInvariantViolation: KindValidation,
	CodeUnauthorized:       KindAuthorization,
	CodeForbidden:          KindAuthorization,
	CodeRateLimited:        KindAuthorization,
	CodeNotFound:           KindState,
	CodeConflict:           KindState,
	CodeInvalidState:       KindState,
	CodeExpired:            KindState,
	CodeSupplyExceeded:     KindState,
	CodeInsufficientFunds:  KindState,
	CodeOverflow:           KindArithmetic,
	CodeInternal:           KindInternal,
	CodeTimeout:            KindInternal,
}

// Kind returns the taxonomy bucket of c. Unknown codes are internal.
func (c Code) Kind() Kind {
	if k, ok := codeKinds[c]; ok {
		return k
	}
	return KindInternal
}

// Error is a coded domain error, optionally wrapping a cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error without a cause.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to err. A nil err still yields an Error.
func Wrap(err error, code Code, msg string) error {
	return &Error{Code: code, Message: msg, Err: err}
}

// CodeOf returns the outermost code in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HasCode reports whether the outermost coded error in err's chain has code.
func HasCode(err error, code Code) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}

// KindOf returns the taxonomy bucket for err.
func KindOf(err error) Kind {
	return CodeOf(err).Kind()
}

// ToHTTPStatus maps a domain error to a status code.
func ToHTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeValidation, CodeInvalidInput, CodeBadRequest, CodeInvariantViolation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeInvalidState, CodeExpired, CodeSupplyExceeded, CodeInsufficientFunds:
		return http.StatusConflict
	case CodeOverflow:
		return http.StatusUnprocessableEntity
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the message safe to show to API clients.
func UserMessage(err error) string {
	var de *Error
	if errors.As(err, &de) && de.Code != CodeInternal {
		return de.Message
	}
	return "internal error"
}

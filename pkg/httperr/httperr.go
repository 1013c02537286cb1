// Package httperr defines the typed error taxonomy used across the backend.
//
// Services return *httperr.Error values carrying an HTTP status class plus
// optional diagnostic metadata; handlers translate them with Status() and
// Metadata(). Anything that is not an *httperr.Error is treated as a 500.
package httperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a failure with an HTTP status classification.
type Error struct {
	Code     int
	Message  string
	Metadata map[string]interface{}
	Err      error // wrapped cause, optional
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an error with an explicit status code.
func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a cause to a typed error.
func Wrap(code int, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Err: cause}
}

// WithMeta returns a copy of e carrying diagnostic metadata.
func (e *Error) WithMeta(meta map[string]interface{}) *Error {
	clone := *e
	clone.Metadata = meta
	return &clone
}

// ── Constructors for the taxonomy ────────────────────────────────────────────

// NotFound — unknown user, product or order.
func NotFound(message string) *Error { return New(http.StatusNotFound, message) }

// Conflict — no stock available.
func Conflict(message string) *Error { return New(http.StatusConflict, message) }

// Unauthorized — bad, expired or missing credential.
func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }

// Forbidden — authenticated but not allowed (e.g. foreign order).
func Forbidden(message string) *Error { return New(http.StatusForbidden, message) }

// BadGateway — downstream persistence or index failure.
func BadGateway(message string, cause error) *Error {
	return Wrap(http.StatusBadGateway, message, cause)
}

// Unprocessable — malformed input that passed transport but not validation.
func Unprocessable(message string) *Error { return New(http.StatusUnprocessableEntity, message) }

// Unavailable — a required collaborator is not configured.
func Unavailable(message string) *Error { return New(http.StatusServiceUnavailable, message) }

// BadRequest — the request is structurally valid but cannot be honoured.
func BadRequest(message string) *Error { return New(http.StatusBadRequest, message) }

// ── Inspection helpers ───────────────────────────────────────────────────────

// Status extracts the HTTP status for err; unknown errors map to 500.
func Status(err error) int {
	var he *Error
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

// Is reports whether err is a typed error with the given status code.
func Is(err error, code int) bool {
	var he *Error
	return errors.As(err, &he) && he.Code == code
}

// Metadata returns the diagnostic metadata attached to err, if any.
func Metadata(err error) map[string]interface{} {
	var he *Error
	if errors.As(err, &he) {
		return he.Metadata
	}
	return nil
}

// Package apperr holds the typed errors services return. httpkit.HandleError
// turns them into responses; anything else becomes a 500.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	// KindConflict also covers state machine transitions that are not allowed.
	KindConflict
	KindForbidden
	KindUnauthorized
	KindBadRequest
	KindInternal
	// KindRateLimited and KindQuotaExceeded pass gateway 429 and 402 replies through.
	KindRateLimited
	KindQuotaExceeded
	// KindUpstream is any other failure of an upstream collaborator.
	KindUpstream
)

var statusByKind = map[Kind]int{
	KindNotFound:      http.StatusNotFound,
	KindValidation:    http.StatusBadRequest,
	KindConflict:      http.StatusConflict,
	KindForbidden:     http.StatusForbidden,
	KindUnauthorized:  http.StatusUnauthorized,
	KindBadRequest:    http.StatusBadRequest,
	KindInternal:      http.StatusInternalServerError,
	KindRateLimited:   http.StatusTooManyRequests,
	KindQuotaExceeded: http.StatusPaymentRequired,
	KindUpstream:      http.StatusBadGateway,
}

// Error is a failure with a Kind and a message safe to show to clients.
// Err keeps the cause for logs and errors.Is.
type Error struct {
	Kind    Kind
	Message string
	Op      string
	Err     error
	Details interface{}
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus is the response status for the error's Kind. Unknown kinds are 400.
func (e *Error) HTTPStatus() int {
	if status, ok := statusByKind[e.Kind]; ok {
		return status
	}
	return http.StatusBadRequest
}

func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

// WithDetails attaches a payload rendered as "details" in the response.
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFound(message string) *Error     { return New(KindNotFound, message) }
func Validation(message string) *Error   { return New(KindValidation, message) }
func Conflict(message string) *Error     { return New(KindConflict, message) }
func InvalidState(message string) *Error { return New(KindConflict, message) }
func Forbidden(message string) *Error    { return New(KindForbidden, message) }
func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }
func BadRequest(message string) *Error   { return New(KindBadRequest, message) }
func Internal(message string) *Error     { return New(KindInternal, message) }

// Persistence hides a store failure behind a generic message and keeps the
// cause for logging.
func Persistence(op string, err error) *Error {
	return Wrap(KindInternal, "failed to save changes, please try again", err).WithOp(op)
}

// GetKind returns the Kind of the first *Error in err's chain, or KindUnknown.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}

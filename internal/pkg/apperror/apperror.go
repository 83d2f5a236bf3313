// Package apperror defines the typed error taxonomy shared by the store,
// service and HTTP layers. Errors propagate unmodified to the Fiber boundary,
// where serverutils.ErrorHandlerMiddleware maps each kind to a status code.
package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInvalidArgument Kind = "invalid_argument" // 400
	KindNotFound        Kind = "not_found"        // 404
	KindUnauthorized    Kind = "unauthorized"     // 401
	KindForbidden       Kind = "forbidden"        // 403
	KindPaymentFailed   Kind = "payment_failed"   // 400, provider declined, not retried
	KindTransient       Kind = "transient"        // 502, provider timeout/network, retryable
	KindConflict        Kind = "conflict"         // 409, would overlap an existing window
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func InvalidArgument(format string, args ...interface{}) *Error {
	return New(KindInvalidArgument, format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return New(KindNotFound, format, args...)
}

func Unauthorized(format string, args ...interface{}) *Error {
	return New(KindUnauthorized, format, args...)
}

func Forbidden(format string, args ...interface{}) *Error {
	return New(KindForbidden, format, args...)
}

func PaymentFailed(format string, args ...interface{}) *Error {
	return New(KindPaymentFailed, format, args...)
}

func Transient(err error, message string) *Error {
	return Wrap(KindTransient, err, message)
}

func Conflict(format string, args ...interface{}) *Error {
	return New(KindConflict, format, args...)
}

// KindOf extracts the kind from any error in the chain. Unclassified errors
// report an empty kind and the boundary treats them as 500s.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

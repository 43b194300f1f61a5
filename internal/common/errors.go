// Package common defines shared constants and sentinel errors used across
// client and server layers of gophkms. Callers should use errors.Is to
// match these values and KindOf to classify them.
package common

import "errors"

// Kind groups errors by how a caller is expected to react to them.
type Kind int

const (
	KindInternal Kind = iota
	KindConflict
	KindNotFound
	KindUnauthenticated
	KindUnauthorized
	KindValidationFailed
	KindInvalidArgument
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidationFailed:
		return "validation_failed"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Error is a definitive outcome with a stable code that is safe to send
// over the wire.
type Error struct {
	kind Kind
	code string
}

var byCode = map[string]*Error{}

func newError(kind Kind, code string) *Error {
	e := &Error{kind: kind, code: code}
	byCode[code] = e
	return e
}

func (e *Error) Error() string { return e.code }

// Kind reports the error family.
func (e *Error) Kind() Kind { return e.kind }

// Code returns the wire code, e.g. "user_exists".
func (e *Error) Code() string { return e.code }

var (
	// Repository-level errors.
	ErrorNotFound      = newError(KindNotFound, "not_found")
	ErrorAlreadyExists = newError(KindConflict, "already_exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal      = newError(KindInternal, "internal_error")
	ErrUnavailable     = newError(KindUnavailable, "unavailable")
	ErrInvalidArgument = newError(KindInvalidArgument, "invalid_argument")

	// Challenge errors.
	ErrNoPending    = newError(KindNotFound, "no_pending")
	ErrCodeMismatch = newError(KindValidationFailed, "code_mismatch")

	// Broker errors. These are the codes clients see.
	ErrUserExists            = newError(KindConflict, "user_exists")
	ErrNoPendingRegistration = newError(KindNotFound, "no_pending_registration")
	ErrOTPFailed             = newError(KindValidationFailed, "otp_failed")
	ErrLoginFailed           = newError(KindValidationFailed, "login_error")
	ErrInvalidSession        = newError(KindUnauthenticated, "invalid_session")
	ErrResourceExists        = newError(KindConflict, "resource_exists")
	ErrAccessDenied          = newError(KindUnauthorized, "access_denied")
	ErrPermissionDenied      = newError(KindUnauthorized, "permission_denied")
	ErrMailDelivery          = newError(KindUnavailable, "mail_delivery_failed")

	// Blob errors.
	ErrFileExists   = newError(KindConflict, "file_exists")
	ErrFileNotFound = newError(KindNotFound, "file_not_found")
)

// KindOf classifies err. Errors that do not wrap an *Error are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindInternal
}

// CodeOf returns the wire code of err, or "internal_error" for errors that
// do not wrap an *Error.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return ErrorInternal.code
}

// ByCode maps a wire code back to its sentinel. Unknown codes yield nil.
func ByCode(code string) *Error {
	return byCode[code]
}

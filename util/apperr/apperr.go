package apperr

import "fmt"

// Kind classifies a failure structurally so callers never have to match on
// the wording of an error message.
type Kind string

const (
	KindUnknown         Kind = "UNKNOWN"
	KindValidation      Kind = "VALIDATION"
	KindNotFound        Kind = "NOT_FOUND"
	KindConflict        Kind = "CONFLICT"
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindForbidden       Kind = "FORBIDDEN"
	KindInFlight        Kind = "IN_FLIGHT"
	KindInternal        Kind = "INTERNAL"
)

type AppError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

func New(kind Kind, message string) error {
	return &AppError{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) error {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

func Validation(msg string) error {
	return New(KindValidation, msg)
}

func NotFound(msg string) error {
	return New(KindNotFound, msg)
}

func Conflict(msg string) error {
	return New(KindConflict, msg)
}

func Unauthenticated(msg string) error {
	return New(KindUnauthenticated, msg)
}

func Forbidden(msg string) error {
	return New(KindForbidden, msg)
}

func Internal(msg string) error {
	return New(KindInternal, msg)
}

func InFlight(msg string) error {
	return New(KindInFlight, msg)
}

// KindOf extracts the structured kind from any error in the chain,
// defaulting to KindUnknown.
func KindOf(err error) Kind {
	for err != nil {
		if ae, ok := err.(*AppError); ok {
			return ae.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return KindUnknown
}

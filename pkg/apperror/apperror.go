package apperror

import "errors"

// Stable machine-checkable codes for domain errors. Callers switch on the
// code; the message is for humans and may change.
const (
	CodeNotFound          = "not_found"
	CodeTimeInvalid       = "time_invalid"
	CodeAlreadyExists     = "already_exists"
	CodeCapacityFull      = "capacity_full"
	CodeInvalidTransition = "invalid_transition"
	CodeAlreadyCancelled  = "already_cancelled"
)

// Error is a recoverable, user-facing domain error. Infrastructure faults
// are never wrapped in it; they stay plain errors and surface as 500s.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

// Is makes errors.Is match any two domain errors with the same code, so
// sentinel comparison keeps working across wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// AsDomain returns the domain error inside err, or nil if err is an
// infrastructure failure. It follows both single and joined wrapping.
func AsDomain(err error) *Error {
	var derr *Error
	if errors.As(err, &derr) {
		return derr
	}
	return nil
}

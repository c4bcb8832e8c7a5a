package pages

import (
	apperrors "lifeos/internal/errors"
)

// Failure is what a screen shows when a call fails. Message is fixed per
// operation; Err keeps the cause for logs and errors.Is.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Unwrap() error { return f.Err }

// fail wraps a failed call under a generic message.
func fail(message string, err error) error {
	if err == nil {
		return nil
	}
	return &Failure{Message: message, Err: err}
}

// missing builds the validation error for an absent field. It is returned
// as is, before any call is made.
func missing(message string) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, message)
}

// errNoUser is returned by calls made on a page mounted without a session.
var errNoUser = apperrors.WithMessage(apperrors.ErrUnauthorized, "Not logged in")

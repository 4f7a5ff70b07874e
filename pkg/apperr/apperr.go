// Package apperr holds the sentinel errors the service layer returns to the
// HTTP boundary. Controllers match them with errors.Is and map to statuses.
package apperr

import (
	"github.com/pkg/errors"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrItemUnavailable   = errors.New("item unavailable")
	ErrBelowMinimumOrder = errors.New("below minimum order")
	ErrValidation        = errors.New("validation failed")
)

func NotFoundf(format string, args ...any) error {
	return errors.Wrapf(ErrNotFound, format, args...)
}

func Forbiddenf(format string, args ...any) error {
	return errors.Wrapf(ErrForbidden, format, args...)
}

func InvalidTransitionf(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidTransition, format, args...)
}

func Validationf(format string, args ...any) error {
	return errors.Wrapf(ErrValidation, format, args...)
}

package services

import (
	"errors"
	"fmt"
)

// ValidationError covers business-rule rejections detected before any
// mutation: missing fields, bad quantities, malformed query parameters.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func invalidf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation rejection.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Domain failures are plain values so every call site sees the failure
// modes in the signature instead of catching exceptions at a distance.

// NotFoundError marks a missing entity (event, position, registration,
// user, ...). Controllers map it to HTTP 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func NotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// FieldFailure is one structured validation failure, serialized in the
// 400 response body.
type FieldFailure struct {
	PropertyName   string      `json:"propertyName"`
	AttemptedValue interface{} `json:"attemptedValue"`
	ErrorMessage   string      `json:"errorMessage"`
}

// ValidationError carries every failure collected for a request.
type ValidationError struct {
	Failures []FieldFailure
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.PropertyName+": "+f.ErrorMessage)
	}
	return "validation failure: " + strings.Join(msgs, "; ")
}

func Validation(failures ...FieldFailure) *ValidationError {
	return &ValidationError{Failures: failures}
}

func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// ForbiddenError marks a role-gate failure detected below the middleware
// layer. Controllers map it to HTTP 403.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

func Forbidden(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

func IsForbidden(err error) bool {
	var fe *ForbiddenError
	return errors.As(err, &fe)
}

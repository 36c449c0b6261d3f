package models

import "fmt"

// ErrorValidation is returned when client input must be corrected.
type ErrorValidation struct {
	Message string
	Fields  map[string]string
}

func (e ErrorValidation) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) error {
	return ErrorValidation{Message: fmt.Sprintf(format, args...)}
}

func NewFieldError(field, message string) error {
	return ErrorValidation{Message: message, Fields: map[string]string{field: message}}
}

type ErrorUnauthorized struct {
	Message string
}

func (e ErrorUnauthorized) Error() string {
	return e.Message
}

type ErrorForbidden struct {
	Message string
}

func (e ErrorForbidden) Error() string {
	return e.Message
}

type ErrorNotFound struct {
	Resource string
}

func (e ErrorNotFound) Error() string {
	return e.Resource + " not found"
}

type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string {
	return e.Message
}

// ErrorInternalServer wraps an unexpected store or runtime failure.
type ErrorInternalServer struct {
	Op  string
	Err error
}

func (e ErrorInternalServer) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e ErrorInternalServer) Unwrap() error {
	return e.Err
}

func NewInternalError(op string, err error) error {
	return ErrorInternalServer{Op: op, Err: err}
}

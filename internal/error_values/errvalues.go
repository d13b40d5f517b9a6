package errorvalues

import (
	"errors"
	"net/http"
	"strings"
)

var (
	ErrUserNotFound  = errors.New("user doesn't exists")
	ErrRouteNotFound = errors.New("not found")
	ErrInvalidDate   = errors.New("invalid date")
	ErrUnknownScheme = errors.New("unsupported storage scheme")
)

type FieldError struct {
	Field   string
	Message string
}

// ValidationError keeps field failures in declaration order.
type ValidationError struct {
	Fields []FieldError
}

func (ve *ValidationError) Add(field, message string) {
	ve.Fields = append(ve.Fields, FieldError{Field: field, Message: message})
}

func (ve *ValidationError) Empty() bool {
	return len(ve.Fields) == 0
}

// First returns the message of the first failed field.
func (ve *ValidationError) First() string {
	if len(ve.Fields) == 0 {
		return "validation failed"
	}
	return ve.Fields[0].Message
}

func (ve *ValidationError) Error() string {
	msgs := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "validation error: " + strings.Join(msgs, "; ")
}

func NewValidationError(field, message string) *ValidationError {
	ve := &ValidationError{}
	ve.Add(field, message)
	return ve
}

type NotFoundError struct {
	Message string
	Err     error
}

func (nf *NotFoundError) Error() string {
	return nf.Message
}

func (nf *NotFoundError) Unwrap() error {
	return nf.Err
}

func (nf *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

func (nf *NotFoundError) PublicMessage() string {
	return nf.Message
}

// StorageError is a backend failure unrelated to input validity.
type StorageError struct {
	Op  string
	Err error
}

func (se *StorageError) Error() string {
	return "storage error: " + se.Op + ": " + se.Err.Error()
}

func (se *StorageError) Unwrap() error {
	return se.Err
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

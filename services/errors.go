package services

import "errors"

// Error taxonomy shared by both front-ends. Controllers map these onto
// HTTP statuses; the CLI prints the message.
var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("conflict")
)

// ValidationError carries a human-readable message for bad input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validation(msg string) error { return &ValidationError{Message: msg} }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func notFound(msg string) error {
	return &taggedError{tag: ErrNotFound, msg: msg}
}

func conflict(msg string) error {
	return &taggedError{tag: ErrConflict, msg: msg}
}

type taggedError struct {
	tag error
	msg string
}

func (e *taggedError) Error() string { return e.msg }
func (e *taggedError) Unwrap() error { return e.tag }

package service

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrNotArchived = errors.New("cannot be deleted because it is not archived")
)

// ValidationError lists the offending fields. It matches ErrValidation
// under errors.Is.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Details, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrInvalidReference is returned when a record points at a row that does not exist
	ErrInvalidReference = errors.New("invalid reference")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
)

package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrUnsupportedFormat is returned when a file's extension is not in the allowed set.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrUnreadableContent is returned when a file cannot be read or parsed into text.
	ErrUnreadableContent = errors.New("unreadable content")
	// ErrEmptyDocument is returned when ingestion produces zero chunks.
	ErrEmptyDocument = errors.New("document produced no chunks")
	// ErrExternalService is returned when an embedding or LLM provider call fails.
	ErrExternalService = errors.New("external service error")
	// ErrVectorStore is returned when a vector index operation fails.
	ErrVectorStore = errors.New("vector store error")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match a ValidationError against ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

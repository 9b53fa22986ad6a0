package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError rejects bad input (empty query, out-of-range top-k).
// Surfaced to the caller as a 400; never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError marks a missing entity/roadmap/node. Maps to 404.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// ServiceError wraps a failure from an external backend (embedding model or
// vector index). Retryable distinguishes transient conditions (timeout, 5xx,
// 429) from permanent ones (other 4xx, empty input, dimension mismatch).
type ServiceError struct {
	Service   string // "embedding" | "vector_index"
	Retryable bool
	Err       error
}

func (e *ServiceError) Error() string {
	kind := "non-retryable"
	if e.Retryable {
		kind = "retryable"
	}
	return fmt.Sprintf("%s service error (%s): %v", e.Service, kind, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func NewEmbeddingServiceError(err error, retryable bool) *ServiceError {
	return &ServiceError{Service: "embedding", Retryable: retryable, Err: err}
}

func NewIndexServiceError(err error, retryable bool) *ServiceError {
	return &ServiceError{Service: "vector_index", Retryable: retryable, Err: err}
}

// IsRetryable reports whether err is a ServiceError tagged retryable.
func IsRetryable(err error) bool {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Retryable
	}
	return false
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

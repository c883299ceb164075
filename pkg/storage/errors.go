package storage

import (
	"errors"
	"fmt"
)

// Common storage error sentinels. They can be used directly with errors.Is
// or enriched with WithMessage, WithCause, and WithContext.
var (
	// ErrNotConnected indicates the client is not connected to the
	// backend: it was never initialized, or the connection was closed
	// or lost.
	ErrNotConnected = &StorageError{
		Code:    "NOT_CONNECTED",
		Message: "storage client is not connected",
	}

	// ErrConnectionFailed indicates an attempt to reach the backend
	// failed: network issues, bad credentials, wrong address, or the
	// backend being down.
	ErrConnectionFailed = &StorageError{
		Code:    "CONNECTION_FAILED",
		Message: "failed to connect to storage backend",
	}

	// ErrTimeout indicates a storage operation exceeded its deadline.
	ErrTimeout = &StorageError{
		Code:    "TIMEOUT",
		Message: "storage operation timed out",
	}

	// ErrInvalidConfig indicates the storage configuration failed
	// validation before any connection was attempted.
	ErrInvalidConfig = &StorageError{
		Code:    "INVALID_CONFIG",
		Message: "invalid storage configuration",
	}

	// ErrClientNotFound indicates a Manager lookup for an unregistered
	// client name.
	ErrClientNotFound = &StorageError{
		Code:    "CLIENT_NOT_FOUND",
		Message: "storage client not found",
	}

	// ErrClientAlreadyExists indicates a Manager registration collision.
	ErrClientAlreadyExists = &StorageError{
		Code:    "CLIENT_ALREADY_EXISTS",
		Message: "storage client already exists",
	}

	// ErrOperationFailed is the generic operation failure. It should be
	// wrapped with the underlying cause before being returned.
	ErrOperationFailed = &StorageError{
		Code:    "OPERATION_FAILED",
		Message: "storage operation failed",
	}
)

// StorageError is a storage-related error with a machine-readable code.
// Two StorageErrors compare equal under errors.Is when their codes match,
// so enriched copies still match their sentinel.
type StorageError struct {
	// Code is a machine-readable error code, e.g. "NOT_CONNECTED".
	Code string

	// Message is the human-readable description.
	Message string

	// Cause is the underlying error, if any.
	Cause error

	// Context carries additional key/value details for debugging.
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause so errors.Is and errors.As can walk
// the chain.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// Is matches errors by code, enabling errors.Is against sentinels.
func (e *StorageError) Is(target error) bool {
	t, ok := target.(*StorageError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithMessage returns a copy of the error with the message replaced.
//
//	err := storage.ErrConnectionFailed.WithMessage("mongodb at localhost:27017 unreachable")
func (e *StorageError) WithMessage(msg string) *StorageError {
	return &StorageError{
		Code:    e.Code,
		Message: msg,
		Cause:   e.Cause,
		Context: e.Context,
	}
}

// WithCause returns a copy of the error wrapping an underlying cause.
//
//	err := storage.ErrConnectionFailed.WithCause(netErr)
func (e *StorageError) WithCause(cause error) *StorageError {
	return &StorageError{
		Code:    e.Code,
		Message: e.Message,
		Cause:   cause,
		Context: e.Context,
	}
}

// WithContext returns a copy of the error with the given context merged in.
//
//	err := storage.ErrTimeout.WithContext(map[string]interface{}{
//	    "collection": "users",
//	    "key":        "u:123",
//	})
func (e *StorageError) WithContext(ctx map[string]interface{}) *StorageError {
	merged := make(map[string]interface{}, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}

	return &StorageError{
		Code:    e.Code,
		Message: e.Message,
		Cause:   e.Cause,
		Context: merged,
	}
}

// GetContext retrieves a context value by key.
func (e *StorageError) GetContext(key string) (interface{}, bool) {
	if e.Context == nil {
		return nil, false
	}
	val, ok := e.Context[key]
	return val, ok
}

// IsStorageError reports whether err has a StorageError in its chain.
func IsStorageError(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}

// GetStorageError extracts a StorageError from an error chain.
func GetStorageError(err error) (*StorageError, bool) {
	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return storageErr, true
	}
	return nil, false
}

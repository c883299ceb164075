package storage

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestStorageError_Error(t *testing.T) {
	err := &StorageError{Code: "TEST", Message: "something broke"}
	if got := err.Error(); got != "[TEST] something broke" {
		t.Errorf("unexpected message: %s", got)
	}

	withCause := err.WithCause(errors.New("root cause"))
	if got := withCause.Error(); !strings.Contains(got, "root cause") {
		t.Errorf("expected cause in message, got: %s", got)
	}
}

func TestStorageError_IsMatchesByCode(t *testing.T) {
	enriched := ErrConnectionFailed.
		WithMessage("mongodb at localhost:27017 unreachable").
		WithCause(errors.New("connection refused"))

	if !errors.Is(enriched, ErrConnectionFailed) {
		t.Error("enriched error should match its sentinel")
	}
	if errors.Is(enriched, ErrTimeout) {
		t.Error("error must not match a different code")
	}
}

func TestStorageError_UnwrapChain(t *testing.T) {
	root := errors.New("connection refused")
	err := ErrOperationFailed.WithCause(root)

	if !errors.Is(err, root) {
		t.Error("expected errors.Is to reach the root cause")
	}

	wrapped := fmt.Errorf("during set: %w", err)
	if !errors.Is(wrapped, ErrOperationFailed) {
		t.Error("expected sentinel match through fmt.Errorf wrapping")
	}
}

func TestStorageError_WithContext(t *testing.T) {
	err := ErrTimeout.WithContext(map[string]interface{}{
		"collection": "users",
	})
	err = err.WithContext(map[string]interface{}{
		"key": "u:123",
	})

	if v, ok := err.GetContext("collection"); !ok || v != "users" {
		t.Errorf("expected merged context to keep collection, got %v", v)
	}
	if v, ok := err.GetContext("key"); !ok || v != "u:123" {
		t.Errorf("expected merged context to add key, got %v", v)
	}
	if _, ok := ErrTimeout.GetContext("collection"); ok {
		t.Error("sentinel must not be mutated by WithContext")
	}
}

func TestGetStorageError(t *testing.T) {
	wrapped := fmt.Errorf("op: %w", ErrNotConnected)

	if !IsStorageError(wrapped) {
		t.Error("expected IsStorageError to see through wrapping")
	}

	se, ok := GetStorageError(wrapped)
	if !ok || se.Code != ErrNotConnected.Code {
		t.Errorf("expected extracted sentinel, got %+v", se)
	}

	if IsStorageError(errors.New("plain")) {
		t.Error("plain error must not be a StorageError")
	}
}

package mongos

import (
	"errors"

	"github.com/guneyilmaz0/MongoS/pkg/storage"
)

// Domain error sentinels for the key/document mapping layer. Connectivity
// and operation failures reuse the sentinels from pkg/storage.
var (
	// ErrNotFound indicates no record exists for the requested key.
	// Accessors with a default argument swallow it into the default;
	// everything else surfaces it.
	ErrNotFound = &storage.StorageError{
		Code:    "NOT_FOUND",
		Message: "no record found for key",
	}

	// ErrTypeMismatch indicates the stored value cannot be converted to
	// the requested type. Defaulting accessors treat it like ErrNotFound.
	ErrTypeMismatch = &storage.StorageError{
		Code:    "TYPE_MISMATCH",
		Message: "stored value cannot be converted to requested type",
	}
)

// IsNotFound reports whether err is an ErrNotFound, unwrapping as needed.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTypeMismatch reports whether err is an ErrTypeMismatch.
func IsTypeMismatch(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}

// operationFailed wraps a driver error as a storage operation failure,
// recording the operation and collection for diagnostics.
func operationFailed(op, collection string, cause error) error {
	return storage.ErrOperationFailed.
		WithCause(cause).
		WithContext(map[string]interface{}{
			"operation":  op,
			"collection": collection,
		})
}

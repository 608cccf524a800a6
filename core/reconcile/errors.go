package reconcile

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup or delete targets an unknown country name.
var ErrNotFound = errors.New("country not found")

// SourceUnavailableError reports that an upstream dataset could not be fetched or parsed.
type SourceUnavailableError struct {
	// Endpoint is the URL of the failing source.
	Endpoint string
	Err      error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source unavailable: %s: %v", e.Endpoint, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// StorageError reports that the durable store rejected a read or write.
type StorageError struct {
	// Op describes the rejected operation, e.g. "upsert Nigeria".
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// AsSourceUnavailable wraps err as a SourceUnavailableError for endpoint
// unless it already is one.
func AsSourceUnavailable(endpoint string, err error) error {
	if err == nil {
		return nil
	}
	var su *SourceUnavailableError
	if errors.As(err, &su) {
		return err
	}
	return &SourceUnavailableError{Endpoint: endpoint, Err: err}
}

// AsStorageError wraps err as a StorageError for op unless it already is one.
func AsStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// Package kvstore is the persistence boundary: an opaque string key-value
// store. Domain packages serialize their records to JSON text under fixed
// keys and must treat missing or malformed values as "empty", never fatal.
package kvstore

import "fmt"

type Store interface {
	// Get returns the value at key. ok is false when the key is absent;
	// err is reserved for backing-store failures.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// StorageError wraps a backing-store I/O or serialization failure. It is
// distinct from domain not-found conditions: callers should treat it as
// retryable and must not absorb it into a default value.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("kvstore: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("kvstore: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op, key string, err error) error {
	return &StorageError{Op: op, Key: key, Err: err}
}

package bank

import "fmt"

// StorageError marks a load/save failure at the storage boundary. The
// in-memory canonical state stays valid, so the caller can retry or
// surface the failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

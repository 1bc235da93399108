package content

import (
	"errors"
	"fmt"

	"github.com/globalsolutions/website/backend/internal/validation"
)

var (
	// ErrUnknownSection is returned for keys that were never registered.
	ErrUnknownSection = errors.New("unknown section")
	// ErrNotFound means no document is stored and the section has no default.
	ErrNotFound = errors.New("content not found")
	// ErrStorage matches every *StorageError.
	ErrStorage = errors.New("storage failure")
)

// ValidationError carries the field messages of a rejected save.
type ValidationError = validation.Error

// StorageError wraps a backend failure with the operation and key it hit.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

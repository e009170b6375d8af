package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyDocument is returned when a config file parses to null or to an empty mapping.
var ErrEmptyDocument = errors.New("document is empty")

// ErrParse is returned when structured text cannot be read or parsed.
var ErrParse = errors.New("parse failed")

// ErrNotFound is returned when a queried path does not exist.
var ErrNotFound = errors.New("path not found")

// ErrInvalidPath is returned when a file-like path is given where a directory is expected.
var ErrInvalidPath = errors.New("invalid path")

// ErrIO is returned for read/write failures on save and load operations.
var ErrIO = errors.New("i/o failure")

// ErrEncode is returned when a value cannot be serialized for saving.
var ErrEncode = errors.New("encode failed")

// ErrArtifactNotFound is returned when a key cannot be found in an artifact store.
var ErrArtifactNotFound = errors.New("artifact not found")

// PathError records a failed operation on a single path.
// It matches both its Kind and its underlying cause with errors.Is.
type PathError struct {
	Op   string // Operation name, e.g. "read_config"
	Path string // Path the operation was applied to
	Kind error  // One of the sentinel errors of this package
	Err  error  // Underlying cause, may be nil
}

func (e *PathError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *PathError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewPathError builds a PathError.
func NewPathError(op, path string, kind, cause error) *PathError {
	return &PathError{Op: op, Path: path, Kind: kind, Err: cause}
}

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced user, session or message does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when a session exists but is owned by another user.
	ErrForbidden = errors.New("forbidden")
	// ErrUnsupportedFormat is returned for export formats other than pdf and csv.
	ErrUnsupportedFormat = errors.New("unsupported export format")
	// ErrInvalidInput is returned for malformed requests.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpstreamDegraded marks a failed responder call. It never reaches callers of SendTurn.
	ErrUpstreamDegraded = errors.New("upstream degraded")
)

// FormatError reports an unknown export format.
type FormatError struct {
	Format string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported export format %q", e.Format)
}

func (e *FormatError) Unwrap() error {
	return ErrUnsupportedFormat
}

// StorageError wraps a persistence failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err unless it already carries a domain kind.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden) || errors.Is(err, ErrInvalidInput) {
		return err
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

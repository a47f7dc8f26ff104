package services

import (
	"errors"
	"fmt"
)

// Typed operation errors. Every rejected operation leaves the affected
// records untouched; callers match with errors.Is / errors.As.
var (
	// ErrNotFound is returned when a trip, group, message or notification
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCapacityFull is returned when an approval would push the member
	// count past maxMembers. Checked against the stored count inside the
	// write transaction, not the caller's view.
	ErrCapacityFull = errors.New("trip is full")

	// ErrTripEnded is returned for sends and membership changes on an
	// ended trip.
	ErrTripEnded = errors.New("trip has ended")

	// ErrPermission is returned when the caller is not allowed to perform
	// the operation (non-sender edit/delete, non-owner approve/kick, owner
	// leave).
	ErrPermission = errors.New("permission denied")
)

// ValidationError rejects an operation before any write happens.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// validationf builds a *ValidationError with a formatted reason.
func validationf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// TransientStoreError wraps a store/network failure. The operation did not
// partially apply; callers may retry.
type TransientStoreError struct {
	Op  string
	Err error
}

func (e *TransientStoreError) Error() string {
	return fmt.Sprintf("transient store failure during %s: %v", e.Op, e.Err)
}

func (e *TransientStoreError) Unwrap() error {
	return e.Err
}

// transient wraps err as a TransientStoreError unless it already carries one
// of the typed rejections above.
func transient(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrCapacityFull) ||
		errors.Is(err, ErrTripEnded) || errors.Is(err, ErrPermission) {
		return err
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return err
	}
	return &TransientStoreError{Op: op, Err: err}
}

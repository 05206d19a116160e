package db

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup names a record that does not exist.
var ErrNotFound = errors.New("record not found")

// ConflictError reports an attempt to assign a vehicle already held by a
// different driver on the same day. The attempted write is discarded.
type ConflictError struct {
	VehicleID      string
	HeldByDriverID string
	Day            string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("vehicle %s is already assigned to driver %s on %s",
		e.VehicleID, e.HeldByDriverID, e.Day)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

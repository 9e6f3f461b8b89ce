package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports a payload the client must fix. The store is never touched.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

var (
	// ErrMissingSections is returned when basic or prefs is absent, null or not an object.
	ErrMissingSections = &ValidationError{Reason: "Missing basic or prefs"}
	// ErrInvalidJSON is returned when the body is not parseable JSON.
	ErrInvalidJSON = &ValidationError{Reason: "Invalid JSON body"}

	// ErrOriginDenied marks a cross-origin request rejected before business logic runs.
	ErrOriginDenied = errors.New("origin not allowed")
)

// StoreError reports an append that did not complete. Callers must assume nothing was written.
type StoreError struct {
	Location string
	Err      error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("append to %s: %v", e.Location, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

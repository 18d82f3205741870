// Package common defines sentinel errors and shared constants used across
// the client and server layers. Callers should match errors with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Feed client errors.
	ErrTransport = errors.New("transport failure")
	ErrDecoding  = errors.New("decoding failure")

	// ErrSyncInProgress is returned when a sync is requested while another
	// one is still running. The overlapping request is dropped.
	ErrSyncInProgress = errors.New("sync already in progress")
)

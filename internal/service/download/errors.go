package download

import (
	"errors"
	"fmt"
	"os"
)

// ErrSimulatedFilesystem is produced by FailRollback.
var ErrSimulatedFilesystem = errors.New("simulated file system error")

// TransportError reports a network failure or a non-success HTTP status.
type TransportError struct {
	// URL is the address that was requested.
	URL string
	// StatusCode is the HTTP status, zero when no response arrived.
	StatusCode int
	// Status is the HTTP status line, empty when no response arrived.
	Status string
	// Err is the transport failure, nil for a bad status.
	Err error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("issue with downloading %s: %v", e.URL, e.Err)
	}

	return fmt.Sprintf("issue with downloading %s, status: %s", e.URL, e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RollbackError reports that cleaning up after a failed download failed too.
type RollbackError struct {
	// URL is the address that was being downloaded.
	URL string
	// Path is the destination that may still exist.
	Path string
	// File is the destination handle. It may still be open.
	File *os.File
	// Cause is the download failure that triggered the rollback.
	Cause error
	// Err is the rollback failure.
	Err error
}

func (e *RollbackError) Error() string {
	return fmt.Sprintf("can't clean up %s after failed download: %v (download error: %v)", e.Path, e.Err, e.Cause)
}

func (e *RollbackError) Unwrap() []error {
	return []error{e.Err, e.Cause}
}

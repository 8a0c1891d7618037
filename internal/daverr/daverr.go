// Package daverr defines the error kinds shared by the transport client,
// the planner and the executor. Every failure surfaced to the user wraps
// exactly one of these sentinels so callers can classify with errors.Is.
package daverr

import "errors"

var (
	// ErrInvalidPath indicates a malformed path or a traversal attempt.
	ErrInvalidPath = errors.New("invalid path")

	// ErrNotFound indicates a missing source or target.
	ErrNotFound = errors.New("not found")

	// ErrNotADirectory indicates a listing was requested on a plain file.
	ErrNotADirectory = errors.New("not a directory")

	// ErrNotEmptyOrDirectory indicates a non-recursive remove hit a directory.
	ErrNotEmptyOrDirectory = errors.New("is a directory")

	// ErrParentNotFound indicates a create whose immediate parent is absent.
	ErrParentNotFound = errors.New("parent directory not found")

	// ErrAlreadyExists indicates the target directory already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrPermission indicates the local filesystem denied access.
	ErrPermission = errors.New("permission denied")

	// ErrTransport indicates a connection failure or an unexpected
	// HTTP status from the server.
	ErrTransport = errors.New("transport error")
)

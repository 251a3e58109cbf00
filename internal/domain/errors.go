package domain

import "errors"

var (
	// ErrCredentialRequired indicates a gated call was attempted without a stored credential
	ErrCredentialRequired = errors.New("credential required")
	// ErrNoActiveDocument indicates an operation that needs an active document selection
	ErrNoActiveDocument = errors.New("no active document")
	// ErrQueryInFlight indicates a query is already outstanding
	ErrQueryInFlight = errors.New("query already in flight")
	// ErrEmptyQuery indicates an empty or whitespace-only query
	ErrEmptyQuery = errors.New("empty query")
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("resource not found")
)

package domain

import "errors"

// Error kinds shared by every component. Callers match them with errors.Is;
// the HTTP layer maps each kind to a stable status code.
var (
	ErrAuthFailure      = errors.New("authentication failed")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
	ErrStorageFailure   = errors.New("storage failure")
)

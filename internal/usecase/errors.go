package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrConflict              = errors.New("conflict")

	// ErrInvalidRecord marks a scraped record the engine cannot persist,
	// e.g. a standing without a team name.
	ErrInvalidRecord = errors.New("invalid record")
	ErrCycleFailed   = errors.New("reconcile cycle failed")
)

package domain

import "errors"

// Domain errors represent error conditions in the labelwatch domain.
// They can be checked with errors.Is.
var (
	// ErrAlreadyRunning is returned when Run() is called on a running service.
	ErrAlreadyRunning = errors.New("labelwatch: already running")

	// ErrNotRunning is returned when a running service is required.
	ErrNotRunning = errors.New("labelwatch: not running")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("labelwatch: invalid configuration")

	// ErrCommandNotFound is returned when the print command binary cannot be
	// located. The process cannot make progress and must terminate.
	ErrCommandNotFound = errors.New("labelwatch: print command not found")

	// ErrQueueClosed is returned by the print queue once the stop sentinel
	// has been consumed.
	ErrQueueClosed = errors.New("labelwatch: print queue closed")
)

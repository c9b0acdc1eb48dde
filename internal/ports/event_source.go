package ports

// EventSource delivers creation events for files in a single directory.
// Implementations are non-recursive and skip directories.
type EventSource interface {
	// Created streams absolute paths of newly created files.
	// The channel is closed when the source is closed.
	Created() <-chan string

	// Errors streams non-fatal watch errors.
	Errors() <-chan error

	// Close stops the source. It is safe to call more than once.
	Close() error
}

package domain

import "time"

// Outcome classifies a print attempt.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeExitFailure
	OutcomeTimeout
	OutcomeUnexpected
	OutcomeEnvironmentFatal
)

// String returns a human-readable representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeExitFailure:
		return "exit-failure"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeUnexpected:
		return "unexpected"
	case OutcomeEnvironmentFatal:
		return "environment-fatal"
	default:
		return "unknown"
	}
}

// PrintResult is returned by a printer for every job it runs.
type PrintResult struct {
	Outcome Outcome

	// ExitCode is the child's exit status, or -1 when it did not exit normally
	ExitCode int

	// Stderr holds captured standard error output
	Stderr string

	// Err is the underlying error for every outcome except OutcomeSuccess
	Err error

	Duration time.Duration
}

// OK reports whether the label was printed.
func (r PrintResult) OK() bool {
	return r.Outcome == OutcomeSuccess
}

// Fatal reports whether the result must terminate the whole process.
func (r PrintResult) Fatal() bool {
	return r.Outcome == OutcomeEnvironmentFatal
}

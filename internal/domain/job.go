package domain

import "time"

// PrintJob carries everything the print worker needs for one label.
// Jobs are created when a group flushes and are consumed exactly once.
type PrintJob struct {
	// ID correlates log lines for this job
	ID string

	// Path is the absolute path of the label image
	Path string

	// Group is the print group the label was flushed with
	Group GroupKey

	// GlobalArgs are passed before the print subcommand
	GlobalArgs []string

	// PrintArgs are passed after the print subcommand
	PrintArgs []string

	// NoCut suppresses the physical cut after this label
	NoCut bool

	// ErrorSuffix is appended to Path when the print fails
	ErrorSuffix string

	// DoneSuffix is appended to Path when the print succeeds
	DoneSuffix string

	// Timeout bounds a single invocation of the print command
	Timeout time.Duration
}

// DonePath returns the path the file is renamed to after a successful print.
func (j PrintJob) DonePath() string {
	return j.Path + j.DoneSuffix
}

// ErrorPath returns the path the file is renamed to after a failed print.
func (j PrintJob) ErrorPath() string {
	return j.Path + j.ErrorSuffix
}

package domain

import "time"

// GroupKey identifies the print group a file belongs to.
// Grouped is false for files whose name carries no separator.
type GroupKey struct {
	Prefix  string
	Grouped bool
}

// Ungrouped is the key of files that do not match the group separator.
var Ungrouped = GroupKey{}

// Group returns the key for a grouped file with the given prefix.
func Group(prefix string) GroupKey {
	return GroupKey{Prefix: prefix, Grouped: true}
}

// String returns the prefix, or "<ungrouped>" for ungrouped files.
func (k GroupKey) String() string {
	if !k.Grouped {
		return "<ungrouped>"
	}
	return k.Prefix
}

// WatchedFile is a label image observed in the watch folder.
type WatchedFile struct {
	// Path is the absolute path of the file
	Path string

	// Group is the print group derived from the file name
	Group GroupKey

	// ObservedAt is when the create event was received
	ObservedAt time.Time

	// ModTime is the filesystem modification time used for ordering.
	// Zero until the group is flushed.
	ModTime time.Time
}
